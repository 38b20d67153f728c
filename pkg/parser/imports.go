package parser

import (
	"context"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/tesgen/tes/pkg/domain"
	"github.com/tesgen/tes/pkg/parser/tspool"
)

// CommonJS: require('x'), require("x")
const requireQuery = `
	(call_expression
		function: (identifier) @func
		arguments: (arguments (string) @source)
	)
`

type importRef struct {
	pos       uint32
	specifier string
}

// ExtractImports returns the module specifiers a file links against: ES
// import sources, TypeScript import-require clauses and CommonJS require
// calls, de-duplicated in document order. Extraction is best-effort and
// returns nil when the source cannot be parsed.
func ExtractImports(ctx context.Context, source []byte, family domain.SyntaxFamily, opts ...NormalizeOption) []string {
	if !family.Valid() {
		return nil
	}

	grammar := family.Grammar(newNormalizeOptions(opts).JSX)

	tree, err := tspool.Parse(ctx, grammar, source)
	if err != nil {
		return nil
	}
	defer tree.Close()

	root := tree.RootNode()
	var refs []importRef

	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		if child.Type() != nodeImport {
			continue
		}
		if src := importSource(child); src != nil {
			refs = append(refs, importRef{pos: src.StartByte(), specifier: trimJSQuotes(GetNodeText(src, source))})
		}
	}

	// Query errors are ignored: the ES import pass above still yields a result.
	if results, err := tspool.QueryWithCache(root, grammar, requireQuery); err == nil {
		for _, r := range results {
			fn, ok := r.Captures["func"]
			if !ok || GetNodeText(fn, source) != "require" {
				continue
			}
			if src, ok := r.Captures["source"]; ok {
				refs = append(refs, importRef{pos: src.StartByte(), specifier: trimJSQuotes(GetNodeText(src, source))})
			}
		}
	}

	sort.SliceStable(refs, func(i, j int) bool { return refs[i].pos < refs[j].pos })

	seen := make(map[string]struct{}, len(refs))
	var imports []string
	for _, ref := range refs {
		if ref.specifier == "" {
			continue
		}
		if _, exists := seen[ref.specifier]; exists {
			continue
		}
		seen[ref.specifier] = struct{}{}
		imports = append(imports, ref.specifier)
	}

	return imports
}

func importSource(node *sitter.Node) *sitter.Node {
	if src := node.ChildByFieldName("source"); src != nil {
		return src
	}
	if clause := FindChildByType(node, nodeRequire); clause != nil {
		if src := clause.ChildByFieldName("source"); src != nil {
			return src
		}
		return FindChildByType(clause, "string")
	}
	return nil
}

func trimJSQuotes(s string) string {
	if len(s) < 2 {
		return s
	}
	first := s[0]
	last := s[len(s)-1]
	if (first == '"' && last == '"') || (first == '\'' && last == '\'') || (first == '`' && last == '`') {
		return s[1 : len(s)-1]
	}
	return s
}
