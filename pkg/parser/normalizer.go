package parser

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/tesgen/tes/pkg/domain"
	"github.com/tesgen/tes/pkg/parser/tspool"
)

const maxSnippetLen = 40

// Normalize parses source as a module and returns the original text of every
// top-level unit that is not an import, in source order, joined by newlines.
// Unit text is sliced from source by span; the tree is never re-printed, so
// quoting, spacing and comments inside a unit survive unchanged.
func Normalize(ctx context.Context, source []byte, family domain.SyntaxFamily, opts ...NormalizeOption) (string, error) {
	units, err := Units(ctx, source, family, opts...)
	if err != nil {
		return "", err
	}

	segments := make([]string, 0, len(units))
	for _, u := range units {
		if u.Kind == domain.UnitImport {
			continue
		}
		segments = append(segments, u.Text(source))
	}

	return strings.Join(segments, "\n"), nil
}

// Units parses source and returns one SyntaxUnit per top-level statement or
// declaration. Comments and a leading hashbang are not units.
func Units(ctx context.Context, source []byte, family domain.SyntaxFamily, opts ...NormalizeOption) ([]domain.SyntaxUnit, error) {
	if !family.Valid() {
		return nil, errors.Mark(errors.Newf("unknown syntax family %q", family), domain.ErrUnsupportedSyntaxFamily)
	}

	o := newNormalizeOptions(opts)

	tree, err := tspool.Parse(ctx, family.Grammar(o.JSX), source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, newParseError(root, source, family)
	}

	count := int(root.NamedChildCount())
	units := make([]domain.SyntaxUnit, 0, count)
	for i := 0; i < count; i++ {
		child := root.NamedChild(i)
		switch child.Type() {
		case nodeComment, nodeHashBangLine:
			continue
		}

		units = append(units, domain.SyntaxUnit{
			Kind:  classify(child),
			Start: child.StartByte(),
			End:   child.EndByte(),
		})
	}

	return units, nil
}

func classify(node *sitter.Node) domain.UnitKind {
	if node.Type() == nodeImport {
		return domain.UnitImport
	}
	return domain.UnitOther
}

func newParseError(root *sitter.Node, source []byte, family domain.SyntaxFamily) error {
	perr := &domain.ParseError{Family: family, Line: 1, Column: 1}

	if node := firstErrorNode(root); node != nil {
		pos := node.StartPoint()
		perr.Line = int(pos.Row) + 1
		perr.Column = int(pos.Column) + 1
		if node.IsMissing() {
			perr.Snippet = "missing " + node.Type()
		} else {
			perr.Snippet = truncate(strings.TrimSpace(GetNodeText(node, source)), maxSnippetLen)
		}
	}

	return errors.WithStack(perr)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
