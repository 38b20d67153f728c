// Package tspool provides tree-sitter parsers for the JavaScript family grammars.
//
// Parsers are created fresh per call. When a context is cancelled during
// ParseCtx, the parser's internal cancel flag is set but not reset, so a
// reused parser fails subsequent parses with "operation limit was hit".
//
// Thread-safety: Parsers returned by Get are NOT safe for concurrent use.
// Each goroutine must Get its own parser or use the Parse helper.
package tspool

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/tesgen/tes/pkg/domain"
)

// MaxTreeDepth is the maximum recursion depth when walking AST trees.
const MaxTreeDepth = 1000

var (
	jsLang  *sitter.Language
	tsLang  *sitter.Language
	tsxLang *sitter.Language

	langOnce sync.Once
)

func initLanguages() {
	langOnce.Do(func() {
		jsLang = javascript.GetLanguage()
		tsLang = typescript.GetLanguage()
		tsxLang = tsx.GetLanguage()
	})
}

// GetLanguage returns the tree-sitter language for the given grammar.
func GetLanguage(g domain.Grammar) *sitter.Language {
	initLanguages()
	switch g {
	case domain.GrammarTypeScript:
		return tsLang
	case domain.GrammarTSX:
		return tsxLang
	default:
		return jsLang
	}
}

// Get returns a parser for the given grammar.
// Caller MUST call parser.Close() when done to free resources.
func Get(g domain.Grammar) *sitter.Parser {
	parser := sitter.NewParser()
	parser.SetLanguage(GetLanguage(g))
	return parser
}

// Parse parses source using a fresh parser.
// Caller MUST call tree.Close() to free resources.
func Parse(ctx context.Context, g domain.Grammar, source []byte) (*sitter.Tree, error) {
	parser := Get(g)
	defer parser.Close()

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", g)
	}

	return tree, nil
}
