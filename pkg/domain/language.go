// Package domain defines the core types shared by the traversal and normalization pipeline.
package domain

// SyntaxFamily represents the grammar variant a source file is parsed with.
// The value doubles as the language name shown to the generation service.
type SyntaxFamily string

// Supported syntax families.
const (
	// FamilyScript is the plain JavaScript grammar (JSX included).
	FamilyScript SyntaxFamily = "javascript"
	// FamilyScriptWithTypes is the type-annotated superset of FamilyScript.
	FamilyScriptWithTypes SyntaxFamily = "typescript"
)

// Valid reports whether f is one of the supported families.
func (f SyntaxFamily) Valid() bool {
	return f == FamilyScript || f == FamilyScriptWithTypes
}

// Grammar identifies a concrete tree-sitter grammar.
type Grammar string

// Tree-sitter grammars used by the normalizer.
const (
	GrammarJavaScript Grammar = "javascript"
	GrammarTypeScript Grammar = "typescript"
	GrammarTSX        Grammar = "tsx"
)

// Grammar returns the grammar for the family. JSX only changes the choice
// for the typed family: the JavaScript grammar always accepts JSX.
func (f SyntaxFamily) Grammar(jsx bool) Grammar {
	if f != FamilyScriptWithTypes {
		return GrammarJavaScript
	}
	if jsx {
		return GrammarTSX
	}
	return GrammarTypeScript
}
