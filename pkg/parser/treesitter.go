// Package parser turns JavaScript and TypeScript source into normalized
// prompt context: the file's top-level units with import linkage removed,
// sliced verbatim from the original text.
package parser

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/tesgen/tes/pkg/parser/tspool"
)

const (
	nodeProgram      = "program"
	nodeComment      = "comment"
	nodeHashBangLine = "hash_bang_line"
	nodeImport       = "import_statement"
	nodeRequire      = "import_require_clause"
	nodeError        = "ERROR"
)

// GetNodeText returns the source text for the given AST node.
// Returns empty string if the node's byte range exceeds the source length.
func GetNodeText(node *sitter.Node, source []byte) string {
	start := node.StartByte()
	end := node.EndByte()
	sourceLen := uint32(len(source))

	if start > end || end > sourceLen {
		return ""
	}

	return string(source[start:end])
}

// FindChildByType returns the first direct child with the given node type.
func FindChildByType(node *sitter.Node, nodeType string) *sitter.Node {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == nodeType {
			return child
		}
	}
	return nil
}

func walkTreeWithDepth(node *sitter.Node, visitor func(*sitter.Node) bool, depth int) {
	if depth > tspool.MaxTreeDepth {
		return
	}

	if !visitor(node) {
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		walkTreeWithDepth(node.Child(i), visitor, depth+1)
	}
}

// WalkTree recursively visits all nodes in the AST.
// The visitor function returns false to stop traversing into children.
func WalkTree(node *sitter.Node, visitor func(*sitter.Node) bool) {
	walkTreeWithDepth(node, visitor, 0)
}

// firstErrorNode returns the first ERROR or MISSING node in document order.
func firstErrorNode(root *sitter.Node) *sitter.Node {
	var found *sitter.Node
	WalkTree(root, func(n *sitter.Node) bool {
		if found != nil {
			return false
		}
		if n.Type() == nodeError || n.IsMissing() {
			found = n
			return false
		}
		// Subtrees without errors cannot contain one.
		return n.HasError()
	})
	return found
}
