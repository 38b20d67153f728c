package parser

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/tesgen/tes/pkg/domain"
	"github.com/tesgen/tes/pkg/parser/tspool"
)

func parseRoot(t *testing.T, g domain.Grammar, source []byte) *sitter.Node {
	t.Helper()
	tree, err := tspool.Parse(context.Background(), g, source)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	t.Cleanup(tree.Close)
	return tree.RootNode()
}

func TestGetNodeText(t *testing.T) {
	t.Parallel()

	// Given
	source := []byte(`const hello = "world";`)
	root := parseRoot(t, domain.GrammarTypeScript, source)

	// When
	text := GetNodeText(root, source)

	// Then
	want := `const hello = "world";`
	if text != want {
		t.Errorf("GetNodeText = %q, want %q", text, want)
	}
}

func TestGetNodeText_OutOfRange(t *testing.T) {
	t.Parallel()

	// Given
	source := []byte(`const hello = "world";`)
	root := parseRoot(t, domain.GrammarTypeScript, source)

	// When
	text := GetNodeText(root, source[:5])

	// Then
	if text != "" {
		t.Errorf("GetNodeText = %q, want empty string", text)
	}
}

func TestFindChildByType(t *testing.T) {
	t.Parallel()

	// Given
	source := []byte("import a from 'a';\nconst b = 1;")
	root := parseRoot(t, domain.GrammarJavaScript, source)

	// When
	imp := FindChildByType(root, nodeImport)
	missing := FindChildByType(root, "class_declaration")

	// Then
	if imp == nil {
		t.Fatal("import_statement not found")
	}
	if got := GetNodeText(imp, source); got != "import a from 'a';" {
		t.Errorf("import text = %q", got)
	}
	if missing != nil {
		t.Errorf("expected nil for absent type, got %q", missing.Type())
	}
}

func TestWalkTree_SkipsChildren(t *testing.T) {
	t.Parallel()

	// Given
	source := []byte("function f() { return 1; }\nconst x = 2;")
	root := parseRoot(t, domain.GrammarJavaScript, source)

	// When
	var visited []string
	WalkTree(root, func(n *sitter.Node) bool {
		visited = append(visited, n.Type())
		return n.Type() != "function_declaration"
	})

	// Then
	for _, typ := range visited {
		if typ == "return_statement" {
			t.Error("visited a child of a skipped node")
		}
	}
	var sawLexical bool
	for _, typ := range visited {
		if typ == "lexical_declaration" {
			sawLexical = true
		}
	}
	if !sawLexical {
		t.Error("walk stopped instead of continuing with siblings")
	}
}

func TestFirstErrorNode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		source  string
		wantErr bool
	}{
		{name: "should return nil for valid source", source: "const a = 1;", wantErr: false},
		{name: "should find error node", source: "const a = 1;\nconst = ;", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Given
			root := parseRoot(t, domain.GrammarJavaScript, []byte(tt.source))

			// When
			node := firstErrorNode(root)

			// Then
			if (node != nil) != tt.wantErr {
				t.Fatalf("firstErrorNode = %v, wantErr %v", node, tt.wantErr)
			}
			if node != nil && node.StartPoint().Row != 1 {
				t.Errorf("error row = %d, want 1", node.StartPoint().Row)
			}
		})
	}
}
