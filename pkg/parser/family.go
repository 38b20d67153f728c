package parser

import (
	"path/filepath"
	"strings"

	"github.com/tesgen/tes/pkg/domain"
)

var familyByExt = map[string]domain.SyntaxFamily{
	".js":  domain.FamilyScript,
	".jsx": domain.FamilyScript,
	".mjs": domain.FamilyScript,
	".cjs": domain.FamilyScript,
	".ts":  domain.FamilyScriptWithTypes,
	".tsx": domain.FamilyScriptWithTypes,
	".mts": domain.FamilyScriptWithTypes,
	".cts": domain.FamilyScriptWithTypes,
}

// FamilyForPath classifies a file by extension.
// The second result is false for unsupported extensions.
func FamilyForPath(path string) (domain.SyntaxFamily, bool) {
	family, ok := familyByExt[strings.ToLower(filepath.Ext(path))]
	return family, ok
}

// JSXForPath reports whether JSX syntax is allowed in the file.
// TypeScript only permits JSX in .tsx files.
func JSXForPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".mts", ".cts":
		return false
	default:
		return true
	}
}

// SupportedExtensions returns the recognized file extensions.
func SupportedExtensions() []string {
	return []string{".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx", ".mts", ".cts"}
}
