// Package manifest reads the dependency names a project declares in its
// package.json.
package manifest

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"

	"github.com/tesgen/tes/pkg/domain"
)

// DefaultPath is the manifest read when none is configured.
const DefaultPath = "package.json"

// ErrInvalidManifest is returned when the file is not a JSON object.
var ErrInvalidManifest = errors.New("manifest: invalid package.json")

var dependencySections = []string{"dependencies", "devDependencies"}

// LoadDependencies returns the package names under "dependencies" followed
// by "devDependencies", in document order and without duplicates. A missing
// file yields an empty list.
func LoadDependencies(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, errors.Mark(errors.Wrapf(err, "read manifest %s", path), domain.ErrFileSystem)
	}

	deps, err := ParseDependencies(content)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return deps, nil
}

// ParseDependencies extracts dependency names from package.json content.
func ParseDependencies(content []byte) ([]string, error) {
	if !gjson.ValidBytes(content) {
		return nil, ErrInvalidManifest
	}
	doc := gjson.ParseBytes(content)
	if !doc.IsObject() {
		return nil, ErrInvalidManifest
	}

	deps := []string{}
	seen := make(map[string]struct{})
	for _, section := range dependencySections {
		doc.Get(section).ForEach(func(key, _ gjson.Result) bool {
			name := key.String()
			if _, dup := seen[name]; !dup {
				seen[name] = struct{}{}
				deps = append(deps, name)
			}
			return true
		})
	}

	return deps, nil
}
