package ignore

import (
	"bufio"
	"bytes"
	"os"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/tesgen/tes/pkg/domain"
)

// DefaultPatternFiles are the pattern sources read in directory mode, in precedence order.
var DefaultPatternFiles = []string{".tesignore", ".gitignore"}

const commentPrefix = "#"

// PatternSet is an ordered list of raw ignore patterns.
type PatternSet []string

// ParsePatterns splits pattern file content into patterns, dropping blank
// lines and comment lines.
func ParsePatterns(content []byte) PatternSet {
	var patterns PatternSet

	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}
		patterns = append(patterns, line)
	}

	return patterns
}

// LoadPatterns reads and merges pattern files in the given order.
// Files that do not exist contribute nothing and are reported in missing.
func LoadPatterns(paths ...string) (patterns PatternSet, missing []string, err error) {
	for _, p := range paths {
		content, readErr := os.ReadFile(p)
		if readErr != nil {
			if errors.Is(readErr, os.ErrNotExist) {
				missing = append(missing, p)
				continue
			}
			return nil, missing, errors.Mark(errors.Wrapf(readErr, "read pattern file %s", p), domain.ErrFileSystem)
		}
		patterns = append(patterns, ParsePatterns(content)...)
	}

	return patterns, missing, nil
}
