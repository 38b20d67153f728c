package generator

import (
	"fmt"
	"strings"
)

const minimumTests = 3

// BuildPrompt renders the instruction sent to the generation service.
func BuildPrompt(req Request) string {
	var b strings.Builder

	subject := string(req.Family)
	if libs := strings.TrimSpace(req.Libraries); libs != "" {
		subject += " " + libs
	}

	fmt.Fprintf(&b, "Write strict %s unit tests for the following:\n\n", subject)
	b.WriteString(req.NormalizedCode)
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "The code is located in the local file %s.\n\n", req.FilePath)

	if targets := cleanTargets(req.Targets); len(targets) > 0 {
		fmt.Fprintf(&b, "Only write test cases for the following: %s.\n\n", strings.Join(targets, ", "))
	}

	if len(req.Imports) > 0 {
		fmt.Fprintf(&b, "The file imports these modules: %s.\n\n", strings.Join(req.Imports, ", "))
	}

	if len(req.Dependencies) > 0 {
		fmt.Fprintf(&b, "The project has these dependencies available: %s.\n\n", strings.Join(req.Dependencies, ", "))
	}

	b.WriteString("Use the same code style of quotes, indentation, etc. when generating the unit tests.\n\n")
	b.WriteString("The unit tests should handle both valid and invalid inputs, including edge cases and error conditions.\n\n")
	fmt.Fprintf(&b, "Generate at least %d unit tests, covering different input values and scenarios.\n", minimumTests)
	b.WriteString("Respond with the test file source only.")

	return b.String()
}

func cleanTargets(targets []string) []string {
	out := make([]string, 0, len(targets))
	for _, t := range targets {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// StripCodeFences removes one markdown code fence wrapping the whole text,
// along with its language tag, and trims surrounding whitespace.
func StripCodeFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") || !strings.HasSuffix(trimmed, "```") || len(trimmed) < 6 {
		return trimmed
	}

	body := strings.TrimSuffix(trimmed, "```")
	nl := strings.IndexByte(body, '\n')
	if nl < 0 {
		return trimmed
	}

	return strings.TrimSpace(body[nl+1:])
}
