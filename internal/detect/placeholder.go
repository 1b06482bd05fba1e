package detect

import (
	"regexp"
	"strings"
)

// placeholderPattern is a shallow ${...} match that stops at the first "}".
// Extraction and substitution must share it so every extracted name can be
// replaced.
var placeholderPattern = regexp.MustCompile(`\$\{([^}]*)\}`)

// ExtractVariables returns the unique trimmed placeholder expressions of a
// template body in first-occurrence order. Blank expressions are skipped.
func ExtractVariables(body string) []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)

	for _, m := range placeholderPattern.FindAllStringSubmatch(body, -1) {
		expr := strings.TrimSpace(m[1])
		if expr == "" {
			continue
		}
		if _, exists := seen[expr]; exists {
			continue
		}
		seen[expr] = struct{}{}
		names = append(names, expr)
	}

	return names
}

// Substitute replaces every placeholder in body with values[expr], or the
// empty string when expr has no value. Everything else, escapes included,
// is copied verbatim.
func Substitute(body string, values map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(body, func(m string) string {
		return values[strings.TrimSpace(m[2:len(m)-1])]
	})
}
