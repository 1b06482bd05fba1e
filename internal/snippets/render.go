package snippets

import (
	"fmt"
	"strings"

	"github.com/opencode-ai/tsvg/internal/detect"
	"github.com/opencode-ai/tsvg/internal/infer"
)

// Values resolves the value of every snippet variable: the caller's value,
// else the declared default, else the inferred default for the placeholder.
func Values(snippet *Snippet, vars map[string]string) (map[string]string, error) {
	if snippet == nil {
		return nil, fmt.Errorf("snippet is required")
	}

	names := make([]string, 0, len(snippet.Variables))
	for _, v := range snippet.Variables {
		names = append(names, v.Name)
	}
	inferred := infer.Defaults(snippet.Body, names)

	values := make(map[string]string, len(snippet.Variables))
	for _, v := range snippet.Variables {
		value, ok := vars[v.Name]
		if ok && strings.TrimSpace(value) != "" {
			values[v.Name] = value
			continue
		}
		if v.Default != "" {
			values[v.Name] = v.Default
			continue
		}
		if v.Required {
			return nil, fmt.Errorf("missing required variable %q", v.Name)
		}
		values[v.Name] = inferred[v.Name]
	}
	return values, nil
}

// Render substitutes the snippet body with resolved values.
func Render(snippet *Snippet, vars map[string]string) (string, error) {
	values, err := Values(snippet, vars)
	if err != nil {
		return "", fmt.Errorf("render snippet %q: %w", snippet.Name, err)
	}
	return detect.Substitute(snippet.Body, values), nil
}

// Marked returns the snippet body as a marked template literal, ready to be
// pasted into source.
func Marked(snippet *Snippet) string {
	body := strings.TrimRight(snippet.Body, "\n")
	return "/*svg*/ `" + body + "`"
}
