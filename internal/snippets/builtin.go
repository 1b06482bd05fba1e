package snippets

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// LoadBuiltinSnippets returns the snippets bundled with tsvg.
func LoadBuiltinSnippets() ([]*Snippet, error) {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil, fmt.Errorf("read builtin snippets: %w", err)
	}

	snippets := make([]*Snippet, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := builtinFS.ReadFile("builtin/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read builtin snippet %s: %w", entry.Name(), err)
		}
		snippet, err := parseSnippet(data)
		if err != nil {
			return nil, fmt.Errorf("parse builtin snippet %s: %w", entry.Name(), err)
		}
		snippet.Source = SourceBuiltin
		snippets = append(snippets, snippet)
	}

	sort.Slice(snippets, func(i, j int) bool {
		return snippets[i].Name < snippets[j].Name
	})

	return snippets, nil
}
