package snippets

import (
	"os"
	"path/filepath"
)

// SearchPaths returns snippet directories in precedence order.
func SearchPaths(projectDir string) []string {
	paths := make([]string, 0, 2)
	if projectDir != "" {
		paths = append(paths, filepath.Join(projectDir, ".tsvg", "snippets"))
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		paths = append(paths, filepath.Join(home, ".config", "tsvg", "snippets"))
	}
	return paths
}

// LoadFromSearchPaths loads snippets from the search paths, then the
// built-ins. The first snippet seen with a given name wins.
func LoadFromSearchPaths(projectDir string) ([]*Snippet, error) {
	seen := make(map[string]*Snippet)
	order := make([]string, 0)

	add := func(list []*Snippet) {
		for _, s := range list {
			if _, exists := seen[s.Name]; exists {
				continue
			}
			seen[s.Name] = s
			order = append(order, s.Name)
		}
	}

	for _, path := range SearchPaths(projectDir) {
		list, err := LoadSnippetsFromDir(path)
		if err != nil {
			return nil, err
		}
		add(list)
	}

	builtins, err := LoadBuiltinSnippets()
	if err != nil {
		return nil, err
	}
	add(builtins)

	resolved := make([]*Snippet, 0, len(order))
	for _, name := range order {
		resolved = append(resolved, seen[name])
	}
	return resolved, nil
}
