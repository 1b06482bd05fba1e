package snippets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/opencode-ai/tsvg/internal/detect"
	"gopkg.in/yaml.v3"
)

// LoadSnippet reads a single snippet from disk.
func LoadSnippet(path string) (*Snippet, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("snippet path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snippet %s: %w", path, err)
	}

	snippet, err := parseSnippet(data)
	if err != nil {
		return nil, fmt.Errorf("parse snippet %s: %w", path, err)
	}
	snippet.Source = path
	return snippet, nil
}

// LoadSnippetsFromDir loads all *.yaml and *.yml snippets in dir. A missing
// directory yields no snippets.
func LoadSnippetsFromDir(dir string) ([]*Snippet, error) {
	if strings.TrimSpace(dir) == "" {
		return []*Snippet{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*Snippet{}, nil
		}
		return nil, fmt.Errorf("read snippets dir %s: %w", dir, err)
	}

	snippets := make([]*Snippet, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		snippet, err := LoadSnippet(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		snippets = append(snippets, snippet)
	}

	sort.Slice(snippets, func(i, j int) bool {
		return snippets[i].Name < snippets[j].Name
	})

	return snippets, nil
}

func parseSnippet(data []byte) (*Snippet, error) {
	var snippet Snippet
	if err := yaml.Unmarshal(data, &snippet); err != nil {
		return nil, err
	}

	snippet.Name = strings.TrimSpace(snippet.Name)
	if snippet.Name == "" {
		return nil, fmt.Errorf("snippet name is required")
	}
	if strings.TrimSpace(snippet.Body) == "" {
		return nil, fmt.Errorf("snippet %q has an empty body", snippet.Name)
	}
	if strings.Contains(snippet.Body, "`") {
		return nil, fmt.Errorf("snippet %q body must not contain a backtick", snippet.Name)
	}

	declared := make(map[string]bool, len(snippet.Variables))
	for i := range snippet.Variables {
		v := &snippet.Variables[i]
		v.Name = strings.TrimSpace(v.Name)
		if v.Name == "" {
			return nil, fmt.Errorf("snippet %q: variable %d has no name", snippet.Name, i+1)
		}
		if declared[v.Name] {
			return nil, fmt.Errorf("snippet %q: duplicate variable %q", snippet.Name, v.Name)
		}
		declared[v.Name] = true
	}

	// Placeholders used in the body but not declared still get an entry so
	// rendering can default them.
	for _, name := range detect.ExtractVariables(snippet.Body) {
		if !declared[name] {
			snippet.Variables = append(snippet.Variables, SnippetVar{Name: name})
			declared[name] = true
		}
	}

	return &snippet, nil
}
