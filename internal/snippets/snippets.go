// Package snippets provides reusable marked SVG templates.
package snippets

import (
	"errors"
	"strings"
)

// ErrSnippetNotFound is returned when no snippet matches a name.
var ErrSnippetNotFound = errors.New("snippet not found")

// SourceBuiltin marks snippets bundled with the binary.
const SourceBuiltin = "builtin"

// Snippet is an SVG body with ${} placeholders.
type Snippet struct {
	Name        string       `yaml:"name" json:"name"`
	Description string       `yaml:"description" json:"description,omitempty"`
	Body        string       `yaml:"body" json:"body"`
	Variables   []SnippetVar `yaml:"variables,omitempty" json:"variables,omitempty"`
	Tags        []string     `yaml:"tags,omitempty" json:"tags,omitempty"`
	Source      string       `yaml:"-" json:"source"` // file path or "builtin"
}

// SnippetVar describes a placeholder used in a snippet body.
type SnippetVar struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description,omitempty"`
	Default     string `yaml:"default,omitempty" json:"default,omitempty"`
	Required    bool   `yaml:"required" json:"required,omitempty"`
}

// Find returns the snippet called name from list.
func Find(list []*Snippet, name string) (*Snippet, error) {
	name = strings.TrimSpace(name)
	for _, s := range list {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, ErrSnippetNotFound
}
