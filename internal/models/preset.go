// Package models defines the persisted tsvg types.
package models

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Preset is a named set of placeholder values saved for reuse.
type Preset struct {
	// ID is the unique identifier for the preset.
	ID string `json:"id"`

	// Name is the user-facing handle, unique per file.
	Name string `json:"name"`

	// File is the source file the values were captured from, if any.
	File string `json:"file,omitempty"`

	// AnchorLine is the zero-based line of the template the values belong to.
	AnchorLine int `json:"anchor_line"`

	// Values maps placeholder expressions to their text.
	Values map[string]string `json:"values"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks if the preset can be stored.
func (p *Preset) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("preset name is required")
	}
	if strings.ContainsAny(p.Name, " \t\n") {
		return fmt.Errorf("preset name %q must not contain whitespace", p.Name)
	}
	if p.AnchorLine < 0 {
		return fmt.Errorf("preset anchor line must not be negative")
	}
	return nil
}

// Keys returns the preset's value keys in sorted order.
func (p *Preset) Keys() []string {
	keys := make([]string, 0, len(p.Values))
	for k := range p.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
