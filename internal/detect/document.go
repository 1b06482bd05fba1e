// Package detect finds /*svg*/-marked template literals in source text and
// performs placeholder extraction and substitution on their bodies.
package detect

import (
	"sort"
	"unicode/utf8"
)

// Position is a zero-based line/column location. Column counts runes.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Document is the minimal view of a host document the locator needs.
type Document interface {
	Text() string
	PositionAt(offset int) Position
}

// TextDocument is an in-memory Document backed by a string snapshot.
type TextDocument struct {
	text       string
	lineStarts []int
}

// NewTextDocument indexes line starts for text.
func NewTextDocument(text string) *TextDocument {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &TextDocument{text: text, lineStarts: starts}
}

// Text returns the document snapshot.
func (d *TextDocument) Text() string {
	return d.text
}

// LineCount returns the number of lines in the document.
func (d *TextDocument) LineCount() int {
	return len(d.lineStarts)
}

// PositionAt converts a byte offset into a Position. Offsets outside the
// document are clamped.
func (d *TextDocument) PositionAt(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(d.text) {
		offset = len(d.text)
	}

	line := sort.Search(len(d.lineStarts), func(i int) bool {
		return d.lineStarts[i] > offset
	}) - 1

	start := d.lineStarts[line]
	return Position{
		Line:   line,
		Column: utf8.RuneCountInString(d.text[start:offset]),
	}
}
