package preview

import (
	"errors"

	"github.com/opencode-ai/tsvg/internal/detect"
)

// Selection errors.
var (
	ErrNoDocument = errors.New("no document open")
	ErrNoTemplate = errors.New("nothing to preview")
)

// Target says where a preview was requested. Line is an explicit marker
// line (from a listing or flag); Cursor is the caret line in the active
// document. Both are optional.
type Target struct {
	Line   *int
	Cursor *int
}

// Select finds the template a preview command should open.
func Select(doc detect.Document, target Target) (detect.Match, error) {
	if doc == nil {
		return detect.Match{}, ErrNoDocument
	}

	matches := detect.Find(doc)
	if len(matches) == 0 {
		return detect.Match{}, ErrNoTemplate
	}

	switch {
	case target.Line != nil:
		return matchOnLine(matches, *target.Line), nil
	case target.Cursor != nil:
		return matchOnLine(matches, *target.Cursor), nil
	default:
		return matches[0], nil
	}
}

// LineOf is a convenience for building a Target.
func LineOf(line int) *int {
	return &line
}

func matchOnLine(matches []detect.Match, line int) detect.Match {
	for _, m := range matches {
		if m.Line == line {
			return m
		}
	}
	return matches[0]
}
