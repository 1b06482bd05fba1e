package preview

import "github.com/opencode-ai/tsvg/internal/detect"

// Tracker follows one template across document edits. It has no identity
// for a template, only the marker line it was opened on and the body it
// delivered last.
type Tracker struct {
	anchorLine int
	lastBody   string
	delivered  bool
}

// NewTracker anchors a tracker to the marker line of a template.
func NewTracker(anchorLine int) *Tracker {
	return &Tracker{anchorLine: anchorLine}
}

// AnchorLine returns the line the tracker was opened on.
func (t *Tracker) AnchorLine() int {
	return t.anchorLine
}

// Next picks the match to show from a fresh scan: the match on the anchor
// line, else one whose body equals the last delivered body, else the first
// match. It reports false when matches is empty.
func (t *Tracker) Next(matches []detect.Match) (detect.Match, bool) {
	match, ok := t.pick(matches)
	if ok {
		t.lastBody = match.RawBody
		t.delivered = true
	}
	return match, ok
}

// Update rescans text and returns the payload to push, which is Empty when
// no template is left.
func (t *Tracker) Update(text string) Payload {
	match, ok := t.Next(detect.Locate(text))
	if !ok {
		return Empty()
	}
	return Build(match)
}

func (t *Tracker) pick(matches []detect.Match) (detect.Match, bool) {
	if len(matches) == 0 {
		return detect.Match{}, false
	}

	for _, m := range matches {
		if m.Line == t.anchorLine {
			return m, true
		}
	}

	if t.delivered {
		for _, m := range matches {
			if m.RawBody == t.lastBody {
				return m, true
			}
		}
	}

	return matches[0], true
}
