package detect

import "regexp"

// markerPattern matches /*svg*/ (inner whitespace allowed) followed by the
// opening backtick of a template literal.
var markerPattern = regexp.MustCompile("/\\*\\s*svg\\s*\\*/\\s*`")

const (
	templateDelim = '`'
	escapeChar    = '\\'
)

// Span covers a template body, excluding its backticks.
type Span struct {
	Start       Position `json:"start"`
	End         Position `json:"end"`
	StartOffset int      `json:"startOffset"`
	EndOffset   int      `json:"endOffset"`
}

// Match is one marked template found in a document.
type Match struct {
	Span Span `json:"span"`
	// Line is the line of the marker comment, used to re-identify the
	// template after edits.
	Line      int      `json:"line"`
	RawBody   string   `json:"rawBody"`
	Variables []string `json:"variables"`
}

// Locate scans text for marked templates.
func Locate(text string) []Match {
	return Find(NewTextDocument(text))
}

// Find scans a document for marked templates in source order. An
// unterminated template ends the scan; matches before it are kept.
func Find(doc Document) []Match {
	text := doc.Text()
	matches := make([]Match, 0)

	pos := 0
	for pos <= len(text) {
		loc := markerPattern.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}

		markerStart := pos + loc[0]
		bodyStart := pos + loc[1]

		bodyEnd, ok := scanTemplateEnd(text, bodyStart)
		if !ok {
			break
		}

		rawBody := text[bodyStart:bodyEnd]
		matches = append(matches, Match{
			Span: Span{
				Start:       doc.PositionAt(bodyStart),
				End:         doc.PositionAt(bodyEnd),
				StartOffset: bodyStart,
				EndOffset:   bodyEnd,
			},
			Line:      doc.PositionAt(markerStart).Line,
			RawBody:   rawBody,
			Variables: ExtractVariables(rawBody),
		})

		pos = bodyEnd + 1
	}

	return matches
}

// scanTemplateEnd returns the offset of the backtick closing the template
// that starts at start. Escapes swallow the next byte, "${" opens a nested
// expression and "}" closes one; a backtick only closes the template at
// depth zero.
func scanTemplateEnd(text string, start int) (int, bool) {
	depth := 0
	i := start
	for i < len(text) {
		c := text[i]
		switch {
		case c == escapeChar:
			i += 2
			continue
		case c == '$' && i+1 < len(text) && text[i+1] == '{':
			depth++
			i += 2
			continue
		case c == '}' && depth > 0:
			depth--
		case c == templateDelim && depth == 0:
			return i, true
		}
		i++
	}
	return 0, false
}
