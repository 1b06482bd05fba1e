package components

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	chromastyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// HighlightMarkup colors SVG markup with the named chroma style. Text is
// returned unchanged apart from color; fallback styles anything the lexer
// cannot handle.
func HighlightMarkup(markup, styleName string, fallback lipgloss.Style) string {
	if markup == "" {
		return ""
	}

	lexer := lexers.Get("xml")
	if lexer == nil {
		return renderLines(markup, fallback)
	}
	lexer = chroma.Coalesce(lexer)

	style := chromastyles.Get(styleName)
	if style == nil {
		style = chromastyles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, markup)
	if err != nil {
		return renderLines(markup, fallback)
	}

	var out strings.Builder
	for _, token := range iterator.Tokens() {
		out.WriteString(renderLines(token.Value, tokenStyle(style.Get(token.Type), fallback)))
	}

	// The lexer may terminate the input with a newline of its own.
	result := out.String()
	if !strings.HasSuffix(markup, "\n") {
		result = strings.TrimSuffix(result, "\n")
	}
	return result
}

func tokenStyle(entry chroma.StyleEntry, fallback lipgloss.Style) lipgloss.Style {
	if !entry.Colour.IsSet() {
		return fallback
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(entry.Colour.String()))
}

// renderLines styles each line on its own so lipgloss does not pad a
// multi-line token into a block.
func renderLines(text string, style lipgloss.Style) string {
	parts := strings.Split(text, "\n")
	for i, part := range parts {
		if part != "" {
			parts[i] = style.Render(part)
		}
	}
	return strings.Join(parts, "\n")
}
