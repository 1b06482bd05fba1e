package styles

import "github.com/charmbracelet/lipgloss"

const labelWidth = 16

// Styles contains lipgloss styles derived from theme tokens.
type Styles struct {
	Theme   Theme
	Title   lipgloss.Style
	Text    lipgloss.Style
	Muted   lipgloss.Style
	Accent  lipgloss.Style
	Panel   lipgloss.Style
	Warning lipgloss.Style

	// Field labels for the placeholder inputs.
	Label        lipgloss.Style
	LabelFocused lipgloss.Style

	KindColor   lipgloss.Style
	KindNumeric lipgloss.Style
	KindGeneric lipgloss.Style
}

// DefaultStyles builds styles from the default theme.
func DefaultStyles() Styles {
	return BuildStyles(DefaultTheme)
}

// BuildStyles converts theme tokens into lipgloss styles.
func BuildStyles(theme Theme) Styles {
	tokens := theme.Tokens
	fg := func(color string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	}

	return Styles{
		Theme:   theme,
		Title:   fg(tokens.Accent).Bold(true),
		Text:    fg(tokens.Text),
		Muted:   fg(tokens.TextMuted),
		Accent:  fg(tokens.Accent),
		Panel:   fg(tokens.Text).BorderStyle(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(tokens.Border)).Padding(0, 1),
		Warning: fg(tokens.Warning),

		Label:        fg(tokens.TextMuted).Width(labelWidth),
		LabelFocused: fg(tokens.Focus).Bold(true).Width(labelWidth),

		KindColor:   fg(tokens.KindColor),
		KindNumeric: fg(tokens.KindNumeric),
		KindGeneric: fg(tokens.KindGeneric),
	}
}
