// Package styles defines the terminal preview palettes.
package styles

// ThemeTokens defines the semantic color roles for the TUI.
type ThemeTokens struct {
	Text      string
	TextMuted string
	Border    string
	Accent    string
	Focus     string
	Warning   string

	// Placeholder kind badges.
	KindColor   string
	KindNumeric string
	KindGeneric string
}

// Theme bundles a palette with a name and the chroma style used to
// highlight markup.
type Theme struct {
	Name   string
	Syntax string
	Tokens ThemeTokens
}

// DefaultTheme is the baseline palette.
var DefaultTheme = Theme{
	Name:   "default",
	Syntax: "dracula",
	Tokens: ThemeTokens{
		Text:        "#E2E4E9",
		TextMuted:   "#8A93A3",
		Border:      "#2E3646",
		Accent:      "#3366CC",
		Focus:       "#79A6F2",
		Warning:     "#E0A33A",
		KindColor:   "#E07A5F",
		KindNumeric: "#6CB8D8",
		KindGeneric: "#8A93A3",
	},
}

// HighContrastTheme favors visibility on low-contrast terminals.
var HighContrastTheme = Theme{
	Name:   "high-contrast",
	Syntax: "bw",
	Tokens: ThemeTokens{
		Text:        "#FFFFFF",
		TextMuted:   "#D0D0D0",
		Border:      "#FFFFFF",
		Accent:      "#00AEFF",
		Focus:       "#FFE000",
		Warning:     "#FFB000",
		KindColor:   "#FF6E6E",
		KindNumeric: "#6EE7FF",
		KindGeneric: "#FFFFFF",
	},
}

// Themes lists available palettes by name.
var Themes = map[string]Theme{
	DefaultTheme.Name:      DefaultTheme,
	HighContrastTheme.Name: HighContrastTheme,
}

// ThemeByName returns the named theme, or DefaultTheme when unknown.
func ThemeByName(name string) Theme {
	if theme, ok := Themes[name]; ok {
		return theme
	}
	return DefaultTheme
}
