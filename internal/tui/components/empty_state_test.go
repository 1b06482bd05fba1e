package components

import (
	"regexp"
	"strings"
	"testing"

	"github.com/opencode-ai/tsvg/internal/infer"
	"github.com/opencode-ai/tsvg/internal/tui/styles"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestEmptyStateRender(t *testing.T) {
	styleSet := styles.DefaultStyles()

	t.Run("basic empty state", func(t *testing.T) {
		result := EmptyState{Title: "No items found"}.Render(styleSet)
		if !strings.Contains(result, "No items found") {
			t.Errorf("Expected title in output, got: %s", result)
		}
	})

	t.Run("empty state with icon", func(t *testing.T) {
		result := EmptyState{Icon: "📭", Title: "Empty"}.Render(styleSet)
		if !strings.Contains(result, "📭") {
			t.Errorf("Expected icon in output, got: %s", result)
		}
	})

	t.Run("empty state with subtitle", func(t *testing.T) {
		result := EmptyState{Title: "No data", Subtitle: "Check back later"}.Render(styleSet)
		if !strings.Contains(result, "Check back later") {
			t.Errorf("Expected subtitle in output, got: %s", result)
		}
	})

	t.Run("empty state with suggestions", func(t *testing.T) {
		es := EmptyState{
			Title: "Nothing",
			Suggestions: []Suggestion{
				{Command: "tsvg scan <file>", Description: "list templates"},
			},
		}
		result := es.Render(styleSet)
		if !strings.Contains(result, "Try:") {
			t.Errorf("Expected 'Try:' header, got: %s", result)
		}
		if !strings.Contains(result, "tsvg scan") || !strings.Contains(result, "list templates") {
			t.Errorf("Expected suggestion in output, got: %s", result)
		}
	})
}

func TestEmptyStateRenderCompact(t *testing.T) {
	styleSet := styles.DefaultStyles()

	es := EmptyState{
		Icon:  "🔍",
		Title: "Nothing to preview",
		Suggestions: []Suggestion{
			{Command: "tsvg snippet insert circle"},
			{Command: "ignored"},
		},
	}
	result := es.RenderCompact(styleSet)
	if strings.Contains(result, "\n") {
		t.Errorf("Compact render should be one line, got: %q", result)
	}
	if !strings.Contains(result, "Try: tsvg snippet insert circle") {
		t.Errorf("Expected first suggestion, got: %s", result)
	}
	if strings.Contains(result, "ignored") {
		t.Errorf("Only the first suggestion belongs in compact output, got: %s", result)
	}
}

func TestPredefinedEmptyStates(t *testing.T) {
	tests := []struct {
		name  string
		state EmptyState
		want  string
	}{
		{"no document", EmptyNoDocument(), "No document open"},
		{"no template", EmptyNoTemplate(), "Nothing to preview"},
		{"no current match", EmptyNoCurrentMatch("icon.ts"), "icon.ts"},
		{"no current match without file", EmptyNoCurrentMatch(""), "Template removed"},
		{"no variables", EmptyNoVariables(), "No placeholders"},
	}

	styleSet := styles.DefaultStyles()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.Render(styleSet); !strings.Contains(got, tt.want) {
				t.Errorf("Expected %q in output, got: %s", tt.want, got)
			}
		})
	}
}

func TestRenderKindBadge(t *testing.T) {
	styleSet := styles.DefaultStyles()

	tests := []struct {
		class infer.Class
		want  string
	}{
		{infer.Class{Kind: infer.KindColor, Default: infer.ColorDefault}, "[color]"},
		{infer.Class{Kind: infer.KindNumeric, Subtype: "radius", Default: "40"}, "[radius]"},
		{infer.Class{Kind: infer.KindNumeric}, "[number]"},
		{infer.Class{Kind: infer.KindGeneric}, "[text]"},
	}

	for _, tt := range tests {
		if got := stripANSI(RenderKindBadge(styleSet, tt.class)); got != tt.want {
			t.Errorf("RenderKindBadge(%+v) = %q, want %q", tt.class, got, tt.want)
		}
	}
}

func TestHighlightMarkupKeepsText(t *testing.T) {
	styleSet := styles.DefaultStyles()
	markup := "<svg width=\"100\">\n  <circle r=\"40\" fill=\"#3366cc\" />\n</svg>"

	for _, styleName := range []string{"dracula", "bw", "no-such-style"} {
		got := stripANSI(HighlightMarkup(markup, styleName, styleSet.Text))
		if got != markup {
			t.Errorf("HighlightMarkup(%s) text = %q, want %q", styleName, got, markup)
		}
	}

	if HighlightMarkup("", "dracula", styleSet.Text) != "" {
		t.Error("empty markup should stay empty")
	}
}

func TestThemeByName(t *testing.T) {
	if styles.ThemeByName("high-contrast").Name != "high-contrast" {
		t.Error("expected high-contrast theme")
	}
	if styles.ThemeByName("unknown").Name != "default" {
		t.Error("unknown theme should fall back to default")
	}
}
