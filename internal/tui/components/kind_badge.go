package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/opencode-ai/tsvg/internal/infer"
	"github.com/opencode-ai/tsvg/internal/tui/styles"
)

// RenderKindBadge renders a short tag for a placeholder class.
func RenderKindBadge(styleSet styles.Styles, class infer.Class) string {
	label, style := kindDescriptor(styleSet, class)
	return style.Render(label)
}

func kindDescriptor(styleSet styles.Styles, class infer.Class) (string, lipgloss.Style) {
	switch class.Kind {
	case infer.KindColor:
		return "[color]", styleSet.KindColor
	case infer.KindNumeric:
		if class.Subtype != "" {
			return "[" + class.Subtype + "]", styleSet.KindNumeric
		}
		return "[number]", styleSet.KindNumeric
	default:
		return "[text]", styleSet.KindGeneric
	}
}
