// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"

	"github.com/opencode-ai/tsvg/internal/tui/styles"
)

// EmptyState represents an empty state message with optional suggestions.
type EmptyState struct {
	// Icon is an optional icon to display.
	Icon string
	// Title is the main empty state message.
	Title string
	// Subtitle is an optional secondary message.
	Subtitle string
	// Suggestions are actions the user can take.
	Suggestions []Suggestion
}

// Suggestion represents a suggested command with description.
type Suggestion struct {
	// Command is the CLI command or key to use.
	Command string
	// Description explains what the command does.
	Description string
}

// Render renders the empty state with the given styles.
func (e EmptyState) Render(styleSet styles.Styles) string {
	var lines []string

	titleLine := e.Title
	if e.Icon != "" {
		titleLine = e.Icon + "  " + titleLine
	}
	lines = append(lines, styleSet.Muted.Render(titleLine))

	if e.Subtitle != "" {
		lines = append(lines, styleSet.Muted.Render(e.Subtitle))
	}

	if len(e.Suggestions) > 0 {
		lines = append(lines, "")
		lines = append(lines, styleSet.Text.Render("Try:"))
		for _, s := range e.Suggestions {
			cmdLine := fmt.Sprintf("  %s", styleSet.Accent.Render(s.Command))
			if s.Description != "" {
				cmdLine += styleSet.Muted.Render(fmt.Sprintf("  # %s", s.Description))
			}
			lines = append(lines, cmdLine)
		}
	}

	return strings.Join(lines, "\n")
}

// RenderCompact renders a compact single-line empty state.
func (e EmptyState) RenderCompact(styleSet styles.Styles) string {
	line := e.Title
	if e.Icon != "" {
		line = e.Icon + " " + line
	}
	if len(e.Suggestions) > 0 {
		line += fmt.Sprintf(" Try: %s", e.Suggestions[0].Command)
	}
	return styleSet.Muted.Render(line)
}

// EmptyNoDocument is shown when there is no source to read.
func EmptyNoDocument() EmptyState {
	return EmptyState{
		Icon:     "📄",
		Title:    "No document open",
		Subtitle: "Open a source file to preview its SVG templates.",
		Suggestions: []Suggestion{
			{Command: "tsvg ui <file>", Description: "preview a file in the terminal"},
		},
	}
}

// EmptyNoTemplate is shown when the document has no marked template.
func EmptyNoTemplate() EmptyState {
	return EmptyState{
		Icon:     "🔍",
		Title:    "Nothing to preview",
		Subtitle: "No /*svg*/ template literal was found in the document.",
		Suggestions: []Suggestion{
			{Command: "tsvg snippet insert circle", Description: "print a marked template to paste"},
			{Command: "tsvg scan <file>", Description: "list the templates tsvg can see"},
		},
	}
}

// EmptyNoCurrentMatch is shown when the tracked template left the document.
func EmptyNoCurrentMatch(file string) EmptyState {
	subtitle := "The tracked template is gone. The preview resumes when one reappears."
	if file != "" {
		subtitle = fmt.Sprintf("No template left in %s. The preview resumes when one reappears.", file)
	}
	return EmptyState{
		Icon:     "⏸",
		Title:    "Template removed",
		Subtitle: subtitle,
	}
}

// EmptyNoVariables is shown when the tracked template has no placeholders.
func EmptyNoVariables() EmptyState {
	return EmptyState{
		Title:    "No placeholders",
		Subtitle: "Add ${name} expressions to the template to get inputs here.",
	}
}
