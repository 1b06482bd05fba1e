// Package cli provides the scan command.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/tsvg/internal/detect"
	"github.com/opencode-ai/tsvg/internal/preview"
	"github.com/opencode-ai/tsvg/internal/tui/components"
	"github.com/opencode-ai/tsvg/internal/tui/styles"
)

func init() {
	rootCmd.AddCommand(scanCmd)
}

var scanCmd = &cobra.Command{
	Use:   "scan <file>",
	Short: "List SVG templates in a file",
	Long:  "List every /*svg*/ template in a file with its placeholders and inferred defaults.",
	Example: `  tsvg scan src/icons.ts
  cat src/icons.ts | tsvg scan -
  tsvg scan src/icons.ts --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return noDocumentError()
		}
		path := args[0]

		doc, err := readDocument(path, os.Stdin)
		if err != nil {
			return err
		}

		entries := scanDocument(doc)
		if IsJSONOutput() || IsJSONLOutput() {
			items := make([]any, len(entries))
			for i := range entries {
				items[i] = entries[i]
			}
			if IsJSONLOutput() {
				return WriteOutput(os.Stdout, items)
			}
			return WriteOutput(os.Stdout, entries)
		}

		if len(entries) == 0 {
			empty := components.EmptyNoTemplate()
			if IsNonInteractive() {
				fmt.Println(empty.RenderCompact(styles.DefaultStyles()))
			} else {
				fmt.Println(empty.Render(styles.DefaultStyles()))
			}
			return nil
		}
		return writeScanTable(os.Stdout, entries)
	},
}

// scanEntry is one template in scan output. Line is 1-based.
type scanEntry struct {
	Line          int               `json:"line"`
	Span          detect.Span       `json:"span"`
	Variables     []string          `json:"variables"`
	DefaultValues map[string]string `json:"defaultValues"`
}

func scanDocument(doc detect.Document) []scanEntry {
	matches := detect.Find(doc)
	entries := make([]scanEntry, 0, len(matches))
	for _, match := range matches {
		payload := preview.Build(match)
		entries = append(entries, scanEntry{
			Line:          match.Line + 1,
			Span:          match.Span,
			Variables:     payload.Variables,
			DefaultValues: payload.DefaultValues,
		})
	}
	return entries
}

func writeScanTable(out io.Writer, entries []scanEntry) error {
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		defaults := make([]string, 0, len(entry.Variables))
		for _, name := range entry.Variables {
			defaults = append(defaults, fmt.Sprintf("%s=%s", name, entry.DefaultValues[name]))
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", entry.Line),
			formatSpan(entry.Span),
			fmt.Sprintf("%d", len(entry.Variables)),
			strings.Join(defaults, " "),
		})
	}
	return writeTable(out, []string{"LINE", "SPAN", "VARS", "DEFAULTS"}, rows)
}

func formatSpan(span detect.Span) string {
	return fmt.Sprintf("%d:%d-%d:%d",
		span.Start.Line+1, span.Start.Column+1,
		span.End.Line+1, span.End.Column+1)
}
