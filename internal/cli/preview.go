// Package cli provides the preview command.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/tsvg/internal/db"
	"github.com/opencode-ai/tsvg/internal/preview"
)

var (
	previewTarget targetFlags
	previewSet    []string
	previewPreset string
	previewPrompt bool
	previewHTML   bool
	previewOutput string
)

func init() {
	rootCmd.AddCommand(previewCmd)

	previewTarget.register(previewCmd, true)
	previewCmd.Flags().StringArrayVar(&previewSet, "set", nil, "placeholder value as name=value (repeatable)")
	previewCmd.Flags().StringVar(&previewPreset, "preset", "", "apply a saved preset before --set values")
	previewCmd.Flags().BoolVar(&previewPrompt, "prompt", false, "ask for every placeholder value")
	previewCmd.Flags().BoolVar(&previewHTML, "html", false, "write a standalone HTML preview page")
	previewCmd.Flags().StringVarP(&previewOutput, "output", "o", "", "write to a file instead of stdout")
}

var previewCmd = &cobra.Command{
	Use:   "preview <file>",
	Short: "Render an SVG template",
	Long: `Render one /*svg*/ template with its placeholders filled in.

The template on --line wins, then the one on --cursor, then the first in the
file. Unset placeholders use their inferred defaults.`,
	Example: `  tsvg preview src/icons.ts
  tsvg preview src/icons.ts --line 12 --set fill=red --set r=20
  tsvg preview src/icons.ts --preset dark --html -o preview.html
  tsvg preview - < src/icons.ts`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return noDocumentError()
		}
		path := args[0]

		target, err := previewTarget.target(cmd)
		if err != nil {
			return err
		}
		overrides, err := parseValues(previewSet)
		if err != nil {
			return err
		}

		doc, err := readDocument(path, os.Stdin)
		if err != nil {
			return err
		}
		match, err := selectTemplate(doc, target, path)
		if err != nil {
			return err
		}
		payload := preview.Build(match)

		if previewPreset != "" {
			saved, err := loadPresetValues(cmd.Context(), path, previewPreset)
			if err != nil {
				return err
			}
			overrides = mergeValues(saved, overrides)
		}

		if previewPrompt {
			if IsNonInteractive() {
				return &PreflightError{
					Message:  "--prompt requires an interactive terminal",
					Hint:     "Pass values with --set instead",
					NextStep: "tsvg preview <file> --set name=value",
				}
			}
			overrides, err = promptValues(payload.Variables, preview.Values(payload, overrides))
			if err != nil {
				return err
			}
		}

		result := previewResult{
			File:      displayName(path),
			Line:      match.Line + 1,
			Variables: payload.Variables,
			Values:    preview.Values(payload, overrides),
			SVG:       preview.Render(payload, overrides),
		}

		out := io.Writer(os.Stdout)
		if previewOutput != "" {
			f, err := os.Create(previewOutput)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", previewOutput, err)
			}
			defer f.Close()
			out = f
		}

		switch {
		case previewHTML:
			err = preview.WritePage(out, preview.Page{
				Title:   preview.Title(path, match.Line),
				Payload: payload,
				Values:  overrides,
			})
		case IsJSONOutput() || IsJSONLOutput():
			err = WriteOutput(out, result)
		default:
			_, err = fmt.Fprintln(out, result.SVG)
		}
		if err != nil {
			return err
		}

		if previewOutput != "" && !IsJSONOutput() && !IsJSONLOutput() {
			fmt.Fprintf(os.Stderr, "Wrote %s\n", previewOutput)
		}
		return nil
	},
}

// previewResult is the machine-readable form of a rendered template.
type previewResult struct {
	File      string            `json:"file"`
	Line      int               `json:"line"`
	Variables []string          `json:"variables"`
	Values    map[string]string `json:"values"`
	SVG       string            `json:"svg"`
}

func loadPresetValues(ctx context.Context, path, name string) (map[string]string, error) {
	database, err := openDatabase(ctx)
	if err != nil {
		return nil, err
	}
	defer database.Close()

	preset, err := db.NewPresetRepository(database).GetByName(ctx, presetFile(path), name)
	if errors.Is(err, db.ErrPresetNotFound) {
		return nil, &PreflightError{
			Message:  fmt.Sprintf("Preset '%s' not found for %s", name, displayName(path)),
			NextStep: fmt.Sprintf("tsvg preset list %s", path),
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load preset: %w", err)
	}
	return preset.Values, nil
}
