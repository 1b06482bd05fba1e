// Package cli provides preset management commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/tsvg/internal/db"
	"github.com/opencode-ai/tsvg/internal/detect"
	"github.com/opencode-ai/tsvg/internal/models"
	"github.com/opencode-ai/tsvg/internal/preview"
)

var (
	presetSaveTarget targetFlags
	presetSaveSet    []string
	presetSaveForce  bool
)

func init() {
	rootCmd.AddCommand(presetCmd)
	presetCmd.AddCommand(presetSaveCmd)
	presetCmd.AddCommand(presetListCmd)
	presetCmd.AddCommand(presetDeleteCmd)

	presetSaveTarget.register(presetSaveCmd, false)
	presetSaveCmd.Flags().StringArrayVar(&presetSaveSet, "set", nil, "placeholder value as name=value (repeatable)")
	presetSaveCmd.Flags().BoolVarP(&presetSaveForce, "force", "f", false, "overwrite an existing preset")
}

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Manage saved placeholder values",
	Long:  "Presets store placeholder values for a template so previews can be reopened with them.",
}

var presetSaveCmd = &cobra.Command{
	Use:   "save <file> <name>",
	Short: "Save placeholder values as a preset",
	Example: `  tsvg preset save src/icons.ts dark --set fill=#111 --set stroke=#eee
  tsvg preset save src/icons.ts big --line 12 --set r=80 --force`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		path, name := args[0], args[1]

		values, err := parseValues(presetSaveSet)
		if err != nil {
			return err
		}
		if len(values) == 0 {
			return &PreflightError{
				Message:  "No values to save",
				Hint:     "Pass one or more --set name=value flags",
				NextStep: fmt.Sprintf("tsvg preset save %s %s --set name=value", path, name),
			}
		}

		target, err := presetSaveTarget.target(cmd)
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
		warnUnknownValues(match, values)

		preset := &models.Preset{
			Name:       name,
			File:       presetFile(path),
			AnchorLine: match.Line,
			Values:     values,
		}

		database, err := openDatabase(ctx)
		if err != nil {
			return err
		}
		defer database.Close()

		progress := startProgress("Saving preset")
		if err := savePreset(ctx, db.NewPresetRepository(database), preset, presetSaveForce); err != nil {
			progress.Fail(err)
			return err
		}
		progress.Done()

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, preset)
		}
		fmt.Printf("Saved preset '%s' for %s:%d (%d values)\n", preset.Name, displayName(path), preset.AnchorLine+1, len(preset.Values))
		return nil
	},
}

var presetListCmd = &cobra.Command{
	Use:   "list [file]",
	Short: "List presets",
	Long:  "List presets saved for a file, or every preset when no file is given.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		file := ""
		if len(args) == 1 {
			file = presetFile(args[0])
		}

		database, err := openDatabase(ctx)
		if err != nil {
			return err
		}
		defer database.Close()

		presets, err := db.NewPresetRepository(database).List(ctx, file)
		if err != nil {
			return fmt.Errorf("failed to list presets: %w", err)
		}

		if IsJSONOutput() || IsJSONLOutput() {
			if IsJSONLOutput() {
				items := make([]any, len(presets))
				for i := range presets {
					items[i] = presets[i]
				}
				return WriteOutput(os.Stdout, items)
			}
			return WriteOutput(os.Stdout, presets)
		}

		if len(presets) == 0 {
			fmt.Println("No presets found.")
			return nil
		}
		return writePresetTable(os.Stdout, presets)
	},
}

var presetDeleteCmd = &cobra.Command{
	Use:   "delete <file> <name>",
	Short: "Delete a preset",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		path, name := args[0], args[1]

		if !SkipConfirmation() {
			if !confirm(fmt.Sprintf("Delete preset '%s' for %s?", name, displayName(path))) {
				fmt.Fprintln(os.Stderr, "Cancelled.")
				return nil
			}
		}

		database, err := openDatabase(ctx)
		if err != nil {
			return err
		}
		defer database.Close()

		err = db.NewPresetRepository(database).Delete(ctx, presetFile(path), name)
		if errors.Is(err, db.ErrPresetNotFound) {
			return &PreflightError{
				Message:  fmt.Sprintf("Preset '%s' not found for %s", name, displayName(path)),
				NextStep: fmt.Sprintf("tsvg preset list %s", path),
			}
		}
		if err != nil {
			return err
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, map[string]any{
				"deleted": true,
				"name":    name,
				"file":    presetFile(path),
			})
		}
		fmt.Printf("Deleted preset '%s'\n", name)
		return nil
	},
}

func savePreset(ctx context.Context, repo *db.PresetRepository, preset *models.Preset, force bool) error {
	if force {
		return repo.Upsert(ctx, preset)
	}

	err := repo.Create(ctx, preset)
	if errors.Is(err, db.ErrPresetExists) {
		return &PreflightError{
			Message:  fmt.Sprintf("Preset '%s' already exists for %s", preset.Name, displayName(preset.File)),
			Hint:     "Use --force to overwrite it",
			NextStep: fmt.Sprintf("tsvg preset save %s %s --force", preset.File, preset.Name),
		}
	}
	return err
}

// warnUnknownValues logs keys that match no placeholder of the template.
func warnUnknownValues(match detect.Match, values map[string]string) {
	known := preview.Build(match).DefaultValues
	for key := range values {
		if _, ok := known[key]; !ok {
			logger.Warn().Str("name", key).Int("line", match.Line+1).Msg("value does not match any placeholder")
		}
	}
}

func writePresetTable(out io.Writer, presets []*models.Preset) error {
	rows := make([][]string, 0, len(presets))
	for _, p := range presets {
		pairs := make([]string, 0, len(p.Values))
		for _, key := range p.Keys() {
			pairs = append(pairs, fmt.Sprintf("%s=%s", key, p.Values[key]))
		}
		rows = append(rows, []string{
			p.Name,
			fmt.Sprintf("%s:%d", displayName(p.File), p.AnchorLine+1),
			strings.Join(pairs, " "),
			p.UpdatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	return writeTable(out, []string{"NAME", "TEMPLATE", "VALUES", "UPDATED"}, rows)
}
