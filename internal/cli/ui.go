// Package cli provides TUI launch commands.
package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/tsvg/internal/tui"
)

var (
	uiTarget targetFlags
	uiSet    []string
	uiPreset string
)

func init() {
	rootCmd.AddCommand(uiCmd)

	uiTarget.register(uiCmd, false)
	uiCmd.Flags().StringArrayVar(&uiSet, "set", nil, "initial placeholder value as name=value (repeatable)")
	uiCmd.Flags().StringVar(&uiPreset, "preset", "", "start from a saved preset")
}

var uiCmd = &cobra.Command{
	Use:   "ui <file>",
	Short: "Live preview in the terminal",
	Long:  "Follow a template in a file and edit its placeholder values in a terminal UI.",
	Example: `  tsvg ui src/icons.ts
  tsvg ui src/icons.ts --line 12 --set fill=red`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, args)
	},
}

func runTUI(cmd *cobra.Command, args []string) error {
	if IsNonInteractive() {
		return &PreflightError{
			Message:  "TUI requires an interactive terminal",
			Hint:     "Run without --non-interactive and with a TTY, or use tsvg watch",
			NextStep: "tsvg watch <file>",
		}
	}

	path, anchor, err := resolveLiveTarget(cmd, args, &uiTarget)
	if err != nil {
		return err
	}

	values, err := parseValues(uiSet)
	if err != nil {
		return err
	}
	if uiPreset != "" {
		saved, err := loadPresetValues(cmd.Context(), path, uiPreset)
		if err != nil {
			return err
		}
		values = mergeValues(saved, values)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := GetConfig()
	return tui.Run(ctx, tui.Options{
		Path:       path,
		AnchorLine: anchor,
		Values:     values,
		Theme:      cfg.Preview.Theme,
		Debounce:   cfg.Watch.Debounce,
		Logger:     logger,
	})
}
