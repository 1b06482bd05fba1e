// Package cli provides the serve command.
package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/tsvg/internal/previewd"
)

var (
	serveTarget targetFlags
	serveHost   string
	servePort   int
	serveSet    []string
	servePreset string
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveTarget.register(serveCmd, false)
	serveCmd.Flags().StringVar(&serveHost, "host", "", "bind host (default from config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "bind port (default from config)")
	serveCmd.Flags().StringArrayVar(&serveSet, "set", nil, "initial placeholder value as name=value (repeatable)")
	serveCmd.Flags().StringVar(&servePreset, "preset", "", "start from a saved preset")
}

var serveCmd = &cobra.Command{
	Use:   "serve <file>",
	Short: "Live preview in the browser",
	Long: `Serve an HTML preview of a template that updates as the file changes.
Placeholder inputs on the page re-render the SVG in the browser.`,
	Example: `  tsvg serve src/icons.ts
  tsvg serve src/icons.ts --line 12 --port 8080`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, anchor, err := resolveLiveTarget(cmd, args, &serveTarget)
		if err != nil {
			return err
		}

		values, err := parseValues(serveSet)
		if err != nil {
			return err
		}
		if servePreset != "" {
			saved, err := loadPresetValues(cmd.Context(), path, servePreset)
			if err != nil {
				return err
			}
			values = mergeValues(saved, values)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		daemon, err := previewd.New(GetConfig(), logger, previewd.Options{
			Hostname:   serveHost,
			Port:       servePort,
			Path:       path,
			AnchorLine: anchor,
			Values:     values,
		})
		if err != nil {
			return err
		}

		progress := startProgress("Starting preview server")
		errCh := make(chan error, 1)
		go func() {
			errCh <- daemon.Run(ctx)
		}()

		select {
		case <-daemon.Ready():
			progress.Done()
		case err := <-errCh:
			progress.Fail(err)
			return err
		}

		if IsJSONOutput() || IsJSONLOutput() {
			if err := WriteOutput(os.Stdout, map[string]any{
				"url":  daemon.URL(),
				"file": path,
				"line": anchor + 1,
			}); err != nil {
				return err
			}
		} else {
			fmt.Printf("Previewing %s:%d at %s\n", path, anchor+1, daemon.URL())
			fmt.Println("Press Ctrl+C to stop.")
		}

		return <-errCh
	},
}
