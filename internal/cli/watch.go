// Package cli provides the watch command.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/tsvg/internal/detect"
	"github.com/opencode-ai/tsvg/internal/preview"
	"github.com/opencode-ai/tsvg/internal/watch"
)

var watchTarget targetFlags

func init() {
	rootCmd.AddCommand(watchCmd)
	watchTarget.register(watchCmd, false)
}

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Stream preview payloads as a file changes",
	Long: `Follow one template in a file and print an update payload as a JSON line
every time the file changes. When the template moves or is edited the stream
keeps following it; when it disappears an empty payload is printed.`,
	Example: `  tsvg watch src/icons.ts
  tsvg watch src/icons.ts --line 12 | jq .variables`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, anchor, err := resolveLiveTarget(cmd, args, &watchTarget)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		watcher, err := watch.NewFileWatcher(path, watch.Options{
			Debounce: GetConfig().Watch.Debounce,
			Logger:   logger,
		})
		if err != nil {
			return err
		}
		defer watcher.Close()

		snapshots, err := watcher.Watch(ctx)
		if err != nil {
			return err
		}

		logger.Info().Str("file", path).Int("line", anchor+1).Msg("watching")
		return streamPayloads(ctx, os.Stdout, snapshots, preview.NewTracker(anchor))
	},
}

// streamPayloads writes one JSON line per snapshot until ctx is done or the
// snapshots channel closes.
func streamPayloads(ctx context.Context, out io.Writer, snapshots <-chan watch.Snapshot, tracker *preview.Tracker) error {
	encoder := json.NewEncoder(out)
	encoder.SetEscapeHTML(false)

	for {
		select {
		case <-ctx.Done():
			return nil
		case snapshot, ok := <-snapshots:
			if !ok {
				return nil
			}
			if err := encoder.Encode(tracker.Update(snapshot.Text)); err != nil {
				return fmt.Errorf("failed to write payload: %w", err)
			}
		}
	}
}

// resolveLiveTarget validates the file argument of a live command and picks
// the marker line to follow. A file without templates yet follows line 1 so
// the first template added is picked up.
func resolveLiveTarget(cmd *cobra.Command, args []string, flags *targetFlags) (string, int, error) {
	if len(args) == 0 {
		return "", 0, noDocumentError()
	}
	path := args[0]
	if path == stdinPath {
		return "", 0, &PreflightError{
			Message: "Live preview needs a file on disk",
			Hint:    "Use tsvg preview - to render from stdin once",
		}
	}

	target, err := flags.target(cmd)
	if err != nil {
		return "", 0, err
	}

	doc, err := readDocument(path, nil)
	if err != nil {
		return "", 0, err
	}
	anchor, err := anchorLine(doc, target)
	if err != nil {
		return "", 0, err
	}
	return path, anchor, nil
}

func anchorLine(doc detect.Document, target preview.Target) (int, error) {
	match, err := preview.Select(doc, target)
	if errors.Is(err, preview.ErrNoTemplate) {
		if target.Line != nil {
			return *target.Line, nil
		}
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return match.Line, nil
}
