package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/tsvg/internal/detect"
	"github.com/opencode-ai/tsvg/internal/preview"
)

const stdinPath = "-"

// readDocument loads the source named on the command line. "-" reads stdin.
func readDocument(path string, stdin io.Reader) (*detect.TextDocument, error) {
	if path == "" {
		return nil, preview.ErrNoDocument
	}

	var (
		data []byte
		err  error
	)
	if path == stdinPath {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return detect.NewTextDocument(string(data)), nil
}

// targetFlags holds the --line and --cursor flags shared by commands that
// open a template. Both are 1-based on the command line.
type targetFlags struct {
	line   int
	cursor int
}

func (f *targetFlags) register(cmd *cobra.Command, withCursor bool) {
	cmd.Flags().IntVar(&f.line, "line", 0, "marker line of the template (1-based)")
	if withCursor {
		cmd.Flags().IntVar(&f.cursor, "cursor", 0, "caret line; the template on this line wins (1-based)")
	}
}

func (f *targetFlags) target(cmd *cobra.Command) (preview.Target, error) {
	var target preview.Target
	if cmd.Flags().Changed("line") {
		if f.line < 1 {
			return target, fmt.Errorf("--line must be 1 or greater")
		}
		target.Line = preview.LineOf(f.line - 1)
	}
	if cmd.Flags().Changed("cursor") {
		if f.cursor < 1 {
			return target, fmt.Errorf("--cursor must be 1 or greater")
		}
		target.Cursor = preview.LineOf(f.cursor - 1)
	}
	return target, nil
}

// selectTemplate maps selection failures to user-facing errors.
func selectTemplate(doc detect.Document, target preview.Target, path string) (detect.Match, error) {
	match, err := preview.Select(doc, target)
	switch {
	case errors.Is(err, preview.ErrNoDocument):
		return match, noDocumentError()
	case errors.Is(err, preview.ErrNoTemplate):
		return match, &PreflightError{
			Message:  fmt.Sprintf("No SVG template found in %s", displayName(path)),
			Hint:     "Mark a template literal with /*svg*/ before the opening backtick",
			NextStep: "tsvg snippet insert circle",
		}
	case err != nil:
		return match, err
	}
	return match, nil
}

func noDocumentError() error {
	return &PreflightError{
		Message:  "No document open",
		Hint:     "Pass a source file, or - to read from stdin",
		NextStep: "tsvg preview <file>",
	}
}

// parseValues turns repeated k=v flags into a map. Later keys win.
func parseValues(pairs []string) (map[string]string, error) {
	values := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid value %q: expected name=value", pair)
		}
		values[key] = value
	}
	return values, nil
}

// presetFile is the key presets are stored under for a source path.
func presetFile(path string) string {
	if path == stdinPath {
		return stdinPath
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

func displayName(path string) string {
	if path == stdinPath {
		return "stdin"
	}
	return path
}

func mergeValues(layers ...map[string]string) map[string]string {
	merged := make(map[string]string)
	for _, layer := range layers {
		for k, v := range layer {
			merged[k] = v
		}
	}
	return merged
}
