// Package cli provides output helpers for machine-readable formats.
package cli

import (
	"encoding/json"
	"io"
)

// IsJSONOutput reports whether output should be a single JSON document.
func IsJSONOutput() bool {
	if jsonOutput {
		return true
	}
	return !jsonlOutput && GetConfig().Output.Format == "json"
}

// IsJSONLOutput reports whether output should be one JSON object per line.
func IsJSONLOutput() bool {
	if jsonlOutput {
		return true
	}
	return !jsonOutput && GetConfig().Output.Format == "jsonl"
}

// WriteOutput encodes v as indented JSON, or compact when JSONL is selected.
// Slices are written one element per line in JSONL mode.
func WriteOutput(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	encoder.SetEscapeHTML(false)

	if IsJSONLOutput() {
		if items, ok := v.([]any); ok {
			for _, item := range items {
				if err := encoder.Encode(item); err != nil {
					return err
				}
			}
			return nil
		}
		return encoder.Encode(v)
	}

	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
