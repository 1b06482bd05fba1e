// Package cli provides progress output helpers for long-running commands.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"
)

// progressOut receives progress lines; stdout stays clean for results.
var progressOut io.Writer = os.Stderr

type progressStep struct {
	out     io.Writer
	label   string
	started time.Time
}

func startProgress(label string) *progressStep {
	if !progressEnabled() {
		return nil
	}
	fmt.Fprintf(progressOut, "%s... ", label)
	return &progressStep{
		out:     progressOut,
		label:   label,
		started: time.Now(),
	}
}

func (p *progressStep) Done() {
	if p == nil {
		return
	}
	fmt.Fprintf(p.out, "done (%s)\n", formatDuration(time.Since(p.started)))
}

func (p *progressStep) Fail(err error) {
	if p == nil {
		return
	}
	if err != nil {
		fmt.Fprintf(p.out, "failed: %v\n", err)
		return
	}
	fmt.Fprintln(p.out, "failed")
}

func progressEnabled() bool {
	if IsJSONOutput() || IsJSONLOutput() || noProgress {
		return false
	}
	for _, env := range []string{"TSVG_NO_PROGRESS", "NO_PROGRESS"} {
		if _, ok := os.LookupEnv(env); ok {
			return false
		}
	}
	return true
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return d.String()
	case d < time.Second:
		return d.Round(10 * time.Millisecond).String()
	default:
		return d.Round(100 * time.Millisecond).String()
	}
}
