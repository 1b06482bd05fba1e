package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/opencode-ai/tsvg/internal/watch"
)

// SnapshotMsg carries new document text from the watcher.
type SnapshotMsg struct {
	Text string
	At   time.Time
}

// WatchClosedMsg indicates the watcher stopped delivering snapshots.
type WatchClosedMsg struct{}

// waitForSnapshot returns a command that blocks on the next snapshot.
func waitForSnapshot(snapshots <-chan watch.Snapshot) tea.Cmd {
	if snapshots == nil {
		return nil
	}
	return func() tea.Msg {
		snapshot, ok := <-snapshots
		if !ok {
			return WatchClosedMsg{}
		}
		return SnapshotMsg{Text: snapshot.Text, At: snapshot.At}
	}
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
