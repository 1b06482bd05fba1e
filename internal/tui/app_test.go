package tui

import (
	"regexp"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencode-ai/tsvg/internal/watch"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func plainView(m model) string {
	return ansiPattern.ReplaceAllString(m.View(), "")
}

const circleSource = "const icon = /*svg*/ `<circle r=\"${r}\" fill=\"${fill}\" />`;\n"

func update(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(model)
	require.True(t, ok)
	return out
}

func snapshot(text string) SnapshotMsg {
	return SnapshotMsg{Text: text, At: time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)}
}

func typeText(t *testing.T, m model, text string) model {
	t.Helper()
	return update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func TestModelWaitsForFirstSnapshot(t *testing.T) {
	m := newModel(Options{Path: "/src/icon.ts"}, nil)

	view := plainView(m)
	assert.Contains(t, view, "SVG Preview: icon.ts:1")
	assert.Contains(t, view, "Reading icon.ts...")
	assert.Contains(t, view, "Last updated: --")
}

func TestModelAppliesSnapshot(t *testing.T) {
	m := newModel(Options{Path: "icon.ts"}, nil)
	m = update(t, m, snapshot(circleSource))

	require.Len(t, m.inputs, 2)
	assert.Equal(t, []string{"r", "fill"}, m.payload.Variables)
	assert.Equal(t, "40", m.inputs[0].Value())
	assert.Equal(t, "#3366cc", m.inputs[1].Value())
	assert.True(t, m.inputs[0].Focused())

	view := plainView(m)
	assert.Contains(t, view, `r="40"`)
	assert.Contains(t, view, "[radius]")
	assert.Contains(t, view, "[color]")
	assert.Contains(t, view, "Last updated: 15:04:05")
}

func TestModelSeedValues(t *testing.T) {
	m := newModel(Options{Path: "icon.ts", Values: map[string]string{"fill": "red"}}, nil)
	m = update(t, m, snapshot(circleSource))

	assert.Equal(t, "red", m.values()["fill"])
	assert.Contains(t, plainView(m), "red")
}

func TestModelEditsSurviveUpdates(t *testing.T) {
	m := newModel(Options{Path: "icon.ts"}, nil)
	m = update(t, m, snapshot(circleSource))

	m = typeText(t, m, "5")
	assert.Equal(t, "405", m.values()["r"])
	assert.Equal(t, "405", m.edited["r"])

	// Same template, one more placeholder.
	edited := "const icon = /*svg*/ `<circle r=\"${r}\" fill=\"${fill}\" opacity=\"${opacity}\" />`;\n"
	m = update(t, m, snapshot(edited))

	values := m.values()
	assert.Equal(t, "405", values["r"])
	assert.Equal(t, "#3366cc", values["fill"])
	assert.Equal(t, "1", values["opacity"])

	// r disappears, so its edit is dropped.
	m = update(t, m, snapshot("const icon = /*svg*/ `<rect fill=\"${fill}\" />`;\n"))
	_, ok := m.edited["r"]
	assert.False(t, ok)

	m = update(t, m, snapshot(circleSource))
	assert.Equal(t, "40", m.values()["r"])
}

func TestModelFocusCycles(t *testing.T) {
	m := newModel(Options{Path: "icon.ts"}, nil)
	m = update(t, m, snapshot(circleSource))

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, m.focus)
	assert.True(t, m.inputs[1].Focused())
	assert.False(t, m.inputs[0].Focused())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 0, m.focus)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, 1, m.focus)
}

func TestModelFocusFollowsVariable(t *testing.T) {
	m := newModel(Options{Path: "icon.ts"}, nil)
	m = update(t, m, snapshot(circleSource))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})

	// fill moves to the front.
	m = update(t, m, snapshot("const icon = /*svg*/ `<circle fill=\"${fill}\" r=\"${r}\" />`;\n"))
	name, ok := m.focusedVariable()
	require.True(t, ok)
	assert.Equal(t, "fill", name)
}

func TestModelResetField(t *testing.T) {
	m := newModel(Options{Path: "icon.ts"}, nil)
	m = update(t, m, snapshot(circleSource))
	m = typeText(t, m, "5")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Equal(t, "40", m.values()["r"])
	_, ok := m.edited["r"]
	assert.False(t, ok)
}

func TestModelTemplateRemoved(t *testing.T) {
	m := newModel(Options{Path: "icon.ts"}, nil)
	m = update(t, m, snapshot(circleSource))
	m = update(t, m, snapshot("const icon = null;\n"))

	assert.Empty(t, m.inputs)
	assert.Contains(t, plainView(m), "Template removed")

	// Keys without a focused input are ignored.
	m = typeText(t, m, "x")
	assert.Empty(t, m.edited)
}

func TestModelEmptyTemplateBody(t *testing.T) {
	m := newModel(Options{Path: "icon.ts"}, nil)
	m = update(t, m, snapshot("const icon = /*svg*/ ``;\n"))

	view := plainView(m)
	assert.NotContains(t, view, "Template removed")
	assert.Contains(t, view, "No placeholders")
}

func TestModelNoVariables(t *testing.T) {
	m := newModel(Options{Path: "icon.ts"}, nil)
	m = update(t, m, snapshot("const icon = /*svg*/ `<rect />`;\n"))

	view := plainView(m)
	assert.Contains(t, view, "No placeholders")
	assert.Contains(t, view, "rect")
}

func TestModelQuit(t *testing.T) {
	m := newModel(Options{Path: "icon.ts"}, nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModelSmallTerminal(t *testing.T) {
	m := newModel(Options{Path: "icon.ts"}, nil)
	m = update(t, m, tea.WindowSizeMsg{Width: 20, Height: 5})
	assert.Contains(t, plainView(m), "Terminal too small")
}

func TestModelWatchClosed(t *testing.T) {
	m := newModel(Options{Path: "icon.ts"}, nil)
	m = update(t, m, WatchClosedMsg{})
	assert.Contains(t, plainView(m), "Watcher stopped")
}

func TestWaitForSnapshot(t *testing.T) {
	assert.Nil(t, waitForSnapshot(nil))

	ch := make(chan watch.Snapshot, 1)
	ch <- watch.Snapshot{Text: "hello"}
	msg := waitForSnapshot(ch)()
	got, ok := msg.(SnapshotMsg)
	require.True(t, ok)
	assert.Equal(t, "hello", got.Text)

	close(ch)
	assert.IsType(t, WatchClosedMsg{}, waitForSnapshot(ch)())
}

func TestViewEndsWithNewline(t *testing.T) {
	m := newModel(Options{Path: "icon.ts"}, nil)
	m = update(t, m, snapshot(circleSource))
	assert.True(t, strings.HasSuffix(m.View(), "\n"))
}
