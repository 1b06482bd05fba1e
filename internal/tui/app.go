// Package tui implements the tsvg terminal live preview.
package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/opencode-ai/tsvg/internal/infer"
	"github.com/opencode-ai/tsvg/internal/preview"
	"github.com/opencode-ai/tsvg/internal/tui/components"
	"github.com/opencode-ai/tsvg/internal/tui/styles"
	"github.com/opencode-ai/tsvg/internal/watch"
)

// Options configure the live preview.
type Options struct {
	// Path is the source file to follow.
	Path string
	// AnchorLine is the zero-based marker line of the template to track.
	AnchorLine int
	// Values seed the inputs, e.g. from --set or a preset.
	Values map[string]string
	// Theme names a palette in styles.Themes.
	Theme    string
	Debounce time.Duration
	Logger   zerolog.Logger
}

// Run launches the live preview and blocks until the user quits or ctx is
// canceled.
func Run(ctx context.Context, opts Options) error {
	watcher, err := watch.NewFileWatcher(opts.Path, watch.Options{
		Debounce: opts.Debounce,
		Logger:   opts.Logger,
	})
	if err != nil {
		return err
	}
	defer watcher.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	snapshots, err := watcher.Watch(ctx)
	if err != nil {
		return err
	}

	program := tea.NewProgram(newModel(opts, snapshots), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

type model struct {
	width  int
	height int
	styles styles.Styles

	title     string
	file      string
	tracker   *preview.Tracker
	snapshots <-chan watch.Snapshot

	received bool
	closed   bool
	payload  preview.Payload
	classes  map[string]infer.Class
	inputs   []textinput.Model
	focus    int
	// edited holds values the user typed, keyed by variable.
	edited map[string]string

	lastUpdated time.Time
	now         time.Time
}

const (
	minWidth  = 50
	minHeight = 12
)

func newModel(opts Options, snapshots <-chan watch.Snapshot) model {
	edited := make(map[string]string, len(opts.Values))
	for k, v := range opts.Values {
		edited[k] = v
	}

	file := filepath.Base(opts.Path)
	return model{
		styles:    styles.BuildStyles(styles.ThemeByName(opts.Theme)),
		title:     preview.Title(opts.Path, opts.AnchorLine),
		file:      file,
		tracker:   preview.NewTracker(opts.AnchorLine),
		snapshots: snapshots,
		payload:   preview.Empty(),
		classes:   map[string]infer.Class{},
		edited:    edited,
		now:       time.Now(),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(waitForSnapshot(m.snapshots), tickCmd())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case SnapshotMsg:
		m.apply(m.tracker.Update(msg.Text))
		m.received = true
		m.lastUpdated = msg.At
		return m, tea.Batch(m.focusCurrent(), waitForSnapshot(m.snapshots))
	case WatchClosedMsg:
		m.closed = true
	case tickMsg:
		m.now = time.Time(msg)
		return m, tickCmd()
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		return m, tea.Quit
	case "tab", "down":
		return m.moveFocus(1)
	case "shift+tab", "up":
		return m.moveFocus(-1)
	case "ctrl+r":
		if name, ok := m.focusedVariable(); ok {
			delete(m.edited, name)
			m.inputs[m.focus].SetValue(m.payload.DefaultValues[name])
			m.inputs[m.focus].CursorEnd()
		}
		return m, nil
	}

	name, ok := m.focusedVariable()
	if !ok {
		return m, nil
	}
	before := m.inputs[m.focus].Value()
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if after := m.inputs[m.focus].Value(); after != before {
		m.edited[name] = after
	}
	return m, cmd
}

func (m model) moveFocus(delta int) (tea.Model, tea.Cmd) {
	if len(m.inputs) == 0 {
		return m, nil
	}
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	return m, m.focusCurrent()
}

func (m *model) focusCurrent() tea.Cmd {
	if len(m.inputs) == 0 {
		return nil
	}
	for i := range m.inputs {
		if i != m.focus {
			m.inputs[i].Blur()
		}
	}
	return m.inputs[m.focus].Focus()
}

func (m model) focusedVariable() (string, bool) {
	if m.focus < 0 || m.focus >= len(m.inputs) || m.focus >= len(m.payload.Variables) {
		return "", false
	}
	return m.payload.Variables[m.focus], true
}

// apply swaps in a new payload. Values the user typed carry over for
// variables that still exist; the rest start from their defaults.
func (m *model) apply(p preview.Payload) {
	focusedName, hadFocus := m.focusedVariable()

	m.payload = p
	m.classes = infer.Classes(p.RawBody, p.Variables)

	kept := make(map[string]string, len(m.edited))
	inputs := make([]textinput.Model, 0, len(p.Variables))
	focus := 0
	for i, name := range p.Variables {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = p.DefaultValues[name]
		in.CharLimit = 256
		in.Width = 32

		value := p.DefaultValues[name]
		if v, ok := m.edited[name]; ok {
			value = v
			kept[name] = v
		}
		in.SetValue(value)
		in.CursorEnd()
		inputs = append(inputs, in)

		if hadFocus && name == focusedName {
			focus = i
		}
	}

	m.edited = kept
	m.inputs = inputs
	m.focus = focus
}

// values returns the current input values by variable.
func (m model) values() map[string]string {
	values := make(map[string]string, len(m.inputs))
	for i, name := range m.payload.Variables {
		if i < len(m.inputs) {
			values[name] = m.inputs[i].Value()
		}
	}
	return values
}

func (m model) View() string {
	if m.width > 0 && m.height > 0 {
		if m.width < minWidth || m.height < minHeight {
			return fmt.Sprintf("%s\n", strings.Join(m.smallViewLines(), "\n"))
		}
	}

	lines := []string{m.styles.Title.Render(m.title), ""}
	lines = append(lines, m.bodyLines()...)
	lines = append(lines, "", m.styles.Muted.Render(m.statusLine()))
	lines = append(lines, m.styles.Muted.Render("Shortcuts: tab/shift+tab move | ctrl+r reset field | esc quit"))

	return fmt.Sprintf("%s\n", strings.Join(lines, "\n"))
}

func (m model) bodyLines() []string {
	if !m.received {
		return []string{m.styles.Muted.Render(fmt.Sprintf("Reading %s...", m.file))}
	}
	if !m.payload.Found {
		return []string{components.EmptyNoCurrentMatch(m.file).Render(m.styles)}
	}

	var lines []string
	if len(m.inputs) == 0 {
		lines = append(lines, components.EmptyNoVariables().Render(m.styles))
	} else {
		fields := make([]string, 0, len(m.inputs))
		for i, name := range m.payload.Variables {
			label := m.styles.Label.Render(name)
			if i == m.focus {
				label = m.styles.LabelFocused.Render(name)
			}
			badge := components.RenderKindBadge(m.styles, m.classes[name])
			fields = append(fields, fmt.Sprintf("%s %s %s", label, m.inputs[i].View(), badge))
		}
		lines = append(lines, m.styles.Panel.Render(strings.Join(fields, "\n")))
	}

	rendered := preview.Render(m.payload, m.values())
	highlighted := components.HighlightMarkup(rendered, m.styles.Theme.Syntax, m.styles.Text)
	lines = append(lines, "", m.styles.Panel.Render(highlighted))
	return lines
}

func (m model) smallViewLines() []string {
	message := fmt.Sprintf("Terminal too small (%dx%d).", m.width, m.height)
	hint := fmt.Sprintf("Resize to at least %dx%d.", minWidth, minHeight)

	return []string{
		m.styles.Warning.Render(message),
		m.styles.Muted.Render(hint),
		m.styles.Muted.Render("Press esc to quit."),
	}
}

func (m model) statusLine() string {
	if m.closed {
		return "Watcher stopped; showing the last version."
	}
	if m.lastUpdated.IsZero() {
		return "Last updated: --"
	}
	return fmt.Sprintf("Last updated: %s", m.lastUpdated.Format("15:04:05"))
}
