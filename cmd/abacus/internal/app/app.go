// Package app is the terminal calculator: a display, a keypad and a help
// line, driven by one engine session.
package app

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/germanamz/abacus/cmd/abacus/internal/format"
	"github.com/germanamz/abacus/cmd/abacus/internal/keypad"
	"github.com/germanamz/abacus/cmd/abacus/internal/msgs"
	"github.com/germanamz/abacus/cmd/abacus/internal/styles"
	"github.com/germanamz/abacus/pkg/calculator"
	"github.com/germanamz/abacus/pkg/engine"
	"github.com/germanamz/abacus/pkg/keymap"
)

type keyMap struct {
	Equals key.Binding
	Delete key.Binding
	Clear  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Equals, k.Delete, k.Clear, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Equals: key.NewBinding(key.WithKeys("=", "enter"), key.WithHelp("=/enter", "compute")),
	Delete: key.NewBinding(key.WithKeys("backspace", "delete"), key.WithHelp("⌫", "delete")),
	Clear:  key.NewBinding(key.WithKeys("c", "C", "esc"), key.WithHelp("c/esc", "clear")),
	Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// Model is the root bubbletea model.
type Model struct {
	sess     *engine.Session
	snap     engine.Snapshot
	keypad   keypad.Keypad
	help     help.Model
	feedback time.Duration

	pressed  string // label of the highlighted key
	gen      uint64 // bumped on every highlight
	showHelp bool
	width    int
}

// New creates a Model for sess. Display settings come from cfg.
func New(sess *engine.Session, cfg engine.Config) Model {
	return Model{
		sess:     sess,
		snap:     sess.Snapshot(),
		keypad:   keypad.New(cfg.Display.DecimalSeparator),
		help:     help.New(),
		feedback: cfg.PressFeedback(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		format.InitMarkdownRenderer(min(msg.Width, 80))
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case msgs.DisplayMsg:
		if msg.Snapshot.Session == m.sess.ID() {
			m.snap = msg.Snapshot
		}
		return m, nil

	case msgs.SessionRemovedMsg:
		return m, tea.Quit

	case msgs.FeedbackDoneMsg:
		if msg.Generation == m.gen {
			m.pressed = ""
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	}

	if m.showHelp {
		if msg.Type == tea.KeyEsc {
			m.showHelp = false
		}
		return m, nil
	}

	a, ok := keymap.Lookup(msg.String())
	if !ok {
		return m, nil
	}

	m.snap = m.sess.Press(a)

	return m.highlight(a.Label())
}

// highlight lights the key with the given label for the feedback duration.
func (m Model) highlight(label string) (tea.Model, tea.Cmd) {
	if m.feedback <= 0 {
		return m, nil
	}

	m.gen++
	m.pressed = label
	gen := m.gen

	return m, tea.Tick(m.feedback, func(time.Time) tea.Msg {
		return msgs.FeedbackDoneMsg{Generation: gen}
	})
}

func (m Model) View() string {
	width := m.keypad.Width()
	inner := width - 4 // border and padding of the display box

	curStyle := styles.CurrentStyle
	if m.snap.Phase == calculator.PhaseError {
		curStyle = styles.ErrorStyle
	}

	display := styles.DisplayBox.Width(width - 2).Render(
		styles.PreviousStyle.Render(format.RightAlign(m.snap.Previous, inner)) + "\n" +
			curStyle.Render(format.RightAlign(m.snap.Display, inner)),
	)

	var body string
	switch {
	case m.showHelp:
		body = format.Help()
	case m.width > 0 && m.width < width:
		body = styles.StatusStyle.Render(m.keypad.Legend())
	default:
		body = m.keypad.Render(m.pressed)
	}

	title := styles.TitleStyle.Render("abacus") + " " + styles.StatusStyle.Render(m.sess.ID())

	return lipgloss.JoinVertical(lipgloss.Left, title, display, body, m.help.View(keys))
}
