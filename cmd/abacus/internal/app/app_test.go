package app

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/germanamz/abacus/cmd/abacus/internal/msgs"
	"github.com/germanamz/abacus/pkg/calculator"
	"github.com/germanamz/abacus/pkg/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T, cfg engine.Config) (*engine.Session, Model) {
	t.Helper()

	eng, err := engine.New(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = eng.Close() })

	sess, err := eng.NewSession()
	require.NoError(t, err)

	return sess, New(sess, cfg)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()

	updated, cmd := m.Update(msg)
	next, ok := updated.(Model)
	require.True(t, ok)

	return next, cmd
}

func TestTypingComputes(t *testing.T) {
	sess, m := newTestModel(t, engine.DefaultConfig())

	for _, k := range []tea.Msg{runes("1"), runes("2"), runes("3"), runes("4"), runes("*"), runes("2")} {
		m, _ = press(t, m, k)
	}
	assert.Equal(t, "1234 ×", m.snap.Previous)
	assert.Equal(t, "2", m.snap.Display)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "2,468", m.snap.Display)
	assert.Equal(t, "2468", sess.Snapshot().Current)
}

func TestBackspaceAndEscape(t *testing.T) {
	_, m := newTestModel(t, engine.DefaultConfig())

	m, _ = press(t, m, runes("9"))
	m, _ = press(t, m, runes("8"))
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "9", m.snap.Current)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, "0", m.snap.Current)
	assert.Equal(t, calculator.PhaseIdle, m.snap.Phase)
}

func TestCommaIsDecimal(t *testing.T) {
	_, m := newTestModel(t, engine.DefaultConfig())

	m, _ = press(t, m, runes("1"))
	m, _ = press(t, m, runes(","))
	m, _ = press(t, m, runes("5"))
	assert.Equal(t, "1.5", m.snap.Current)
}

func TestPressHighlightsKey(t *testing.T) {
	_, m := newTestModel(t, engine.DefaultConfig())

	m, cmd := press(t, m, runes("*"))
	require.NotNil(t, cmd)
	assert.Equal(t, "×", m.pressed)
	first := m.gen

	m, _ = press(t, m, runes("7"))
	assert.Equal(t, "7", m.pressed)

	// The tick of the first press is stale and leaves the newer highlight.
	m, _ = press(t, m, msgs.FeedbackDoneMsg{Generation: first})
	assert.Equal(t, "7", m.pressed)

	m, _ = press(t, m, msgs.FeedbackDoneMsg{Generation: m.gen})
	assert.Empty(t, m.pressed)
}

func TestFeedbackDisabled(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.Display.PressFeedback = "0"
	_, m := newTestModel(t, cfg)

	m, cmd := press(t, m, runes("5"))
	assert.Nil(t, cmd)
	assert.Empty(t, m.pressed)
	assert.Equal(t, "5", m.snap.Current)
}

func TestUnknownKeyIgnored(t *testing.T) {
	_, m := newTestModel(t, engine.DefaultConfig())

	m, cmd := press(t, m, runes("%"))
	assert.Nil(t, cmd)
	assert.Equal(t, "0", m.snap.Current)
}

func TestHelpToggle(t *testing.T) {
	_, m := newTestModel(t, engine.DefaultConfig())

	m, _ = press(t, m, runes("?"))
	assert.True(t, m.showHelp)

	// Calculator keys are ignored while help is shown.
	m, _ = press(t, m, runes("7"))
	assert.Equal(t, "0", m.snap.Current)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.showHelp)
}

func TestQuit(t *testing.T) {
	_, m := newTestModel(t, engine.DefaultConfig())

	for _, k := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := press(t, m, k)
		require.NotNil(t, cmd)
		assert.Equal(t, tea.QuitMsg{}, cmd())
	}
}

func TestDisplayMsgFromOtherFrontend(t *testing.T) {
	sess, m := newTestModel(t, engine.DefaultConfig())

	snap, err := sess.PressKeys("4", "2")
	require.NoError(t, err)

	m, _ = press(t, m, msgs.DisplayMsg{Snapshot: snap})
	assert.Equal(t, "42", m.snap.Current)

	other := snap
	other.Session = "someone-else"
	other.Current = "7"
	m, _ = press(t, m, msgs.DisplayMsg{Snapshot: other})
	assert.Equal(t, "42", m.snap.Current)
}

func TestSessionRemovedQuits(t *testing.T) {
	sess, m := newTestModel(t, engine.DefaultConfig())

	_, cmd := press(t, m, msgs.SessionRemovedMsg{Session: sess.ID()})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestView(t *testing.T) {
	_, m := newTestModel(t, engine.DefaultConfig())

	for _, k := range []string{"1", "2", "3", "4", "+"} {
		m, _ = press(t, m, runes(k))
	}

	view := m.View()
	assert.Contains(t, view, "abacus")
	assert.Contains(t, view, "1234 +")
	assert.Contains(t, view, "1,234")
	assert.Contains(t, view, "compute")
}

func TestViewError(t *testing.T) {
	_, m := newTestModel(t, engine.DefaultConfig())

	for _, k := range []string{"1", "/", "0", "="} {
		m, _ = press(t, m, runes(k))
	}

	assert.Equal(t, calculator.PhaseError, m.snap.Phase)
	assert.Contains(t, m.View(), "Error")
}

func TestViewNarrowTerminal(t *testing.T) {
	_, m := newTestModel(t, engine.DefaultConfig())

	m, _ = press(t, m, tea.WindowSizeMsg{Width: 10, Height: 20})
	assert.Contains(t, m.View(), "7 8 9 -")
}
