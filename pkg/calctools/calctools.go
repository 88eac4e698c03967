// Package calctools exposes engine sessions as tools, so a program can drive
// a calculator the same way a person at the keypad does. The tools are served
// over MCP by "abacus mcp" and "abacus serve".
package calctools

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/germanamz/abacus/pkg/abacusdir"
	"github.com/germanamz/abacus/pkg/engine"
	"github.com/germanamz/abacus/pkg/keymap"
	"github.com/germanamz/abacus/pkg/tape"
	"github.com/germanamz/abacus/pkg/tools/toolbox"
)

var validTapeName = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Calc builds calculator tools on top of an engine. Tools that omit the
// session argument share one default session, created on first use.
type Calc struct {
	eng *engine.Engine
	dir abacusdir.Dir

	mu        sync.Mutex
	defaultID string
}

// New creates a Calc. Recorded tapes are looked up in dir's tapes directory.
func New(eng *engine.Engine, dir abacusdir.Dir) *Calc {
	return &Calc{eng: eng, dir: dir}
}

// Tools returns a ToolBox with the calculator tools.
func (c *Calc) Tools() *toolbox.ToolBox {
	tb := toolbox.New()

	tb.Register(
		toolbox.Tool{
			Name:        "calc_new_session",
			Description: "Start a new calculator session and return its cleared display. Pass the returned session ID to other tools to use it.",
			InputSchema: json.RawMessage(`{"type":"object"}`),
			Handler:     c.handleNewSession,
		},
		toolbox.Tool{
			Name:        "calc_press",
			Description: "Press keys on a calculator and return the resulting display. Keys are digits, '.', '+', '-', '*', '/', '=', 'c' (clear), 'backspace', or runs of single keys such as '12.5' or '2+3='.",
			InputSchema: json.RawMessage(`{"type":"object","properties":{"keys":{"type":"array","items":{"type":"string"},"description":"Keys to press, in order"},"session":{"type":"string","description":"Session ID; the default session when omitted"}},"required":["keys"]}`),
			Handler:     c.handlePress,
		},
		toolbox.Tool{
			Name:        "calc_clear",
			Description: "Clear a calculator and return its display.",
			InputSchema: json.RawMessage(`{"type":"object","properties":{"session":{"type":"string","description":"Session ID; the default session when omitted"}}}`),
			Handler:     c.handleClear,
		},
		toolbox.Tool{
			Name:        "calc_display",
			Description: "Read a calculator's display without pressing anything.",
			InputSchema: json.RawMessage(`{"type":"object","properties":{"session":{"type":"string","description":"Session ID; the default session when omitted"}}}`),
			Handler:     c.handleDisplay,
		},
		toolbox.Tool{
			Name:        "calc_evaluate",
			Description: "Run a key tape on a fresh calculator and return the final display. No session is touched.",
			InputSchema: json.RawMessage(`{"type":"object","properties":{"tape":{"type":"string","description":"Whitespace separated keys; '#' starts a comment"},"transcript":{"type":"boolean","description":"Include the display after every key"}},"required":["tape"]}`),
			Handler:     c.handleEvaluate,
		},
		toolbox.Tool{
			Name:        "calc_list_tapes",
			Description: "List the recorded tapes in the project's .abacus/tapes directory.",
			InputSchema: json.RawMessage(`{"type":"object"}`),
			Handler:     c.handleListTapes,
		},
		toolbox.Tool{
			Name:        "calc_run_tape",
			Description: "Run a recorded tape by name on a fresh calculator and return the final display.",
			InputSchema: json.RawMessage(`{"type":"object","properties":{"name":{"type":"string","description":"Tape name without the .tape extension"},"transcript":{"type":"boolean","description":"Include the display after every key"}},"required":["name"]}`),
			Handler:     c.handleRunTape,
		},
	)

	return tb
}

// --- input types ---

type sessionInput struct {
	Session string `json:"session"`
}

type pressInput struct {
	Keys    []string `json:"keys"`
	Session string   `json:"session"`
}

type evaluateInput struct {
	Tape       string `json:"tape"`
	Transcript bool   `json:"transcript"`
}

type runTapeInput struct {
	Name       string `json:"name"`
	Transcript bool   `json:"transcript"`
}

// Evaluation is the result of running a tape.
type Evaluation struct {
	Previous   string `json:"previous"`
	Display    string `json:"display"`
	Steps      int    `json:"steps"`
	Transcript string `json:"transcript,omitempty"`
}

// --- handlers ---

func (c *Calc) handleNewSession(_ context.Context, _ json.RawMessage) (string, error) {
	s, err := c.eng.NewSession()
	if err != nil {
		return "", fmt.Errorf("calc_new_session: %w", err)
	}

	return encode(s.Snapshot())
}

func (c *Calc) handlePress(_ context.Context, input json.RawMessage) (string, error) {
	var in pressInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", fmt.Errorf("calc_press: invalid input: %w", err)
	}

	if len(in.Keys) == 0 {
		return "", fmt.Errorf("calc_press: keys are required")
	}

	t, err := tape.ParseString(strings.Join(in.Keys, " "))
	if err != nil {
		return "", fmt.Errorf("calc_press: %w", err)
	}

	s, err := c.session(in.Session)
	if err != nil {
		return "", fmt.Errorf("calc_press: %w", err)
	}

	actions := make([]keymap.Action, 0, len(t.Steps))
	for _, st := range t.Steps {
		actions = append(actions, st.Action)
	}

	return encode(s.PressAll(actions...))
}

func (c *Calc) handleClear(_ context.Context, input json.RawMessage) (string, error) {
	var in sessionInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", fmt.Errorf("calc_clear: invalid input: %w", err)
	}

	s, err := c.session(in.Session)
	if err != nil {
		return "", fmt.Errorf("calc_clear: %w", err)
	}

	return encode(s.Reset())
}

func (c *Calc) handleDisplay(_ context.Context, input json.RawMessage) (string, error) {
	var in sessionInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", fmt.Errorf("calc_display: invalid input: %w", err)
	}

	s, err := c.session(in.Session)
	if err != nil {
		return "", fmt.Errorf("calc_display: %w", err)
	}

	return encode(s.Snapshot())
}

func (c *Calc) handleEvaluate(_ context.Context, input json.RawMessage) (string, error) {
	var in evaluateInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", fmt.Errorf("calc_evaluate: invalid input: %w", err)
	}

	t, err := tape.ParseString(in.Tape)
	if err != nil {
		return "", fmt.Errorf("calc_evaluate: %w", err)
	}

	return encode(c.evaluate(t, in.Transcript))
}

func (c *Calc) handleListTapes(_ context.Context, _ json.RawMessage) (string, error) {
	paths := c.dir.Tapes()
	if len(paths) == 0 {
		return "No tapes found.", nil
	}

	names := make([]string, 0, len(paths))
	for _, p := range paths {
		names = append(names, strings.TrimSuffix(filepath.Base(p), ".tape"))
	}

	return strings.Join(names, "\n"), nil
}

func (c *Calc) handleRunTape(_ context.Context, input json.RawMessage) (string, error) {
	var in runTapeInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", fmt.Errorf("calc_run_tape: invalid input: %w", err)
	}

	if !validTapeName.MatchString(in.Name) {
		return "", fmt.Errorf("calc_run_tape: invalid tape name %q", in.Name)
	}

	t, err := tape.ParseFile(filepath.Join(c.dir.TapesDir(), in.Name+".tape"))
	if err != nil {
		return "", fmt.Errorf("calc_run_tape: %w", err)
	}

	return encode(c.evaluate(t, in.Transcript))
}

func (c *Calc) evaluate(t tape.Tape, transcript bool) Evaluation {
	frames := tape.Run(t, c.eng.Formatter())
	last := tape.Final(frames)

	ev := Evaluation{
		Previous: last.Previous,
		Display:  last.Display,
		Steps:    len(frames),
	}
	if transcript {
		ev.Transcript = tape.Transcript(frames)
	}

	return ev
}

// session resolves a session ID. The empty ID names the default session,
// which is recreated if it has been removed.
func (c *Calc) session(id string) (*engine.Session, error) {
	if id != "" {
		s, ok := c.eng.Session(id)
		if !ok {
			return nil, fmt.Errorf("unknown session %q", id)
		}
		return s, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.defaultID != "" {
		if s, ok := c.eng.Session(c.defaultID); ok {
			return s, nil
		}
	}

	s, err := c.eng.NewSession()
	if err != nil {
		return nil, err
	}
	c.defaultID = s.ID()

	return s, nil
}

func encode(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("calctools: encode: %w", err)
	}

	return string(data), nil
}
