// Package tape replays scripted key sequences against a fresh calculator and
// compares the resulting display transcript with a recorded one.
//
// A tape is plain text: whitespace separated key tokens, with '#' starting a
// comment that runs to the end of the line. A token is either a key name known
// to keymap.Lookup (such as "7", "+", "enter" or "backspace") or a run of
// single-rune keys such as "12.5" or "2+3=", which is split into its runes.
package tape

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/germanamz/abacus/pkg/calculator"
	"github.com/germanamz/abacus/pkg/keymap"
	"github.com/pmezard/go-difflib/difflib"
)

// Step is one key press on a tape.
type Step struct {
	Line   int
	Action keymap.Action
}

// Tape is a parsed key sequence.
type Tape struct {
	Name  string
	Steps []Step
}

// Frame is the display after one step.
type Frame struct {
	Key      string
	Previous string
	Display  string
}

// Parse reads a tape from r.
func Parse(r io.Reader) (Tape, error) {
	var t Tape

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text, _, _ := strings.Cut(sc.Text(), "#")
		for _, tok := range strings.Fields(text) {
			actions, err := resolve(tok)
			if err != nil {
				return Tape{}, fmt.Errorf("tape: line %d: %w", line, err)
			}
			for _, a := range actions {
				t.Steps = append(t.Steps, Step{Line: line, Action: a})
			}
		}
	}
	if err := sc.Err(); err != nil {
		return Tape{}, fmt.Errorf("tape: read: %w", err)
	}

	return t, nil
}

// ParseString parses a tape held in memory.
func ParseString(s string) (Tape, error) {
	return Parse(strings.NewReader(s))
}

// ParseFile parses the tape at path. The tape is named after the file.
func ParseFile(path string) (Tape, error) {
	f, err := os.Open(path) //nolint:gosec // path is a caller-provided tape file
	if err != nil {
		return Tape{}, fmt.Errorf("tape: open: %w", err)
	}
	defer func() { _ = f.Close() }()

	t, err := Parse(f)
	if err != nil {
		return Tape{}, fmt.Errorf("%s: %w", path, err)
	}
	t.Name = filepath.Base(path)

	return t, nil
}

func resolve(tok string) ([]keymap.Action, error) {
	if a, ok := keymap.Lookup(tok); ok {
		return []keymap.Action{a}, nil
	}

	actions := make([]keymap.Action, 0, len(tok))
	for _, r := range tok {
		a, ok := keymap.Lookup(string(r))
		if !ok {
			return nil, fmt.Errorf("unknown key %q", tok)
		}
		actions = append(actions, a)
	}

	return actions, nil
}

// Run plays t on a fresh calculator and returns one frame per step.
func Run(t Tape, f calculator.Formatter) []Frame {
	c := calculator.New()

	frames := make([]Frame, 0, len(t.Steps))
	for _, s := range t.Steps {
		keymap.Apply(c, s.Action)
		frames = append(frames, Frame{
			Key:      s.Action.Label(),
			Previous: c.Previous(),
			Display:  f.Format(c.Current()),
		})
	}

	return frames
}

// Final returns the last frame, or the display of a cleared calculator when
// there are no frames.
func Final(frames []Frame) Frame {
	if len(frames) == 0 {
		return Frame{Display: "0"}
	}
	return frames[len(frames)-1]
}

// Transcript renders frames one per line as key, previous and display
// separated by tabs.
func Transcript(frames []Frame) string {
	var sb strings.Builder
	for _, fr := range frames {
		sb.WriteString(fr.Key)
		sb.WriteByte('\t')
		sb.WriteString(fr.Previous)
		sb.WriteByte('\t')
		sb.WriteString(fr.Display)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Diff returns a unified diff from the expected to the actual transcript, or
// an empty string when they are identical.
func Diff(want, got, name string) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: name + " (expected)",
		ToFile:   name + " (actual)",
		Context:  3,
	}

	result, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("tape: diff: %w", err)
	}

	return result, nil
}
