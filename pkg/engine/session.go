package engine

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/germanamz/abacus/pkg/calculator"
	"github.com/germanamz/abacus/pkg/keymap"
)

// Snapshot is the renderable state of a session's calculator.
type Snapshot struct {
	Session  string           `json:"session"`
	Current  string           `json:"current"`
	Previous string           `json:"previous"`
	Display  string           `json:"display"` // Current, formatted for display.
	Phase    calculator.Phase `json:"phase"`
	Fault    calculator.Fault `json:"fault,omitempty"`
}

// Session owns one calculator. All calls into the calculator are serialized
// by the session, so it is safe for concurrent use.
type Session struct {
	id        string
	formatter calculator.Formatter
	events    *EventBus
	log       *slog.Logger

	mu   sync.Mutex
	calc *calculator.Calculator
}

func newSession(id string, formatter calculator.Formatter, events *EventBus, log *slog.Logger) *Session {
	return &Session{
		id:        id,
		formatter: formatter,
		events:    events,
		log:       log,
		calc:      calculator.New(),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Press applies a single action and returns the resulting snapshot.
func (s *Session) Press(a keymap.Action) Snapshot {
	return s.apply([]keymap.Action{a})
}

// PressAll applies actions in order as one batch. Other callers never observe
// an intermediate state.
func (s *Session) PressAll(actions ...keymap.Action) Snapshot {
	return s.apply(actions)
}

// PressKeys resolves each key with keymap.Lookup and applies the actions in
// order. If any key is unknown nothing is applied.
func (s *Session) PressKeys(keys ...string) (Snapshot, error) {
	actions := make([]keymap.Action, 0, len(keys))
	for _, k := range keys {
		a, ok := keymap.Lookup(k)
		if !ok {
			return Snapshot{}, fmt.Errorf("engine: session %s: unknown key %q", s.id, k)
		}
		actions = append(actions, a)
	}

	return s.apply(actions), nil
}

// Reset clears the calculator.
func (s *Session) Reset() Snapshot {
	return s.Press(keymap.Clear())
}

// Snapshot returns the current state without changing it.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked()
}

func (s *Session) apply(actions []keymap.Action) Snapshot {
	s.mu.Lock()
	before := s.calc.Fault()
	for _, a := range actions {
		s.log.Debug("key pressed", "session", s.id, "key", a.Token())
		keymap.Apply(s.calc, a)
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if snap.Fault != calculator.FaultNone && snap.Fault != before {
		s.log.Info("calculator fault", "session", s.id, "fault", snap.Fault.String())
		s.events.Publish(Event{Kind: EventFault, SessionID: s.id, Data: snap.Fault})
	}

	s.events.Publish(Event{Kind: EventDisplayChanged, SessionID: s.id, Data: snap})

	return snap
}

func (s *Session) snapshotLocked() Snapshot {
	current := s.calc.Current()

	return Snapshot{
		Session:  s.id,
		Current:  current,
		Previous: s.calc.Previous(),
		Display:  s.formatter.Format(current),
		Phase:    s.calc.Phase(),
		Fault:    s.calc.Fault(),
	}
}
