package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/germanamz/abacus/pkg/calculator"
)

// ErrClosed is returned by NewSession after Close.
var ErrClosed = errors.New("engine: closed")

// Engine is the composition root that assembles sessions from configuration
// and exposes them through a frontend-agnostic API.
type Engine struct {
	cfg       Config
	log       *slog.Logger
	events    *EventBus
	formatter calculator.Formatter

	mu       sync.Mutex
	sessions map[string]*Session
	nextID   int
	closed   bool
}

// New creates an Engine from the given configuration. A nil logger discards
// all output.
func New(cfg Config, log *slog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Engine{
		cfg:       cfg,
		log:       log,
		events:    NewEventBus(),
		formatter: cfg.Formatter(),
		sessions:  make(map[string]*Session),
	}, nil
}

// Config returns the configuration the engine was built from.
func (e *Engine) Config() Config { return e.cfg }

// Events returns the engine's event bus.
func (e *Engine) Events() *EventBus { return e.events }

// Formatter returns the display formatter shared by all sessions.
func (e *Engine) Formatter() calculator.Formatter { return e.formatter }

// NewSession creates a session holding a cleared calculator.
func (e *Engine) NewSession() (*Session, error) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil, ErrClosed
	}
	e.nextID++
	id := fmt.Sprintf("session-%d", e.nextID)
	s := newSession(id, e.formatter, e.events, e.log)
	e.sessions[id] = s
	e.mu.Unlock()

	e.log.Info("session created", "session", id)
	e.events.Publish(Event{Kind: EventSessionCreated, SessionID: id})

	return s, nil
}

// Session returns an existing session by ID.
func (e *Engine) Session(id string) (*Session, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.sessions[id]
	return s, ok
}

// RemoveSession forgets a session. It reports whether the session existed.
func (e *Engine) RemoveSession(id string) bool {
	e.mu.Lock()
	_, ok := e.sessions[id]
	delete(e.sessions, id)
	e.mu.Unlock()

	if !ok {
		return false
	}

	e.log.Info("session removed", "session", id)
	e.events.Publish(Event{Kind: EventSessionRemoved, SessionID: id})

	return true
}

// Sessions returns the IDs of all live sessions, sorted.
func (e *Engine) Sessions() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	ids := make([]string, 0, len(e.sessions))
	for id := range e.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// Close removes all sessions. NewSession fails afterwards.
func (e *Engine) Close() error {
	e.mu.Lock()
	e.closed = true
	ids := make([]string, 0, len(e.sessions))
	for id := range e.sessions {
		ids = append(ids, id)
	}
	e.mu.Unlock()

	for _, id := range ids {
		e.RemoveSession(id)
	}

	return nil
}
