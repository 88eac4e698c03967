package msgs

import "github.com/germanamz/abacus/pkg/engine"

// --- Bridge → TUI messages ---

// DisplayMsg delivers the session's display after any frontend pressed a key.
type DisplayMsg struct {
	Snapshot engine.Snapshot
}

// SessionRemovedMsg signals that the session the TUI shows no longer exists.
type SessionRemovedMsg struct {
	Session string
}

// --- Internal messages ---

// FeedbackDoneMsg ends the highlight of a pressed key. Only the message
// carrying the latest generation clears it, so fast typing keeps the newest
// key lit.
type FeedbackDoneMsg struct {
	Generation uint64
}
