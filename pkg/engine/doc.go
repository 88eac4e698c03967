// Package engine is the composition root that turns configuration into
// calculator sessions and exposes them through a frontend-agnostic API.
// Frontends (terminal, browser, MCP) create a Session per user, press keys on
// it, and observe display changes through an EventBus. A Session serializes
// calls into its calculator so frontends may drive it from any goroutine.
package engine
