package bridge

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/germanamz/abacus/cmd/abacus/internal/msgs"
	"github.com/germanamz/abacus/pkg/engine"
)

// Sender delivers messages into a running program. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// Start launches a goroutine that turns engine events for the given session
// into bubbletea messages. The goroutine only calls p.Send; it never touches
// model state. The returned function stops the goroutine and waits for it,
// so no message is sent after it returns.
func Start(ctx context.Context, p Sender, events *engine.EventBus, session string) context.CancelFunc {
	bridgeCtx, cancel := context.WithCancel(ctx)

	var wg sync.WaitGroup
	sub := events.Subscribe(64)

	wg.Go(func() {
		defer events.Unsubscribe(sub)
		for {
			select {
			case <-bridgeCtx.Done():
				return
			case ev, ok := <-sub.C:
				if !ok {
					return
				}
				if ev.SessionID != session {
					continue
				}

				switch ev.Kind {
				case engine.EventDisplayChanged:
					snap, ok := ev.Data.(engine.Snapshot)
					if !ok {
						continue
					}
					p.Send(msgs.DisplayMsg{Snapshot: snap})

				case engine.EventSessionRemoved:
					p.Send(msgs.SessionRemovedMsg{Session: ev.SessionID})
				}
			}
		}
	})

	return func() {
		cancel()
		wg.Wait()
	}
}
