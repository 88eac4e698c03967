// Package webui serves the calculator to a browser: an embedded keypad page
// and a websocket that carries key presses in and display snapshots out.
package webui

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"sync"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/germanamz/abacus/pkg/engine"
	"github.com/germanamz/abacus/pkg/keymap"
	"github.com/germanamz/abacus/pkg/tape"
)

//go:embed static/index.html
var static embed.FS

var indexTemplate = template.Must(template.ParseFS(static, "static/index.html"))

// subscriptionBuffer bounds the events queued for one connection before the
// bus starts dropping them.
const subscriptionBuffer = 64

// keyMessage is sent by the browser for every key press. Key is any token a
// tape accepts, such as "7", "enter" or "12.5".
type keyMessage struct {
	Key string `json:"key"`
}

type errorMessage struct {
	Error string `json:"error"`
}

// Server is the browser frontend. It implements http.Handler.
type Server struct {
	eng *engine.Engine
	log *slog.Logger
	mux *http.ServeMux
}

// New creates a Server for eng. A nil logger discards all output.
func New(eng *engine.Engine, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	s := &Server{eng: eng, log: log, mux: http.NewServeMux()}
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /ws", s.handleWS)
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)

	return s
}

// Handle mounts an extra handler next to the calculator routes.
func (s *Server) Handle(pattern string, h http.Handler) {
	s.mux.Handle(pattern, h)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	cfg := s.eng.Config()

	data := struct {
		PressFeedbackMillis int64
		Decimal             string
	}{
		PressFeedbackMillis: cfg.PressFeedback().Milliseconds(),
		Decimal:             s.eng.Formatter().Decimal,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		s.log.Error("render index", "error", err)
	}
}

// handleWS attaches the connection to the session named by the "session"
// query parameter, or to a new session that lives as long as the connection.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	sess, owned, err := s.attach(r.URL.Query().Get("session"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if owned {
		defer s.eng.RemoveSession(sess.ID())
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.log.Warn("websocket accept failed", "session", sess.ID(), "error", err)
		return
	}
	defer conn.CloseNow() //nolint:errcheck // best effort after a clean close

	log := s.log.With("session", sess.ID())
	log.Info("browser connected", "remote", r.RemoteAddr)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	sub := s.eng.Events().Subscribe(subscriptionBuffer)
	defer s.eng.Events().Unsubscribe(sub)

	if err := wsjson.Write(ctx, conn, sess.Snapshot()); err != nil {
		log.Warn("write snapshot", "error", err)
		return
	}

	var wg sync.WaitGroup
	wg.Go(func() {
		defer cancel()
		s.forward(ctx, conn, sub, sess.ID())
	})

	err = s.readKeys(ctx, conn, sess)
	cancel()
	wg.Wait()

	switch status := websocket.CloseStatus(err); {
	case status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway:
		log.Info("browser disconnected")
		return
	case errors.Is(err, context.Canceled):
		log.Info("browser detached")
	default:
		log.Warn("browser connection lost", "error", err)
	}

	_ = conn.Close(websocket.StatusNormalClosure, "")
}

// readKeys applies key messages until the connection fails or ctx ends.
// Every press publishes a display_changed event, which forward delivers.
func (s *Server) readKeys(ctx context.Context, conn *websocket.Conn, sess *engine.Session) error {
	for {
		var msg keyMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			return err
		}

		t, err := tape.ParseString(msg.Key)
		if err == nil && len(t.Steps) == 0 {
			err = errors.New("empty key")
		}
		if err != nil {
			if werr := wsjson.Write(ctx, conn, errorMessage{Error: err.Error()}); werr != nil {
				return werr
			}
			continue
		}

		actions := make([]keymap.Action, 0, len(t.Steps))
		for _, st := range t.Steps {
			actions = append(actions, st.Action)
		}
		sess.PressAll(actions...)
	}
}

// forward writes the session's display changes to the browser and closes the
// connection when the session is removed.
func (s *Server) forward(ctx context.Context, conn *websocket.Conn, sub *engine.Subscription, id string) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub.C:
			if !ok {
				return
			}
			if ev.SessionID != id {
				continue
			}

			switch ev.Kind {
			case engine.EventDisplayChanged:
				if err := wsjson.Write(ctx, conn, ev.Data); err != nil {
					return
				}
			case engine.EventSessionRemoved:
				_ = conn.Close(websocket.StatusGoingAway, "session removed")
				return
			}
		}
	}
}

func (s *Server) attach(id string) (*engine.Session, bool, error) {
	if id != "" {
		sess, ok := s.eng.Session(id)
		if !ok {
			return nil, false, fmt.Errorf("webui: unknown session %q", id)
		}
		return sess, false, nil
	}

	sess, err := s.eng.NewSession()
	if err != nil {
		return nil, false, fmt.Errorf("webui: %w", err)
	}

	return sess, true, nil
}
