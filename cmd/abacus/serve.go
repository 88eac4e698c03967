package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/germanamz/abacus/pkg/abacusdir"
	"github.com/germanamz/abacus/pkg/calctools"
	"github.com/germanamz/abacus/pkg/engine"
	"github.com/germanamz/abacus/pkg/tools/mcpserver"
	"github.com/germanamz/abacus/pkg/webui"
)

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: abacus serve [flags]\n\nServe the browser calculator at / and calculator tools over MCP at /mcp.\n\nFlags:\n")
		fs.PrintDefaults()
	}
	var common commonFlags
	common.register(fs)
	addr := fs.String("addr", "", "listen address (default: web.addr from config)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := loadDotEnv(common.envFile); err != nil {
		return err
	}

	cfg, d, err := common.loadConfig()
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Web.Addr = *addr
	}

	log := newLogger(cfg, os.Stderr)

	eng, err := engine.New(cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = eng.Close() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	stop, err := startHTTP(ctx, cfg.Web.Addr, newHTTPHandler(eng, d, log), log)
	if err != nil {
		return err
	}
	defer stop()

	<-ctx.Done()

	return nil
}

// newHTTPHandler serves the browser UI with the MCP endpoint mounted at /mcp.
func newHTTPHandler(eng *engine.Engine, d abacusdir.Dir, log *slog.Logger) http.Handler {
	tools := mcpserver.New(eng.Config().MCP.Name, version, log)
	tools.Register(calctools.New(eng, d).Tools().Tools()...)

	web := webui.New(eng, log)
	web.Handle("/mcp", tools.Handler())

	return web
}

// startHTTP listens on addr and serves h in the background. The returned
// function shuts the server down gracefully.
func startHTTP(ctx context.Context, addr string, h http.Handler, log *slog.Logger) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("serve: listen: %w", err)
	}

	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	log.Info("serving", "addr", "http://"+ln.Addr().String())

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server stopped", "error", err)
		}
	}()

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("http shutdown", "error", err)
		}
		<-done
	}, nil
}
