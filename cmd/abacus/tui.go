package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/germanamz/abacus/cmd/abacus/internal/app"
	"github.com/germanamz/abacus/cmd/abacus/internal/bridge"
	"github.com/germanamz/abacus/cmd/abacus/internal/format"
	"github.com/germanamz/abacus/pkg/engine"
)

func runTUI(common commonFlags, serveAddr string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, d, err := common.loadConfig()
	if err != nil {
		return err
	}

	log, logFile, err := newFileLogger(cfg, d)
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()

	eng, err := engine.New(cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = eng.Close() }()

	sess, err := eng.NewSession()
	if err != nil {
		return err
	}

	if serveAddr != "" {
		stop, err := startHTTP(ctx, serveAddr, newHTTPHandler(eng, d, log), log)
		if err != nil {
			return err
		}
		defer stop()
	}

	// Detect the background once, before bubbletea owns the terminal.
	format.IsDarkBG = lipgloss.HasDarkBackground()

	p := tea.NewProgram(app.New(sess, cfg), tea.WithContext(ctx))

	stopBridge := bridge.Start(ctx, p, eng.Events(), sess.ID())
	defer stopBridge()

	log.Info("terminal started", "session", sess.ID())

	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}

	return err
}
