package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/germanamz/abacus/pkg/calctools"
	"github.com/germanamz/abacus/pkg/engine"
	"github.com/germanamz/abacus/pkg/tools/mcpserver"
)

func runMCP(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: abacus mcp [flags]\n\nServe calculator tools over MCP on stdin/stdout.\n\nFlags:\n")
		fs.PrintDefaults()
	}
	var common commonFlags
	common.register(fs)
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

	// stdout carries the protocol; logs go to stderr.
	log := newLogger(cfg, os.Stderr)

	eng, err := engine.New(cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = eng.Close() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv := mcpserver.New(cfg.MCP.Name, version, log)
	srv.Register(calctools.New(eng, d).Tools().Tools()...)

	log.Info("mcp server started", "name", cfg.MCP.Name)

	return srv.Serve(ctx, os.Stdin, os.Stdout)
}
