package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/germanamz/abacus/pkg/tools/mcpclient"
)

// remoteDisplay is the part of a calculator snapshot remote prints.
type remoteDisplay struct {
	Session  string `json:"session"`
	Previous string `json:"previous"`
	Display  string `json:"display"`
}

func runRemote(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("remote", flag.ContinueOnError)
	fs.SetOutput(stdout)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: abacus remote (--url URL | --cmd COMMAND) [flags] [key ...]\n\n"+
			"Press keys on a calculator served over MCP by \"abacus serve\" (--url) or\n"+
			"\"abacus mcp\" (--cmd), then print its display.\n\nFlags:\n")
		fs.PrintDefaults()
	}
	url := fs.String("url", "", "streamable HTTP endpoint, e.g. http://127.0.0.1:8080/mcp")
	command := fs.String("cmd", "", "command that serves MCP on stdio, e.g. \"abacus mcp\"")
	session := fs.String("session", "", "session to drive (default: the server's default session)")
	list := fs.Bool("list", false, "list the server's tools and exit")
	timeout := fs.Duration("timeout", 10*time.Second, "overall timeout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client, err := dialRemote(ctx, *url, *command)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	tb, err := client.Toolbox(ctx)
	if err != nil {
		return err
	}

	if *list {
		for _, t := range tb.Tools() {
			fmt.Fprintf(stdout, "%-18s %s\n", t.Name, t.Description)
		}
		return nil
	}

	tool := "calc_display"
	input := map[string]any{}
	if *session != "" {
		input["session"] = *session
	}
	if keys := fs.Args(); len(keys) > 0 {
		tool = "calc_press"
		input["keys"] = keys
	}

	raw, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("remote: encode input: %w", err)
	}

	out, err := tb.Call(ctx, tool, raw)
	if err != nil {
		return fmt.Errorf("remote: %w", err)
	}

	var snap remoteDisplay
	if err := json.Unmarshal([]byte(out), &snap); err != nil {
		return fmt.Errorf("remote: decode display: %w", err)
	}

	if snap.Previous != "" {
		fmt.Fprintln(stdout, snap.Previous)
	}
	fmt.Fprintln(stdout, snap.Display)

	return nil
}

func dialRemote(ctx context.Context, url, command string) (*mcpclient.MCPClient, error) {
	switch {
	case url != "" && command != "":
		return nil, errors.New("remote: use either --url or --cmd")
	case url != "":
		return mcpclient.NewHTTP(ctx, url)
	case strings.TrimSpace(command) != "":
		parts := strings.Fields(command)
		return mcpclient.New(ctx, parts[0], parts[1:]...)
	default:
		return nil, errors.New("remote: --url or --cmd is required")
	}
}
