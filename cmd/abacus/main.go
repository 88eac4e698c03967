package main

import (
	"flag"
	"fmt"
	"os"
)

// version is reported to MCP clients.
const version = "0.1.0"

func main() {
	// Handle subcommands before flag parsing.
	if len(os.Args) > 1 {
		var err error
		handled := true

		switch os.Args[1] {
		case "init":
			err = runInit(os.Args[2:])
		case "config":
			err = runConfig(os.Args[2:])
		case "serve":
			err = runServe(os.Args[2:])
		case "mcp":
			err = runMCP(os.Args[2:])
		case "replay":
			err = runReplay(os.Args[2:], os.Stdout)
		case "remote":
			err = runRemote(os.Args[2:], os.Stdout)
		default:
			handled = false
		}

		if handled {
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}
			return
		}
	}

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: abacus [flags]\n       abacus <command> [flags]\n\nFlags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nCommands:\n"+
			"  init    Initialize a .abacus directory with default structure and config\n"+
			"  config  Edit an existing config file interactively\n"+
			"  serve   Serve the browser calculator and MCP over HTTP\n"+
			"  mcp     Serve calculator tools over MCP on stdio\n"+
			"  replay  Replay key tapes and compare them with recorded transcripts\n"+
			"  remote  Press keys on a calculator served by another abacus process\n")
	}

	var common commonFlags
	common.register(flag.CommandLine)
	serveAddr := flag.String("serve", "", "also serve the browser UI on this address, sharing the terminal session")
	flag.Parse()

	if err := loadDotEnv(common.envFile); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := runTUI(common, *serveAddr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
