package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/germanamz/abacus/cmd/abacus/internal/configwizard"
	"github.com/germanamz/abacus/pkg/abacusdir"
	"github.com/germanamz/abacus/pkg/engine"
)

// exampleTape is written to tapes/ on init so "abacus replay" has something
// to run.
const exampleTape = `# Replay with: abacus replay
# Each token is a key; runs like 1234 are split into single keys.
1234 * 2 =       # 2,468
+ 0.1 + 0.2 =    # chained operations are computed left to right
c
1 / 0 =          # Error
`

func runInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: abacus init [flags]\n\nInitialize a .abacus directory with default structure and config.\n\nFlags:\n")
		fs.PrintDefaults()
	}
	dir := fs.String("abacus-dir", ".abacus", "path to .abacus directory")
	force := fs.Bool("force", false, "overwrite an existing config")
	defaults := fs.Bool("defaults", false, "write the default config without asking")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := engine.DefaultConfig()
	if !*defaults {
		var err error
		if cfg, err = configwizard.Run(cfg); err != nil {
			return err
		}
	}

	d := abacusdir.New(*dir)
	if err := initDir(d, cfg, *force); err != nil {
		return err
	}

	fmt.Printf("Initialized %s\n", d.Root())

	return nil
}

// initDir bootstraps d with cfg and an example tape.
func initDir(d abacusdir.Dir, cfg engine.Config, force bool) error {
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}

	if err := abacusdir.BootstrapWithConfig(d, data, force); err != nil {
		return err
	}

	example := filepath.Join(d.TapesDir(), "example.tape")
	if _, err := os.Stat(example); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(example, []byte(exampleTape), 0o600); err != nil {
			return fmt.Errorf("write example tape: %w", err)
		}
	}

	return nil
}
