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

func runConfig(args []string) error {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: abacus config [flags]\n\nEdit an existing config file interactively.\n\nFlags:\n")
		fs.PrintDefaults()
	}
	dir := fs.String("abacus-dir", ".abacus", "path to .abacus directory")
	configPath := fs.String("config", "", "path to configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resolved := resolveConfigPath(*configPath, *dir)
	if resolved == "" {
		resolved = abacusdir.New(*dir).ConfigPath()
	}

	// Load raw so ${VAR} references survive the round trip.
	cfg := engine.DefaultConfig()
	if _, err := os.Stat(resolved); err == nil {
		loaded, loadErr := engine.LoadConfigRaw(resolved)
		if loadErr != nil {
			return fmt.Errorf("loading existing config: %w", loadErr)
		}
		cfg = loaded
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking config file: %w", err)
	}

	edited, err := configwizard.Run(cfg)
	if err != nil {
		return err
	}

	data, err := edited.Marshal()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o750); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(resolved, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Printf("Saved %s\n", resolved)

	return nil
}
