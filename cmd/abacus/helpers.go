package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/germanamz/abacus/pkg/abacusdir"
	"github.com/germanamz/abacus/pkg/engine"
	"github.com/joho/godotenv"
)

// commonFlags are accepted by the calculator itself and every subcommand that
// builds an engine.
type commonFlags struct {
	configPath string
	abacusDir  string
	envFile    string
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "path to configuration file (default: .abacus/config.yaml or abacus.yaml)")
	fs.StringVar(&c.abacusDir, "abacus-dir", ".abacus", "path to .abacus directory")
	fs.StringVar(&c.envFile, "env", ".env", "path to .env file (ignored if missing)")
}

// loadDotEnv loads environment variables from path. Missing files are ignored.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// resolveConfigPath returns the config file to use. Priority:
// 1. Explicit --config flag (non-empty)
// 2. .abacus/config.yaml (if it exists)
// 3. abacus.yaml (if it exists)
// An empty result means built-in defaults.
func resolveConfigPath(explicit, abacusDirPath string) string {
	if explicit != "" {
		return explicit
	}

	candidates := []string{
		filepath.Join(abacusDirPath, "config.yaml"),
		"abacus.yaml",
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// loadConfig resolves and loads the configuration described by c.
func (c commonFlags) loadConfig() (engine.Config, abacusdir.Dir, error) {
	d := abacusdir.New(c.abacusDir)

	cfg := engine.DefaultConfig()
	if path := resolveConfigPath(c.configPath, c.abacusDir); path != "" {
		loaded, err := engine.LoadConfig(path)
		if err != nil {
			return engine.Config{}, d, err
		}
		cfg = loaded
	}
	cfg.AbacusDir = d.Root()

	if err := cfg.Validate(); err != nil {
		return engine.Config{}, d, err
	}

	return cfg, d, nil
}

// newLogger returns a text logger at the configured level writing to w.
func newLogger(cfg engine.Config, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.LogLevel()}))
}

// newFileLogger logs to cfg.Log.File, or to the log file under the abacus
// directory. It is used while the terminal belongs to the TUI.
func newFileLogger(cfg engine.Config, d abacusdir.Dir) (*slog.Logger, io.Closer, error) {
	path := cfg.Log.File
	if path == "" {
		path = d.LogPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600) //nolint:gosec // path comes from config
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	return newLogger(cfg, f), f, nil
}
