package abacusdir

import (
	"errors"
	"fmt"
	"os"
)

const gitignoreContent = "local/\n"

// EnsureStructure creates the local/ and tapes/ directories and the .gitignore
// file if they are missing. It is safe to call multiple times. It does NOT
// create the .abacus/ root itself; the caller decides whether to bootstrap
// from scratch or only set up an existing directory.
func EnsureStructure(d Dir) error {
	if err := os.MkdirAll(d.LocalDir(), 0o750); err != nil {
		return fmt.Errorf("abacusdir: create local dir: %w", err)
	}

	if err := os.MkdirAll(d.TapesDir(), 0o750); err != nil {
		return fmt.Errorf("abacusdir: create tapes dir: %w", err)
	}

	if err := ensureGitignore(d); err != nil {
		return fmt.Errorf("abacusdir: gitignore: %w", err)
	}

	return nil
}

// BootstrapWithConfig creates the .abacus/ root, its structure and a config
// file holding configYAML. An existing config file is left untouched unless
// force is set.
func BootstrapWithConfig(d Dir, configYAML []byte, force bool) error {
	if err := os.MkdirAll(d.Root(), 0o750); err != nil {
		return fmt.Errorf("abacusdir: create root: %w", err)
	}

	if err := EnsureStructure(d); err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(d.ConfigPath()); err == nil {
			return nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("abacusdir: stat config: %w", err)
		}
	}

	if err := os.WriteFile(d.ConfigPath(), configYAML, 0o600); err != nil {
		return fmt.Errorf("abacusdir: write config: %w", err)
	}

	return nil
}

// ensureGitignore creates the .gitignore file if it does not exist.
func ensureGitignore(d Dir) error {
	path := d.GitignorePath()

	if _, err := os.Stat(path); err == nil {
		return nil // already exists
	}

	return os.WriteFile(path, []byte(gitignoreContent), 0o600)
}
