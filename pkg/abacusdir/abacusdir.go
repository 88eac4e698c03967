// Package abacusdir encapsulates all path knowledge for the .abacus/ project
// directory. It provides a Dir value object with accessors for the config
// file, recorded tapes and local runtime state such as the log file.
package abacusdir

import (
	"os"
	"path/filepath"
	"sort"
)

// Dir is a value object that resolves paths within a .abacus/ directory.
type Dir struct {
	root string
}

// New creates a Dir rooted at the given path. The path is converted to an
// absolute path. No I/O is performed; use EnsureStructure to create the
// directory layout.
func New(root string) Dir {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}

	return Dir{root: abs}
}

// Root returns the absolute path to the .abacus/ directory.
func (d Dir) Root() string { return d.root }

// ConfigPath returns the path to the main config file.
func (d Dir) ConfigPath() string { return filepath.Join(d.root, "config.yaml") }

// TapesDir returns the path to the directory holding replay tapes.
func (d Dir) TapesDir() string { return filepath.Join(d.root, "tapes") }

// LocalDir returns the path to the local (gitignored) runtime state directory.
func (d Dir) LocalDir() string { return filepath.Join(d.root, "local") }

// LogPath returns the path to the log file inside local/.
func (d Dir) LogPath() string { return filepath.Join(d.root, "local", "abacus.log") }

// GitignorePath returns the path to the .gitignore file inside .abacus/.
func (d Dir) GitignorePath() string { return filepath.Join(d.root, ".gitignore") }

// Tapes returns sorted paths of all *.tape files in the tapes directory.
// Returns nil if the directory does not exist.
func (d Dir) Tapes() []string {
	matches, err := filepath.Glob(filepath.Join(d.TapesDir(), "*.tape"))
	if err != nil || len(matches) == 0 {
		return nil
	}

	sort.Strings(matches)

	return matches
}

// Exists reports whether the .abacus/ root directory exists on disk.
func (d Dir) Exists() bool {
	info, err := os.Stat(d.root)

	return err == nil && info.IsDir()
}
