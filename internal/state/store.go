// Package state owns the files quotepaper persists between
// invocations: the last-input cache, the generation lock, and the
// rendered output images. Everything goes through an injected
// filesystem so tests can run against an in-memory one.
package state

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

const appDir = "quotepaper"

// Store resolves and reads/writes the persisted files.
type Store struct {
	fs       afero.Fs
	cacheDir string
	stateDir string
}

// NewStore places files under the XDG cache and state directories,
// falling back to the conventional locations under $HOME.
func NewStore(fs afero.Fs) *Store {
	return &Store{
		fs:       fs,
		cacheDir: filepath.Join(xdgDir("XDG_CACHE_HOME", ".cache"), appDir),
		stateDir: filepath.Join(xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state")), appDir),
	}
}

func xdgDir(env, fallback string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	return filepath.Join(os.Getenv("HOME"), fallback)
}

// LastInputPath is the cache file holding the most recently used
// input image path as a single line.
func (s *Store) LastInputPath() string {
	return filepath.Join(s.cacheDir, "last_input.txt")
}

// StatePath resolves a file name inside the state directory.
func (s *Store) StatePath(name string) string {
	return filepath.Join(s.stateDir, name)
}

// SaveLastInput records path as the current carousel position,
// overwriting any previous value.
func (s *Store) SaveLastInput(path string) error {
	target := s.LastInputPath()
	if err := s.fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}
	if err := afero.WriteFile(s.fs, target, []byte(path), 0o644); err != nil {
		return fmt.Errorf("writing last input cache: %w", err)
	}
	return nil
}

// LoadLastInput returns the cached input path, trimmed. A missing
// cache is an actionable error: the user has to supply an input once.
func (s *Store) LoadLastInput() (string, error) {
	data, err := afero.ReadFile(s.fs, s.LastInputPath())
	if err != nil {
		return "", fmt.Errorf("no input file provided and no cached input file found; "+
			"run `quotepaper extend <path-to-image>` once: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// EnsureStateDir creates the state directory for output files.
func (s *Store) EnsureStateDir() error {
	if err := s.fs.MkdirAll(s.stateDir, 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	return nil
}
