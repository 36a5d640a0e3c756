package state

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

// DefaultGrace is how long Preempt waits after signalling a running
// predecessor. Best effort only; the point is to let it exit cleanly,
// not to guarantee it has.
const DefaultGrace = 100 * time.Millisecond

// Lock is a PID-file lock with supersession semantics: acquiring it
// terminates whichever process holds it. The newest invocation always
// wins, so an in-flight generation never blocks a fresh one.
type Lock struct {
	fs    afero.Fs
	path  string
	grace time.Duration

	// signal delivers SIGTERM to a PID; overridable in tests.
	signal func(pid int) error
}

// NewLock builds a lock around the given PID file.
func NewLock(fs afero.Fs, path string) *Lock {
	return &Lock{
		fs:    fs,
		path:  path,
		grace: DefaultGrace,
		signal: func(pid int) error {
			proc, err := os.FindProcess(pid)
			if err != nil {
				return err
			}
			return proc.Signal(syscall.SIGTERM)
		},
	}
}

// Preempt terminates any recorded holder and removes the lock file.
// A holder that is already gone is the common case and not an error;
// a lock file whose contents are not a PID is fatal, because ownership
// cannot be determined safely.
func (l *Lock) Preempt() error {
	data, err := afero.ReadFile(l.fs, l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading lock file %s: %w", l.path, err)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return fmt.Errorf("invalid PID in lock file %s: %w", l.path, err)
	}

	log.Warnf("found existing generation process (PID %d), terminating it", pid)
	if err := l.signal(pid); err != nil {
		// Already exited, most likely. The stale file still goes away.
		log.Debugf("signalling PID %d: %v", pid, err)
	} else {
		time.Sleep(l.grace)
	}

	if err := l.fs.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing lock file %s: %w", l.path, err)
	}
	return nil
}

// Acquire preempts any holder and records this process as the new one.
func (l *Lock) Acquire() error {
	if err := l.Preempt(); err != nil {
		return err
	}
	if err := l.fs.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("creating lock directory: %w", err)
	}
	if err := afero.WriteFile(l.fs, l.path, []byte(strconv.Itoa(os.Getpid())), 0o644); err != nil {
		return fmt.Errorf("writing lock file %s: %w", l.path, err)
	}
	return nil
}

// Release removes the lock file. Releasing an already-released lock is
// a no-op.
func (l *Lock) Release() error {
	if err := l.fs.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing lock file %s: %w", l.path, err)
	}
	return nil
}
