package state

import (
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/spf13/afero"
)

const lockPath = "/state/generation.lock"

func newTestLock(fs afero.Fs) (*Lock, *[]int) {
	l := NewLock(fs, lockPath)
	l.grace = time.Millisecond
	var signalled []int
	l.signal = func(pid int) error {
		signalled = append(signalled, pid)
		return nil
	}
	return l, &signalled
}

func TestAcquireWithoutHolder(t *testing.T) {
	fs := afero.NewMemMapFs()
	l, signalled := newTestLock(fs)

	if err := l.Acquire(); err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if len(*signalled) != 0 {
		t.Errorf("signalled %v with no lock file present", *signalled)
	}

	data, err := afero.ReadFile(fs, lockPath)
	if err != nil {
		t.Fatalf("lock file not written: %v", err)
	}
	if string(data) != strconv.Itoa(os.Getpid()) {
		t.Errorf("lock file holds %q, want own PID", data)
	}
}

func TestAcquireSupersedesHolder(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, lockPath, []byte(" 4242 \n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l, signalled := newTestLock(fs)

	if err := l.Acquire(); err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if len(*signalled) != 1 || (*signalled)[0] != 4242 {
		t.Errorf("signalled %v, want [4242]", *signalled)
	}

	data, _ := afero.ReadFile(fs, lockPath)
	if string(data) != strconv.Itoa(os.Getpid()) {
		t.Errorf("lock file holds %q after supersession, want own PID", data)
	}
}

func TestAcquireOverDeadHolder(t *testing.T) {
	// The recorded PID no longer runs; signalling fails, which must be
	// swallowed, the stale file removed, and the new PID written.
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, lockPath, []byte("99999"), 0o644); err != nil {
		t.Fatal(err)
	}
	l, _ := newTestLock(fs)
	l.signal = func(pid int) error { return os.ErrProcessDone }

	if err := l.Acquire(); err != nil {
		t.Fatalf("Acquire over dead holder: %v", err)
	}
	data, _ := afero.ReadFile(fs, lockPath)
	if string(data) != strconv.Itoa(os.Getpid()) {
		t.Errorf("lock file holds %q, want own PID", data)
	}
}

func TestAcquireRejectsMalformedPID(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, lockPath, []byte("not-a-pid"), 0o644); err != nil {
		t.Fatal(err)
	}
	l, signalled := newTestLock(fs)

	if err := l.Acquire(); err == nil {
		t.Fatal("malformed PID accepted")
	}
	if len(*signalled) != 0 {
		t.Errorf("signalled %v despite malformed PID", *signalled)
	}
}

func TestReleaseIsIdempotent(t *testing.T) {
	fs := afero.NewMemMapFs()
	l, _ := newTestLock(fs)

	if err := l.Acquire(); err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if err := l.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if err := l.Release(); err != nil {
		t.Errorf("second Release errored: %v", err)
	}
	if _, err := fs.Stat(lockPath); !os.IsNotExist(err) {
		t.Error("lock file still present after release")
	}
}
