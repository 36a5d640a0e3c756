package carousel

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
)

func newTestFs(t *testing.T, paths ...string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, p := range paths {
		if err := afero.WriteFile(fs, p, []byte("x"), 0o644); err != nil {
			t.Fatalf("writing %s: %v", p, err)
		}
	}
	return fs
}

func TestForwardBackwardRoundTrip(t *testing.T) {
	fs := newTestFs(t,
		"/pics/a.jpg", "/pics/b.png", "/pics/c.gif", "/pics/d.webp",
		"/pics/notes.txt", // ignored
	)
	nav := NewNavigator(fs)

	for _, start := range []string{"/pics/a.jpg", "/pics/b.png", "/pics/d.webp"} {
		next, err := nav.Next(start, Forward, "")
		if err != nil {
			t.Fatalf("forward from %s: %v", start, err)
		}
		back, err := nav.Next(next, Backward, "")
		if err != nil {
			t.Fatalf("backward from %s: %v", next, err)
		}
		if back != start {
			t.Errorf("round trip from %s went %s -> %s", start, next, back)
		}
	}
}

func TestForwardWrapsAround(t *testing.T) {
	fs := newTestFs(t, "/pics/a.jpg", "/pics/b.jpg", "/pics/c.jpg")
	nav := NewNavigator(fs)

	next, err := nav.Next("/pics/c.jpg", Forward, "")
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if next != "/pics/a.jpg" {
		t.Errorf("forward from last = %s, want wrap to /pics/a.jpg", next)
	}

	prev, err := nav.Next("/pics/a.jpg", Backward, "")
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if prev != "/pics/c.jpg" {
		t.Errorf("backward from first = %s, want wrap to /pics/c.jpg", prev)
	}
}

func TestDirectoryOverrideFallsBackToEnds(t *testing.T) {
	fs := newTestFs(t, "/other/x.png", "/other/y.png", "/pics/current.jpg")
	nav := NewNavigator(fs)

	first, err := nav.Next("/pics/current.jpg", Forward, "/other")
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if first != "/other/x.png" {
		t.Errorf("forward into foreign directory = %s, want first image", first)
	}

	last, err := nav.Next("/pics/current.jpg", Backward, "/other")
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if last != "/other/y.png" {
		t.Errorf("backward into foreign directory = %s, want last image", last)
	}
}

func TestRandomNeverReturnsCurrent(t *testing.T) {
	fs := newTestFs(t, "/pics/a.jpg", "/pics/b.jpg", "/pics/c.jpg")
	nav := NewNavigator(fs)

	// Drive the picker through every candidate index.
	for i := 0; i < 2; i++ {
		nav.pick = func(n int) int { return i % n }
		got, err := nav.Next("/pics/b.jpg", Random, "")
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if got == "/pics/b.jpg" {
			t.Error("random selection returned the current image")
		}
	}
}

func TestNotEnoughImages(t *testing.T) {
	tests := []struct {
		name    string
		paths   []string
		current string
		dir     Direction
		wantErr error
	}{
		{"empty directory", []string{"/pics/readme.md"}, "/pics/a.jpg", Forward, ErrNoImages},
		{"single image forward", []string{"/pics/a.jpg"}, "/pics/a.jpg", Forward, ErrOnlyImage},
		{"single image random", []string{"/pics/a.jpg"}, "/pics/a.jpg", Random, ErrOnlyImage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nav := NewNavigator(newTestFs(t, tt.paths...))
			_, err := nav.Next(tt.current, tt.dir, "")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Next() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestExtensionsAreCaseInsensitive(t *testing.T) {
	fs := newTestFs(t, "/pics/A.JPG", "/pics/b.PnG")
	nav := NewNavigator(fs)

	next, err := nav.Next("/pics/A.JPG", Forward, "")
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if next != "/pics/b.PnG" {
		t.Errorf("Next = %s, want the mixed-case png", next)
	}
}
