package playlists

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

const callbackTimeout = 3 * time.Second

func startWatcher(t *testing.T, dir string) (*Watcher, chan struct{}) {
	t.Helper()
	fired := make(chan struct{}, 8)
	w, err := WatchXSPFDir(dir, func() { fired <- struct{}{} })
	if err != nil {
		t.Fatalf("WatchXSPFDir() error = %v", err)
	}
	t.Cleanup(func() { w.Close() })
	return w, fired
}

func waitForCallback(t *testing.T, fired chan struct{}, context string) {
	t.Helper()
	select {
	case <-fired:
	case <-time.After(callbackTimeout):
		t.Fatalf("callback did not fire after %s", context)
	}
}

func TestWatchXSPFDir_FiresOnPlaylistChanges(t *testing.T) {
	dir := t.TempDir()
	_, fired := startWatcher(t, dir)

	path := filepath.Join(dir, "chill.xspf")
	if err := os.WriteFile(path, []byte(sampleXSPF), 0o600); err != nil {
		t.Fatalf("write xspf: %v", err)
	}
	waitForCallback(t, fired, "creating a playlist")

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove xspf: %v", err)
	}
	waitForCallback(t, fired, "removing a playlist")
}

func TestWatchXSPFDir_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	_, fired := startWatcher(t, dir)

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".hidden.xspf"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case <-fired:
		t.Fatal("callback fired for a non-playlist file")
	case <-time.After(2 * reloadDebounce):
	}
}

func TestWatchXSPFDir_DebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	_, fired := startWatcher(t, dir)

	// Editors save playlists in several writes; a burst should collapse
	// into one callback.
	path := filepath.Join(dir, "radio.xspf")
	for range 5 {
		if err := os.WriteFile(path, []byte(sampleXSPF), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	waitForCallback(t, fired, "a burst of writes")

	select {
	case <-fired:
		t.Error("burst of writes fired more than one callback")
	case <-time.After(2 * reloadDebounce):
	}
}

func TestIsPlaylistEvent(t *testing.T) {
	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{
			name:  "xspf write",
			event: fsnotify.Event{Name: "/pl/chill.xspf", Op: fsnotify.Write},
			want:  true,
		},
		{
			name:  "xspf create",
			event: fsnotify.Event{Name: "/pl/new.xspf", Op: fsnotify.Create},
			want:  true,
		},
		{
			name:  "xspf remove",
			event: fsnotify.Event{Name: "/pl/old.xspf", Op: fsnotify.Remove},
			want:  true,
		},
		{
			name:  "xspf rename",
			event: fsnotify.Event{Name: "/pl/moved.XSPF", Op: fsnotify.Rename},
			want:  true,
		},
		{
			name:  "xspf chmod only",
			event: fsnotify.Event{Name: "/pl/chill.xspf", Op: fsnotify.Chmod},
			want:  false,
		},
		{
			name:  "dotfile",
			event: fsnotify.Event{Name: "/pl/.chill.xspf", Op: fsnotify.Write},
			want:  false,
		},
		{
			name:  "other extension",
			event: fsnotify.Event{Name: "/pl/cover.jpg", Op: fsnotify.Create},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isPlaylistEvent(tt.event); got != tt.want {
				t.Errorf("isPlaylistEvent(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}
