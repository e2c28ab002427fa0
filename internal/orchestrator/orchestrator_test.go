package orchestrator

import (
	"errors"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/everlyy/music-bot/internal/playback"
	"github.com/everlyy/music-bot/internal/playlists"
	"github.com/everlyy/music-bot/internal/scrobble"
	"github.com/everlyy/music-bot/internal/tags"
)

type fakeLoader struct {
	mu        sync.Mutex
	playlists []playlists.Playlist
}

func (f *fakeLoader) LoadAll() []playlists.Playlist {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]playlists.Playlist(nil), f.playlists...)
}

func (f *fakeLoader) set(pls ...playlists.Playlist) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.playlists = pls
}

type noopNotifier struct{}

func (noopNotifier) Send(string) {}

type noMembers struct{}

func (noMembers) Members(string) []string { return nil }

func noMetadata(string) *tags.Metadata { return nil }

func newTestOrchestrator(loader Loader) (*Orchestrator, *playback.MockTransport) {
	transport := playback.NewMockTransport()
	session := playback.NewSession(transport, noMembers{}, noMetadata, scrobble.NewQueue())
	return New(session, loader), transport
}

func TestPlayUnknownPlaylist(t *testing.T) {
	loader := &fakeLoader{}
	loader.set(playlists.Playlist{Name: "radio", Tracks: []string{"a"}})
	o, _ := newTestOrchestrator(loader)

	err := o.Play("does-not-exist", "ch", noopNotifier{})
	if !errors.Is(err, ErrUnknownPlaylist) {
		t.Errorf("Play() = %v, want ErrUnknownPlaylist", err)
	}
}

func TestPlayWhilePlaying(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		loader := &fakeLoader{}
		loader.set(playlists.Playlist{Name: "radio", Tracks: []string{"a"}})
		o, _ := newTestOrchestrator(loader)

		if err := o.Play("radio", "ch", noopNotifier{}); err != nil {
			t.Fatalf("Play() = %v", err)
		}
		if err := o.Play("radio", "ch", noopNotifier{}); !errors.Is(err, playback.ErrAlreadyPlaying) {
			t.Errorf("second Play() = %v, want ErrAlreadyPlaying", err)
		}

		if err := o.Stop(); err != nil {
			t.Errorf("Stop() = %v", err)
		}
		synctest.Wait()
	})
}

func TestStopAndSkipWhileIdle(t *testing.T) {
	loader := &fakeLoader{}
	o, _ := newTestOrchestrator(loader)

	if err := o.Stop(); !errors.Is(err, playback.ErrNotPlaying) {
		t.Errorf("Stop() = %v, want ErrNotPlaying", err)
	}
	if err := o.Skip(); !errors.Is(err, playback.ErrNotPlaying) {
		t.Errorf("Skip() = %v, want ErrNotPlaying", err)
	}
	if o.CurrentTrack() != "" {
		t.Errorf("CurrentTrack() = %q, want empty", o.CurrentTrack())
	}
}

func TestReloadDuringPlayback(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		loader := &fakeLoader{}
		loader.set(playlists.Playlist{Name: "radio", Tracks: []string{"old-track"}})
		o, transport := newTestOrchestrator(loader)

		if err := o.Play("radio", "ch", noopNotifier{}); err != nil {
			t.Fatalf("Play() = %v", err)
		}
		synctest.Wait()
		if o.CurrentTrack() != "old-track" {
			t.Fatalf("CurrentTrack() = %q, want %q", o.CurrentTrack(), "old-track")
		}

		loader.set(playlists.Playlist{Name: "radio", Tracks: []string{"new-track"}})
		o.ReloadPlaylists()

		// The playing track is a value, not a reference into the aggregate.
		time.Sleep(3 * time.Second)
		synctest.Wait()
		if o.CurrentTrack() != "old-track" {
			t.Errorf("reload interrupted playback: CurrentTrack() = %q", o.CurrentTrack())
		}

		transport.Handle().FinishTrack()
		time.Sleep(3 * time.Second)
		synctest.Wait()
		if o.CurrentTrack() != "new-track" {
			t.Errorf("next selection CurrentTrack() = %q, want %q from new aggregate", o.CurrentTrack(), "new-track")
		}

		o.Stop()
		synctest.Wait()
	})
}

func TestReloadRemovingActivePlaylistEndsSession(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		loader := &fakeLoader{}
		loader.set(playlists.Playlist{Name: "radio", Tracks: []string{"a"}})
		o, transport := newTestOrchestrator(loader)

		if err := o.Play("radio", "ch", noopNotifier{}); err != nil {
			t.Fatalf("Play() = %v", err)
		}
		synctest.Wait()

		loader.set()
		o.ReloadPlaylists()

		transport.Handle().FinishTrack()
		time.Sleep(3 * time.Second)
		synctest.Wait()

		if o.CurrentTrack() != "" {
			t.Errorf("CurrentTrack() = %q after playlist vanished, want empty", o.CurrentTrack())
		}
		if err := o.Stop(); !errors.Is(err, playback.ErrNotPlaying) {
			t.Errorf("Stop() = %v, want ErrNotPlaying after loop exit", err)
		}
	})
}

func TestFindPlaylist(t *testing.T) {
	loader := &fakeLoader{}
	loader.set(
		playlists.Playlist{Name: "radio", Tracks: []string{"a"}},
		playlists.Playlist{Name: "chill", Tracks: []string{"b"}},
	)
	o, _ := newTestOrchestrator(loader)

	if got := o.FindPlaylist("chill"); got == nil || got.Name != "chill" {
		t.Errorf("FindPlaylist(chill) = %v", got)
	}
	if got := o.FindPlaylist("nope"); got != nil {
		t.Errorf("FindPlaylist(nope) = %v, want nil", got)
	}
	if got := len(o.Playlists()); got != 2 {
		t.Errorf("len(Playlists()) = %d, want 2", got)
	}
}
