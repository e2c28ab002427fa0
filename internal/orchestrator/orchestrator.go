// Package orchestrator is the surface the command handlers talk to. It
// holds the playlist aggregate and enforces the one-active-session rule
// by delegating to the playback state machine.
package orchestrator

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/everlyy/music-bot/internal/playback"
	"github.com/everlyy/music-bot/internal/playlists"
)

// ErrUnknownPlaylist is returned by Play when no loaded playlist carries
// the requested name.
var ErrUnknownPlaylist = errors.New("unknown playlist")

// Loader produces the full playlist aggregate. Each call replaces the
// previous result.
type Loader interface {
	LoadAll() []playlists.Playlist
}

var _ Loader = (*playlists.Sources)(nil)

// Orchestrator wires the playlist aggregate to the playback session.
type Orchestrator struct {
	session *playback.Session
	loader  Loader
	log     *logrus.Entry

	mu        sync.RWMutex
	aggregate []playlists.Playlist
}

// New creates the orchestrator and loads the initial aggregate.
func New(session *playback.Session, loader Loader) *Orchestrator {
	o := &Orchestrator{
		session: session,
		loader:  loader,
		log:     logrus.WithField("component", "orchestrator"),
	}
	o.ReloadPlaylists()
	return o
}

// Play starts playback of the named playlist in the given channel. It
// returns ErrUnknownPlaylist when the name matches nothing and
// playback.ErrAlreadyPlaying when a session is active.
func (o *Orchestrator) Play(name, channel string, notifier playback.Notifier) error {
	if o.FindPlaylist(name) == nil {
		return fmt.Errorf("%w: %s", ErrUnknownPlaylist, name)
	}

	// Resolved by name on every selection so a reload takes effect on
	// the next track without touching the one being played.
	source := func() *playlists.Playlist {
		return o.FindPlaylist(name)
	}

	if err := o.session.Start(source, channel, notifier); err != nil {
		return err
	}
	o.log.WithFields(logrus.Fields{
		"playlist": name,
		"channel":  channel,
	}).Info("playback started")
	return nil
}

// Stop ends the active session. Returns playback.ErrNotPlaying when
// idle.
func (o *Orchestrator) Stop() error {
	if err := o.session.Stop(); err != nil {
		return err
	}
	o.log.Info("playback stopped")
	return nil
}

// Skip requests the next track. Returns playback.ErrNotPlaying when
// idle.
func (o *Orchestrator) Skip() error {
	return o.session.Skip()
}

// CurrentTrack returns the track being played, or "" when idle.
func (o *Orchestrator) CurrentTrack() string {
	return o.session.CurrentTrack()
}

// ReloadPlaylists replaces the aggregate with a fresh load. Safe while a
// session is active; the currently playing track is unaffected.
func (o *Orchestrator) ReloadPlaylists() {
	loaded := o.loader.LoadAll()

	o.mu.Lock()
	o.aggregate = loaded
	o.mu.Unlock()

	o.log.WithField("playlists", len(loaded)).Info("playlists reloaded")
}

// Playlists returns the current aggregate.
func (o *Orchestrator) Playlists() []playlists.Playlist {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.aggregate
}

// FindPlaylist returns the named playlist from the current aggregate, or
// nil.
func (o *Orchestrator) FindPlaylist(name string) *playlists.Playlist {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return playlists.FindByName(o.aggregate, name)
}
