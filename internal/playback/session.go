package playback

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/everlyy/music-bot/internal/scrobble"
	"github.com/everlyy/music-bot/internal/tags"
)

var (
	ErrAlreadyPlaying = errors.New("a session is already playing")
	ErrNotPlaying     = errors.New("no session is playing")
)

const pollInterval = time.Second

// Session is the playback state machine. It is inert until Start and
// returns to inert on Stop or when the playback loop exits on its own.
// At most one playback loop runs at a time.
type Session struct {
	transport Transport
	members   Membership
	metadata  MetadataFunc
	queue     *scrobble.Queue
	log       *logrus.Entry

	mu      sync.Mutex
	active  bool
	skip    bool
	current string
	handle  Handle
	done    chan struct{}
}

// NewSession wires a session to its collaborators. The session starts
// idle.
func NewSession(transport Transport, members Membership, metadata MetadataFunc, queue *scrobble.Queue) *Session {
	return &Session{
		transport: transport,
		members:   members,
		metadata:  metadata,
		queue:     queue,
		log:       logrus.WithField("component", "playback"),
	}
}

// Start opens the transport and launches the playback loop. It returns
// ErrAlreadyPlaying when a session is active.
func (s *Session) Start(source TrackSource, channel string, notifier Notifier) error {
	done := make(chan struct{})
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return ErrAlreadyPlaying
	}
	s.active = true
	s.skip = false
	// Recorded before Open so a concurrent Stop always has a channel to
	// wait on.
	s.done = done
	s.mu.Unlock()

	handle, err := s.transport.Open(channel)
	if err != nil {
		s.mu.Lock()
		s.active = false
		s.mu.Unlock()
		close(done)
		return fmt.Errorf("open transport: %w", err)
	}

	s.mu.Lock()
	if !s.active {
		// Stopped while the transport was connecting; Stop is blocked
		// on done and owns nothing to release.
		s.mu.Unlock()
		handle.Disconnect()
		close(done)
		return nil
	}
	s.handle = handle
	s.mu.Unlock()

	go s.run(source, channel, notifier, done)
	return nil
}

// Stop tears the session down: stops the transport, disconnects, and
// returns the machine to idle. It waits for the playback loop to observe
// the flip and exit, bounded by one poll interval. Returns ErrNotPlaying
// when idle.
func (s *Session) Stop() error {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return ErrNotPlaying
	}
	done := s.done
	s.mu.Unlock()
	s.teardown()
	<-done
	return nil
}

// Skip requests that the current track stop; the loop picks up the flag
// within one poll interval. Returns ErrNotPlaying when idle.
func (s *Session) Skip() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return ErrNotPlaying
	}
	s.skip = true
	return nil
}

// CurrentTrack returns the track being played, or "" when idle or before
// the first selection.
func (s *Session) CurrentTrack() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Active reports whether a playback loop is running.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *Session) run(source TrackSource, channel string, notifier Notifier, done chan struct{}) {
	defer close(done)
	defer s.teardown()

	for s.Active() {
		playlist := source()
		if playlist == nil || len(playlist.Tracks) == 0 {
			notifier.Send("Playlist has no tracks, stopping playback")
			return
		}
		track := playlist.Tracks[rand.IntN(len(playlist.Tracks))]

		s.mu.Lock()
		s.current = track
		handle := s.handle
		s.mu.Unlock()
		if handle == nil {
			return
		}

		if err := handle.Play(track); err != nil {
			s.log.WithError(err).WithField("track", track).Warn("transport failed to play track, skipping")
			time.Sleep(pollInterval)
			continue
		}

		meta := s.metadata(track)
		if meta != nil {
			notifier.Send(fmt.Sprintf("Now playing %s by %s", meta.Title, meta.Artist))
			for _, listener := range s.members.Members(channel) {
				s.queue.Push(scrobble.NewEntry(listener, scrobble.KindNowPlaying, *meta))
			}
		} else {
			notifier.Send(fmt.Sprintf("No metadata for %s, this track will not be scrobbled", track))
		}

		s.pollTrack(handle, channel, meta)
	}
}

// pollTrack waits for the track to finish, watching for skip requests
// and the half-duration scrobble threshold on every tick. The threshold
// is driven by wall clock, not transport progress, so a lagging
// transport cannot suppress or double a scrobble.
func (s *Session) pollTrack(handle Handle, channel string, meta *tags.Metadata) {
	playStart := time.Now()
	scrobbled := false

	for s.Active() && handle.IsPlaying() {
		time.Sleep(pollInterval)

		s.mu.Lock()
		skip := s.skip
		s.skip = false
		s.mu.Unlock()
		if skip {
			handle.Stop()
			return
		}

		if !scrobbled && meta.Scrobblable() && time.Since(playStart) > meta.Duration/2 {
			for _, listener := range s.members.Members(channel) {
				s.queue.Push(scrobble.NewEntry(listener, scrobble.KindScrobble, *meta))
			}
			scrobbled = true
		}
	}
}

// teardown releases the transport and resets the machine to idle. Safe
// to call from both Stop and the loop's exit path.
func (s *Session) teardown() {
	s.mu.Lock()
	handle := s.handle
	s.handle = nil
	s.active = false
	s.skip = false
	s.current = ""
	s.mu.Unlock()

	if handle != nil {
		handle.Stop()
		handle.Disconnect()
	}
}
