package scrobble

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/everlyy/music-bot/internal/lastfm"
	"github.com/everlyy/music-bot/internal/session"
)

const idleSleep = 5 * time.Second

// SessionLookup resolves a listener to their linked Last.fm session, or
// nil when the listener never linked an account.
type SessionLookup interface {
	Lookup(listenerID string) (*session.ListenerSession, error)
}

// Submitter sends submissions to Last.fm on behalf of a session key.
type Submitter interface {
	UpdateNowPlaying(track lastfm.ScrobbleTrack, sessionKey string) error
	Scrobble(track lastfm.ScrobbleTrack, sessionKey string) error
}

var (
	_ SessionLookup = (*session.Store)(nil)
	_ Submitter     = (*lastfm.Client)(nil)
)

// Worker drains a queue with a single consumer goroutine. A failed or
// dropped entry never affects the entries behind it; nothing is retried.
type Worker struct {
	queue     *Queue
	sessions  SessionLookup
	submitter Submitter
	log       *logrus.Entry

	cancel context.CancelFunc
	done   chan struct{}
}

// NewWorker wires a worker to its queue and collaborators. Start must be
// called before entries are processed.
func NewWorker(queue *Queue, sessions SessionLookup, submitter Submitter) *Worker {
	return &Worker{
		queue:     queue,
		sessions:  sessions,
		submitter: submitter,
		log:       logrus.WithField("component", "scrobble-worker"),
	}
}

// Start launches the consumer goroutine.
func (w *Worker) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.done = make(chan struct{})
	go w.run(ctx)
}

// Stop signals the consumer to exit and waits for it. Entries still in
// the queue are abandoned.
func (w *Worker) Stop() {
	if w.cancel == nil {
		return
	}
	w.cancel()
	<-w.done
}

func (w *Worker) run(ctx context.Context) {
	defer close(w.done)
	for {
		entry, ok := w.queue.Pop()
		if !ok {
			select {
			case <-ctx.Done():
				return
			case <-time.After(idleSleep):
			}
			continue
		}
		w.process(entry)

		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

// process handles one entry. Every early return drops the entry for good.
func (w *Worker) process(entry Entry) {
	log := w.log.WithFields(logrus.Fields{
		"entry":    entry.ID,
		"listener": entry.ListenerID,
		"kind":     entry.Kind,
	})

	sess, err := w.sessions.Lookup(entry.ListenerID)
	if err != nil {
		log.WithError(err).Warn("session lookup failed, dropping entry")
		return
	}
	if sess == nil {
		log.Debug("listener has no linked session, dropping entry")
		return
	}

	m := entry.Metadata
	if m.Title == "" || m.Artist == "" {
		log.Debug("entry has no title or artist, dropping")
		return
	}

	track := lastfm.ScrobbleTrack{
		Artist:      m.Artist,
		Track:       m.Title,
		Album:       m.Album,
		AlbumArtist: m.EffectiveAlbumArtist(),
		Duration:    m.Duration,
		Timestamp:   time.Now(),
	}

	switch entry.Kind {
	case KindNowPlaying:
		err = w.submitter.UpdateNowPlaying(track, sess.SessionKey)
	case KindScrobble:
		err = w.submitter.Scrobble(track, sess.SessionKey)
	default:
		log.Warn("unknown entry kind, dropping")
		return
	}
	if err != nil {
		log.WithError(err).Warnf("%s submission failed", entry.Kind)
		return
	}
	log.WithFields(logrus.Fields{
		"artist": m.Artist,
		"title":  m.Title,
	}).Infof("%s submitted", entry.Kind)
}
