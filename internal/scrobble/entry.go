// Package scrobble queues now-playing and scrobble submissions produced
// by the playback loop and drains them against the Last.fm API in the
// background, one entry at a time.
package scrobble

import (
	"time"

	"github.com/google/uuid"

	"github.com/everlyy/music-bot/internal/tags"
)

// Kind distinguishes a lightweight "now playing" update from a scrobble.
type Kind int

const (
	KindNowPlaying Kind = iota
	KindScrobble
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNowPlaying:
		return "now-playing"
	case KindScrobble:
		return "scrobble"
	default:
		return "unknown"
	}
}

// Entry is one pending submission for one listener. Entries are created
// by the playback loop and consumed exactly once by the worker; they are
// never mutated after creation.
type Entry struct {
	ID         uuid.UUID
	ListenerID string
	Kind       Kind
	Metadata   tags.Metadata
	EnqueuedAt time.Time
}

// NewEntry creates an entry for a listener with a fresh correlation ID.
func NewEntry(listenerID string, kind Kind, metadata tags.Metadata) Entry {
	return Entry{
		ID:         uuid.New(),
		ListenerID: listenerID,
		Kind:       kind,
		Metadata:   metadata,
		EnqueuedAt: time.Now(),
	}
}
