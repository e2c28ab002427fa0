// Package playback owns the single active playback session: it selects
// tracks, drives the voice transport, samples channel membership, and
// feeds the scrobble queue at the right moments.
package playback

import (
	"github.com/everlyy/music-bot/internal/playlists"
	"github.com/everlyy/music-bot/internal/tags"
)

// Transport connects to a voice channel and streams tracks into it.
type Transport interface {
	Open(channel string) (Handle, error)
}

// Handle is one live voice connection.
type Handle interface {
	Play(track string) error
	IsPlaying() bool
	Stop()
	Disconnect()
}

// Notifier delivers status messages back to wherever playback was
// requested from.
type Notifier interface {
	Send(text string)
}

// Membership lists the listeners currently in a channel, excluding the
// bot itself.
type Membership interface {
	Members(channel string) []string
}

// MetadataFunc reads tags for a track. A nil result means the track has
// no usable metadata and will play without scrobbling.
type MetadataFunc func(track string) *tags.Metadata

// TrackSource resolves the playlist to draw the next track from. It is
// called once per selection so a reload takes effect on the following
// track. A nil result means the playlist is no longer available.
type TrackSource func() *playlists.Playlist
