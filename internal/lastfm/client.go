// Package lastfm wraps the Last.fm API for multi-listener scrobbling.
// Unlike a desktop player, the bot scrobbles on behalf of every listener
// in the voice channel, so each call carries that listener's session key.
package lastfm

import (
	"errors"
	"fmt"
	"sync"

	"github.com/shkh/lastfm-go/lastfm"
)

// ErrNoSessionKey is returned when an operation requires a listener
// session key and none was provided.
var ErrNoSessionKey = errors.New("no session key")

// Client wraps the Last.fm API for scrobbling operations.
type Client struct {
	mu     sync.Mutex
	api    *lastfm.Api
	apiKey string
}

// New creates a new Last.fm client with the given API credentials.
func New(apiKey, apiSecret string) *Client {
	return &Client{
		api:    lastfm.New(apiKey, apiSecret),
		apiKey: apiKey,
	}
}

// UpdateNowPlaying sends a "now playing" notification on behalf of the
// listener owning sessionKey.
func (c *Client) UpdateNowPlaying(track ScrobbleTrack, sessionKey string) error {
	if sessionKey == "" {
		return ErrNoSessionKey
	}

	params := trackParams(track)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.api.SetSession(sessionKey)
	if _, err := c.api.Track.UpdateNowPlaying(params); err != nil {
		return fmt.Errorf("update now playing: %w", err)
	}
	return nil
}

// Scrobble submits a track play on behalf of the listener owning
// sessionKey.
func (c *Client) Scrobble(track ScrobbleTrack, sessionKey string) error {
	if sessionKey == "" {
		return ErrNoSessionKey
	}

	params := trackParams(track)
	params["timestamp"] = track.Timestamp.Unix()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.api.SetSession(sessionKey)
	if _, err := c.api.Track.Scrobble(params); err != nil {
		return fmt.Errorf("scrobble: %w", err)
	}
	return nil
}

func trackParams(track ScrobbleTrack) lastfm.P {
	params := lastfm.P{
		"artist": track.Artist,
		"track":  track.Track,
	}
	if track.Album != "" {
		params["album"] = track.Album
	}
	if track.AlbumArtist != "" && track.AlbumArtist != track.Artist {
		params["albumArtist"] = track.AlbumArtist
	}
	if track.Duration > 0 {
		params["duration"] = int(track.Duration.Seconds())
	}
	return params
}
