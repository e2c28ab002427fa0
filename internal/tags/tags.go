// Package tags reads track metadata for playback announcements and
// scrobbling.
package tags

import (
	"strings"
	"time"
)

// File extensions the bot will stream and scan for.
const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
	ExtM4A  = ".m4a"
	ExtWAV  = ".wav"
	ExtOGG  = ".ogg"
	ExtOPUS = ".opus"
)

// Metadata holds the tag fields a scrobble submission needs.
// Empty strings mean the tag is absent.
type Metadata struct {
	Title       string
	Artist      string
	Album       string
	AlbumArtist string
	Duration    time.Duration
}

// Scrobblable reports whether the metadata carries the fields Last.fm
// requires for a scrobble: title, artist, and a positive duration.
func (m *Metadata) Scrobblable() bool {
	return m != nil && m.Title != "" && m.Artist != "" && m.Duration > 0
}

// EffectiveAlbumArtist returns the album artist, falling back to the
// track artist when the tag is absent.
func (m *Metadata) EffectiveAlbumArtist() string {
	if m.AlbumArtist != "" {
		return m.AlbumArtist
	}
	return m.Artist
}

// IsMusicFile returns true if the path has a supported music file extension.
func IsMusicFile(path string) bool {
	ext := strings.ToLower(path)
	if idx := strings.LastIndex(ext, "."); idx >= 0 {
		ext = ext[idx:]
	} else {
		return false
	}
	switch ext {
	case ExtMP3, ExtFLAC, ExtM4A, ExtWAV, ExtOGG, ExtOPUS:
		return true
	}
	return false
}
