package lastfm

import "time"

// ScrobbleTrack contains track metadata for a scrobble or now-playing
// submission.
type ScrobbleTrack struct {
	Artist      string
	Track       string
	Album       string
	AlbumArtist string
	Duration    time.Duration
	Timestamp   time.Time // When the listen happened; ignored for now playing
}
