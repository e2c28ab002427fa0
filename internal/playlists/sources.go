package playlists

import (
	"os"

	"github.com/sirupsen/logrus"
)

// SearchPaths configures where playlists are loaded from. Empty fields
// disable the corresponding source.
type SearchPaths struct {
	StrawberryDB  string
	XSPFDir       string
	CollectionDir string
}

// Sources aggregates every configured playlist adapter. LoadAll fully
// replaces the previous result; callers own the returned slice.
type Sources struct {
	paths SearchPaths
	log   *logrus.Entry
}

// NewSources creates a playlist aggregator over the given search paths.
func NewSources(paths SearchPaths) *Sources {
	return &Sources{
		paths: paths,
		log:   logrus.WithField("component", "playlists"),
	}
}

// LoadAll parses every configured source and concatenates the results.
// A source that is configured but unreadable is logged and skipped so a
// broken strawberry.db cannot take the XSPF playlists down with it.
func (s *Sources) LoadAll() []Playlist {
	var playlists []Playlist

	if s.paths.StrawberryDB != "" {
		if _, err := os.Stat(s.paths.StrawberryDB); err == nil {
			pls, err := ParseStrawberryDB(s.paths.StrawberryDB)
			if err != nil {
				s.log.WithError(err).Warn("skipping strawberry database")
			} else {
				playlists = append(playlists, pls...)
			}
		}
	}

	if s.paths.XSPFDir != "" {
		pls, err := FindXSPF(s.paths.XSPFDir)
		if err != nil {
			s.log.WithError(err).Warn("skipping xspf directory")
		} else {
			playlists = append(playlists, pls...)
		}
	}

	if s.paths.CollectionDir != "" {
		pl, err := ParseCollection(s.paths.CollectionDir)
		if err != nil {
			s.log.WithError(err).Warn("skipping collection scan")
		} else {
			playlists = append(playlists, *pl)
		}
	}

	return playlists
}
