package playlists

import (
	"encoding/xml"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// xspfDocument maps the parts of an XSPF file we care about: the track
// locations. Everything else (titles, annotations) comes from the files'
// own tags at play time.
type xspfDocument struct {
	XMLName xml.Name `xml:"playlist"`
	Tracks  []struct {
		Location string `xml:"location"`
	} `xml:"trackList>track"`
}

// ParseXSPF reads a single .xspf playlist file. The playlist name is the
// file name without extension.
func ParseXSPF(path string) (*Playlist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read xspf: %w", err)
	}

	var doc xspfDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse xspf %s: %w", path, err)
	}

	tracks := make([]string, 0, len(doc.Tracks))
	for _, t := range doc.Tracks {
		loc := strings.TrimSpace(t.Location)
		if loc == "" {
			continue
		}
		tracks = append(tracks, unescapeLocation(loc))
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &Playlist{Name: name, Source: path, Tracks: tracks}, nil
}

// FindXSPF parses every .xspf file directly inside dir.
func FindXSPF(dir string) ([]Playlist, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan xspf dir: %w", err)
	}

	var playlists []Playlist
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".xspf") {
			continue
		}
		pl, err := ParseXSPF(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		playlists = append(playlists, *pl)
	}
	return playlists, nil
}

// unescapeLocation percent-decodes a track location and strips a file://
// scheme if present. Locations that fail to decode are kept verbatim.
func unescapeLocation(loc string) string {
	if strings.HasPrefix(loc, "file://") {
		if u, err := url.Parse(loc); err == nil {
			return u.Path
		}
	}
	if decoded, err := url.PathUnescape(loc); err == nil {
		return decoded
	}
	return loc
}
