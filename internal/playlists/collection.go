package playlists

import (
	"io/fs"
	"path/filepath"

	"github.com/everlyy/music-bot/internal/tags"
)

// CollectionName is the name of the playlist built from a music folder.
const CollectionName = "All Music"

// ParseCollection walks a music folder recursively and collects every
// supported audio file into a single playlist.
func ParseCollection(root string) (*Playlist, error) {
	var tracks []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && tags.IsMusicFile(path) {
			tracks = append(tracks, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Playlist{Name: CollectionName, Source: root, Tracks: tracks}, nil
}
