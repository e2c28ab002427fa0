// Package playlists loads track lists from the sources the bot knows how
// to read: XSPF files, a Strawberry player database, and a plain music
// folder. Every source produces the same flat Playlist value.
package playlists

// Playlist is an immutable, ordered list of track URIs from one source.
type Playlist struct {
	Name   string
	Source string
	Tracks []string
}

// FindByName returns the playlist with the given name, or nil.
func FindByName(playlists []Playlist, name string) *Playlist {
	for i := range playlists {
		if playlists[i].Name == name {
			return &playlists[i]
		}
	}
	return nil
}
