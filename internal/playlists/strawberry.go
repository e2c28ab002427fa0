package playlists

import (
	"database/sql"
	"fmt"
	"net/url"

	_ "modernc.org/sqlite" // SQLite driver
)

// ParseStrawberryDB reads every playlist out of a Strawberry music player
// database. Track URLs are stored percent-encoded with a file:// scheme;
// they come back as plain filesystem paths.
func ParseStrawberryDB(path string) ([]Playlist, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open strawberry db: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT ROWID, name FROM playlists`)
	if err != nil {
		return nil, fmt.Errorf("query strawberry playlists: %w", err)
	}
	defer rows.Close()

	type playlistRow struct {
		rowid int64
		name  string
	}
	var prows []playlistRow
	for rows.Next() {
		var pr playlistRow
		if err := rows.Scan(&pr.rowid, &pr.name); err != nil {
			return nil, err
		}
		prows = append(prows, pr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	playlists := make([]Playlist, 0, len(prows))
	for _, pr := range prows {
		tracks, err := strawberryTracks(db, pr.rowid)
		if err != nil {
			return nil, err
		}
		playlists = append(playlists, Playlist{
			Name:   pr.name,
			Source: "strawberry.db",
			Tracks: tracks,
		})
	}

	return playlists, nil
}

func strawberryTracks(db *sql.DB, playlistROWID int64) ([]string, error) {
	rows, err := db.Query(`
		SELECT url FROM songs
		WHERE ROWID IN (SELECT collection_id FROM playlist_items WHERE playlist = ?)
	`, playlistROWID)
	if err != nil {
		return nil, fmt.Errorf("query strawberry tracks: %w", err)
	}
	defer rows.Close()

	var tracks []string
	for rows.Next() {
		var rawURL string
		if err := rows.Scan(&rawURL); err != nil {
			return nil, err
		}
		if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
			tracks = append(tracks, u.Path)
		} else {
			tracks = append(tracks, rawURL)
		}
	}
	return tracks, rows.Err()
}
