// Package session persists Last.fm session keys for every listener who
// has linked an account. The store outlives playback sessions: a listener
// links once and scrobbles forever after.
package session

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName    = "music-bot"
	dbFileName = "sessions.db"
)

// ListenerSession is a listener's linked Last.fm account.
type ListenerSession struct {
	ListenerID string
	Username   string
	SessionKey string
	LinkedAt   time.Time
}

// Store holds listener sessions in a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens the session store at path, creating it if needed. An empty
// path uses the default XDG data location.
func Open(path string) (*Store, error) {
	var err error
	if path == "" {
		path, err = xdg.DataFile(filepath.Join(appName, dbFileName))
		if err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init session schema: %w", err)
	}

	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS listener_sessions (
			listener_id TEXT PRIMARY KEY,
			username TEXT NOT NULL,
			session_key TEXT NOT NULL,
			linked_at INTEGER NOT NULL
		);
	`)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Lookup returns the session for a listener, or nil if they never linked
// an account.
func (s *Store) Lookup(listenerID string) (*ListenerSession, error) {
	var username, sessionKey string
	var linkedAt int64

	err := s.db.QueryRow(`
		SELECT username, session_key, linked_at
		FROM listener_sessions WHERE listener_id = ?
	`, listenerID).Scan(&username, &sessionKey, &linkedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // nil session means not linked, not an error
	}
	if err != nil {
		return nil, err
	}

	return &ListenerSession{
		ListenerID: listenerID,
		Username:   username,
		SessionKey: sessionKey,
		LinkedAt:   time.Unix(linkedAt, 0),
	}, nil
}

// Save stores a listener's session after a successful link, replacing any
// previous one.
func (s *Store) Save(listenerID, username, sessionKey string) error {
	now := time.Now().Unix()
	_, err := s.db.Exec(`
		INSERT INTO listener_sessions (listener_id, username, session_key, linked_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(listener_id) DO UPDATE SET
			username = excluded.username,
			session_key = excluded.session_key,
			linked_at = excluded.linked_at
	`, listenerID, username, sessionKey, now)
	return err
}

// Delete removes a listener's session (unlink). Deleting a listener who
// never linked is a no-op.
func (s *Store) Delete(listenerID string) error {
	_, err := s.db.Exec(`DELETE FROM listener_sessions WHERE listener_id = ?`, listenerID)
	return err
}

// Count returns the number of linked listeners.
func (s *Store) Count() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM listener_sessions`).Scan(&n)
	return n, err
}
