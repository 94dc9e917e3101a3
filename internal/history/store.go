// Package history persists the recent-files list and the index of autosave
// snapshots in a small SQLite database under the user config dir. Every
// write here is best effort; the editor works fine without history.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/zjrosen/texit/internal/log"
)

const schema = `
CREATE TABLE IF NOT EXISTS recent_files (
	path TEXT PRIMARY KEY,
	open_count INTEGER NOT NULL DEFAULT 1,
	last_opened_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshots (
	id TEXT PRIMARY KEY,
	path TEXT NOT NULL,
	source TEXT NOT NULL,
	created_at DATETIME NOT NULL
);
`

// RecentFile is one row of the recent-files list.
type RecentFile struct {
	Path         string
	OpenCount    int
	LastOpenedAt time.Time
}

// Snapshot records one autosave snapshot written to the scratch dir.
type Snapshot struct {
	ID        string
	Path      string
	Source    string // "autosave" for scratch snapshots
	CreatedAt time.Time
}

// Store wraps the history database.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the history database at path,
// creating the parent directory and schema on first use.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		log.ErrorErr(log.CatHistory, "Failed to open history db", err, "path", path)
		return nil, fmt.Errorf("opening history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		log.ErrorErr(log.CatHistory, "Failed to create history schema", err, "path", path)
		return nil, fmt.Errorf("creating history schema: %w", err)
	}
	log.Debug(log.CatHistory, "Opened history db", "path", path)
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// TouchRecent inserts or bumps a recent-file entry.
func (s *Store) TouchRecent(path string, now time.Time) error {
	_, err := s.db.Exec(
		`INSERT INTO recent_files (path, open_count, last_opened_at) VALUES (?, 1, ?)
		 ON CONFLICT(path) DO UPDATE SET open_count = open_count + 1, last_opened_at = excluded.last_opened_at`,
		path, now.UTC(),
	)
	if err != nil {
		return fmt.Errorf("recording recent file: %w", err)
	}
	return nil
}

// ListRecent returns up to limit recent files, most recently opened first.
func (s *Store) ListRecent(limit int) ([]RecentFile, error) {
	rows, err := s.db.Query(
		`SELECT path, open_count, last_opened_at FROM recent_files
		 ORDER BY last_opened_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing recent files: %w", err)
	}
	defer rows.Close()

	var out []RecentFile
	for rows.Next() {
		var rf RecentFile
		if err := rows.Scan(&rf.Path, &rf.OpenCount, &rf.LastOpenedAt); err != nil {
			return nil, fmt.Errorf("scanning recent file: %w", err)
		}
		out = append(out, rf)
	}
	return out, rows.Err()
}

// RecordSnapshot indexes a written snapshot file and returns its id.
func (s *Store) RecordSnapshot(path, source string, now time.Time) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO snapshots (id, path, source, created_at) VALUES (?, ?, ?, ?)`,
		id, path, source, now.UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("recording snapshot: %w", err)
	}
	return id, nil
}

// ListSnapshots returns up to limit snapshots, newest first.
func (s *Store) ListSnapshots(limit int) ([]Snapshot, error) {
	rows, err := s.db.Query(
		`SELECT id, path, source, created_at FROM snapshots
		 ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var snap Snapshot
		if err := rows.Scan(&snap.ID, &snap.Path, &snap.Source, &snap.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}
