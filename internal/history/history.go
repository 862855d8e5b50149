// Package history keeps a SQLite log of settings document revisions.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lepinkainen/movieway/internal/settings"
	_ "modernc.org/sqlite"
)

const (
	schema = `CREATE TABLE IF NOT EXISTS settings_revisions (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		written_at TEXT NOT NULL,
		section    TEXT NOT NULL DEFAULT '',
		document   TEXT NOT NULL
	)`

	// DefaultListLimit is used when List is called with a non-positive limit.
	DefaultListLimit = 20
	maxListLimit     = 200
)

// Revision is one recorded settings write.
type Revision struct {
	ID        int64     `json:"id"`
	WrittenAt time.Time `json:"writtenAt"`
	Section   string    `json:"section"`
	Document  string    `json:"document"`
}

// SQLiteStore records settings writes. It implements settings.Recorder.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// Open opens (creating if needed) the history database at dbPath.
func Open(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	// SQLite allows one writer; keep a single connection so writes queue up.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("failed to connect to history database: %w", err), closeErr)
	}
	if _, err := db.Exec(schema); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("failed to create table: %w", err), closeErr)
	}

	return &SQLiteStore{db: db, dbPath: dbPath}, nil
}

// RecordWrite appends a revision row.
func (s *SQLiteStore) RecordWrite(ctx context.Context, w settings.Write) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO settings_revisions (written_at, section, document) VALUES (?, ?, ?)",
		w.WrittenAt.UTC().Format(time.RFC3339Nano), w.Section, string(w.Document),
	)
	if err != nil {
		return fmt.Errorf("failed to insert revision: %w", err)
	}
	return nil
}

// List returns up to limit revisions, newest first.
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]Revision, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, written_at, section, document FROM settings_revisions ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query revisions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	revisions := make([]Revision, 0, limit)
	for rows.Next() {
		var (
			rev       Revision
			writtenAt string
		)
		if err := rows.Scan(&rev.ID, &writtenAt, &rev.Section, &rev.Document); err != nil {
			return nil, fmt.Errorf("failed to scan revision: %w", err)
		}
		rev.WrittenAt, err = time.Parse(time.RFC3339Nano, writtenAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse revision time %q: %w", writtenAt, err)
		}
		revisions = append(revisions, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate revisions: %w", err)
	}

	return revisions, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
