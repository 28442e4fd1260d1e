// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists a record of completed searches in SQLite.
// Recording is best-effort: a failing history store must never break a
// search that already produced results.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/alextsol/ai-scholar/pkg/types"
)

const dbFile = "history.db"

// Entry is one recorded search.
type Entry struct {
	ID          int64
	Query       string
	Backends    []string
	Mode        types.RankingMode
	ResultCount int
	Summary     string
	CreatedAt   time.Time
}

// Store manages the search history SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the history database under cfg.Path,
// creating the schema if it does not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Path, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS searches (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		query TEXT NOT NULL,
		backends TEXT,
		mode TEXT,
		result_count INTEGER,
		summary TEXT,
		created_at TEXT NOT NULL
	)`)
	return err
}

// Record inserts one search entry.
func (s *Store) Record(ctx context.Context, e Entry) error {
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO searches (query, backends, mode, result_count, summary, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.Query, strings.Join(e.Backends, ","), string(e.Mode), e.ResultCount, e.Summary,
		createdAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting search record: %w", err)
	}
	return nil
}

// Recent returns the n most recent entries, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		n = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, query, backends, mode, result_count, summary, created_at
		 FROM searches ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("querying search history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var backends, mode, createdAt string
		if err := rows.Scan(&e.ID, &e.Query, &backends, &mode, &e.ResultCount, &e.Summary, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning search record: %w", err)
		}
		if backends != "" {
			e.Backends = strings.Split(backends, ",")
		}
		e.Mode = types.RankingMode(mode)
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
