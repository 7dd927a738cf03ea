// Package hits records served requests in SQLite and summarises them.
package hits

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type Kind string

const (
	KindRoute Kind = "route"
	KindAsset Kind = "asset"
)

// Hit is one response written by the static responder.
type Hit struct {
	Method    string
	Path      string
	Served    string
	Kind      Kind
	Status    int
	Bytes     int
	RequestID string
	At        time.Time
}

type PathCount struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

type Summary struct {
	Total  int         `json:"total"`
	Routes int         `json:"routes"`
	Assets int         `json:"assets"`
	Misses int         `json:"misses"`
	Top    []PathCount `json:"top"`
}

type Store struct {
	db *sql.DB
}

// Open prepares db for hit recording, creating the schema if needed.
func Open(ctx context.Context, db *sql.DB) (*Store, error) {
	for _, ddl := range []string{
		`CREATE TABLE IF NOT EXISTS hits (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			method     TEXT NOT NULL,
			path       TEXT NOT NULL,
			served     TEXT NOT NULL,
			kind       TEXT NOT NULL,
			status     INTEGER NOT NULL,
			bytes      INTEGER NOT NULL,
			request_id TEXT NOT NULL DEFAULT '',
			at         TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS hits_path ON hits (path)`,
	} {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return nil, fmt.Errorf("creating hits schema: %w", err)
		}
	}
	return &Store{db: db}, nil
}

func (s *Store) Record(ctx context.Context, h Hit) error {
	if h.At.IsZero() {
		h.At = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO hits (method, path, served, kind, status, bytes, request_id, at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, h.Method, h.Path, h.Served, string(h.Kind), h.Status, h.Bytes, h.RequestID, h.At.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("recording hit: %w", err)
	}
	return nil
}

// Summary counts all recorded hits and returns the limit most requested
// paths. Responses with status 404 are counted as misses.
func (s *Store) Summary(ctx context.Context, limit int) (Summary, error) {
	var sum Summary
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN kind = 'route' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN kind = 'asset' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 404 THEN 1 ELSE 0 END), 0)
		FROM hits
	`).Scan(&sum.Total, &sum.Routes, &sum.Assets, &sum.Misses)
	if err != nil {
		return Summary{}, fmt.Errorf("counting hits: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT path, COUNT(*) AS n
		FROM hits
		GROUP BY path
		ORDER BY n DESC, path ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return Summary{}, fmt.Errorf("listing top paths: %w", err)
	}
	defer rows.Close()

	sum.Top = []PathCount{}
	for rows.Next() {
		var pc PathCount
		if err := rows.Scan(&pc.Path, &pc.Count); err != nil {
			return Summary{}, fmt.Errorf("scanning top path: %w", err)
		}
		sum.Top = append(sum.Top, pc)
	}
	if err := rows.Err(); err != nil {
		return Summary{}, fmt.Errorf("listing top paths: %w", err)
	}
	return sum, nil
}

// Check implements health.Checker.
func (s *Store) Check(ctx context.Context) error { return s.db.PingContext(ctx) }
