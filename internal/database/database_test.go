package database_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/N-Varsha-Nayak/jobnotify/internal/database"
)

func TestOpen(t *testing.T) {
	db, err := database.Open(context.Background(), filepath.Join(t.TempDir(), "hits.db"))
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	if got := db.Stats().MaxOpenConnections; got != 1 {
		t.Errorf("MaxOpenConnections = %d, want 1", got)
	}

	tests := []struct {
		pragma string
		want   string
	}{
		{pragma: "PRAGMA journal_mode", want: "wal"},
		{pragma: "PRAGMA synchronous", want: "1"},
		{pragma: "PRAGMA busy_timeout", want: "5000"},
	}
	for _, tt := range tests {
		t.Run(tt.pragma, func(t *testing.T) {
			var got string
			if err := db.QueryRow(tt.pragma).Scan(&got); err != nil {
				t.Fatalf("querying: %v", err)
			}
			if !strings.EqualFold(got, tt.want) {
				t.Errorf("%s = %q, want %q", tt.pragma, got, tt.want)
			}
		})
	}
}

func TestOpenMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "hits.db")

	db, err := database.Open(context.Background(), path)
	if err == nil {
		db.Close()
		t.Fatal("Open succeeded in a missing directory, want error")
	}
}
