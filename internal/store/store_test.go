package store

import (
	"path/filepath"
	"testing"
)

func TestNew(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer s.Close()

	if s.DB() == nil {
		t.Fatal("DB() returned nil")
	}

	// Migrations must have created the events table.
	var name string
	err = s.DB().QueryRow(
		`SELECT name FROM sqlite_master WHERE type='table' AND name='events'`,
	).Scan(&name)
	if err != nil {
		t.Fatalf("events table missing: %v", err)
	}
}

func TestNew_MigrationsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	s1, err := New(dbPath)
	if err != nil {
		t.Fatalf("first New() error = %v", err)
	}
	s1.Close()

	// Re-opening the same database re-runs the migrations.
	s2, err := New(dbPath)
	if err != nil {
		t.Fatalf("second New() error = %v", err)
	}
	s2.Close()
}
