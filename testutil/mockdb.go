package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// CreateInMemoryDB creates an in-memory SQLite database with the canvasKV
// table for testing
func CreateInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create in-memory database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS canvasKV (
		key TEXT PRIMARY KEY,
		value TEXT
	)`
	if _, err := db.Exec(createTableSQL); err != nil {
		t.Fatalf("Failed to create canvasKV table: %v", err)
	}

	return db
}

// SeedKV inserts a key-value pair into canvasKV
func SeedKV(t *testing.T, db *sql.DB, key, value string) {
	t.Helper()
	if _, err := db.Exec("INSERT INTO canvasKV (key, value) VALUES (?, ?)", key, value); err != nil {
		t.Fatalf("Failed to seed %s: %v", key, err)
	}
}

// CreateSeededDB creates an in-memory database pre-populated with two
// workspaces, the second one current
func CreateSeededDB(t *testing.T) *sql.DB {
	t.Helper()
	db := CreateInMemoryDB(t)

	SeedKV(t, db, "workspaces", `[
		{"id":"ws-first","name":"Workspace 1","createdAt":1000,"updatedAt":1000},
		{"id":"ws-second","name":"Workspace 2","createdAt":2000,"updatedAt":2000}
	]`)
	SeedKV(t, db, "current_workspace_id", "ws-second")
	SeedKV(t, db, "workspace_name_counter", "2")

	return db
}
