package internal

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// OpenDatabase opens (creating if necessary) the SQLite database holding the
// canvasKV table.
func OpenDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if err := EnsureKVTable(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// EnsureKVTable creates the canvasKV key-value table if it does not exist
func EnsureKVTable(db *sql.DB) error {
	const create = `CREATE TABLE IF NOT EXISTS canvasKV (
		key TEXT PRIMARY KEY,
		value TEXT
	)`
	if _, err := db.Exec(create); err != nil {
		return fmt.Errorf("failed to create canvasKV table: %w", err)
	}
	return nil
}

// GetKV reads a single value from canvasKV. The second return value reports
// whether the key was present.
func GetKV(db *sql.DB, key string) (string, bool, error) {
	var value sql.NullString
	err := db.QueryRow("SELECT value FROM canvasKV WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query failed: %w", err)
	}
	if !value.Valid {
		return "", false, nil
	}
	return value.String, true, nil
}

// PutKV upserts a single value into canvasKV
func PutKV(db *sql.DB, key, value string) error {
	_, err := db.Exec(
		"INSERT INTO canvasKV (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("write failed: %w", err)
	}
	return nil
}

// DeleteKV removes a key from canvasKV
func DeleteKV(db *sql.DB, key string) error {
	if _, err := db.Exec("DELETE FROM canvasKV WHERE key = ?", key); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	return nil
}
