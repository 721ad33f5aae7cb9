package internal

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
)

// Keys under which the persisted state lives in canvasKV.
const (
	KeyWorkspaces  = "workspaces"
	KeyCurrentID   = "current_workspace_id"
	KeyNameCounter = "workspace_name_counter"
)

// StoreState is everything the workspace layer persists: the full record
// collection in insertion order, the current id, and the auto-name counter.
type StoreState struct {
	Workspaces  []*Workspace
	CurrentID   string
	NameCounter int
}

// WorkspaceStore is the durable key-value persistence boundary. Load returns
// nil when nothing has ever been saved. Save writes the whole state
// atomically and may fail with *QuotaError when the backend is out of space.
type WorkspaceStore interface {
	Load() (*StoreState, error)
	Save(state *StoreState) error
}

// SQLiteStore persists workspace state in the canvasKV table.
//
// MaxValueBytes, when positive, caps the serialized size of the workspaces
// entry; an oversized write fails with *QuotaError so the manager can run
// its eviction pass. Zero means unlimited.
type SQLiteStore struct {
	db            *sql.DB
	MaxValueBytes int
}

// NewSQLiteStore creates a store over an open database with the canvasKV
// table present.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Load reads the persisted state. A missing workspaces entry yields (nil,
// nil) so the caller can bootstrap; a corrupt entry is an error.
func (s *SQLiteStore) Load() (*StoreState, error) {
	raw, ok, err := GetKV(s.db, KeyWorkspaces)
	if err != nil {
		return nil, &StorageError{Path: KeyWorkspaces, Op: "load", Err: err}
	}
	if !ok {
		return nil, nil
	}

	var workspaces []*Workspace
	if err := json.Unmarshal([]byte(raw), &workspaces); err != nil {
		return nil, &StorageError{Path: KeyWorkspaces, Op: "load", Err: fmt.Errorf("failed to parse workspaces: %w", err)}
	}

	state := &StoreState{Workspaces: workspaces}
	if current, ok, err := GetKV(s.db, KeyCurrentID); err == nil && ok {
		state.CurrentID = current
	}
	if counter, ok, err := GetKV(s.db, KeyNameCounter); err == nil && ok {
		fmt.Sscanf(counter, "%d", &state.NameCounter)
	}
	return state, nil
}

// Save writes the workspaces entry and the current id together in one
// transaction so the persisted state never mixes versions.
func (s *SQLiteStore) Save(state *StoreState) error {
	payload, err := json.Marshal(state.Workspaces)
	if err != nil {
		return &StorageError{Path: KeyWorkspaces, Op: "save", Err: err}
	}
	if s.MaxValueBytes > 0 && len(payload) > s.MaxValueBytes {
		return &QuotaError{
			Key:  KeyWorkspaces,
			Size: len(payload),
			Err:  fmt.Errorf("payload exceeds limit of %d bytes", s.MaxValueBytes),
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return &StorageError{Path: KeyWorkspaces, Op: "save", Err: err}
	}
	defer tx.Rollback()

	upsert := "INSERT INTO canvasKV (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value"
	entries := []struct{ key, value string }{
		{KeyWorkspaces, string(payload)},
		{KeyCurrentID, state.CurrentID},
		{KeyNameCounter, fmt.Sprintf("%d", state.NameCounter)},
	}
	for _, entry := range entries {
		if _, err := tx.Exec(upsert, entry.key, entry.value); err != nil {
			if isFullError(err) {
				return &QuotaError{Key: entry.key, Size: len(entry.value), Err: err}
			}
			return &StorageError{Path: entry.key, Op: "save", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		if isFullError(err) {
			return &QuotaError{Key: KeyWorkspaces, Size: len(payload), Err: err}
		}
		return &StorageError{Path: KeyWorkspaces, Op: "save", Err: err}
	}
	return nil
}

// isFullError recognizes the SQLITE_FULL family of write failures
func isFullError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database or disk is full") || strings.Contains(msg, "sqlite_full")
}
