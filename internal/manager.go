package internal

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// WorkspaceManager is the sole owner of the workspace collection and the
// current-workspace pointer. All mutations go through it and it is the only
// component that writes to the store.
//
// The mutex makes every read-modify-persist cycle a critical section so the
// manager stays correct if commands ever run concurrently.
type WorkspaceManager struct {
	mu          sync.Mutex
	store       WorkspaceStore
	workspaces  []*Workspace
	currentID   string
	nameCounter int
	initialized bool
}

// NewWorkspaceManager creates a manager over the given store. Call
// Initialize before any other operation.
func NewWorkspaceManager(store WorkspaceStore) *WorkspaceManager {
	return &WorkspaceManager{store: store}
}

// Initialize loads persisted state, bootstrapping a single default workspace
// when nothing is saved or the saved state is unreadable. A persisted
// current id that no longer resolves falls back to the first workspace.
func (m *WorkspaceManager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	state, err := m.store.Load()
	if err != nil {
		LogWarn("Failed to load workspaces, starting fresh: %v", err)
		state = nil
	}
	if state == nil || len(state.Workspaces) == 0 {
		now := NowMillis()
		first := &Workspace{
			ID:        NewWorkspaceID(),
			Name:      "Workspace 1",
			CreatedAt: now,
			UpdatedAt: now,
		}
		m.workspaces = []*Workspace{first}
		m.currentID = first.ID
		m.nameCounter = 1
		m.initialized = true
		return m.persistLocked(first.ID)
	}

	m.workspaces = state.Workspaces
	m.currentID = state.CurrentID
	m.nameCounter = state.NameCounter
	if m.nameCounter < len(m.workspaces) {
		m.nameCounter = len(m.workspaces)
	}
	if m.findLocked(m.currentID) == nil {
		LogDebug("Persisted current workspace %q is stale, falling back to first", m.currentID)
		m.currentID = m.workspaces[0].ID
	}
	m.initialized = true
	return nil
}

// List returns the workspace collection in insertion order.
func (m *WorkspaceManager) List() []*Workspace {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Workspace, len(m.workspaces))
	copy(out, m.workspaces)
	return out
}

// Count returns the number of workspaces.
func (m *WorkspaceManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.workspaces)
}

// Current returns the workspace the current pointer refers to.
func (m *WorkspaceManager) Current() (*Workspace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ws := m.findLocked(m.currentID)
	if ws == nil {
		return nil, &NotFoundError{ID: m.currentID}
	}
	return ws, nil
}

// Create constructs a new empty workspace, appends it, makes it current and
// persists. An empty name auto-assigns "Workspace {n}" from the creation
// counter, which is never reused after deletion.
func (m *WorkspaceManager) Create(name string) (*Workspace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nameCounter++
	if strings.TrimSpace(name) == "" {
		name = fmt.Sprintf("Workspace %d", m.nameCounter)
	}

	now := NowMillis()
	ws := &Workspace{
		ID:        NewWorkspaceID(),
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.workspaces = append(m.workspaces, ws)
	m.currentID = ws.ID
	return ws, m.persistLocked(ws.ID)
}

// SwitchTo makes the workspace with the given id current. Switching to the
// already-current workspace is a successful no-op.
func (m *WorkspaceManager) SwitchTo(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.findLocked(id) == nil {
		return false
	}
	if m.currentID == id {
		return true
	}
	m.currentID = id
	if err := m.persistLocked(id); err != nil {
		LogWarn("Failed to persist workspace switch: %v", err)
	}
	return true
}

// UpdateCurrentData overwrites the current workspace's scene snapshot (and
// thumbnail when non-nil), refreshes its updatedAt and persists. It is a
// no-op when no current workspace resolves.
func (m *WorkspaceManager) UpdateCurrentData(data, thumbnail []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ws := m.findLocked(m.currentID)
	if ws == nil {
		return nil
	}
	ws.Data = data
	if thumbnail != nil {
		ws.Thumbnail = thumbnail
	}
	ws.UpdatedAt = NowMillis()
	return m.persistLocked(ws.ID)
}

// Rename updates a workspace's name. It fails when the id is unknown or the
// name is empty after trimming.
func (m *WorkspaceManager) Rename(id, newName string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	newName = strings.TrimSpace(newName)
	if newName == "" {
		return false
	}
	ws := m.findLocked(id)
	if ws == nil {
		return false
	}
	ws.Name = newName
	ws.UpdatedAt = NowMillis()
	if err := m.persistLocked(ws.ID); err != nil {
		LogWarn("Failed to persist rename: %v", err)
	}
	return true
}

// Delete removes a workspace. The last remaining workspace cannot be
// deleted. Deleting the current workspace promotes the first remaining one.
func (m *WorkspaceManager) Delete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.workspaces) <= 1 {
		return false
	}
	index := -1
	for i, ws := range m.workspaces {
		if ws.ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return false
	}

	m.workspaces = append(m.workspaces[:index], m.workspaces[index+1:]...)
	if m.currentID == id {
		m.currentID = m.workspaces[0].ID
	}
	if err := m.persistLocked(m.currentID); err != nil {
		LogWarn("Failed to persist delete: %v", err)
	}
	return true
}

// Duplicate creates a copy of the given workspace with a fresh id, the name
// suffixed with " (Copy)" and fresh timestamps, makes it current and
// persists. Returns nil when the id is unknown.
func (m *WorkspaceManager) Duplicate(id string) *Workspace {
	m.mu.Lock()
	defer m.mu.Unlock()

	original := m.findLocked(id)
	if original == nil {
		return nil
	}

	m.nameCounter++
	dup := original.Clone()
	dup.ID = NewWorkspaceID()
	dup.Name = original.Name + " (Copy)"
	now := NowMillis()
	dup.CreatedAt = now
	dup.UpdatedAt = now

	m.workspaces = append(m.workspaces, dup)
	m.currentID = dup.ID
	if err := m.persistLocked(dup.ID); err != nil {
		LogWarn("Failed to persist duplicate: %v", err)
	}
	return dup
}

// Reset discards every workspace and re-bootstraps a single default one.
// The CLI is responsible for confirming with the user first.
func (m *WorkspaceManager) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := NowMillis()
	first := &Workspace{
		ID:        NewWorkspaceID(),
		Name:      "Workspace 1",
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.workspaces = []*Workspace{first}
	m.currentID = first.ID
	m.nameCounter = 1
	return m.persistLocked(first.ID)
}

func (m *WorkspaceManager) findLocked(id string) *Workspace {
	for _, ws := range m.workspaces {
		if ws.ID == id {
			return ws
		}
	}
	return nil
}

// persistLocked writes the full state to the store. On a quota failure it
// evicts the least-recently-updated workspace (never the one just written,
// never the current one, never the last remaining one) and retries once.
// A write that still fails leaves in-memory state authoritative for the
// session and is reported as a warning, not an error.
func (m *WorkspaceManager) persistLocked(protectID string) error {
	err := m.saveLocked()
	if err == nil {
		return nil
	}

	var quota *QuotaError
	if !errors.As(err, &quota) {
		return err
	}

	LogWarn("Storage quota exceeded (%d bytes), evicting least-recently-updated workspace", quota.Size)
	if !m.evictLocked(protectID) {
		LogWarn("No workspace eligible for eviction, keeping in-memory state only")
		return nil
	}

	if err := m.saveLocked(); err != nil {
		LogWarn("Persistence still failing after eviction, keeping in-memory state only: %v", err)
	}
	return nil
}

func (m *WorkspaceManager) saveLocked() error {
	return m.store.Save(&StoreState{
		Workspaces:  m.workspaces,
		CurrentID:   m.currentID,
		NameCounter: m.nameCounter,
	})
}

// evictLocked removes the least-recently-updated workspace, skipping the
// protected id and the current one. Reports whether anything was removed.
func (m *WorkspaceManager) evictLocked(protectID string) bool {
	if len(m.workspaces) <= 1 {
		return false
	}

	victim := -1
	for i, ws := range m.workspaces {
		if ws.ID == protectID || ws.ID == m.currentID {
			continue
		}
		if victim == -1 || ws.UpdatedAt < m.workspaces[victim].UpdatedAt {
			victim = i
		}
	}
	if victim == -1 {
		return false
	}

	LogInfo("Evicting workspace %q (%s) to free storage", m.workspaces[victim].Name, m.workspaces[victim].ID)
	m.workspaces = append(m.workspaces[:victim], m.workspaces[victim+1:]...)
	return true
}
