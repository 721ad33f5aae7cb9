package cmd

import (
	"bytes"
	"testing"
)

// run executes the root command with args against the given storage dir.
func run(t *testing.T, storage string, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(append([]string{"--storage", storage}, args...))
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	return rootCmd.Execute()
}

func TestWorkspaceLifecycle(t *testing.T) {
	storage := t.TempDir()

	if err := run(t, storage, "new", "Sketches"); err != nil {
		t.Fatalf("new failed: %v", err)
	}
	if err := run(t, storage, "list"); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if err := run(t, storage, "show"); err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if err := run(t, storage, "add", "rect", "--x", "50", "--y", "50"); err != nil {
		t.Fatalf("add rect failed: %v", err)
	}
	if err := run(t, storage, "add", "text", "replace with a dog"); err != nil {
		t.Fatalf("add text failed: %v", err)
	}
	if err := run(t, storage, "undo"); err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if err := run(t, storage, "clear", "--yes"); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if err := run(t, storage, "reset", "--yes"); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
}

func TestSwitchCommandUnknownID(t *testing.T) {
	storage := t.TempDir()

	if err := run(t, storage, "switch", "ws-does-not-exist"); err == nil {
		t.Errorf("switch to an unknown workspace should fail")
	}
}

func TestDeleteCommandLastWorkspace(t *testing.T) {
	storage := t.TempDir()

	// Bootstrap a single workspace, then try to delete it.
	if err := run(t, storage, "list"); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	storagePath = storage
	m, cleanup, err := openManager()
	if err != nil {
		t.Fatalf("open manager: %v", err)
	}
	ws, err := m.Current()
	cleanup()
	if err != nil {
		t.Fatalf("current workspace: %v", err)
	}

	if err := run(t, storage, "delete", ws.ID); err == nil {
		t.Errorf("deleting the only workspace should fail")
	}
}
