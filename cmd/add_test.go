package cmd

import (
	"testing"

	"github.com/iksnae/artist-canvas/internal"
)

// currentScene reads back the persisted scene of the current workspace.
func currentScene(t *testing.T, storage string) *internal.Scene {
	t.Helper()

	storagePath = storage
	m, cleanup, err := openManager()
	if err != nil {
		t.Fatalf("open manager: %v", err)
	}
	defer cleanup()

	ws, err := m.Current()
	if err != nil {
		t.Fatalf("current workspace: %v", err)
	}
	scene := internal.NewScene()
	scene.Restore(ws.Data)
	return scene
}

func TestAddRectDefaults(t *testing.T) {
	storage := t.TempDir()

	if err := run(t, storage, "add", "rect"); err != nil {
		t.Fatalf("add rect failed: %v", err)
	}

	scene := currentScene(t, storage)
	if len(scene.Objects) != 1 {
		t.Fatalf("persisted %d objects, want 1", len(scene.Objects))
	}

	// Defaults must survive the other subcommands registering their own
	// flags; a shared flag variable would leave the last default standing.
	obj := scene.Objects[0]
	if obj.Width != 120 || obj.Height != 80 {
		t.Errorf("rect = %dx%d, want 120x80", obj.Width, obj.Height)
	}
	if obj.Fill != "#3B82F6" {
		t.Errorf("fill = %q, want %q", obj.Fill, "#3B82F6")
	}
	if obj.Stroke != "" {
		t.Errorf("stroke = %q, want empty", obj.Stroke)
	}
	if obj.X != 100 || obj.Y != 100 {
		t.Errorf("position = %d,%d, want 100,100", obj.X, obj.Y)
	}
}

func TestAddCircleDefaults(t *testing.T) {
	storage := t.TempDir()

	if err := run(t, storage, "add", "circle"); err != nil {
		t.Fatalf("add circle failed: %v", err)
	}

	scene := currentScene(t, storage)
	if len(scene.Objects) != 1 {
		t.Fatalf("persisted %d objects, want 1", len(scene.Objects))
	}
	obj := scene.Objects[0]
	if obj.Radius != 50 {
		t.Errorf("radius = %d, want 50", obj.Radius)
	}
	if obj.Fill != "#3B82F6" {
		t.Errorf("fill = %q, want %q", obj.Fill, "#3B82F6")
	}
}

func TestAddArrowDefaults(t *testing.T) {
	storage := t.TempDir()

	if err := run(t, storage, "add", "arrow"); err != nil {
		t.Fatalf("add arrow failed: %v", err)
	}

	scene := currentScene(t, storage)
	obj := scene.Objects[0]
	if obj.X2 != 200 || obj.Y2 != 200 {
		t.Errorf("arrow tip = %d,%d, want 200,200", obj.X2, obj.Y2)
	}
	if obj.Stroke != "#000000" {
		t.Errorf("stroke = %q, want %q", obj.Stroke, "#000000")
	}
}
