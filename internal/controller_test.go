package internal

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
)

func newTestController(t *testing.T) *CanvasController {
	t.Helper()

	manager := NewWorkspaceManager(&fakeStore{})
	if err := manager.Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	return NewCanvasController(manager, nil)
}

func TestControllerSaveLoadScene(t *testing.T) {
	controller := newTestController(t)

	controller.Scene.Add(SceneObject{Type: ObjectRect, X: 10, Y: 10, Width: 40, Height: 40})
	controller.Scene.Add(SceneObject{Type: ObjectText, X: 5, Y: 5, Text: "hello"})

	if err := controller.SaveScene(); err != nil {
		t.Fatalf("SaveScene() error = %v", err)
	}

	ws, err := controller.Manager.Current()
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if len(ws.Data) == 0 {
		t.Fatalf("SaveScene() did not persist scene data")
	}
	if len(ws.Thumbnail) == 0 {
		t.Fatalf("SaveScene() did not persist a thumbnail")
	}

	controller.Scene = NewScene()
	if err := controller.LoadScene(); err != nil {
		t.Fatalf("LoadScene() error = %v", err)
	}
	if len(controller.Scene.Objects) != 2 {
		t.Errorf("loaded %d objects, want 2", len(controller.Scene.Objects))
	}
}

func TestControllerLoadSceneEmptyWorkspace(t *testing.T) {
	controller := newTestController(t)

	if err := controller.LoadScene(); err != nil {
		t.Fatalf("LoadScene() error = %v", err)
	}
	if len(controller.Scene.Objects) != 0 {
		t.Errorf("fresh workspace should load an empty scene")
	}
}

func TestControllerSwitchWorkspacePreservesScenes(t *testing.T) {
	controller := newTestController(t)

	first, err := controller.Manager.Current()
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}

	controller.Scene.Add(SceneObject{Type: ObjectCircle, X: 100, Y: 100, Radius: 30})
	if err := controller.SaveScene(); err != nil {
		t.Fatalf("SaveScene() error = %v", err)
	}

	second, err := controller.Manager.Create("")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := controller.LoadScene(); err != nil {
		t.Fatalf("LoadScene() error = %v", err)
	}
	if len(controller.Scene.Objects) != 0 {
		t.Fatalf("new workspace should start with an empty scene")
	}

	controller.Scene.Add(SceneObject{Type: ObjectRect})
	controller.Scene.Add(SceneObject{Type: ObjectRect})

	ok, err := controller.SwitchWorkspace(first.ID)
	if err != nil {
		t.Fatalf("SwitchWorkspace() error = %v", err)
	}
	if !ok {
		t.Fatalf("SwitchWorkspace(%q) = false", first.ID)
	}
	if len(controller.Scene.Objects) != 1 || controller.Scene.Objects[0].Type != ObjectCircle {
		t.Errorf("first workspace scene not restored: %+v", controller.Scene.Objects)
	}

	// Objects added to the second workspace survived the switch away.
	if ok, err := controller.SwitchWorkspace(second.ID); err != nil || !ok {
		t.Fatalf("SwitchWorkspace(%q) = %v, %v", second.ID, ok, err)
	}
	if len(controller.Scene.Objects) != 2 {
		t.Errorf("second workspace scene lost during switch, got %d objects", len(controller.Scene.Objects))
	}
}

func TestControllerSwitchWorkspaceUnknownID(t *testing.T) {
	controller := newTestController(t)

	controller.Scene.Add(SceneObject{Type: ObjectRect})
	ok, err := controller.SwitchWorkspace("ws-nope")
	if err != nil {
		t.Fatalf("SwitchWorkspace() error = %v", err)
	}
	if ok {
		t.Fatalf("SwitchWorkspace() on unknown id should report false")
	}
	if len(controller.Scene.Objects) != 1 {
		t.Errorf("failed switch should not disturb the active scene")
	}
}

func TestControllerGenerate(t *testing.T) {
	// A real PNG so the thumbnail renderer can decode it afterwards.
	resultScene := NewScene()
	resultScene.Width, resultScene.Height = 8, 8
	resultPNG, err := resultScene.Preview(1)
	if err != nil {
		t.Fatalf("fixture preview error = %v", err)
	}

	var gotRequest generateRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotRequest); err != nil {
			t.Errorf("decode request: %v", err)
		}
		response := map[string]interface{}{
			"candidates": []interface{}{
				map[string]interface{}{
					"content": map[string]interface{}{
						"parts": []interface{}{
							map[string]interface{}{"text": "done"},
							map[string]interface{}{"inlineData": map[string]interface{}{
								"mimeType": "image/png",
								"data":     base64.StdEncoding.EncodeToString(resultPNG),
							}},
						},
					},
				},
			},
		}
		json.NewEncoder(w).Encode(response)
	})

	controller := newTestController(t)
	controller.Client = client
	controller.Scene.Add(SceneObject{Type: ObjectRect, X: 0, Y: 0, Width: 60, Height: 60, Fill: "#123456"})

	var stages []Stage
	result, err := controller.Generate(context.Background(),
		Bounds{X: 0, Y: 0, W: 60, H: 60}, "make it better",
		func(stage Stage) { stages = append(stages, stage) })
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if result.Text != "done" {
		t.Errorf("result text = %q, want %q", result.Text, "done")
	}
	if len(result.Image) == 0 {
		t.Errorf("result image missing")
	}

	wantStages := []Stage{StagePreparing, StageSubmitted, StageAwaitingResult, StageComplete}
	if len(stages) != len(wantStages) {
		t.Fatalf("stages = %v, want %v", stages, wantStages)
	}
	for i, want := range wantStages {
		if stages[i] != want {
			t.Errorf("stage[%d] = %v, want %v", i, stages[i], want)
		}
	}

	// The generated image lands in the scene at the capture bounds.
	last := controller.Scene.Objects[len(controller.Scene.Objects)-1]
	if last.Type != ObjectImage {
		t.Fatalf("last object = %q, want %q", last.Type, ObjectImage)
	}
	if last.X != 0 || last.Y != 0 || last.Width != 60 || last.Height != 60 {
		t.Errorf("image placed at %d,%d %dx%d, want capture bounds", last.X, last.Y, last.Width, last.Height)
	}

	// The scene landed in the workspace too.
	ws, err := controller.Manager.Current()
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if len(ws.Data) == 0 {
		t.Errorf("generation result was not persisted to the workspace")
	}

	// Instructions were built from the prompt, not passed raw.
	if len(gotRequest.Contents) == 0 || len(gotRequest.Contents[0].Parts) != 2 {
		t.Fatalf("request shape unexpected: %+v", gotRequest)
	}
	if gotRequest.Contents[0].Parts[0].Text == "make it better" {
		t.Errorf("prompt should arrive wrapped in structured instructions")
	}
}

func TestControllerGenerateFailureLeavesSceneUntouched(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota exhausted"}}`, http.StatusTooManyRequests)
	})

	controller := newTestController(t)
	controller.Client = client
	controller.Scene.Add(SceneObject{Type: ObjectRect, Width: 50, Height: 50})

	var stages []Stage
	_, err := controller.Generate(context.Background(), Bounds{}, "anything",
		func(stage Stage) { stages = append(stages, stage) })
	if err == nil {
		t.Fatalf("Generate() expected error")
	}
	if len(controller.Scene.Objects) != 1 {
		t.Errorf("failed generation must not modify the scene")
	}
	if len(stages) == 0 || stages[len(stages)-1] != StageError {
		t.Errorf("stages = %v, want terminal %v", stages, StageError)
	}
}

func TestControllerGenerateWithoutClient(t *testing.T) {
	controller := newTestController(t)

	var stages []Stage
	_, err := controller.Generate(context.Background(), Bounds{}, "",
		func(stage Stage) { stages = append(stages, stage) })

	var generr *GenerationError
	if !errors.As(err, &generr) {
		t.Fatalf("error = %T (%v), want *GenerationError", err, err)
	}
	if len(stages) == 0 || stages[len(stages)-1] != StageError {
		t.Errorf("stages = %v, want terminal %v", stages, StageError)
	}
}

func TestControllerGenerateNilReport(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	controller := newTestController(t)
	controller.Client = client

	result, err := controller.Generate(context.Background(), Bounds{}, "", nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !result.Empty() {
		t.Errorf("empty response should yield an empty result")
	}
}
