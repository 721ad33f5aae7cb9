package internal

import (
	"context"
	"errors"
)

// Stage tracks the progress of a generation call so the UI can reflect it.
type Stage string

const (
	StagePreparing      Stage = "preparing"
	StageSubmitted      Stage = "submitted"
	StageAwaitingResult Stage = "awaiting-result"
	StageComplete       Stage = "complete"
	StageError          Stage = "error"
)

// StageFunc receives stage transitions during a generation call.
type StageFunc func(Stage)

// PreviewScale is the downscale factor for workspace thumbnails.
const PreviewScale = 0.15

// CanvasController owns the live scene and drives the workspace and
// generation layers: it decides when to snapshot, save, restore and submit.
type CanvasController struct {
	Scene   *Scene
	Manager *WorkspaceManager
	Client  *GenerationClient
}

// NewCanvasController wires a controller over an initialized manager. The
// client may be nil when generation is not configured.
func NewCanvasController(manager *WorkspaceManager, client *GenerationClient) *CanvasController {
	return &CanvasController{
		Scene:   NewScene(),
		Manager: manager,
		Client:  client,
	}
}

// LoadScene restores the live scene from the current workspace's snapshot.
// A workspace that was never populated yields a blank scene.
func (c *CanvasController) LoadScene() error {
	ws, err := c.Manager.Current()
	if err != nil {
		return err
	}
	c.Scene.Restore(ws.Data)
	return nil
}

// SaveScene snapshots the live scene plus a preview thumbnail and hands both
// to the workspace manager for persistence.
func (c *CanvasController) SaveScene() error {
	snapshot, err := c.Scene.Snapshot()
	if err != nil {
		return err
	}
	thumbnail, err := c.Scene.Preview(PreviewScale)
	if err != nil {
		LogWarn("Failed to render thumbnail: %v", err)
		thumbnail = nil
	}
	return c.Manager.UpdateCurrentData(snapshot, thumbnail)
}

// SwitchWorkspace saves the live scene into the outgoing workspace, switches
// the current pointer, and restores the incoming workspace's scene.
func (c *CanvasController) SwitchWorkspace(id string) (bool, error) {
	if err := c.SaveScene(); err != nil {
		return false, err
	}
	if !c.Manager.SwitchTo(id) {
		return false, nil
	}
	return true, c.LoadScene()
}

// Generate captures the given scene region, builds instructions from the
// optional custom prompt, submits the call and places a returned image back
// into the scene. Stage transitions are reported through report when
// non-nil. On any failure the scene is left unmodified.
func (c *CanvasController) Generate(ctx context.Context, bounds Bounds, customPrompt string, report StageFunc) (*GenerationResult, error) {
	notify := func(stage Stage) {
		if report != nil {
			report(stage)
		}
	}

	notify(StagePreparing)
	if c.Client == nil {
		notify(StageError)
		return nil, &GenerationError{Err: errors.New("no generation client configured")}
	}
	capture, err := c.Scene.CaptureRegion(bounds)
	if err != nil {
		notify(StageError)
		return nil, &GenerationError{Err: err}
	}
	instructions := BuildInstructions(customPrompt)

	notify(StageSubmitted)
	notify(StageAwaitingResult)
	result, err := c.Client.Generate(ctx, capture, "image/jpeg", instructions)
	if err != nil {
		notify(StageError)
		return nil, err
	}

	if len(result.Image) > 0 {
		c.Scene.Add(SceneObject{
			Type:   ObjectImage,
			X:      bounds.X,
			Y:      bounds.Y,
			Width:  bounds.W,
			Height: bounds.H,
			Image:  result.Image,
		})
		if err := c.SaveScene(); err != nil {
			LogWarn("Failed to save generated image into workspace: %v", err)
		}
	}

	notify(StageComplete)
	return result, nil
}
