package internal

import (
	"time"

	"github.com/google/uuid"
)

// Workspace is a named container for one scene's serialized state.
//
// Data and Thumbnail are opaque blobs produced by the scene serializer; the
// workspace layer stores and returns them but never inspects their contents.
type Workspace struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Data      []byte `json:"data,omitempty"`
	Thumbnail []byte `json:"thumbnail,omitempty"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

// Clone returns a deep copy of the workspace. The blobs are copied so that
// mutating the clone never aliases the original's data.
func (w *Workspace) Clone() *Workspace {
	dup := *w
	if w.Data != nil {
		dup.Data = append([]byte(nil), w.Data...)
	}
	if w.Thumbnail != nil {
		dup.Thumbnail = append([]byte(nil), w.Thumbnail...)
	}
	return &dup
}

// NewWorkspaceID generates a unique workspace identifier.
func NewWorkspaceID() string {
	return "ws-" + uuid.NewString()
}

// NowMillis returns the current wall-clock time in unix milliseconds, the
// timestamp unit used in persisted workspace records.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}

// GenerationResult is the normalized outcome of a generation call. Either
// field may be empty when the service returned no matching part.
type GenerationResult struct {
	Text  string
	Image []byte
}

// Empty reports whether the service returned neither text nor an image.
func (r *GenerationResult) Empty() bool {
	return r.Text == "" && len(r.Image) == 0
}
