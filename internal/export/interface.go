package export

import (
	"fmt"
	"io"
	"time"

	"github.com/iksnae/artist-canvas/internal"
)

// Record is the exportable view of a workspace: metadata and blob sizes,
// never the opaque blob contents themselves.
type Record struct {
	ID            string `json:"id" yaml:"id"`
	Name          string `json:"name" yaml:"name"`
	Current       bool   `json:"current" yaml:"current"`
	CreatedAt     string `json:"created_at" yaml:"created_at"`
	UpdatedAt     string `json:"updated_at" yaml:"updated_at"`
	DataBytes     int    `json:"data_bytes" yaml:"data_bytes"`
	ThumbnailSize int    `json:"thumbnail_bytes" yaml:"thumbnail_bytes"`
}

// Listing is the full export document.
type Listing struct {
	Workspaces []Record `json:"workspaces" yaml:"workspaces"`
}

// Exporter defines the interface for all export formats
type Exporter interface {
	Export(listing *Listing, w io.Writer) error
	Extension() string
}

// NewExporter creates a new exporter based on format
func NewExporter(format string) (Exporter, error) {
	switch format {
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	case "yaml":
		return &YAMLExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: json, yaml, md)", format)
	}
}

// BuildListing converts workspace records into the export view.
func BuildListing(workspaces []*internal.Workspace, currentID string) *Listing {
	listing := &Listing{Workspaces: make([]Record, 0, len(workspaces))}
	for _, ws := range workspaces {
		listing.Workspaces = append(listing.Workspaces, Record{
			ID:            ws.ID,
			Name:          ws.Name,
			Current:       ws.ID == currentID,
			CreatedAt:     formatMillis(ws.CreatedAt),
			UpdatedAt:     formatMillis(ws.UpdatedAt),
			DataBytes:     len(ws.Data),
			ThumbnailSize: len(ws.Thumbnail),
		})
	}
	return listing
}

func formatMillis(ms int64) string {
	if ms == 0 {
		return ""
	}
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}
