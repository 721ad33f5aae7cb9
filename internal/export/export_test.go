package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/iksnae/artist-canvas/internal"
)

func sampleListing() *Listing {
	workspaces := []*internal.Workspace{
		{
			ID:        "ws-aaa",
			Name:      "Sketches",
			Data:      []byte(`{"objects":[]}`),
			Thumbnail: []byte{1, 2, 3},
			CreatedAt: 1700000000000,
			UpdatedAt: 1700000100000,
		},
		{
			ID:        "ws-bbb",
			Name:      "Drafts",
			CreatedAt: 1700000200000,
			UpdatedAt: 1700000300000,
		},
	}
	return BuildListing(workspaces, "ws-bbb")
}

func TestBuildListing(t *testing.T) {
	listing := sampleListing()

	if len(listing.Workspaces) != 2 {
		t.Fatalf("listing has %d records, want 2", len(listing.Workspaces))
	}

	first := listing.Workspaces[0]
	if first.Current {
		t.Errorf("ws-aaa marked current")
	}
	if first.DataBytes != len(`{"objects":[]}`) || first.ThumbnailSize != 3 {
		t.Errorf("blob sizes wrong: %+v", first)
	}
	if !strings.HasPrefix(first.CreatedAt, "2023-11-") {
		t.Errorf("created_at = %q, want RFC3339", first.CreatedAt)
	}

	if !listing.Workspaces[1].Current {
		t.Errorf("ws-bbb not marked current")
	}
}

func TestBuildListingZeroTimestamps(t *testing.T) {
	listing := BuildListing([]*internal.Workspace{{ID: "ws-x", Name: "X"}}, "")
	if got := listing.Workspaces[0].CreatedAt; got != "" {
		t.Errorf("zero timestamp rendered as %q, want empty", got)
	}
}

func TestJSONExporter(t *testing.T) {
	var buf bytes.Buffer
	exporter := &JSONExporter{}
	if err := exporter.Export(sampleListing(), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var decoded Listing
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded.Workspaces) != 2 || decoded.Workspaces[0].Name != "Sketches" {
		t.Errorf("decoded = %+v", decoded)
	}
	if exporter.Extension() != "json" {
		t.Errorf("Extension() = %q", exporter.Extension())
	}
}

func TestYAMLExporter(t *testing.T) {
	var buf bytes.Buffer
	exporter := &YAMLExporter{}
	if err := exporter.Export(sampleListing(), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var decoded Listing
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if len(decoded.Workspaces) != 2 || decoded.Workspaces[1].ID != "ws-bbb" {
		t.Errorf("decoded = %+v", decoded)
	}
	if exporter.Extension() != "yaml" {
		t.Errorf("Extension() = %q", exporter.Extension())
	}
}

func TestMarkdownExporter(t *testing.T) {
	var buf bytes.Buffer
	exporter := &MarkdownExporter{}
	if err := exporter.Export(sampleListing(), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Sketches", "Drafts", "ws-aaa", "|"} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown output missing %q:\n%s", want, out)
		}
	}
	if exporter.Extension() != "md" {
		t.Errorf("Extension() = %q", exporter.Extension())
	}
}

func TestNewExporter(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"yaml", false},
		{"md", false},
		{"markdown", false},
		{"xml", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run("format "+tt.format, func(t *testing.T) {
			_, err := NewExporter(tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewExporter(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
		})
	}
}
