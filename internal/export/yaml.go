package export

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLExporter exports workspace listings in YAML format
type YAMLExporter struct{}

// Export exports a listing to YAML format
func (e *YAMLExporter) Export(listing *Listing, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer func() { _ = enc.Close() }()

	return enc.Encode(listing)
}

// Extension returns the file extension for this format
func (e *YAMLExporter) Extension() string {
	return "yaml"
}
