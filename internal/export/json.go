package export

import (
	"encoding/json"
	"io"
)

// JSONExporter exports workspace listings in JSON format (pretty-printed)
type JSONExporter struct{}

// Export exports a listing to JSON format
func (e *JSONExporter) Export(listing *Listing, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(listing)
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
