package export

import (
	"fmt"
	"io"
)

// MarkdownExporter exports workspace listings in Markdown format
type MarkdownExporter struct{}

// Export exports a listing to Markdown format
func (e *MarkdownExporter) Export(listing *Listing, w io.Writer) error {
	_, _ = fmt.Fprintf(w, "# Workspaces\n\n")
	_, _ = fmt.Fprintf(w, "| Name | ID | Updated | Data | Current |\n")
	_, _ = fmt.Fprintf(w, "|------|----|---------|------|--------|\n")

	for _, record := range listing.Workspaces {
		current := ""
		if record.Current {
			current = "✓"
		}
		_, _ = fmt.Fprintf(w, "| %s | %s | %s | %d bytes | %s |\n",
			record.Name, record.ID, record.UpdatedAt, record.DataBytes, current)
	}

	return nil
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
