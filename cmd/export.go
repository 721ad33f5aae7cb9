package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/artist-canvas/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the workspace listing",
	Long:  `Export workspace metadata in JSON, YAML or Markdown format.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, cleanup, err := openManager()
		if err != nil {
			return err
		}
		defer cleanup()

		exporter, err := export.NewExporter(exportFormat)
		if err != nil {
			return err
		}

		current, err := manager.Current()
		if err != nil {
			return err
		}
		listing := export.BuildListing(manager.List(), current.ID)

		out := os.Stdout
		if exportOut != "" {
			f, err := os.Create(exportOut)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", exportOut, err)
			}
			defer f.Close()
			out = f
		}
		return exporter.Export(listing, out)
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Export format: json, yaml, md")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default stdout)")

	rootCmd.AddCommand(exportCmd)
}
