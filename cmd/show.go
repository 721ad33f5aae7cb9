package cmd

import (
	"fmt"
	"time"

	"github.com/iksnae/artist-canvas/internal"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show workspace details",
	Long:  `Show details for a workspace (the current one when no id is given).`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, cleanup, err := openManager()
		if err != nil {
			return err
		}
		defer cleanup()

		var ws *internal.Workspace
		if len(args) == 1 {
			for _, candidate := range manager.List() {
				if candidate.ID == args[0] {
					ws = candidate
					break
				}
			}
			if ws == nil {
				return fmt.Errorf("workspace not found: %s", args[0])
			}
		} else {
			ws, err = manager.Current()
			if err != nil {
				return err
			}
		}

		fmt.Printf("Name:      %s\n", nameStyle.Render(ws.Name))
		fmt.Printf("ID:        %s\n", ws.ID)
		fmt.Printf("Created:   %s\n", time.UnixMilli(ws.CreatedAt).Format(time.RFC1123))
		fmt.Printf("Updated:   %s\n", time.UnixMilli(ws.UpdatedAt).Format(time.RFC1123))
		fmt.Printf("Snapshot:  %d bytes\n", len(ws.Data))
		fmt.Printf("Thumbnail: %d bytes\n", len(ws.Thumbnail))

		// The snapshot is opaque to the workspace layer but the CLI owns a
		// scene and can peek at the object count.
		if len(ws.Data) > 0 {
			scene := internal.NewScene()
			scene.Restore(ws.Data)
			fmt.Printf("Objects:   %d\n", len(scene.Objects))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
