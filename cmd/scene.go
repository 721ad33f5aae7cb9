package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Scene editing commands: undo, clear.

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Remove the most recently added object",
	RunE: func(cmd *cobra.Command, args []string) error {
		controller, cleanup, err := openController(false)
		if err != nil {
			return err
		}
		defer cleanup()

		if !controller.Scene.RemoveLast() {
			fmt.Println("Nothing to undo")
			return nil
		}
		if err := controller.SaveScene(); err != nil {
			return err
		}
		fmt.Printf("Removed last object (%d remaining)\n", len(controller.Scene.Objects))
		return nil
	},
}

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the current scene",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !clearYes && !confirm("Clear entire canvas?") {
			fmt.Println("Aborted")
			return nil
		}

		controller, cleanup, err := openController(false)
		if err != nil {
			return err
		}
		defer cleanup()

		controller.Scene.Clear()
		if err := controller.SaveScene(); err != nil {
			return err
		}
		fmt.Println("Canvas cleared")
		return nil
	},
}

func init() {
	clearCmd.Flags().BoolVar(&clearYes, "yes", false, "Skip the confirmation prompt")

	rootCmd.AddCommand(undoCmd)
	rootCmd.AddCommand(clearCmd)
}
