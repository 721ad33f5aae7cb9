package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// Workspace lifecycle commands: new, switch, rename, delete, duplicate,
// reset.

var newCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a new workspace and switch to it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, cleanup, err := openManager()
		if err != nil {
			return err
		}
		defer cleanup()

		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		ws, err := manager.Create(name)
		if err != nil {
			return err
		}
		fmt.Printf("Created workspace %q (%s)\n", ws.Name, ws.ID)
		return nil
	},
}

var switchCmd = &cobra.Command{
	Use:   "switch <id>",
	Short: "Switch the current workspace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		controller, cleanup, err := openController(false)
		if err != nil {
			return err
		}
		defer cleanup()

		ok, err := controller.SwitchWorkspace(args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("workspace not found: %s", args[0])
		}
		ws, err := controller.Manager.Current()
		if err != nil {
			return err
		}
		fmt.Printf("Switched to %q (%s)\n", ws.Name, ws.ID)
		return nil
	},
}

var renameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a workspace",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, cleanup, err := openManager()
		if err != nil {
			return err
		}
		defer cleanup()

		if !manager.Rename(args[0], args[1]) {
			return fmt.Errorf("rename failed: workspace %s not found or name is blank", args[0])
		}
		fmt.Printf("Renamed workspace %s to %q\n", args[0], strings.TrimSpace(args[1]))
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a workspace",
	Long:  `Delete a workspace. The last remaining workspace cannot be deleted.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, cleanup, err := openManager()
		if err != nil {
			return err
		}
		defer cleanup()

		if !manager.Delete(args[0]) {
			if manager.Count() <= 1 {
				return fmt.Errorf("cannot delete the last remaining workspace")
			}
			return fmt.Errorf("workspace not found: %s", args[0])
		}
		fmt.Printf("Deleted workspace %s\n", args[0])
		return nil
	},
}

var duplicateCmd = &cobra.Command{
	Use:   "duplicate <id>",
	Short: "Duplicate a workspace and switch to the copy",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, cleanup, err := openManager()
		if err != nil {
			return err
		}
		defer cleanup()

		dup := manager.Duplicate(args[0])
		if dup == nil {
			return fmt.Errorf("workspace not found: %s", args[0])
		}
		fmt.Printf("Created %q (%s)\n", dup.Name, dup.ID)
		return nil
	},
}

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all workspaces and start over",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes && !confirm("This will delete all workspaces. Are you sure?") {
			fmt.Println("Aborted")
			return nil
		}

		manager, cleanup, err := openManager()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := manager.Reset(); err != nil {
			return err
		}
		fmt.Println("Reset to a single default workspace")
		return nil
	},
}

// confirm asks a y/N question on stdin
func confirm(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func init() {
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "Skip the confirmation prompt")

	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(switchCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(duplicateCmd)
	rootCmd.AddCommand(resetCmd)
}
