package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	currentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List workspaces",
	Long:  `List all workspaces in insertion order, marking the current one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, cleanup, err := openManager()
		if err != nil {
			return err
		}
		defer cleanup()

		current, err := manager.Current()
		if err != nil {
			return err
		}

		fmt.Println(headerStyle.Render(fmt.Sprintf("Workspaces (%d)", manager.Count())))
		fmt.Println()

		for _, ws := range manager.List() {
			marker := "  "
			if ws.ID == current.ID {
				marker = currentStyle.Render("* ")
			}
			updated := time.UnixMilli(ws.UpdatedAt).Format("2006-01-02 15:04")
			size := ""
			if len(ws.Data) > 0 {
				size = fmt.Sprintf(" (%d bytes)", len(ws.Data))
			}
			fmt.Printf("%s%s  %s  %s%s\n",
				marker,
				nameStyle.Render(ws.Name),
				idStyle.Render(ws.ID),
				dateStyle.Render(updated),
				size,
			)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
