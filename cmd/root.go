package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iksnae/artist-canvas/internal"
	"github.com/spf13/cobra"
)

var (
	verbose     bool
	storagePath string
	version     string = "dev"
	commit      string = "unknown"
	date        string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "artist-canvas",
	Short: "Workspace-backed drawing canvas with visual prompting",
	Long: `A drawing canvas CLI that organizes sketches into named workspaces and
sends the current view to a generative image service for visual prompting.

Workspaces hold an independent scene each (shapes, text, arrows, images)
and persist across runs. Arrows and text annotations drawn on the canvas
act as instructions for the generation service, which interprets them and
returns a transformed image with the markup stripped.

Quick Start:
  artist-canvas list                      # List workspaces
  artist-canvas new "My Sketch"           # Create and switch to a workspace
  artist-canvas add rect --x 100 --y 100  # Draw on the current scene
  artist-canvas generate --prompt "make this photorealistic"

For detailed usage, see: https://github.com/iksnae/artist-canvas`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&storagePath, "storage", "", "Custom storage directory (default ~/.artist-canvas)")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// resolveStorageDir returns the storage directory, honoring the --storage
// override, and makes sure it exists.
func resolveStorageDir() (string, error) {
	dir := storagePath
	if dir == "" {
		var err error
		dir, err = internal.DefaultStorageDir()
		if err != nil {
			return "", err
		}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create storage directory: %w", err)
	}
	return dir, nil
}

// openManager opens the workspace database and returns an initialized
// manager plus a cleanup function.
func openManager() (*internal.WorkspaceManager, func(), error) {
	dir, err := resolveStorageDir()
	if err != nil {
		return nil, nil, err
	}

	db, err := internal.OpenDatabase(filepath.Join(dir, "workspaces.db"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workspace storage: %w", err)
	}
	cleanup := func() { _ = db.Close() }

	manager := internal.NewWorkspaceManager(internal.NewSQLiteStore(db))
	if err := manager.Initialize(); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to initialize workspaces: %w", err)
	}
	return manager, cleanup, nil
}

// openController wires a controller over the manager with the live scene
// restored from the current workspace. The generation client is attached
// only when withClient is set, since it needs a configured API key.
func openController(withClient bool) (*internal.CanvasController, func(), error) {
	manager, cleanup, err := openManager()
	if err != nil {
		return nil, nil, err
	}

	var client *internal.GenerationClient
	if withClient {
		dir, err := resolveStorageDir()
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		cfg, err := internal.LoadConfig(dir)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		if cfg.APIKey == "" {
			cleanup()
			return nil, nil, fmt.Errorf("no API key configured; set GEMINI_API_KEY or api_key in %s", filepath.Join(dir, "config.yaml"))
		}
		client = internal.NewGenerationClient(cfg.APIKey, cfg.Model)
	}

	controller := internal.NewCanvasController(manager, client)
	if err := controller.LoadScene(); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to load scene: %w", err)
	}
	return controller, cleanup, nil
}
