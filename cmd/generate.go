package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/iksnae/artist-canvas/internal"
	"github.com/spf13/cobra"
)

var (
	generatePrompt  string
	generateOut     string
	generateRegion  []int
	generateTimeout time.Duration
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Send the canvas to the generation service",
	Long: `Capture the current scene (or a sub-region), build structured
instructions from the optional prompt, and submit the capture to the
generation service. Arrows and text annotations on the canvas are
interpreted as instructions and stripped from the returned image.

The result image is placed back into the scene and also written to the
output file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		controller, cleanup, err := openController(true)
		if err != nil {
			return err
		}
		defer cleanup()

		var bounds internal.Bounds
		if len(generateRegion) == 4 {
			bounds = internal.Bounds{
				X: generateRegion[0],
				Y: generateRegion[1],
				W: generateRegion[2],
				H: generateRegion[3],
			}
		} else if len(generateRegion) != 0 {
			return fmt.Errorf("--region needs four values: x,y,w,h")
		}

		ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
		defer cancel()
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
		defer stop()

		result, err := controller.Generate(ctx, bounds, generatePrompt, func(stage internal.Stage) {
			internal.LogInfo("Generation stage: %s", stage)
		})
		if err != nil {
			return err
		}

		if result.Text != "" {
			fmt.Println(result.Text)
		}
		if len(result.Image) > 0 {
			if err := os.WriteFile(generateOut, result.Image, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", generateOut, err)
			}
			fmt.Printf("Saved: %s\n", generateOut)
		}
		if result.Empty() {
			fmt.Println("The service returned no text and no image")
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&generatePrompt, "prompt", "p", "", "Custom transformation prompt (default: baseline visual prompting instructions)")
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "generated.png", "Output file for the returned image")
	generateCmd.Flags().IntSliceVar(&generateRegion, "region", nil, "Capture region as x,y,w,h (default: whole scene)")
	generateCmd.Flags().DurationVar(&generateTimeout, "timeout", 2*time.Minute, "Generation timeout")

	rootCmd.AddCommand(generateCmd)
}
