package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/artist-canvas/internal"
	"github.com/spf13/cobra"
)

// Each subcommand binds its own flag variables; sharing them across
// registrations would let the last-registered default win.
var rectX, rectY, rectWidth, rectHeight, rectStrokeWidth int
var rectFill, rectStroke string

var circleX, circleY, circleRadius int
var circleFill string

var textX, textY int
var textFill string

var arrowX, arrowY, arrowX2, arrowY2, arrowStrokeWidth int
var arrowStroke string

var imageX, imageY, imageWidth, imageHeight int

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an object to the current scene",
}

var addRectCmd = &cobra.Command{
	Use:   "rect",
	Short: "Add a rectangle",
	RunE: func(cmd *cobra.Command, args []string) error {
		return addObject(internal.SceneObject{
			Type:        internal.ObjectRect,
			X:           rectX,
			Y:           rectY,
			Width:       rectWidth,
			Height:      rectHeight,
			Fill:        rectFill,
			Stroke:      rectStroke,
			StrokeWidth: rectStrokeWidth,
		})
	},
}

var addCircleCmd = &cobra.Command{
	Use:   "circle",
	Short: "Add a circle",
	RunE: func(cmd *cobra.Command, args []string) error {
		return addObject(internal.SceneObject{
			Type:   internal.ObjectCircle,
			X:      circleX,
			Y:      circleY,
			Radius: circleRadius,
			Fill:   circleFill,
		})
	},
}

var addTextCmd = &cobra.Command{
	Use:   "text <text>",
	Short: "Add an annotation text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return addObject(internal.SceneObject{
			Type: internal.ObjectText,
			X:    textX,
			Y:    textY,
			Text: args[0],
			Fill: textFill,
		})
	},
}

var addArrowCmd = &cobra.Command{
	Use:   "arrow",
	Short: "Add an instruction arrow",
	RunE: func(cmd *cobra.Command, args []string) error {
		return addObject(internal.SceneObject{
			Type:        internal.ObjectArrow,
			X:           arrowX,
			Y:           arrowY,
			X2:          arrowX2,
			Y2:          arrowY2,
			Stroke:      arrowStroke,
			StrokeWidth: arrowStrokeWidth,
		})
	},
}

var addImageCmd = &cobra.Command{
	Use:   "image <file>",
	Short: "Add an image from a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read image: %w", err)
		}
		return addObject(internal.SceneObject{
			Type:   internal.ObjectImage,
			X:      imageX,
			Y:      imageY,
			Width:  imageWidth,
			Height: imageHeight,
			Image:  data,
		})
	},
}

// addObject appends the object to the current scene and persists the
// snapshot, the same mutate-then-save cycle every scene edit follows.
func addObject(obj internal.SceneObject) error {
	controller, cleanup, err := openController(false)
	if err != nil {
		return err
	}
	defer cleanup()

	controller.Scene.Add(obj)
	if err := controller.SaveScene(); err != nil {
		return err
	}
	fmt.Printf("Added %s (%d objects in scene)\n", obj.Type, len(controller.Scene.Objects))
	return nil
}

func init() {
	addRectCmd.Flags().IntVar(&rectX, "x", 100, "X position")
	addRectCmd.Flags().IntVar(&rectY, "y", 100, "Y position")
	addRectCmd.Flags().IntVar(&rectWidth, "width", 120, "Width")
	addRectCmd.Flags().IntVar(&rectHeight, "height", 80, "Height")
	addRectCmd.Flags().StringVar(&rectFill, "fill", "#3B82F6", "Fill color")
	addRectCmd.Flags().StringVar(&rectStroke, "stroke", "", "Stroke color")
	addRectCmd.Flags().IntVar(&rectStrokeWidth, "stroke-width", 2, "Stroke width")

	addCircleCmd.Flags().IntVar(&circleX, "x", 100, "X position")
	addCircleCmd.Flags().IntVar(&circleY, "y", 100, "Y position")
	addCircleCmd.Flags().IntVar(&circleRadius, "radius", 50, "Radius")
	addCircleCmd.Flags().StringVar(&circleFill, "fill", "#3B82F6", "Fill color")

	addTextCmd.Flags().IntVar(&textX, "x", 100, "X position")
	addTextCmd.Flags().IntVar(&textY, "y", 100, "Y position")
	addTextCmd.Flags().StringVar(&textFill, "fill", "#000000", "Text color")

	addArrowCmd.Flags().IntVar(&arrowX, "x", 100, "X position")
	addArrowCmd.Flags().IntVar(&arrowY, "y", 100, "Y position")
	addArrowCmd.Flags().IntVar(&arrowX2, "x2", 200, "Arrow tip X")
	addArrowCmd.Flags().IntVar(&arrowY2, "y2", 200, "Arrow tip Y")
	addArrowCmd.Flags().StringVar(&arrowStroke, "stroke", "#000000", "Stroke color")
	addArrowCmd.Flags().IntVar(&arrowStrokeWidth, "stroke-width", 2, "Stroke width")

	addImageCmd.Flags().IntVar(&imageX, "x", 100, "X position")
	addImageCmd.Flags().IntVar(&imageY, "y", 100, "Y position")
	addImageCmd.Flags().IntVar(&imageWidth, "width", 0, "Width (0 keeps the source width)")
	addImageCmd.Flags().IntVar(&imageHeight, "height", 0, "Height (0 keeps the source height)")

	for _, sub := range []*cobra.Command{addRectCmd, addCircleCmd, addTextCmd, addArrowCmd, addImageCmd} {
		addCmd.AddCommand(sub)
	}
	rootCmd.AddCommand(addCmd)
}
