package internal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"math"
)

// Object kinds supported by the scene model.
const (
	ObjectRect   = "rect"
	ObjectCircle = "circle"
	ObjectText   = "text"
	ObjectArrow  = "arrow"
	ObjectImage  = "image"
)

// Scene defaults, matching a full-screen canvas with a white background.
const (
	DefaultSceneWidth  = 1200
	DefaultSceneHeight = 800
)

// SceneObject is one drawable element. Which fields are meaningful depends
// on Type: rects use X/Y/Width/Height, circles X/Y/Radius, arrows X/Y to
// X2/Y2, text X/Y/Text, images X/Y/Width/Height/Image.
type SceneObject struct {
	Type        string `json:"type"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	X2          int    `json:"x2,omitempty"`
	Y2          int    `json:"y2,omitempty"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
	Radius      int    `json:"radius,omitempty"`
	Text        string `json:"text,omitempty"`
	Fill        string `json:"fill,omitempty"`
	Stroke      string `json:"stroke,omitempty"`
	StrokeWidth int    `json:"strokeWidth,omitempty"`
	Image       []byte `json:"image,omitempty"`
}

// Scene is the live editable scene: an ordered object list over a solid
// background. Order is draw order; the most recently added object is on top.
type Scene struct {
	Width      int           `json:"width"`
	Height     int           `json:"height"`
	Background string        `json:"background"`
	Objects    []SceneObject `json:"objects"`
}

// Bounds is a rectangular sub-region of the scene in pixels.
type Bounds struct {
	X, Y, W, H int
}

// SceneSerializer is the contract the workspace and generation layers
// consume: snapshot the scene to a reloadable blob, restore from one, render
// a small preview, and rasterize a visible sub-region for submission.
type SceneSerializer interface {
	Snapshot() ([]byte, error)
	Restore(data []byte)
	Preview(scale float64) ([]byte, error)
	CaptureRegion(b Bounds) ([]byte, error)
}

var _ SceneSerializer = (*Scene)(nil)

// NewScene creates an empty scene with default dimensions and a white
// background.
func NewScene() *Scene {
	return &Scene{
		Width:      DefaultSceneWidth,
		Height:     DefaultSceneHeight,
		Background: "#ffffff",
	}
}

// Add appends an object to the scene.
func (s *Scene) Add(obj SceneObject) {
	s.Objects = append(s.Objects, obj)
}

// RemoveLast removes the most recently added object. This is the only undo
// the application has; there is no redo stack.
func (s *Scene) RemoveLast() bool {
	if len(s.Objects) == 0 {
		return false
	}
	s.Objects = s.Objects[:len(s.Objects)-1]
	return true
}

// Clear removes every object, leaving the blank background.
func (s *Scene) Clear() {
	s.Objects = nil
}

// Snapshot serializes the full scene state to a reloadable blob.
func (s *Scene) Snapshot() ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize scene: %w", err)
	}
	return data, nil
}

// Restore replaces the scene contents from a snapshot. Absent or invalid
// data leaves the scene in the cleared default state.
func (s *Scene) Restore(data []byte) {
	if len(data) == 0 {
		*s = *NewScene()
		return
	}
	var restored Scene
	if err := json.Unmarshal(data, &restored); err != nil {
		LogWarn("Failed to restore scene snapshot, starting blank: %v", err)
		*s = *NewScene()
		return
	}
	if restored.Width <= 0 || restored.Height <= 0 {
		restored.Width = DefaultSceneWidth
		restored.Height = DefaultSceneHeight
	}
	if restored.Background == "" {
		restored.Background = "#ffffff"
	}
	*s = restored
}

// Preview renders the scene scaled down by the given factor and returns it
// PNG-encoded, for workspace thumbnails.
func (s *Scene) Preview(scale float64) ([]byte, error) {
	if scale <= 0 || scale > 1 {
		scale = 0.1
	}
	full := s.render()
	w := int(float64(s.Width) * scale)
	h := int(float64(s.Height) * scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	small := scaleImage(full, w, h)

	var buf bytes.Buffer
	if err := png.Encode(&buf, small); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}
	return buf.Bytes(), nil
}

// CaptureRegion rasterizes a sub-region of the scene as JPEG bytes for
// submission to the generation service. A zero region captures the whole
// scene.
func (s *Scene) CaptureRegion(b Bounds) ([]byte, error) {
	if b.W <= 0 || b.H <= 0 {
		b = Bounds{X: 0, Y: 0, W: s.Width, H: s.Height}
	}
	full := s.render()
	region := image.NewRGBA(image.Rect(0, 0, b.W, b.H))
	draw.Draw(region, region.Bounds(), full, image.Pt(b.X, b.Y), draw.Src)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, region, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("failed to encode capture: %w", err)
	}
	return buf.Bytes(), nil
}

// render rasterizes the scene. The rasterizer favors simplicity over
// fidelity: solid fills, square strokes, text as a baseline marker.
func (s *Scene) render() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.Width, s.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(parseHexColor(s.Background, color.White)), image.Point{}, draw.Src)

	for _, obj := range s.Objects {
		switch obj.Type {
		case ObjectRect:
			drawRect(img, obj)
		case ObjectCircle:
			drawCircle(img, obj)
		case ObjectArrow:
			drawArrow(img, obj)
		case ObjectText:
			drawTextMarker(img, obj)
		case ObjectImage:
			drawImageObject(img, obj)
		}
	}
	return img
}

func drawRect(img *image.RGBA, obj SceneObject) {
	fill := parseHexColor(obj.Fill, color.RGBA{59, 130, 246, 255})
	rect := image.Rect(obj.X, obj.Y, obj.X+obj.Width, obj.Y+obj.Height)
	draw.Draw(img, rect.Intersect(img.Bounds()), image.NewUniform(fill), image.Point{}, draw.Src)

	if obj.Stroke != "" {
		stroke := parseHexColor(obj.Stroke, color.Black)
		sw := obj.StrokeWidth
		if sw <= 0 {
			sw = 2
		}
		for i := 0; i < sw; i++ {
			outlineRect(img, rect.Inset(i), stroke)
		}
	}
}

func outlineRect(img *image.RGBA, rect image.Rectangle, c color.Color) {
	for x := rect.Min.X; x < rect.Max.X; x++ {
		setPixel(img, x, rect.Min.Y, c)
		setPixel(img, x, rect.Max.Y-1, c)
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		setPixel(img, rect.Min.X, y, c)
		setPixel(img, rect.Max.X-1, y, c)
	}
}

func drawCircle(img *image.RGBA, obj SceneObject) {
	fill := parseHexColor(obj.Fill, color.RGBA{59, 130, 246, 255})
	r := obj.Radius
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				setPixel(img, obj.X+dx, obj.Y+dy, fill)
			}
		}
	}
}

func drawArrow(img *image.RGBA, obj SceneObject) {
	stroke := parseHexColor(obj.Stroke, color.Black)
	sw := obj.StrokeWidth
	if sw <= 0 {
		sw = 2
	}
	drawLine(img, obj.X, obj.Y, obj.X2, obj.Y2, sw, stroke)

	// Arrowhead: two short strokes angled back from the tip.
	angle := math.Atan2(float64(obj.Y2-obj.Y), float64(obj.X2-obj.X))
	const headLen = 12.0
	for _, offset := range []float64{math.Pi * 5 / 6, -math.Pi * 5 / 6} {
		hx := obj.X2 + int(headLen*math.Cos(angle+offset))
		hy := obj.Y2 + int(headLen*math.Sin(angle+offset))
		drawLine(img, obj.X2, obj.Y2, hx, hy, sw, stroke)
	}
}

func drawLine(img *image.RGBA, x0, y0, x1, y1, width int, c color.Color) {
	steps := int(math.Hypot(float64(x1-x0), float64(y1-y0)))
	if steps == 0 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := x0 + int(t*float64(x1-x0))
		y := y0 + int(t*float64(y1-y0))
		for dy := -width / 2; dy <= width/2; dy++ {
			for dx := -width / 2; dx <= width/2; dx++ {
				setPixel(img, x+dx, y+dy, c)
			}
		}
	}
}

// drawTextMarker renders annotation text as a baseline marker sized to the
// text length. Glyph rendering is out of scope for the rasterizer; the
// generation service reads the text from the snapshot, not the raster.
func drawTextMarker(img *image.RGBA, obj SceneObject) {
	c := parseHexColor(obj.Fill, color.Black)
	width := len(obj.Text) * 8
	if width == 0 {
		return
	}
	drawLine(img, obj.X, obj.Y, obj.X+width, obj.Y, 2, c)
}

func drawImageObject(img *image.RGBA, obj SceneObject) {
	if len(obj.Image) == 0 {
		return
	}
	decoded, _, err := image.Decode(bytes.NewReader(obj.Image))
	if err != nil {
		LogDebug("Skipping undecodable image object: %v", err)
		return
	}

	w, h := obj.Width, obj.Height
	if w <= 0 {
		w = decoded.Bounds().Dx()
	}
	if h <= 0 {
		h = decoded.Bounds().Dy()
	}
	scaled := scaleImage(decoded, w, h)
	target := image.Rect(obj.X, obj.Y, obj.X+w, obj.Y+h)
	draw.Draw(img, target.Intersect(img.Bounds()), scaled, image.Point{}, draw.Over)
}

// scaleImage resizes with nearest-neighbor sampling.
func scaleImage(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	srcBounds := src.Bounds()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sx := srcBounds.Min.X + x*srcBounds.Dx()/w
			sy := srcBounds.Min.Y + y*srcBounds.Dy()/h
			dst.Set(x, y, src.At(sx, sy))
		}
	}
	return dst
}

func setPixel(img *image.RGBA, x, y int, c color.Color) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.Set(x, y, c)
	}
}

// parseHexColor parses #RGB or #RRGGBB, returning fallback on anything else.
func parseHexColor(s string, fallback color.Color) color.Color {
	if len(s) == 0 || s[0] != '#' {
		return fallback
	}
	hex := s[1:]
	var r, g, b uint8
	switch len(hex) {
	case 3:
		if _, err := fmt.Sscanf(hex, "%1x%1x%1x", &r, &g, &b); err != nil {
			return fallback
		}
		r, g, b = r*17, g*17, b*17
	case 6:
		if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
			return fallback
		}
	default:
		return fallback
	}
	return color.RGBA{r, g, b, 255}
}
