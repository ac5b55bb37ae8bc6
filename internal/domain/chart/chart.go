// Package chart computes drawing-command lists for the four dashboard chart
// kinds. Renderers are pure: identical inputs always yield identical command
// lists, and no renderer depends on prior draw state. Rasterization of the
// commands belongs to the render adapter.
package chart

import "strconv"

// Surface is the pixel size of the target drawing area.
type Surface struct {
	Width  float64
	Height float64
}

// Point is a position on the surface, y growing downward.
type Point struct {
	X float64
	Y float64
}

// Text anchor constants.
const (
	AnchorStart  = "start"
	AnchorMiddle = "middle"
	AnchorEnd    = "end"
)

// Command is one drawing instruction.
type Command interface {
	command()
}

// Line is a straight segment.
type Line struct {
	From        Point
	To          Point
	Color       string
	StrokeWidth float64
}

// Polyline is a connected series of segments.
type Polyline struct {
	Points      []Point
	Color       string
	StrokeWidth float64
}

// Rect is a filled axis-aligned rectangle.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
	Color  string
}

// Dot is a small filled circle marker.
type Dot struct {
	Center Point
	Radius float64
	Color  string
}

// Slice is a filled annular sector. InnerRadius zero makes it a pie slice.
// Angles are radians; the screen y axis grows downward, so increasing angles
// sweep clockwise.
type Slice struct {
	Center      Point
	InnerRadius float64
	OuterRadius float64
	StartAngle  float64
	EndAngle    float64
	Color       string
}

// Text places a string on the surface.
type Text struct {
	At     Point
	Value  string
	Color  string
	Size   float64
	Anchor string
}

func (Line) command()     {}
func (Polyline) command() {}
func (Rect) command()     {}
func (Dot) command()      {}
func (Slice) command()    {}
func (Text) command()     {}

// Plot-area margins shared by the axis-based charts.
const (
	marginLeft   = 48.0
	marginRight  = 16.0
	marginTop    = 24.0
	marginBottom = 32.0
)

// gridDivisions is the number of horizontal gridline divisions.
const gridDivisions = 5

// Default styling.
const (
	gridColor    = "#e0e0e0"
	axisColor    = "#555555"
	labelColor   = "#333333"
	labelSize    = 11.0
	defaultColor = "#607d8b"
)

// plotArea returns the width and height available inside the margins.
func plotArea(s Surface) (float64, float64) {
	w := s.Width - marginLeft - marginRight
	h := s.Height - marginTop - marginBottom
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return w, h
}

// colorAt cycles through the palette by index modulo palette length.
func colorAt(colors []string, i int) string {
	if len(colors) == 0 {
		return defaultColor
	}
	return colors[i%len(colors)]
}

// maxOf returns the maximum of the values, or 0 for an empty list.
func maxOf(values []float64) float64 {
	max := 0.0
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	return max
}

// formatValue renders a numeric label without trailing zeros.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
