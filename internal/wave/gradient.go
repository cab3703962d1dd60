package wave

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

type gradientStop struct {
	pos   float64
	alpha float64
}

// Opaque at both edges, clear through the middle. Positions outside the
// first and last stop take that stop's alpha.
var edgeFade = []gradientStop{
	{pos: 0.2, alpha: 1},
	{pos: 0.8, alpha: 0},
	{pos: 0.9, alpha: 0},
	{pos: 0.98, alpha: 1},
}

// Gradient is the per-column alpha of the edge-fade overlay. An alpha of 1
// hides the column completely.
type Gradient []float64

func NewGradient(cols int) Gradient {
	g := make(Gradient, max(cols, 0))
	for c := range g {
		g[c] = fadeAt((float64(c) + 0.5) / float64(cols))
	}
	return g
}

func (g Gradient) Alpha(col int) float64 {
	if col < 0 || col >= len(g) {
		return 1
	}
	return g[col]
}

func fadeAt(t float64) float64 {
	first, last := edgeFade[0], edgeFade[len(edgeFade)-1]
	if t <= first.pos {
		return first.alpha
	}
	if t >= last.pos {
		return last.alpha
	}
	for i := 1; i < len(edgeFade); i++ {
		a, b := edgeFade[i-1], edgeFade[i]
		if t <= b.pos {
			f := (t - a.pos) / (b.pos - a.pos)
			return a.alpha + (b.alpha-a.alpha)*f
		}
	}
	return last.alpha
}

var black = colorful.Color{}

// paintColor is the paint composited over a black background.
func paintColor(p Paint) colorful.Color {
	c, err := colorful.Hex(p.Color)
	if err != nil {
		c = colorful.Color{R: 1, G: 1, B: 1}
	}
	return black.BlendRgb(c, float64(p.Alpha)/255)
}

// lighten keeps the brighter channel of each color.
func lighten(a, b colorful.Color) colorful.Color {
	return colorful.Color{
		R: max(a.R, b.R),
		G: max(a.G, b.G),
		B: max(a.B, b.B),
	}
}

// shade resolves the color of a cell covered by layers, dimmed by the
// overlay alpha fade.
func shade(layers Layer, primary, secondary Paint, fade float64) lipgloss.Color {
	var c colorful.Color
	if layers&LayerSecondary != 0 {
		c = lighten(c, paintColor(secondary))
	}
	if layers&LayerPrimary != 0 {
		c = lighten(c, paintColor(primary))
	}
	return lipgloss.Color(c.BlendRgb(black, fade).Clamped().Hex())
}
