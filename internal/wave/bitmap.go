package wave

import "math"

// Layer marks which paints touched a pixel.
type Layer uint8

const (
	LayerPrimary Layer = 1 << iota
	LayerSecondary
)

// Paint describes how a path is stroked into a Bitmap.
type Paint struct {
	Color  string
	Alpha  uint8
	Stroke int
	Layer  Layer
}

// A terminal cell holds a 2x4 braille dot matrix.
const (
	cellWidth  = 2
	cellHeight = 4
)

var brailleDots = [cellHeight][cellWidth]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Bitmap is an offscreen raster of layer masks.
type Bitmap struct {
	Width  int
	Height int
	pix    []Layer
}

func NewBitmap(width, height int) *Bitmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Bitmap{Width: width, Height: height, pix: make([]Layer, width*height)}
}

func (b *Bitmap) At(x, y int) Layer {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return 0
	}
	return b.pix[y*b.Width+x]
}

func (b *Bitmap) set(x, y int, l Layer) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return
	}
	b.pix[y*b.Width+x] |= l
}

// DrawPath strokes p shifted right by dx pixels.
func (b *Bitmap) DrawPath(p Path, dx float64, paint Paint) {
	if p.Empty() {
		return
	}
	points := p.Flatten(8)
	for i := 1; i < len(points); i++ {
		b.line(
			int(math.Round(points[i-1].X+dx)), int(math.Round(points[i-1].Y)),
			int(math.Round(points[i].X+dx)), int(math.Round(points[i].Y)),
			paint,
		)
	}
}

func (b *Bitmap) line(x0, y0, x1, y1 int, paint Paint) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		b.plot(x0, y0, paint)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func (b *Bitmap) plot(x, y int, paint Paint) {
	stroke := max(paint.Stroke, 1)
	top := y - (stroke-1)/2
	for i := 0; i < stroke; i++ {
		b.set(x, top+i, paint.Layer)
	}
}

// Cell packs the 2x4 pixel block whose top-left corner is (x, y) into a
// braille rune and returns the union of the layers it covers.
func (b *Bitmap) Cell(x, y int) (rune, Layer) {
	var dots rune
	var layers Layer
	for row := 0; row < cellHeight; row++ {
		for col := 0; col < cellWidth; col++ {
			l := b.At(x+col, y+row)
			if l != 0 {
				dots |= brailleDots[row][col]
				layers |= l
			}
		}
	}
	if dots == 0 {
		return ' ', 0
	}
	return 0x2800 + dots, layers
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
