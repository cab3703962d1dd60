package wave

import "math"

type Point struct {
	X, Y float64
}

// Segment is a cubic curve from the previous point to To.
type Segment struct {
	C1, C2, To Point
}

type Path struct {
	Start    Point
	Segments []Segment
}

func (p Path) Empty() bool {
	return len(p.Segments) == 0
}

// BuildPath lays the waveform out over width pixels. Each sample is scaled by
// a sine whose phase advances swings*pi across the width. For an even swings
// value the last point lines up with the first, so tiled copies join without
// a seam.
// Consecutive points are joined with both control handles half a step back,
// which smooths the corners without being a true spline.
func BuildPath(w Waveform, width, height int, swings float64) Path {
	n := len(w.Samples)
	if n == 0 || width <= 0 {
		return Path{}
	}

	centerY := float64(height / 2)
	halfHeight := 0.5 * float64(height)
	wobble := swings * math.Pi
	halfNumPoints := float64(n) * 0.5

	step := float64(width / n)
	halfStep := step * 0.5

	path := Path{Segments: make([]Segment, 0, n)}
	var prevY float64
	for i := 0; i <= n; i++ {
		x := step * float64(i)
		handleX := math.Trunc(x - halfStep)

		progression := x / float64(width)
		sine := math.Sin(wobble*progression + math.Abs(halfNumPoints-float64(i)))
		y := math.Trunc(centerY + halfHeight*w.Samples[i%n]*sine)

		if i == 0 {
			path.Start = Point{X: 0, Y: y}
		} else {
			path.Segments = append(path.Segments, Segment{
				C1: Point{X: handleX, Y: prevY},
				C2: Point{X: handleX, Y: y},
				To: Point{X: x, Y: y},
			})
		}
		prevY = y
	}
	return path
}

// Flatten approximates the path with a polyline, sampling each segment at
// steps evenly spaced parameter values.
func (p Path) Flatten(steps int) []Point {
	if steps < 1 {
		steps = 1
	}
	points := make([]Point, 0, 1+len(p.Segments)*steps)
	points = append(points, p.Start)

	from := p.Start
	for _, seg := range p.Segments {
		for s := 1; s <= steps; s++ {
			points = append(points, cubic(from, seg, float64(s)/float64(steps)))
		}
		from = seg.To
	}
	return points
}

func cubic(p0 Point, seg Segment, t float64) Point {
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	c := 3 * u * t * t
	d := t * t * t
	return Point{
		X: a*p0.X + b*seg.C1.X + c*seg.C2.X + d*seg.To.X,
		Y: a*p0.Y + b*seg.C1.Y + c*seg.C2.Y + d*seg.To.Y,
	}
}
