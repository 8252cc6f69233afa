package render

import "math"

// Transform maps data coordinates of a viewport onto a w×h pixel grid
// with y pointing down.
type Transform struct {
	sx, sy float64
	ox, oy float64
}

// NewTransform fits the viewport into w×h. With Equal set both axes share
// one scale and the viewport is centred.
func NewTransform(v Viewport, w, h int) Transform {
	dx := v.XMax - v.XMin
	dy := v.YMax - v.YMin
	if dx == 0 {
		dx = 1
	}
	if dy == 0 {
		dy = 1
	}
	sx := float64(w) / dx
	sy := float64(h) / dy
	ox, oy := 0.0, 0.0
	if v.Equal {
		s := math.Min(sx, sy)
		ox = (float64(w) - s*dx) / 2
		oy = (float64(h) - s*dy) / 2
		sx, sy = s, s
	}
	return Transform{
		sx: sx, sy: sy,
		ox: ox - v.XMin*sx,
		oy: oy + v.YMax*sy,
	}
}

// Apply returns the pixel position of p.
func (t Transform) Apply(p Point) (float64, float64) {
	return t.ox + p.X*t.sx, t.oy - p.Y*t.sy
}

// Invert returns the data position of pixel (x, y).
func (t Transform) Invert(x, y float64) Point {
	return Point{X: (x - t.ox) / t.sx, Y: (t.oy - y) / t.sy}
}

// Scale returns the number of pixels per data unit along x.
func (t Transform) Scale() float64 {
	return t.sx
}

// ScaleY returns the number of pixels per data unit along y.
func (t Transform) ScaleY() float64 {
	return t.sy
}
