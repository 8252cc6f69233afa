package mechanics

import (
	"math"

	"github.com/san-kum/mechlab/internal/tensor"
)

// Quantity selects what a Mohr circle represents.
type Quantity int

const (
	Stress Quantity = iota
	Strain
)

func (q Quantity) String() string {
	if q == Strain {
		return "strain"
	}
	return "stress"
}

// Mohr describes a plane state and the rotation that is animated over it.
//
// For strain the XY component of State is the tensorial shear γxy/2, so
// the circle has the same formulas in both cases. With CCW set the face
// point A is plotted as (xx', −xy') and B as (yy', +xy'), so that the
// point on the circle travels counter-clockwise together with the axes.
type Mohr struct {
	State    tensor.Plane
	Quantity Quantity
	CCW      bool
}

// NewMohr returns the classroom example σxx = 100, σyy = 50, τxy = 50.
// Strain circles default to the counter-clockwise convention.
func NewMohr(q Quantity) *Mohr {
	return &Mohr{
		State:    tensor.Plane{XX: 100, YY: 50, XY: 50},
		Quantity: q,
		CCW:      q == Strain,
	}
}

// Point is a point in Mohr space: normal component N and plotted shear S.
type Point struct {
	N, S float64
}

// Rotated returns the components on axes rotated by theta.
func (m *Mohr) Rotated(theta float64) tensor.Plane {
	return m.State.Rotate(theta)
}

// Faces returns the plotted points A (x' face) and B (y' face) at theta.
func (m *Mohr) Faces(theta float64) (a, b Point) {
	r := m.State.Rotate(theta)
	sign := m.Sign()
	return Point{N: r.XX, S: sign * r.XY}, Point{N: r.YY, S: -sign * r.XY}
}

// Sign is the factor applied to the shear of point A.
func (m *Mohr) Sign() float64 {
	if m.CCW {
		return -1
	}
	return 1
}

// Circle samples n points of the circle in plotting coordinates.
func (m *Mohr) Circle(n int) []Point {
	pts := make([]Point, n)
	c, r := m.State.Center(), m.State.Radius()
	for i := range pts {
		phi := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = Point{N: c + r*math.Cos(phi), S: r * math.Sin(phi)}
	}
	return pts
}

// PrincipalAngle is the rotation that brings x' onto the major principal direction.
func (m *Mohr) PrincipalAngle() float64 {
	return m.State.PrincipalAngle()
}

// Sweep returns num rotation angles from zero to the principal angle.
func (m *Mohr) Sweep(num int) []float64 {
	return Sweep(0, m.PrincipalAngle(), num, true)
}

func (m *Mohr) MaxShear() float64 {
	return m.State.Radius()
}

// ArcStart is the polar angle in degrees of point A at theta = 0, seen from
// the centre of the circle.
func (m *Mohr) ArcStart() float64 {
	a, _ := m.Faces(0)
	return math.Atan2(a.S, a.N-m.State.Center()) * 180 / math.Pi
}

func (m *Mohr) GetParams() map[string]float64 {
	return map[string]float64{
		"xx":  m.State.XX,
		"yy":  m.State.YY,
		"xy":  m.State.XY,
		"ccw": boolParam(m.CCW),
	}
}

func (m *Mohr) SetParam(name string, value float64) error {
	switch name {
	case "xx":
		m.State.XX = value
	case "yy":
		m.State.YY = value
	case "xy":
		m.State.XY = value
	case "ccw":
		m.CCW = value != 0
	default:
		return unknownParam(name)
	}
	return nil
}
