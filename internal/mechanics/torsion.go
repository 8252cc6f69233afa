package mechanics

import (
	"math"
	"math/rand"
)

var sqrt3 = math.Sqrt(3)

// Torsion is the Saint-Venant solution for a prismatic shaft whose cross
// section is an equilateral triangle of height H. Stresses are normalised
// by Gθh and the stress function by Gθ.
type Torsion struct {
	H       float64
	N       int   // random samples drawn in the bounding box
	NEdge   int   // evenly spaced samples per edge
	Subdiv  int   // refinement levels
	Seed    int64 // random sampling seed
	QuiverN int   // vertical quiver lines
}

func NewTorsion() *Torsion {
	return &Torsion{H: 1, N: 1000, NEdge: 30, Subdiv: 3, Seed: 1, QuiverN: 25}
}

// Vertices returns the triangle corners counter-clockwise.
func (t *Torsion) Vertices() [3][2]float64 {
	h := t.H
	return [3][2]float64{
		{-h / 3, -h / sqrt3},
		{2 * h / 3, 0},
		{-h / 3, h / sqrt3},
	}
}

// Bounds returns the bounding box of the section.
func (t *Torsion) Bounds() (xmin, xmax, ymin, ymax float64) {
	return -t.H / 3, 2 * t.H / 3, -t.H / sqrt3, t.H / sqrt3
}

// Phi is the Prandtl stress function; it vanishes on the boundary.
func (t *Torsion) Phi(x, y float64) float64 {
	h := t.H
	return 0.5 * (x - sqrt3*y - 2*h/3) * (x + sqrt3*y - 2*h/3) * (x + h/3)
}

// Stress returns τxz and τyz at (x, y).
func (t *Torsion) Stress(x, y float64) (txz, tyz float64) {
	h := t.H
	txz = (3*x*y + h*y) / h
	tyz = (3*x*x - 2*h*x - 3*y*y) / (2 * h)
	return
}

// Resultant returns the magnitude of the shear stress.
func (t *Torsion) Resultant(x, y float64) float64 {
	return math.Hypot(t.Stress(x, y))
}

// Contains reports whether (x, y) is strictly inside the section.
func (t *Torsion) Contains(x, y float64) bool {
	v := t.Vertices()
	for i := 0; i < 3; i++ {
		a, b := v[i], v[(i+1)%3]
		if (b[0]-a[0])*(y-a[1])-(b[1]-a[1])*(x-a[0]) <= 0 {
			return false
		}
	}
	return true
}

// EdgeY returns the lower and upper boundary ordinates at abscissa x.
func (t *Torsion) EdgeY(x float64) (lo, hi float64) {
	lo = -2*sqrt3/9*t.H + sqrt3/3*x
	return lo, -lo
}

// Samples returns the scattered points used to triangulate the section:
// random interior points followed by NEdge points on each edge.
func (t *Torsion) Samples() [][2]float64 {
	rng := rand.New(rand.NewSource(t.Seed))
	xmin, xmax, ymin, ymax := t.Bounds()

	pts := make([][2]float64, 0, t.N+3*t.NEdge)
	for i := 0; i < t.N; i++ {
		x := xmin + rng.Float64()*(xmax-xmin)
		y := ymin + rng.Float64()*(ymax-ymin)
		if t.Contains(x, y) {
			pts = append(pts, [2]float64{x, y})
		}
	}

	v := t.Vertices()
	for i := 0; i < 3; i++ {
		a, b := v[i], v[(i+1)%3]
		xs := Sweep(a[0], b[0], t.NEdge, false)
		ys := Sweep(a[1], b[1], t.NEdge, false)
		for k := range xs {
			pts = append(pts, [2]float64{xs[k], ys[k]})
		}
	}
	return pts
}

// MinRadius is the inscribed-circle threshold below which a triangle of
// the scattered mesh counts as flat.
func (t *Torsion) MinRadius() float64 {
	return t.H / float64(t.NEdge) / 10
}

// QuiverPoint is the tail of one stress arrow.
type QuiverPoint struct {
	X, Y     float64
	TXZ, TYZ float64
}

// Quiver samples the stress on QuiverN vertical lines across the section.
// The first line sits on the vertical edge and is skipped.
func (t *Torsion) Quiver() []QuiverPoint {
	nx := t.QuiverN
	xlines := Sweep(-t.H/3, 2*t.H/3, nx, false)
	if len(xlines) > 0 {
		xlines = xlines[1:]
	}
	var out []QuiverPoint
	for _, x := range xlines {
		lo, hi := t.EdgeY(x)
		ny := int(2 * hi / t.H * float64(nx))
		for _, y := range Sweep(lo, hi, ny, true) {
			txz, tyz := t.Stress(x, y)
			out = append(out, QuiverPoint{X: x, Y: y, TXZ: txz, TYZ: tyz})
		}
	}
	return out
}

func (t *Torsion) GetParams() map[string]float64 {
	return map[string]float64{
		"h":      t.H,
		"n":      float64(t.N),
		"n_edge": float64(t.NEdge),
		"subdiv": float64(t.Subdiv),
		"seed":   float64(t.Seed),
		"quiver": float64(t.QuiverN),
	}
}

func (t *Torsion) SetParam(name string, value float64) error {
	switch name {
	case "h":
		t.H = value
	case "n":
		t.N = int(value)
	case "n_edge":
		t.NEdge = int(value)
	case "subdiv":
		t.Subdiv = int(value)
	case "seed":
		t.Seed = int64(value)
	case "quiver":
		t.QuiverN = int(value)
	default:
		return unknownParam(name)
	}
	return nil
}
