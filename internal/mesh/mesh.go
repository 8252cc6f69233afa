package mesh

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	ErrTooFewPoints = errors.New("mesh: need at least three points")
	ErrDegenerate   = errors.New("mesh: points are collinear")
)

// Mesh is a planar triangulation. Triangles index into X and Y and are
// stored counter-clockwise. Mask, when set, flags triangles to leave out.
type Mesh struct {
	X, Y      []float64
	Triangles [][3]int
	Mask      []bool
}

type circle struct {
	cx, cy, r2 float64
}

type tri struct {
	v    [3]int
	c    circle
	dead bool
}

// Triangulate builds the Delaunay triangulation of pts with the
// Bowyer–Watson algorithm.
func Triangulate(pts [][2]float64) (*Mesh, error) {
	n := len(pts)
	if n < 3 {
		return nil, ErrTooFewPoints
	}

	xs := make([]float64, n, n+3)
	ys := make([]float64, n, n+3)
	xmin, xmax := math.Inf(1), math.Inf(-1)
	ymin, ymax := math.Inf(1), math.Inf(-1)
	for i, p := range pts {
		xs[i], ys[i] = p[0], p[1]
		xmin, xmax = math.Min(xmin, p[0]), math.Max(xmax, p[0])
		ymin, ymax = math.Min(ymin, p[1]), math.Max(ymax, p[1])
	}
	span := math.Max(xmax-xmin, ymax-ymin)
	if span == 0 {
		return nil, ErrDegenerate
	}

	// super triangle, far enough that it never touches a circumcircle test
	mx, my := (xmin+xmax)/2, (ymin+ymax)/2
	d := 20 * span
	xs = append(xs, mx-d, mx+d, mx)
	ys = append(ys, my-d, my-d, my+d)

	tris := []tri{newTri(xs, ys, n, n+1, n+2)}
	eps := 1e-12 * span * span

	for p := 0; p < n; p++ {
		px, py := xs[p], ys[p]

		edges := make(map[[2]int]int)
		for i := range tris {
			t := &tris[i]
			if t.dead {
				continue
			}
			dx, dy := px-t.c.cx, py-t.c.cy
			if dx*dx+dy*dy < t.c.r2-eps {
				t.dead = true
				for k := 0; k < 3; k++ {
					edges[edgeKey(t.v[k], t.v[(k+1)%3])]++
				}
			}
		}

		alive := tris[:0]
		for _, t := range tris {
			if !t.dead {
				alive = append(alive, t)
			}
		}
		tris = alive

		boundary := make([][2]int, 0, len(edges))
		for e, count := range edges {
			if count == 1 {
				boundary = append(boundary, e)
			}
		}
		sort.Slice(boundary, func(i, j int) bool {
			if boundary[i][0] != boundary[j][0] {
				return boundary[i][0] < boundary[j][0]
			}
			return boundary[i][1] < boundary[j][1]
		})
		for _, e := range boundary {
			tris = append(tris, newTri(xs, ys, e[0], e[1], p))
		}
	}

	m := &Mesh{X: xs[:n], Y: ys[:n]}
	for _, t := range tris {
		if t.v[0] >= n || t.v[1] >= n || t.v[2] >= n {
			continue
		}
		m.Triangles = append(m.Triangles, t.v)
	}
	if len(m.Triangles) == 0 {
		return nil, ErrDegenerate
	}
	return m, nil
}

func edgeKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

func newTri(xs, ys []float64, a, b, c int) tri {
	if orient(xs, ys, a, b, c) < 0 {
		b, c = c, b
	}
	return tri{v: [3]int{a, b, c}, c: circumcircle(xs[a], ys[a], xs[b], ys[b], xs[c], ys[c])}
}

func orient(xs, ys []float64, a, b, c int) float64 {
	return (xs[b]-xs[a])*(ys[c]-ys[a]) - (ys[b]-ys[a])*(xs[c]-xs[a])
}

func circumcircle(ax, ay, bx, by, cx, cy float64) circle {
	d := 2 * (ax*(by-cy) + bx*(cy-ay) + cx*(ay-by))
	if d == 0 {
		return circle{cx: (ax + bx + cx) / 3, cy: (ay + by + cy) / 3, r2: math.Inf(1)}
	}
	a2 := ax*ax + ay*ay
	b2 := bx*bx + by*by
	c2 := cx*cx + cy*cy
	ux := (a2*(by-cy) + b2*(cy-ay) + c2*(ay-by)) / d
	uy := (a2*(cx-bx) + b2*(ax-cx) + c2*(bx-ax)) / d
	return circle{cx: ux, cy: uy, r2: (ax-ux)*(ax-ux) + (ay-uy)*(ay-uy)}
}

// Corners returns the vertex coordinates of triangle t.
func (m *Mesh) Corners(t int) (x, y [3]float64) {
	for k, v := range m.Triangles[t] {
		x[k], y[k] = m.X[v], m.Y[v]
	}
	return
}

// Area returns the signed area of triangle t.
func (m *Mesh) Area(t int) float64 {
	x, y := m.Corners(t)
	return 0.5 * ((x[1]-x[0])*(y[2]-y[0]) - (y[1]-y[0])*(x[2]-x[0]))
}

// Circumcircle returns the centre and squared radius of triangle t.
func (m *Mesh) Circumcircle(t int) (cx, cy, r2 float64) {
	x, y := m.Corners(t)
	c := circumcircle(x[0], y[0], x[1], y[1], x[2], y[2])
	return c.cx, c.cy, c.r2
}

// Active reports whether triangle t is not masked.
func (m *Mesh) Active(t int) bool {
	return m.Mask == nil || !m.Mask[t]
}

// Edges returns every unique edge of the active triangles.
func (m *Mesh) Edges() [][2]int {
	seen := make(map[[2]int]bool)
	var out [][2]int
	for t, v := range m.Triangles {
		if !m.Active(t) {
			continue
		}
		for k := 0; k < 3; k++ {
			e := edgeKey(v[k], v[(k+1)%3])
			if !seen[e] {
				seen[e] = true
				out = append(out, e)
			}
		}
	}
	return out
}

// Eval samples f at every node.
func (m *Mesh) Eval(f func(x, y float64) float64) []float64 {
	out := make([]float64, len(m.X))
	for i := range m.X {
		out[i] = f(m.X[i], m.Y[i])
	}
	return out
}

func (m *Mesh) String() string {
	masked := 0
	for t := range m.Triangles {
		if !m.Active(t) {
			masked++
		}
	}
	return fmt.Sprintf("mesh: %d nodes, %d triangles (%d masked)", len(m.X), len(m.Triangles), masked)
}
