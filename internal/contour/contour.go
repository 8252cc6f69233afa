package contour

import (
	"errors"
	"fmt"

	"github.com/san-kum/mechlab/internal/mesh"
)

var ErrFieldSize = errors.New("contour: field size does not match mesh nodes")

// Point is a point in the plane of the mesh.
type Point [2]float64

// Segment is one piece of an iso-line, clipped to a single triangle.
type Segment [2]Point

// Polygon is a closed convex polygon; the last vertex connects to the first.
type Polygon []Point

func check(m *mesh.Mesh, values []float64) error {
	if len(values) != len(m.X) {
		return fmt.Errorf("%w: %d values for %d nodes", ErrFieldSize, len(values), len(m.X))
	}
	return nil
}

// IsoLines extracts the level set values == level by marching over the
// active triangles of m. Nodes exactly on the level count as above it.
func IsoLines(m *mesh.Mesh, values []float64, level float64) ([]Segment, error) {
	if err := check(m, values); err != nil {
		return nil, err
	}
	var out []Segment
	for t, v := range m.Triangles {
		if !m.Active(t) {
			continue
		}
		var pts []Point
		for k := 0; k < 3; k++ {
			a, b := v[k], v[(k+1)%3]
			fa, fb := values[a]-level, values[b]-level
			if (fa >= 0) != (fb >= 0) {
				s := fa / (fa - fb)
				pts = append(pts, Point{
					m.X[a] + s*(m.X[b]-m.X[a]),
					m.Y[a] + s*(m.Y[b]-m.Y[a]),
				})
			}
		}
		if len(pts) == 2 {
			out = append(out, Segment{pts[0], pts[1]})
		}
	}
	return out, nil
}

// Bands returns, for each pair of consecutive levels, the pieces of the
// active triangles where the linearly interpolated field lies between them.
// Values outside [levels[0], levels[n-1]] are left unfilled.
func Bands(m *mesh.Mesh, values []float64, levels []float64) ([][]Polygon, error) {
	if err := check(m, values); err != nil {
		return nil, err
	}
	if len(levels) < 2 {
		return nil, fmt.Errorf("contour: need at least two levels, got %d", len(levels))
	}
	out := make([][]Polygon, len(levels)-1)
	for t, v := range m.Triangles {
		if !m.Active(t) {
			continue
		}
		tri := []vertex{
			{Point{m.X[v[0]], m.Y[v[0]]}, values[v[0]]},
			{Point{m.X[v[1]], m.Y[v[1]]}, values[v[1]]},
			{Point{m.X[v[2]], m.Y[v[2]]}, values[v[2]]},
		}
		lo, hi := tri[0].f, tri[0].f
		for _, p := range tri[1:] {
			lo, hi = min(lo, p.f), max(hi, p.f)
		}
		for b := 0; b < len(levels)-1; b++ {
			if hi < levels[b] || lo > levels[b+1] {
				continue
			}
			poly := clip(tri, levels[b], true)
			poly = clip(poly, levels[b+1], false)
			if len(poly) >= 3 {
				p := make(Polygon, len(poly))
				for i, q := range poly {
					p[i] = q.p
				}
				out[b] = append(out[b], p)
			}
		}
	}
	return out, nil
}

type vertex struct {
	p Point
	f float64
}

// clip keeps the part of a convex polygon where f >= level (above) or
// f <= level (below), one Sutherland–Hodgman pass.
func clip(poly []vertex, level float64, above bool) []vertex {
	if len(poly) == 0 {
		return nil
	}
	inside := func(q vertex) bool {
		if above {
			return q.f >= level
		}
		return q.f <= level
	}
	var out []vertex
	for i := range poly {
		cur, next := poly[i], poly[(i+1)%len(poly)]
		cin, nin := inside(cur), inside(next)
		if cin {
			out = append(out, cur)
		}
		if cin != nin {
			s := (level - cur.f) / (next.f - cur.f)
			out = append(out, vertex{
				p: Point{cur.p[0] + s*(next.p[0]-cur.p[0]), cur.p[1] + s*(next.p[1]-cur.p[1])},
				f: level,
			})
		}
	}
	return out
}

// Area returns the unsigned area of p.
func (p Polygon) Area() float64 {
	a := 0.0
	for i := range p {
		j := (i + 1) % len(p)
		a += p[i][0]*p[j][1] - p[j][0]*p[i][1]
	}
	if a < 0 {
		a = -a
	}
	return a / 2
}
