package mesh

import (
	"math"
	"slices"
)

// CircleRatio returns the ratio of the inscribed to the circumscribed
// radius of triangle t. It is 0.5 for an equilateral triangle and tends to
// zero as the triangle flattens.
func (m *Mesh) CircleRatio(t int) float64 {
	x, y := m.Corners(t)
	a := math.Hypot(x[1]-x[0], y[1]-y[0])
	b := math.Hypot(x[2]-x[1], y[2]-y[1])
	c := math.Hypot(x[0]-x[2], y[0]-y[2])
	area := math.Abs(m.Area(t))
	if area == 0 || a*b*c == 0 {
		return 0
	}
	rin := area / ((a + b + c) / 2)
	rcirc := a * b * c / (4 * area)
	return rin / rcirc
}

// FlatMask masks flat triangles, those whose circle ratio is below
// minCircleRatio, starting from the boundary and working inwards: a flat
// triangle is masked only when it touches the boundary or an already
// masked triangle. Flat triangles enclosed by good ones stay, so the
// domain keeps no holes. The mask is stored on the mesh and also returned.
func (m *Mesh) FlatMask(minCircleRatio float64) []bool {
	n := len(m.Triangles)
	flat := make([]bool, n)
	for t := range m.Triangles {
		flat[t] = m.CircleRatio(t) < minCircleRatio
	}

	nb := m.Neighbors()
	mask := make([]bool, n)
	var queue []int
	for t := range m.Triangles {
		if flat[t] && slices.Contains(nb[t][:], -1) {
			mask[t] = true
			queue = append(queue, t)
		}
	}
	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]
		for _, u := range nb[t] {
			if u >= 0 && flat[u] && !mask[u] {
				mask[u] = true
				queue = append(queue, u)
			}
		}
	}
	m.Mask = mask
	return mask
}

// Neighbors returns, for each triangle, the triangle across each of its
// edges, or -1 on the boundary. Edge k joins corners k and k+1.
func (m *Mesh) Neighbors() [][3]int {
	owner := make(map[[2]int][]int, 3*len(m.Triangles)/2)
	for t, v := range m.Triangles {
		for k := 0; k < 3; k++ {
			e := edgeKey(v[k], v[(k+1)%3])
			owner[e] = append(owner[e], t)
		}
	}
	out := make([][3]int, len(m.Triangles))
	for t, v := range m.Triangles {
		for k := 0; k < 3; k++ {
			out[t][k] = -1
			for _, u := range owner[edgeKey(v[k], v[(k+1)%3])] {
				if u != t {
					out[t][k] = u
				}
			}
		}
	}
	return out
}

// Inverse returns a copy of the mesh that shows only the masked triangles.
func (m *Mesh) Inverse() *Mesh {
	out := &Mesh{X: m.X, Y: m.Y, Triangles: m.Triangles, Mask: make([]bool, len(m.Triangles))}
	for t := range out.Mask {
		out.Mask[t] = m.Active(t)
	}
	return out
}

// Refine splits every triangle into four, subdiv times. Mid-edge nodes are
// shared between neighbours and children inherit the mask of their parent.
// Field values are not interpolated; evaluate them on the new nodes.
func (m *Mesh) Refine(subdiv int) *Mesh {
	cur := m
	for level := 0; level < subdiv; level++ {
		cur = cur.split()
	}
	return cur
}

func (m *Mesh) split() *Mesh {
	out := &Mesh{
		X:         append([]float64(nil), m.X...),
		Y:         append([]float64(nil), m.Y...),
		Triangles: make([][3]int, 0, 4*len(m.Triangles)),
	}
	if m.Mask != nil {
		out.Mask = make([]bool, 0, 4*len(m.Triangles))
	}

	mid := make(map[[2]int]int)
	midpoint := func(a, b int) int {
		k := edgeKey(a, b)
		if i, ok := mid[k]; ok {
			return i
		}
		out.X = append(out.X, (m.X[a]+m.X[b])/2)
		out.Y = append(out.Y, (m.Y[a]+m.Y[b])/2)
		i := len(out.X) - 1
		mid[k] = i
		return i
	}

	for t, v := range m.Triangles {
		ab := midpoint(v[0], v[1])
		bc := midpoint(v[1], v[2])
		ca := midpoint(v[2], v[0])
		out.Triangles = append(out.Triangles,
			[3]int{v[0], ab, ca},
			[3]int{ab, v[1], bc},
			[3]int{ca, bc, v[2]},
			[3]int{ab, bc, ca},
		)
		if m.Mask != nil {
			out.Mask = append(out.Mask, m.Mask[t], m.Mask[t], m.Mask[t], m.Mask[t])
		}
	}
	return out
}
