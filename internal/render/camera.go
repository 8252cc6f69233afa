package render

import (
	"math"
	"sort"

	"github.com/san-kum/mechlab/internal/tensor"
)

// Camera projects 3D points onto the scene plane. Elev and Azim are in
// degrees, with Azim measured around +z from the x axis. A zero Dist gives
// an orthographic projection.
type Camera struct {
	Elev, Azim float64
	Dist       float64
	Zoom       float64
}

func NewCamera(elev, azim, dist float64) *Camera {
	return &Camera{Elev: elev, Azim: azim, Dist: dist, Zoom: 1.0}
}

func (c *Camera) Orbit(dAzim, dElev float64) {
	c.Azim = math.Mod(c.Azim+dAzim, 360)
	c.Elev = math.Max(-90, math.Min(90, c.Elev+dElev))
}

func (c *Camera) ZoomIn()  { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut() { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// basis returns the screen right, screen up and towards-viewer directions.
func (c *Camera) basis() (right, up, eye tensor.Vec3) {
	el, az := c.Elev*math.Pi/180, c.Azim*math.Pi/180
	se, ce := math.Sincos(el)
	sa, ca := math.Sincos(az)
	eye = tensor.Vec3{ce * ca, ce * sa, se}
	right = tensor.Vec3{-sa, ca, 0}
	up = tensor.Vec3{-se * ca, -se * sa, ce}
	return
}

// RotatePoint expresses p in camera coordinates: x right, y up, z towards
// the viewer.
func (c *Camera) RotatePoint(p tensor.Vec3) tensor.Vec3 {
	r, u, e := c.basis()
	return tensor.Vec3{p.Dot(r), p.Dot(u), p.Dot(e)}
}

// Project returns the scene position of p.
func (c *Camera) Project(p tensor.Vec3) Point {
	rot := c.RotatePoint(p)
	scale := c.Zoom
	if c.Dist > 0 && rot[2] < c.Dist {
		scale *= c.Dist / (c.Dist - rot[2])
	}
	return Point{X: rot[0] * scale, Y: rot[1] * scale}
}

// Depth grows towards the viewer.
func (c *Camera) Depth(p tensor.Vec3) float64 {
	_, _, e := c.basis()
	return p.Dot(e)
}

// ProjectAll projects a polygon.
func (c *Camera) ProjectAll(pts []tensor.Vec3) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = c.Project(p)
	}
	return out
}

// PainterOrder returns face indices sorted far to near by mean depth.
func (c *Camera) PainterOrder(faces [][]tensor.Vec3) []int {
	depth := make([]float64, len(faces))
	idx := make([]int, len(faces))
	for i, f := range faces {
		idx[i] = i
		for _, p := range f {
			depth[i] += c.Depth(p)
		}
		if len(f) > 0 {
			depth[i] /= float64(len(f))
		}
	}
	sort.SliceStable(idx, func(a, b int) bool { return depth[idx[a]] < depth[idx[b]] })
	return idx
}
