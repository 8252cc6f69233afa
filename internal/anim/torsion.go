package anim

import (
	"fmt"
	"image/color"
	"math"

	"github.com/san-kum/mechlab/internal/colormap"
	"github.com/san-kum/mechlab/internal/config"
	"github.com/san-kum/mechlab/internal/contour"
	"github.com/san-kum/mechlab/internal/mechanics"
	"github.com/san-kum/mechlab/internal/mesh"
	"github.com/san-kum/mechlab/internal/render"
)

const (
	fillAlpha   = 0.85
	quiverScale = 10
)

type field struct {
	title  string
	label  string
	values []float64
	levels []float64
	colors []color.NRGBA
	bands  [][]contour.Polygon
	lines  [][]contour.Segment
	arrow  func(q mechanics.QuiverPoint) (float64, float64)
}

// Torsion is a still sequence: the triangulation of the section followed
// by one contour plot per field.
type Torsion struct {
	model    *mechanics.Torsion
	delaunay *mesh.Mesh
	refined  *mesh.Mesh
	edges    [][2]int
	flat     [][2]int
	nflat    int
	fields   []field
	quiver   []mechanics.QuiverPoint
}

func NewTorsion(cfg *config.Config) (*Torsion, error) {
	m := mechanics.NewTorsion()
	if err := applyParams(m, cfg); err != nil {
		return nil, err
	}

	del, err := mesh.Triangulate(m.Samples())
	if err != nil {
		return nil, fmt.Errorf("triangulate section: %w", err)
	}
	a := &Torsion{model: m, delaunay: del, edges: del.Edges()}
	a.refined = del.Refine(m.Subdiv)

	for _, f := range del.FlatMask(m.MinRadius()) {
		if f {
			a.nflat++
		}
	}
	a.flat = del.Inverse().Edges()

	fine := a.refined
	txz := fine.Eval(func(x, y float64) float64 {
		v, _ := m.Stress(x, y)
		return v
	})
	tyz := fine.Eval(func(x, y float64) float64 {
		_, v := m.Stress(x, y)
		return v
	})
	phi := fine.Eval(m.Phi)
	tau := fine.Eval(m.Resultant)

	lo, hi := minMax(phi)
	specs := []struct {
		f      field
		cmap   string
		levels []float64
	}{
		{field{title: "Saint-Venant function", label: "Φ/Gθ", values: phi,
			arrow: func(q mechanics.QuiverPoint) (float64, float64) { return q.TXZ, q.TYZ }},
			"viridis", contour.NiceLevels(lo, hi, 10)},
		{field{title: "Shear stress xz", label: "τxz/Gθh", values: txz,
			arrow: func(q mechanics.QuiverPoint) (float64, float64) { return q.TXZ, 0 }},
			"magma", contour.NiceLevels(-0.5, 0.5, 15)},
		{field{title: "Shear stress yz", label: "τyz/Gθh", values: tyz,
			arrow: func(q mechanics.QuiverPoint) (float64, float64) { return 0, q.TYZ }},
			"cividis", contour.NiceLevels(-0.32, 0.5, 15)},
		{field{title: "Resultant shear stress", label: "τ/Gθh", values: tau,
			arrow: func(q mechanics.QuiverPoint) (float64, float64) { return q.TXZ, q.TYZ }},
			"plasma", contour.NiceLevels(0, 0.5, 10)},
	}

	for _, s := range specs {
		f := s.f
		cm, err := colormap.Get(s.cmap)
		if err != nil {
			return nil, err
		}
		f.levels = s.levels
		f.colors = cm.Discrete(len(f.levels) - 1)
		if f.bands, err = contour.Bands(fine, f.values, f.levels); err != nil {
			return nil, err
		}
		for _, level := range f.levels {
			segs, err := contour.IsoLines(fine, f.values, level)
			if err != nil {
				return nil, err
			}
			f.lines = append(f.lines, segs)
		}
		a.fields = append(a.fields, f)
	}

	if m.QuiverN > 1 {
		a.quiver = m.Quiver()
	}
	return a, nil
}

func minMax(v []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, x := range v {
		lo, hi = math.Min(lo, x), math.Max(hi, x)
	}
	return
}

func (a *Torsion) Name() string  { return "torsion" }
func (a *Torsion) Title() string { return "Saint-Venant torsion of an equilateral triangle" }
func (a *Torsion) Frames() int   { return 1 + len(a.fields) }

// Mesh returns the scattered Delaunay mesh, flat triangles masked.
func (a *Torsion) Mesh() *mesh.Mesh { return a.delaunay }

// Refined returns the mesh the fields are sampled on.
func (a *Torsion) Refined() *mesh.Mesh { return a.refined }

func (a *Torsion) Samples() Table {
	t := Table{Columns: []string{"frame", "max", "min", "levels", "nodes", "triangles"}}
	t.Rows = append(t.Rows, []float64{
		0, 0, 0, 0,
		float64(len(a.delaunay.X)), float64(len(a.delaunay.Triangles) - a.nflat),
	})
	for k, f := range a.fields {
		lo, hi := minMax(f.values)
		t.Rows = append(t.Rows, []float64{
			float64(k + 1), hi, lo, float64(len(f.levels)),
			float64(len(a.refined.X)), float64(len(a.refined.Triangles)),
		})
	}
	return t
}

func (a *Torsion) view() render.Viewport {
	h := a.model.H
	xmin, xmax, ymin, ymax := a.model.Bounds()
	return render.Viewport{
		XMin: xmin - 0.45*h, XMax: xmax + h/100,
		YMin: ymin - h/100, YMax: ymax + 0.1*h,
		Equal: true,
	}
}

func (a *Torsion) outline(sc *render.Scene) {
	v := a.model.Vertices()
	pts := []render.Point{pt(v[0][0], v[0][1]), pt(v[1][0], v[1][1]), pt(v[2][0], v[2][1])}
	sc.Polyline(pts, true, st(black, 2, 6))
}

func (a *Torsion) Frame(i int) *render.Scene {
	i = clampFrame(i, a.Frames())
	if i == 0 {
		return a.triangulation()
	}
	return a.contours(a.fields[i-1])
}

func (a *Torsion) triangulation() *render.Scene {
	sc := render.NewScene("Triangulations", a.view(), white)
	drawEdges(sc, a.refined, a.refined.Edges(), st(named("gray"), 0.5, 0))
	drawEdges(sc, a.delaunay, a.edges, st(named("blue"), 1, 1))
	drawEdges(sc, a.delaunay, a.flat, st(named("red"), 2, 2))

	vp := a.view()
	x, y := vp.XMax-0.3*a.model.H, vp.YMax-0.03*a.model.H
	legend := []struct {
		label string
		style render.Style
	}{
		{"Refined", st(named("gray"), 0.5, 3)},
		{"Delaunay", st(named("blue"), 1, 3)},
		{"Bad Triangles", st(named("red"), 2, 3)},
	}
	dy := 0.05 * a.model.H
	for k, e := range legend {
		yy := y - float64(k)*dy
		sc.Line(pt(x, yy), pt(x+0.06*a.model.H, yy), e.style)
		sc.Text(pt(x+0.08*a.model.H, yy), e.label, render.AnchorStart, st(black, 0, 3))
	}
	return sc
}

func drawEdges(sc *render.Scene, m *mesh.Mesh, edges [][2]int, s render.Style) {
	for _, e := range edges {
		sc.Line(pt(m.X[e[0]], m.Y[e[0]]), pt(m.X[e[1]], m.Y[e[1]]), s)
	}
}

// colorAt returns the colour of the band holding v. The top level takes
// the colour of the last band.
func (f field) colorAt(v float64) (color.NRGBA, bool) {
	b := contour.Band(f.levels, v)
	if b < 0 || b >= len(f.colors) {
		return color.NRGBA{}, false
	}
	return f.colors[b], true
}

func (a *Torsion) contours(f field) *render.Scene {
	sc := render.NewScene(f.title, a.view(), white)

	for b, polys := range f.bands {
		c, ok := f.colorAt((f.levels[b] + f.levels[b+1]) / 2)
		if !ok {
			continue
		}
		c = colormap.WithAlpha(c, fillAlpha)
		for _, p := range polys {
			pts := make([]render.Point, len(p))
			for k, q := range p {
				pts[k] = pt(q[0], q[1])
			}
			sc.Polygon(pts, st(c, 0, 0))
		}
	}
	for k, segs := range f.lines {
		c, ok := f.colorAt(f.levels[k])
		if !ok {
			continue
		}
		for _, s := range segs {
			sc.Line(pt(s[0][0], s[0][1]), pt(s[1][0], s[1][1]), st(c, 2, 1))
		}
	}
	a.outline(sc)

	// quiver: pivot at the tail, length relative to the plot width
	vp := a.view()
	unit := (vp.XMax - vp.XMin) / quiverScale
	for _, q := range a.quiver {
		u, v := f.arrow(q)
		if u == 0 && v == 0 {
			continue
		}
		sc.Add(render.Arrow{From: pt(q.X, q.Y), To: pt(q.X+u*unit, q.Y+v*unit), Head: 5, Style: st(black, 1, 20)})
	}

	a.colorbar(sc, f)
	return sc
}

func (a *Torsion) colorbar(sc *render.Scene, f field) {
	h := a.model.H
	xmin, _, ymin, ymax := a.model.Bounds()
	x0 := xmin - 0.2*h
	x1 := x0 + 0.04*h
	nb := len(f.colors)
	step := (ymax - ymin) / float64(nb)
	for b := 0; b < nb; b++ {
		y0 := ymin + float64(b)*step
		sc.Polygon([]render.Point{pt(x0, y0), pt(x1, y0), pt(x1, y0+step), pt(x0, y0+step)},
			st(colormap.WithAlpha(f.colors[b], fillAlpha), 0, 10))
	}
	sc.Polyline([]render.Point{pt(x0, ymin), pt(x1, ymin), pt(x1, ymax), pt(x0, ymax)}, true, st(black, 1, 11))
	for k, l := range f.levels {
		y := ymin + float64(k)*step
		sc.Line(pt(x0-0.01*h, y), pt(x0, y), st(black, 1, 11))
		sc.Text(pt(x0-0.015*h, y), fmt.Sprintf("%.3g", l), render.AnchorEnd, st(black, 0, 11))
	}
	sc.Text(pt((x0+x1)/2, ymax+0.05*h), f.label, render.AnchorMiddle, st(black, 0, 11))
}
