package anim

import (
	"fmt"

	"github.com/san-kum/mechlab/internal/colormap"
	"github.com/san-kum/mechlab/internal/config"
	"github.com/san-kum/mechlab/internal/mechanics"
	"github.com/san-kum/mechlab/internal/render"
	"github.com/san-kum/mechlab/internal/tensor"
)

// Deformation ramps the load on a unit cube while the camera orbits it.
// The reference faces stay behind, translucent.
type Deformation struct {
	model     *mechanics.Deformation
	loads     []float64
	stretches [][3]float64
	cam       *render.Camera
}

func NewDeformation(cfg *config.Config) (*Deformation, error) {
	m := mechanics.NewDeformation()
	if err := applyParams(m, cfg); err != nil {
		return nil, err
	}
	a := &Deformation{
		model: m,
		loads: mechanics.Sweep(0, m.A, cfg.Frames, true),
		cam:   render.NewCamera(25, 30, 12),
	}
	for _, load := range a.loads {
		s, err := m.Stretches(load)
		if err != nil {
			return nil, fmt.Errorf("stretches at a=%g: %w", load, err)
		}
		a.stretches = append(a.stretches, s)
	}
	return a, nil
}

func (a *Deformation) Name() string  { return "deformation" }
func (a *Deformation) Title() string { return "Finite deformation of a cube" }
func (a *Deformation) Frames() int   { return len(a.loads) }

func (a *Deformation) Samples() Table {
	t := Table{Columns: []string{"a", "stretch1", "stretch2", "stretch3", "jacobian", "e11", "e22", "e33", "e12", "e13", "e23"}}
	for k, load := range a.loads {
		E := a.model.GreenLagrange(load)
		s := a.stretches[k]
		t.Rows = append(t.Rows, []float64{
			load, s[0], s[1], s[2], a.model.Jacobian(load),
			E[0][0], E[1][1], E[2][2], E[0][1], E[0][2], E[1][2],
		})
	}
	return t
}

// Camera is the view of the first frame. Players orbit it between frames.
func (a *Deformation) Camera() *render.Camera { return a.cam }

// frameCamera turns the base view a quarter turn over the animation.
func (a *Deformation) frameCamera(i int) *render.Camera {
	f := 0.0
	if n := len(a.loads); n > 1 {
		f = float64(i) / float64(n-1)
	}
	view := *a.cam
	view.Azim += 90 * f
	return &view
}

func (a *Deformation) Frame(i int) *render.Scene {
	i = clampFrame(i, len(a.loads))
	load := a.loads[i]
	cam := a.frameCamera(i)

	ref := a.model.Faces()
	def := a.model.DeformedFaces(load)
	faces := make([][]tensor.Vec3, 0, 12)
	colors := make([]render.Style, 0, 12)
	refStyle := render.Style{Color: colormap.WithAlpha(named("reference"), 0.6)}
	defStyle := render.Style{Color: named("deformed")}
	for k := range ref {
		faces = append(faces, ref[k][:])
		colors = append(colors, refStyle)
	}
	for k := range def {
		faces = append(faces, def[k][:])
		colors = append(colors, defStyle)
	}

	sc := render.NewScene(a.Title(), render.Viewport{XMin: -3.2, XMax: 3.2, YMin: -3.2, YMax: 3.2, Equal: true}, white)
	for rank, k := range cam.PainterOrder(faces) {
		pts := cam.ProjectAll(faces[k])
		s := colors[k]
		s.Z = 2 * rank
		sc.Polygon(pts, s)
		sc.Polyline(pts, true, st(named("gray"), 1, 2*rank+1))
	}

	J := a.model.Jacobian(load)
	s := a.stretches[i]
	txt := st(black, 0, 100)
	sc.Text(pt(-3.1, 3.0), fmt.Sprintf("A = %.3f", load), render.AnchorStart, txt)
	sc.Text(pt(-3.1, 2.7), fmt.Sprintf("J = det F = %.4f", J), render.AnchorStart, txt)
	sc.Text(pt(-3.1, 2.4), fmt.Sprintf("λ = %.3f, %.3f, %.3f", s[0], s[1], s[2]), render.AnchorStart, txt)
	return sc
}
