package anim

import (
	"fmt"
	"image/color"
	"math"

	"github.com/san-kum/mechlab/internal/config"
	"github.com/san-kum/mechlab/internal/mechanics"
	"github.com/san-kum/mechlab/internal/render"
	"github.com/san-kum/mechlab/internal/tensor"
)

const axisLength = 3

// Principal sweeps a unit normal onto one principal direction and draws it
// with its traction vector; on the last frame the two are colinear.
type Principal struct {
	model *mechanics.PrincipalStress
	ts    []float64
	path  []mechanics.Traction
	cam   *render.Camera
}

func NewPrincipal(cfg *config.Config) (*Principal, error) {
	m := mechanics.NewPrincipalStress()
	if err := applyParams(m, cfg); err != nil {
		return nil, err
	}
	a := &Principal{
		model: m,
		ts:    mechanics.Sweep(0, 1, cfg.Frames, true),
		cam:   render.NewCamera(45, 40, 0),
	}
	for _, t := range a.ts {
		tr, err := m.At(t)
		if err != nil {
			return nil, err
		}
		a.path = append(a.path, tr)
	}
	return a, nil
}

func (a *Principal) Name() string { return "principal" }
func (a *Principal) Title() string {
	return fmt.Sprintf("Principal stresses and directions (n%d)", a.model.Direction)
}
func (a *Principal) Frames() int { return len(a.ts) }

// Camera is orthographic; players orbit it between frames.
func (a *Principal) Camera() *render.Camera { return a.cam }

func (a *Principal) Samples() Table {
	t := Table{Columns: []string{"t", "normal", "shear", "angle_deg", "nx", "ny", "nz", "tx", "ty", "tz"}}
	for k, p := range a.path {
		t.Rows = append(t.Rows, []float64{
			a.ts[k], p.Normal, p.Shear, p.Angle * 180 / math.Pi,
			p.N[0], p.N[1], p.N[2], p.T[0], p.T[1], p.T[2],
		})
	}
	return t
}

func (a *Principal) Frame(i int) *render.Scene {
	i = clampFrame(i, len(a.path))
	p := a.path[i]

	view := *a.cam
	cam := &view
	sc := render.NewScene(a.Title(), render.Viewport{XMin: -3.2, XMax: 3.2, YMin: -2.6, YMax: 3.2, Equal: true}, black)
	txt := st(white, 0, 12)

	origin := tensor.Vec3{}
	sc.Marker(cam.Project(origin), 10, st(white, 0, 11))

	labels := []string{"x", "y", "z"}
	for k := 0; k < 3; k++ {
		var e tensor.Vec3
		e[k] = axisLength
		sc.Arrow(cam.Project(origin), cam.Project(e), st(white, 1, 1))
		sc.Line(cam.Project(origin), cam.Project(e.Scale(-1)), dashed(white, 1, 1))
		lp := e
		if k < 2 {
			lp[2] = -0.2
		}
		sc.Text(cam.Project(lp), labels[k], render.AnchorMiddle, txt)
	}

	drawVector(sc, cam, p.N, named("deepskyblue"), "n")
	drawVector(sc, cam, p.T, named("red"), "T")

	info := []string{
		fmt.Sprintf("n = (%.3f, %.3f, %.3f)", p.N[0], p.N[1], p.N[2]),
		fmt.Sprintf("T = (%.3f, %.3f, %.3f)", p.T[0], p.T[1], p.T[2]),
		fmt.Sprintf("σn = %.3f   τ = %.3f", p.Normal, p.Shear),
		fmt.Sprintf("angle(n, T) = %.1f°", p.Angle*180/math.Pi),
		fmt.Sprintf("σvm = %.3f", a.model.Sigma.VonMises()),
	}
	for k, line := range info {
		sc.Text(pt(-3.1, 3.0-0.3*float64(k)), line, render.AnchorStart, txt)
	}
	return sc
}

// drawVector draws v from the origin with its projection lines onto the
// xy plane.
func drawVector(sc *render.Scene, cam *render.Camera, v tensor.Vec3, c color.NRGBA, label string) {
	foot := tensor.Vec3{v[0], v[1], 0}
	thin := st(c, 1, 9)
	sc.Line(cam.Project(v), cam.Project(foot), thin)
	sc.Line(cam.Project(foot), cam.Project(tensor.Vec3{0, v[1], 0}), thin)
	sc.Line(cam.Project(foot), cam.Project(tensor.Vec3{v[0], 0, 0}), thin)
	sc.Arrow(cam.Project(tensor.Vec3{}), cam.Project(v), st(c, 2.5, 10))

	at := cam.Project(v)
	sc.Add(render.Polygon{
		Points: []render.Point{
			pt(at.X-0.02, at.Y-0.16), pt(at.X+0.34, at.Y-0.16),
			pt(at.X+0.34, at.Y+0.16), pt(at.X-0.02, at.Y+0.16),
		},
		Style: render.Style{Color: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x33}, Width: 1, Z: 11},
	})
	sc.Text(pt(at.X+0.16, at.Y), label, render.AnchorMiddle, st(white, 0, 12))
}
