package anim

import (
	"fmt"
	"math"

	"github.com/san-kum/mechlab/internal/colormap"
	"github.com/san-kum/mechlab/internal/config"
	"github.com/san-kum/mechlab/internal/mechanics"
	"github.com/san-kum/mechlab/internal/render"
)

const (
	profilePoints = 200
	plotTop       = 1.5
)

// Cylinder thins the wall of a pressurised cylinder and compares the Lamé
// stress profile across the wall with the thin-wall approximation.
type Cylinder struct {
	model  *mechanics.Cylinder
	deltas []float64
	alpha  []float64
}

func NewCylinder(cfg *config.Config) (*Cylinder, error) {
	m := mechanics.NewCylinder()
	if err := applyParams(m, cfg); err != nil {
		return nil, err
	}
	return &Cylinder{
		model:  m,
		deltas: mechanics.Sweep(m.DeltaStart, m.DeltaStop, cfg.Frames, true),
		alpha:  mechanics.Sweep(0, 1, profilePoints, true),
	}, nil
}

func (a *Cylinder) Name() string { return "cylinder" }
func (a *Cylinder) Title() string {
	if a.model.Radial {
		return "Cylinder subjected to internal pressure (radial stress)"
	}
	return "Cylinder subjected to internal pressure (hoop stress)"
}
func (a *Cylinder) Frames() int { return len(a.deltas) }

// Model exposes the cylinder geometry.
func (a *Cylinder) Model() *mechanics.Cylinder { return a.model }

// Profile returns the normalised radius and the plotted curves of frame i.
func (a *Cylinder) Profile(i int) (alpha, curve, thin []float64) {
	i = clampFrame(i, len(a.deltas))
	curve, thin = a.model.Profile(a.deltas[i], a.alpha)
	return a.alpha, curve, thin
}

func (a *Cylinder) Samples() Table {
	t := Table{Columns: []string{"delta", "thin_wall_error", "ri", "inner", "outer"}}
	for k, d := range a.deltas {
		_, curve, thin := a.Profile(k)
		worst := 0.0
		for j := range curve {
			worst = math.Max(worst, math.Abs(curve[j]-thin[j]))
		}
		t.Rows = append(t.Rows, []float64{d, worst, a.model.Ri(d), curve[0], curve[len(curve)-1]})
	}
	return t
}

func (a *Cylinder) Frame(i int) *render.Scene {
	i = clampFrame(i, len(a.deltas))
	delta := a.deltas[i]
	alpha, curve, thin := a.Profile(i)

	sc := render.NewScene(a.Title(), render.Viewport{XMin: -0.25, XMax: 1.05, YMin: -0.2, YMax: 1.55, Equal: true}, black)
	txt := st(white, 0, 6)
	sky := named("deepskyblue")

	// axes frame with ticks
	sc.Polyline([]render.Point{pt(0, 0), pt(1, 0), pt(1, plotTop), pt(0, plotTop)}, true, st(white, 1, 4))
	for _, x := range mechanics.Sweep(0, 1, 6, true) {
		sc.Line(pt(x, 0), pt(x, 0.02), st(white, 1, 4))
		sc.Text(pt(x, -0.05), fmt.Sprintf("%.1f", x), render.AnchorMiddle, txt)
	}
	for _, y := range mechanics.Sweep(0, plotTop, 7, true) {
		sc.Line(pt(0, y), pt(0.02, y), st(white, 1, 4))
		sc.Text(pt(-0.02, y), fmt.Sprintf("%.2f", y), render.AnchorEnd, txt)
	}
	sc.Text(pt(0.5, -0.13), "(r - ri)/(re - ri)", render.AnchorMiddle, txt)

	fill := []render.Point{pt(alpha[0], 0)}
	line := make([]render.Point, len(alpha))
	for k := range alpha {
		y := math.Min(curve[k], plotTop)
		line[k] = pt(alpha[k], y)
		fill = append(fill, line[k])
	}
	fill = append(fill, pt(alpha[len(alpha)-1], 0))
	sc.Polygon(fill, st(colormap.WithAlpha(sky, 0.25), 0, 1))
	sc.Polyline(line, false, st(sky, 3, 3))
	sc.Line(pt(0, thin[0]), pt(1, thin[len(thin)-1]), dashed(named("plum"), 1.5, 2))

	if a.model.Radial {
		sc.Text(pt(-0.15, 0.75), "-σr/p", render.AnchorMiddle, txt)
		sc.Text(pt(0.52, 0.56), "Thin-wall solution", render.AnchorStart, txt)
	} else {
		sc.Text(pt(-0.15, 0.75), "σt/p·t/2re", render.AnchorMiddle, txt)
		sc.Text(pt(0.62, 0.56), "Thin-wall solution", render.AnchorStart, txt)
	}
	sc.Text(pt(0.5, 1.3), fmt.Sprintf("t/re = %9.4f", delta), render.AnchorStart, txt)

	// cross section drawn at a fixed size
	const r = 0.15
	centre := pt(0.25, 1.25)
	sc.Circle(centre, r, true, st(colormap.WithAlpha(named("silver"), 0.6), 0, 5))
	sc.Circle(centre, r*(1-delta), true, st(black, 0, 5))
	return sc
}
