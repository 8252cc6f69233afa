package anim

import (
	"fmt"

	"github.com/san-kum/mechlab/internal/config"
	"github.com/san-kum/mechlab/internal/mechanics"
	"github.com/san-kum/mechlab/internal/render"
)

// ShearStrain zooms on the centre of a rotated grid stretched along x.
type ShearStrain struct {
	model *mechanics.ShearStrain
	ts    []float64
}

func NewShearStrain(cfg *config.Config) (*ShearStrain, error) {
	m := mechanics.NewShearStrain()
	if err := applyParams(m, cfg); err != nil {
		return nil, err
	}
	return &ShearStrain{model: m, ts: mechanics.Sweep(0, 1, cfg.Frames, true)}, nil
}

func (a *ShearStrain) Name() string  { return "shear-strain" }
func (a *ShearStrain) Title() string { return "Shear strain demonstration" }
func (a *ShearStrain) Frames() int   { return len(a.ts) }

func (a *ShearStrain) Samples() Table {
	t := Table{Columns: []string{"t", "gamma", "gamma_finite", "exx", "eyy", "exy"}}
	for _, v := range a.ts {
		e := a.model.Strain(v)
		t.Rows = append(t.Rows, []float64{v, a.model.Gamma(v), a.model.FiniteGamma(v), e.XX, e.YY, e.XY})
	}
	return t
}

func (a *ShearStrain) Frame(i int) *render.Scene {
	i = clampFrame(i, len(a.ts))
	t := a.ts[i]
	g := a.model.Deformed(t)

	sc := render.NewScene(a.Title(), render.Viewport{XMin: -0.25, XMax: 0.25, YMin: -0.25, YMax: 0.25, Equal: true}, black)
	line := st(white, 1, 1)

	for j := range g {
		row := make([]render.Point, len(g[j]))
		for k, p := range g[j] {
			row[k] = pt(p[0], p[1])
		}
		sc.Polyline(row, false, line)
	}
	if len(g) > 0 {
		for k := range g[0] {
			col := make([]render.Point, len(g))
			for j := range g {
				col[j] = pt(g[j][k][0], g[j][k][1])
			}
			sc.Polyline(col, false, line)
		}
	}

	dot := st(named("cornflowerblue"), 0, 2)
	for j := range g {
		for _, p := range g[j] {
			sc.Marker(pt(p[0], p[1]), 12, dot)
		}
	}

	txt := st(white, 0, 3)
	sc.Text(pt(-0.24, 0.235), fmt.Sprintf("εxx = %.3f", t*a.model.MaxEXX), render.AnchorStart, txt)
	sc.Text(pt(-0.24, 0.215), fmt.Sprintf("γ = %.4f (finite %.4f)", a.model.Gamma(t), a.model.FiniteGamma(t)), render.AnchorStart, txt)
	return sc
}
