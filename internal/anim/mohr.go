package anim

import (
	"fmt"
	"math"

	"github.com/san-kum/mechlab/internal/config"
	"github.com/san-kum/mechlab/internal/mechanics"
	"github.com/san-kum/mechlab/internal/render"
)

type mohrSymbols struct {
	n, s    string // axis symbols
	shear   string // shear component as plotted, without sign
	maxName string
	maxDef  string
}

func symbolsFor(q mechanics.Quantity) mohrSymbols {
	if q == mechanics.Strain {
		return mohrSymbols{n: "ε", s: "γ/2", shear: "γx'y'/2", maxName: "γmax/2", maxDef: "γmax = ε1 - ε2"}
	}
	return mohrSymbols{n: "σ", s: "τ", shear: "τx'y'", maxName: "τmax", maxDef: "τmax = (σ1 - σ2)/2"}
}

// MohrCircle rotates the reference axes from zero to the principal angle
// and follows the two face points around Mohr's circle.
type MohrCircle struct {
	model  *mechanics.Mohr
	thetas []float64
}

func NewMohrCircle(q mechanics.Quantity, cfg *config.Config) (*MohrCircle, error) {
	m := mechanics.NewMohr(q)
	if err := applyParams(m, cfg); err != nil {
		return nil, err
	}
	return &MohrCircle{model: m, thetas: m.Sweep(cfg.Frames)}, nil
}

func (a *MohrCircle) Name() string  { return "mohr-" + a.model.Quantity.String() }
func (a *MohrCircle) Title() string { return fmt.Sprintf("Mohr's circle (%s)", a.model.Quantity) }
func (a *MohrCircle) Frames() int   { return len(a.thetas) }

// Model exposes the plane state being animated.
func (a *MohrCircle) Model() *mechanics.Mohr { return a.model }

func (a *MohrCircle) Samples() Table {
	t := Table{Columns: []string{"theta_deg", "xx", "yy", "xy"}}
	for _, theta := range a.thetas {
		r := a.model.Rotated(theta)
		t.Rows = append(t.Rows, []float64{theta * 180 / math.Pi, r.XX, r.YY, r.XY})
	}
	return t
}

func (a *MohrCircle) Frame(i int) *render.Scene {
	m := a.model
	i = clampFrame(i, len(a.thetas))
	theta := a.thetas[i]
	last := i == len(a.thetas)-1

	c, R := m.State.Center(), m.MaxShear()
	p1, p2 := m.State.Principal()
	lo, hi := math.Min(0, c-R), math.Max(0, c+R)
	s := (hi - lo) / 131
	if s == 0 {
		s = 1
	}
	dx, dy := 6*s, 3*s
	sym := symbolsFor(m.Quantity)

	sc := render.NewScene(a.Title(), render.Viewport{
		XMin: lo - 45*s, XMax: hi + 170*s,
		YMin: -125 * s, YMax: 110 * s,
		Equal: true,
	}, black)

	var (
		txt       = st(white, 0, 8)
		lightgray = named("lightgray")
		sky       = named("deepskyblue")
		red       = named("red")
	)

	// σ and τ axes
	sc.Arrow(pt(lo-30*s, 0), pt(hi+40*s, 0), st(white, 1, 0))
	sc.Arrow(pt(0, -(R+24*s)), pt(0, R+24*s), st(white, 1, 0))
	sc.Text(pt(hi+35*s, -10*s), sym.n, render.AnchorStart, txt)
	sc.Text(pt(-3*s, R+22*s), sym.s, render.AnchorEnd, txt)
	sc.Text(pt(-8*s, -8*s), "O", render.AnchorMiddle, txt)

	circle := m.Circle(200)
	pts := make([]render.Point, len(circle))
	for k, p := range circle {
		pts[k] = pt(p.N, p.S)
	}
	sc.Polyline(pts, true, st(white, 2, 1))

	// 2θ arc at the centre, swept in the direction the points travel
	start := m.ArcStart()
	sweep := 2 * theta * 180 / math.Pi
	t1, t2 := start, start-m.Sign()*sweep
	if t2 < t1 {
		t1, t2 = t2, t1
	}
	sc.Wedge(pt(c, 0), R/2, t1, t2, st(lightgray, 0, 0))
	mid := (t1 + t2) / 2 * math.Pi / 180
	label := "2θ"
	if last {
		label = "2θp"
	}
	sc.Text(pt(c+R/1.5*math.Cos(mid), R/1.5*math.Sin(mid)), label, render.AnchorMiddle, txt)

	a0, b0 := m.Faces(0)
	ar, br := m.Faces(theta)
	sc.Line(pt(a0.N, a0.S), pt(b0.N, b0.S), st(sky, 1.5, 1))
	sc.Line(pt(ar.N, ar.S), pt(br.N, br.S), st(red, 1.5, 2))
	sc.Marker(pt(a0.N, a0.S), 10, st(named("blue"), 0, 5))
	sc.Marker(pt(b0.N, b0.S), 10, st(named("blue"), 0, 5))
	sc.Marker(pt(ar.N, ar.S), 10, st(named("yellow"), 0, 5))
	sc.Marker(pt(br.N, br.S), 10, st(named("yellow"), 0, 5))
	sc.Text(pt(ar.N+12*s, ar.S+2.9*s), "A", render.AnchorStart, txt)
	sc.Text(pt(br.N-10*s, br.S+2.9*s), "B", render.AnchorEnd, txt)

	cyan := named("cyan")
	sc.Marker(pt(c, 0), 8, st(cyan, 0, 5))
	sc.Text(pt(c-dx, dy), "C", render.AnchorMiddle, txt)
	sc.Marker(pt(p1, 0), 8, st(cyan, 0, 5))
	sc.Text(pt(p1+dx/2, dy), "D", render.AnchorStart, txt)
	sc.Text(pt(p1+0.8*dx, -2.4*dy), sym.n+"1", render.AnchorStart, txt)
	sc.Marker(pt(p2, 0), 8, st(cyan, 0, 5))
	sc.Text(pt(p2+dx/2, dy), "E", render.AnchorStart, txt)
	sc.Text(pt(p2-1.8*dx, -2.4*dy), sym.n+"2", render.AnchorMiddle, txt)

	violet := named("violet")
	for _, sgn := range []float64{1, -1} {
		sc.Marker(pt(c, sgn*R), 8, st(violet, 0, 7))
		sc.Line(pt(0, sgn*R), pt(c, sgn*R), dashed(white, 1, 1))
	}
	sc.Text(pt(-dx, R), sym.maxName, render.AnchorEnd, txt)
	sc.Text(pt(-dx, -R), "-"+sym.maxName, render.AnchorEnd, txt)

	// reference and rotated axes
	o := pt(hi+70*s, 50*s)
	L := 50 * s
	cs, sn := math.Cos(theta), math.Sin(theta)
	sc.Wedge(o, 25*s, 0, theta*180/math.Pi, st(lightgray, 0, 0))
	sc.Arrow(o, pt(o.X+L, o.Y), st(sky, 1.5, 3))
	sc.Arrow(o, pt(o.X, o.Y+L), st(sky, 1.5, 3))
	sc.Arrow(o, pt(o.X+L*cs, o.Y+L*sn), st(red, 1.5, 4))
	sc.Arrow(o, pt(o.X-L*sn, o.Y+L*cs), st(red, 1.5, 4))
	sc.Text(pt(o.X+L+s, o.Y), "x", render.AnchorStart, txt)
	sc.Text(pt(o.X+s, o.Y+L+4*s), "y", render.AnchorStart, txt)
	sc.Text(pt(o.X+L*cs+2*s, o.Y+L*sn+4*s), "x'", render.AnchorStart, txt)
	sc.Text(pt(o.X-L*sn+2*s, o.Y+L*cs+4*s), "y'", render.AnchorStart, txt)
	sc.Text(pt(o.X-8*s, o.Y-8*s), "O", render.AnchorMiddle, txt)
	half := "θ"
	if last {
		half = "θp"
	}
	sc.Text(pt(o.X+30*s*math.Cos(theta/2), o.Y+30*s*math.Sin(theta/2)), half, render.AnchorStart, txt)

	signA, signB := "", "-"
	if m.Sign() < 0 {
		signA, signB = "-", ""
	}
	n := sym.n
	legend := []string{
		fmt.Sprintf("A = (%sx'x', %s%s)", n, signA, sym.shear),
		fmt.Sprintf("B = (%sy'y', %s%s)", n, signB, sym.shear),
		fmt.Sprintf("C = ((%s1+%s2)/2, 0)", n, n),
		fmt.Sprintf("D = (%s1, 0)", n),
		fmt.Sprintf("E = (%s2, 0)", n),
		sym.maxDef,
	}
	for k, line := range legend {
		sc.Text(pt(o.X, -20*s*float64(k)), line, render.AnchorStart, txt)
	}
	sc.Text(pt(o.X, -20*s*float64(len(legend))), fmt.Sprintf("θ = %.2f°", theta*180/math.Pi), render.AnchorStart, txt)

	return sc
}
