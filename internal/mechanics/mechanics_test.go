package mechanics

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/san-kum/mechlab/internal/tensor"
)

func TestSweep(t *testing.T) {
	chk.Array(t, "closed", 1e-15, Sweep(0, 1, 5, true), []float64{0, 0.25, 0.5, 0.75, 1})
	chk.Array(t, "open", 1e-15, Sweep(0, 1, 4, false), []float64{0, 0.25, 0.5, 0.75})

	if got := Sweep(0, 1, 0, true); len(got) != 0 {
		t.Errorf("expected empty sweep, got %v", got)
	}
	if got := Sweep(3, 7, 1, true); len(got) != 1 || got[0] != 3 {
		t.Errorf("expected [3], got %v", got)
	}
}

func TestMohrFaces(t *testing.T) {
	m := NewMohr(Strain)

	for _, theta := range m.Sweep(50) {
		a, b := m.Faces(theta)
		chk.Float64(t, "trace", 1e-12, a.N+b.N, 150)
		chk.Float64(t, "A on circle", 1e-10, math.Hypot(a.N-75, a.S), m.MaxShear())
		chk.Float64(t, "B on circle", 1e-10, math.Hypot(b.N-75, b.S), m.MaxShear())
		chk.Float64(t, "A and B antipodal", 1e-12, a.S, -b.S)
	}

	a, _ := m.Faces(m.PrincipalAngle())
	chk.Float64(t, "A at θp", 1e-12, a.N, 75+m.MaxShear())
	chk.Float64(t, "τ at θp", 1e-12, a.S, 0)
}

func TestMohrSignConvention(t *testing.T) {
	tests := []struct {
		name  string
		ccw   bool
		sign  float64
		start float64
	}{
		{"counter-clockwise", true, -1, -2 * 31.717},
		{"clockwise", false, 1, 2 * 31.717},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMohr(Strain)
			m.CCW = tt.ccw
			if m.Sign() != tt.sign {
				t.Errorf("expected sign %v, got %v", tt.sign, m.Sign())
			}
			chk.Float64(t, "arc start", 1e-2, m.ArcStart(), tt.start)

			// a small positive rotation moves A counter-clockwise around the
			// centre only in the ccw convention
			a0, _ := m.Faces(0)
			a1, _ := m.Faces(0.01)
			c := m.State.Center()
			cross := (a0.N-c)*a1.S - a0.S*(a1.N-c)
			if (cross > 0) != tt.ccw {
				t.Errorf("unexpected sense of rotation: cross=%v", cross)
			}
		})
	}
}

func TestMohrCircle(t *testing.T) {
	m := NewMohr(Stress)
	if m.CCW {
		t.Error("stress circle should default to the clockwise convention")
	}
	pts := m.Circle(64)
	if len(pts) != 64 {
		t.Fatalf("expected 64 points, got %d", len(pts))
	}
	for _, p := range pts {
		chk.Float64(t, "radius", 1e-10, math.Hypot(p.N-75, p.S), m.MaxShear())
	}
}

func TestMohrParams(t *testing.T) {
	m := NewMohr(Stress)
	if err := m.SetParam("xy", 10); err != nil {
		t.Fatal(err)
	}
	if m.GetParams()["xy"] != 10 {
		t.Errorf("expected xy=10, got %v", m.GetParams()["xy"])
	}
	if err := m.SetParam("zz", 1); err == nil {
		t.Error("expected error for unknown param")
	}
}

func TestPrincipalPath(t *testing.T) {
	for dir := 1; dir <= 3; dir++ {
		p := NewPrincipalStress()
		p.Direction = dir

		val, nf, err := p.Target()
		if err != nil {
			t.Fatal(err)
		}

		end, err := p.At(1)
		if err != nil {
			t.Fatal(err)
		}
		chk.Array(t, "n(1) = nf", 1e-12, end.N[:], nf[:])
		chk.Float64(t, "τ(1)", 1e-10, end.Shear, 0)
		chk.Float64(t, "|T(1)|", 1e-10, end.T.Norm(), math.Abs(val))
		chk.Float64(t, "σn(1)", 1e-10, end.Normal, val)

		for _, s := range Sweep(0, 1, 20, true) {
			tr, err := p.At(s)
			if err != nil {
				t.Fatal(err)
			}
			chk.Float64(t, "|n|", 1e-12, tr.N.Norm(), 1)
			chk.Float64(t, "decomposition", 1e-10, tr.Normal*tr.Normal+tr.Shear*tr.Shear, tr.T.Dot(tr.T))
		}
	}
}

func TestPrincipalOrientation(t *testing.T) {
	p := NewPrincipalStress()
	_, vecs, err := p.Principal()
	if err != nil {
		t.Fatal(err)
	}
	for k, v := range vecs {
		if v[0] <= 0 {
			t.Errorf("direction %d should have a positive x component: %v", k+1, v)
		}
	}
}

func TestPrincipalBadDirection(t *testing.T) {
	p := NewPrincipalStress()
	p.Direction = 4
	if _, err := p.At(0.5); err == nil {
		t.Error("expected error for direction 4")
	}
}

func TestShearStrain(t *testing.T) {
	s := NewShearStrain()

	g := s.Grid()
	if len(g) != 20 || len(g[0]) != 20 {
		t.Fatalf("expected 20x20 grid, got %dx%d", len(g), len(g[0]))
	}
	// corner (−1, −1) rotated by 45° lands on the negative y axis
	chk.Array(t, "corner", 1e-12, g[0][0][:], []float64{0, -math.Sqrt2})

	chk.Float64(t, "γ(0)", 1e-15, s.Gamma(0), 0)
	chk.Float64(t, "γ small strain at 45°", 1e-12, s.Gamma(1), -(1 + s.Poisson))

	for _, x := range []float64{1e-4, 1e-3} {
		chk.Float64(t, "finite γ ≈ small γ", 5*x*x, s.FiniteGamma(x), s.Gamma(x))
	}

	s.Angle = 0
	chk.Float64(t, "γ aligned", 1e-15, s.Gamma(1), 0)
	chk.Float64(t, "finite γ aligned", 1e-15, s.FiniteGamma(1), 0)
}

func TestShearStrainDisplacement(t *testing.T) {
	s := NewShearStrain()
	d := s.Deformed(0.5)
	g := s.Grid()
	for j := range g {
		for i := range g[j] {
			x, y := g[j][i][0], g[j][i][1]
			chk.Float64(t, "x", 1e-15, d[j][i][0], x*1.5)
			chk.Float64(t, "y", 1e-15, d[j][i][1], y*(1-0.15))
		}
	}
}

func TestCylinderBoundaries(t *testing.T) {
	c := NewCylinder()
	for _, delta := range Sweep(c.DeltaStart, c.DeltaStop, 7, true) {
		ri := c.Ri(delta)
		chk.Float64(t, "σr(ri)", 1e-10, c.RadialStress(ri, ri), -1)
		chk.Float64(t, "σr(re)", 1e-10, c.RadialStress(ri, c.Re), 0)
		chk.Float64(t, "σt − σr", 1e-10, c.HoopStress(ri, ri)-c.RadialStress(ri, ri), 2*c.Re*c.Re/(c.Re*c.Re-ri*ri))
	}
}

func TestCylinderThinWallLimit(t *testing.T) {
	c := NewCylinder()
	alpha := Sweep(0, 1, 11, true)

	c.Radial = false
	curve, thin := c.Profile(1e-4, alpha)
	chk.Array(t, "hoop → thin wall", 1e-3, curve, thin)

	c.Radial = true
	curve, thin = c.Profile(1e-4, alpha)
	chk.Array(t, "radial → linear", 1e-3, curve, thin)
	chk.Float64(t, "−σr/p at α=0", 1e-10, curve[0], 1)
	chk.Float64(t, "−σr/p at α=1", 1e-10, curve[10], 0)
}

func TestTorsionBoundary(t *testing.T) {
	tr := NewTorsion()
	v := tr.Vertices()
	for i := 0; i < 3; i++ {
		a, b := v[i], v[(i+1)%3]
		for _, s := range Sweep(0, 1, 9, true) {
			x := a[0] + s*(b[0]-a[0])
			y := a[1] + s*(b[1]-a[1])
			chk.Float64(t, "Φ on edge", 1e-14, tr.Phi(x, y), 0)
		}
	}
	if !tr.Contains(0, 0) {
		t.Error("centroid should be inside")
	}
	if tr.Contains(0.7, 0) || tr.Contains(-0.4, 0) {
		t.Error("points outside reported inside")
	}
	lo, hi := tr.EdgeY(0)
	chk.Float64(t, "edge y", 1e-15, tr.Phi(0, lo), 0)
	chk.Float64(t, "edge y", 1e-15, tr.Phi(0, hi), 0)
}

func TestTorsionStressFromPhi(t *testing.T) {
	for _, h := range []float64{1, 2.5} {
		tr := NewTorsion()
		tr.H = h
		const d = 1e-6
		for _, p := range [][2]float64{{0, 0}, {0.1 * h, 0.2 * h}, {-0.2 * h, -0.1 * h}, {0.4 * h, 0.05 * h}} {
			x, y := p[0], p[1]
			dPdx := (tr.Phi(x+d, y) - tr.Phi(x-d, y)) / (2 * d)
			dPdy := (tr.Phi(x, y+d) - tr.Phi(x, y-d)) / (2 * d)
			txz, tyz := tr.Stress(x, y)
			chk.Float64(t, "h τxz = −∂Φ/∂y", 1e-7*h*h, h*txz, -dPdy)
			chk.Float64(t, "h τyz = ∂Φ/∂x", 1e-7*h*h, h*tyz, dPdx)
		}
	}
}

func TestTorsionSamples(t *testing.T) {
	tr := NewTorsion()
	pts := tr.Samples()

	edge := 3 * tr.NEdge
	interior := len(pts) - edge
	// the triangle covers half of its bounding box
	if interior < 400 || interior > 600 {
		t.Errorf("expected about 500 interior samples, got %d", interior)
	}
	for _, p := range pts[:interior] {
		if !tr.Contains(p[0], p[1]) {
			t.Fatalf("sample %v outside section", p)
		}
	}
	for _, p := range pts[interior:] {
		chk.Float64(t, "edge sample Φ", 1e-14, tr.Phi(p[0], p[1]), 0)
	}

	again := tr.Samples()
	if len(again) != len(pts) || again[0] != pts[0] {
		t.Error("samples should be reproducible for a fixed seed")
	}
}

func TestTorsionQuiver(t *testing.T) {
	tr := NewTorsion()
	q := tr.Quiver()
	if len(q) == 0 {
		t.Fatal("expected quiver points")
	}
	for _, p := range q {
		lo, hi := tr.EdgeY(p.X)
		if p.Y < lo-1e-12 || p.Y > hi+1e-12 {
			t.Errorf("quiver point %v outside section", p)
		}
		if p.X <= -tr.H/3 {
			t.Errorf("quiver line on the vertical edge: %v", p.X)
		}
	}
}

func TestDeformationKinematics(t *testing.T) {
	d := NewDeformation()

	for _, a := range Sweep(0, d.A, 6, true) {
		chk.Float64(t, "J", 1e-14, d.Jacobian(a), 1)

		s, err := d.Stretches(a)
		if err != nil {
			t.Fatal(err)
		}
		chk.Float64(t, "λ1 λ2 λ3", 1e-12, s[0]*s[1]*s[2], 1)
	}

	E := d.GreenLagrange(0)
	for i := 0; i < 3; i++ {
		chk.Array(t, "E(0)", 1e-15, E[i][:], []float64{0, 0, 0})
	}

	X := tensor.Vec3{1, -1, 1}
	x := d.Map(X, 0.5)
	chk.Array(t, "map", 1e-15, x[:], []float64{0.5, -1.5, 0})
}

func TestDeformationFaces(t *testing.T) {
	d := NewDeformation()
	faces := d.Faces()
	for i, f := range faces {
		axis := i / 2
		want := -1.0
		if i%2 == 1 {
			want = 1
		}
		for _, p := range f {
			if p[axis] != want {
				t.Errorf("face %d: corner %v not on plane x%d=%v", i, p, axis+1, want)
			}
		}
	}
	def := d.DeformedFaces(0)
	if def != faces {
		t.Error("zero load should leave the cube unchanged")
	}
}
