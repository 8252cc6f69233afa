package verify

import (
	"math"

	"github.com/san-kum/mechlab/internal/mechanics"
)

const samples = 50

// All runs every identity check on the default models.
func All() []*Check {
	var out []*Check
	out = append(out, Mohr(mechanics.NewMohr(mechanics.Stress))...)
	out = append(out, Mohr(mechanics.NewMohr(mechanics.Strain))...)
	out = append(out, Eigen(mechanics.NewPrincipalStress())...)
	out = append(out, Cylinder(mechanics.NewCylinder())...)
	out = append(out, Torsion(mechanics.NewTorsion())...)
	out = append(out, Deformation(mechanics.NewDeformation())...)
	return out
}

// Failed returns the checks that did not pass.
func Failed(checks []*Check) []*Check {
	var out []*Check
	for _, c := range checks {
		if !c.Pass() {
			out = append(out, c)
		}
	}
	return out
}

// Mohr checks the rotation formulas against the circle.
func Mohr(m *mechanics.Mohr) []*Check {
	g := "mohr-" + m.Quantity.String()
	trace := NewCheck(g, "trace invariant", 1e-9)
	onCircle := NewCheck(g, "faces on circle", 1e-9)
	shear := NewCheck(g, "zero shear at θp", 1e-9)
	major := NewCheck(g, "σ1 = c + R", 1e-9)

	c, r := m.State.Center(), m.State.Radius()
	for _, th := range mechanics.Sweep(-math.Pi, math.Pi, samples, true) {
		rot := m.Rotated(th)
		trace.Observe(rot.XX+rot.YY, m.State.XX+m.State.YY)
		a, b := m.Faces(th)
		onCircle.Observe(math.Hypot(a.N-c, a.S), r)
		onCircle.Observe(math.Hypot(b.N-c, b.S), r)
	}

	p := m.Rotated(m.PrincipalAngle())
	shear.Observe(p.XY, 0)
	p1, _ := m.State.Principal()
	major.Observe(p.XX, p1)
	major.Observe(c+r, p1)

	return []*Check{trace, onCircle, shear, major}
}

// Eigen checks the principal decomposition and the normal path.
func Eigen(p *mechanics.PrincipalStress) []*Check {
	g := "principal"
	residual := NewCheck(g, "σv = λv", 1e-9)
	ortho := NewCheck(g, "orthonormal basis", 1e-9)
	trace := NewCheck(g, "Σλ = tr σ", 1e-9)
	det := NewCheck(g, "Πλ = det σ", 1e-9)
	end := NewCheck(g, "n(1) = principal direction", 1e-9)
	shear := NewCheck(g, "τ(1) = 0", 1e-9)
	mises := NewCheck(g, "σvm from λ", 1e-9)
	checks := []*Check{residual, ortho, trace, det, mises, end, shear}

	vals, vecs, err := p.Principal()
	if err != nil {
		for _, c := range checks {
			c.Fail()
		}
		return checks
	}
	for k := range vals {
		sv := p.Sigma.Apply(vecs[k])
		lv := vecs[k].Scale(vals[k])
		for i := range sv {
			residual.Observe(sv[i], lv[i])
		}
		for j := range vecs {
			want := 0.0
			if j == k {
				want = 1
			}
			ortho.Observe(vecs[k].Dot(vecs[j]), want)
		}
	}
	trace.Observe(vals[0]+vals[1]+vals[2], p.Sigma.Trace())
	det.Observe(vals[0]*vals[1]*vals[2], p.Sigma.Det())
	d01, d12, d20 := vals[0]-vals[1], vals[1]-vals[2], vals[2]-vals[0]
	mises.Observe(p.Sigma.VonMises(), math.Sqrt((d01*d01+d12*d12+d20*d20)/2))

	_, nf, err := p.Target()
	if err != nil {
		end.Fail()
		shear.Fail()
		return checks
	}
	tr, err := p.At(1)
	if err != nil {
		end.Fail()
		shear.Fail()
		return checks
	}
	for i := range nf {
		end.Observe(tr.N[i], nf[i])
	}
	shear.Observe(tr.Shear, 0)
	return checks
}

// Cylinder checks the Lamé boundary values and the thin-wall limit.
func Cylinder(c *mechanics.Cylinder) []*Check {
	g := "cylinder"
	inner := NewCheck(g, "σr(ri) = −p", 1e-9)
	outer := NewCheck(g, "σr(re) = 0", 1e-9)
	thin := NewCheck(g, "thin-wall limit", 1e-2)

	for _, delta := range mechanics.Sweep(c.DeltaStop, c.DeltaStart, samples, true) {
		ri := c.Ri(delta)
		inner.Observe(c.RadialStress(ri, ri), -1)
		outer.Observe(c.RadialStress(ri, c.Re), 0)
	}

	hoop := *c
	hoop.Radial = false
	alpha := mechanics.Sweep(0, 1, samples, true)
	curve, ref := hoop.Profile(1e-3, alpha)
	for i := range curve {
		thin.Observe(curve[i], ref[i])
	}
	return []*Check{inner, outer, thin}
}

// Torsion checks the boundary condition on Φ and the stress definitions by
// central differences.
func Torsion(t *mechanics.Torsion) []*Check {
	g := "torsion"
	boundary := NewCheck(g, "Φ = 0 on boundary", 1e-12)
	dy := NewCheck(g, "h τxz = −∂Φ/∂y", 1e-6)
	dx := NewCheck(g, "h τyz = ∂Φ/∂x", 1e-6)

	v := t.Vertices()
	for i := 0; i < 3; i++ {
		a, b := v[i], v[(i+1)%3]
		for _, s := range mechanics.Sweep(0, 1, samples, true) {
			boundary.Observe(t.Phi(a[0]+s*(b[0]-a[0]), a[1]+s*(b[1]-a[1])), 0)
		}
	}

	const e = 1e-5
	for _, p := range t.Samples() {
		x, y := p[0], p[1]
		txz, tyz := t.Stress(x, y)
		dy.Observe(t.H*txz, -(t.Phi(x, y+e)-t.Phi(x, y-e))/(2*e))
		dx.Observe(t.H*tyz, (t.Phi(x+e, y)-t.Phi(x-e, y))/(2*e))
	}
	return []*Check{boundary, dy, dx}
}

// Deformation checks that the mapping preserves volume.
func Deformation(d *mechanics.Deformation) []*Check {
	g := "deformation"
	jac := NewCheck(g, "det F = 1", 1e-12)
	stretch := NewCheck(g, "λ1 λ2 λ3 = 1", 1e-9)
	rest := NewCheck(g, "E(0) = 0", 0)

	for _, a := range mechanics.Sweep(0, d.A, samples, true) {
		jac.Observe(d.Jacobian(a), 1)
		s, err := d.Stretches(a)
		if err != nil {
			stretch.Fail()
			continue
		}
		stretch.Observe(s[0]*s[1]*s[2], 1)
	}

	E := d.GreenLagrange(0)
	for i := range E {
		for j := range E[i] {
			rest.Observe(E[i][j], 0)
		}
	}
	return []*Check{jac, stretch, rest}
}
