package tensor

import (
	"errors"
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestEigenDefaultStress(t *testing.T) {
	sigma := Tensor{{0, 1, 0}, {1, 2, 2}, {0, 2, 0}}

	vals, vecs, err := sigma.Eigen()
	if err != nil {
		t.Fatalf("eigen failed: %v", err)
	}

	chk.Array(t, "eigenvalues", 1e-12, vals[:], []float64{1 + math.Sqrt(6), 0, 1 - math.Sqrt(6)})

	// directions quoted with three decimals, up to sign
	known := []Vec3{
		{0.243, 0.839, 0.486},
		{0.894, 0.000, -0.447},
		{0.375, -0.544, 0.750},
	}
	for k := range known {
		if math.Abs(math.Abs(vecs[k].Dot(known[k]))-1) > 2e-3 {
			t.Errorf("direction %d: got %v, want ±%v", k+1, vecs[k], known[k])
		}
	}
}

func TestEigenProperties(t *testing.T) {
	tests := []struct {
		name string
		t    Tensor
	}{
		{"diagonal", Tensor{{3, 0, 0}, {0, -1, 0}, {0, 0, 2}}},
		{"full", Tensor{{4, 1, -2}, {1, 2, 0.5}, {-2, 0.5, 3}}},
		{"repeated", Tensor{{2, 0, 0}, {0, 2, 0}, {0, 0, 5}}},
		{"plane", Plane{XX: 100, YY: 50, XY: 50}.Tensor()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vals, vecs, err := tt.t.Eigen()
			if err != nil {
				t.Fatalf("eigen failed: %v", err)
			}

			for k := 0; k < 3; k++ {
				lhs := tt.t.Apply(vecs[k])
				rhs := vecs[k].Scale(vals[k])
				chk.Array(t, "T v = λ v", 1e-10, lhs[:], rhs[:])
				chk.Float64(t, "|v|", 1e-12, vecs[k].Norm(), 1)
			}

			chk.Float64(t, "v1·v2", 1e-12, vecs[0].Dot(vecs[1]), 0)
			chk.Float64(t, "v1×v2·v3", 1e-12, vecs[0].Cross(vecs[1]).Dot(vecs[2]), 1)

			i1, _, i3 := tt.t.Invariants()
			chk.Float64(t, "sum λ", 1e-10, vals[0]+vals[1]+vals[2], i1)
			chk.Float64(t, "prod λ", 1e-9, vals[0]*vals[1]*vals[2], i3)

			if vals[0] < vals[1] || vals[1] < vals[2] {
				t.Errorf("eigenvalues not sorted: %v", vals)
			}
		})
	}
}

func TestEigenRejectsNonSymmetric(t *testing.T) {
	_, _, err := Tensor{{1, 2, 0}, {0, 1, 0}, {0, 0, 1}}.Eigen()
	if !errors.Is(err, ErrNotSymmetric) {
		t.Fatalf("expected ErrNotSymmetric, got %v", err)
	}

	var ce *ComputeError
	if !errors.As(err, &ce) || ce.Op != "eigen" {
		t.Errorf("expected ComputeError for op eigen, got %v", err)
	}
}

func TestEigenRejectsNaN(t *testing.T) {
	_, _, err := Tensor{{math.NaN(), 0, 0}, {0, 1, 0}, {0, 0, 1}}.Eigen()
	if !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
}

func TestInvariantsAndDeviator(t *testing.T) {
	s := Tensor{{10, 2, 0}, {2, -4, 1}, {0, 1, 6}}

	i1, i2, i3 := s.Invariants()
	chk.Float64(t, "I1", 1e-15, i1, 12)
	chk.Float64(t, "I2", 1e-15, i2, 10*-4+-4*6+10*6-4-1)
	chk.Float64(t, "I3", 1e-12, i3, s.Det())

	chk.Float64(t, "tr dev", 1e-14, s.Deviator().Trace(), 0)

	uniaxial := Tensor{{250, 0, 0}, {0, 0, 0}, {0, 0, 0}}
	chk.Float64(t, "von Mises uniaxial", 1e-12, uniaxial.VonMises(), 250)
}

func TestVec3(t *testing.T) {
	x, y := Vec3{1, 0, 0}, Vec3{0, 1, 0}
	z := x.Cross(y)
	chk.Array(t, "x × y", 1e-15, z[:], []float64{0, 0, 1})
	chk.Float64(t, "angle", 1e-15, x.Angle(y), math.Pi/2)

	n, err := Vec3{3, 0, 4}.Normalize()
	if err != nil {
		t.Fatal(err)
	}
	chk.Array(t, "normalize", 1e-15, n[:], []float64{0.6, 0, 0.8})

	if _, err := (Vec3{}).Normalize(); !errors.Is(err, ErrZeroVector) {
		t.Errorf("expected ErrZeroVector, got %v", err)
	}
}

func TestPlaneRotation(t *testing.T) {
	p := Plane{XX: 100, YY: 50, XY: 50}

	chk.Float64(t, "center", 1e-15, p.Center(), 75)
	chk.Float64(t, "radius", 1e-12, p.Radius(), math.Sqrt(25*25+50*50))
	chk.Float64(t, "θp (deg)", 1e-2, p.PrincipalAngle()*180/math.Pi, 31.72)

	for _, theta := range []float64{0, 0.1, 0.5, 1.2, math.Pi / 2, 2.9} {
		r := p.Rotate(theta)
		chk.Float64(t, "trace invariant", 1e-12, r.XX+r.YY, p.XX+p.YY)
		chk.Float64(t, "on circle", 1e-10, math.Hypot(r.XX-p.Center(), r.XY), p.Radius())
	}

	r := p.Rotate(p.PrincipalAngle())
	p1, p2 := p.Principal()
	chk.Float64(t, "τ(θp)", 1e-12, r.XY, 0)
	chk.Float64(t, "σ1", 1e-12, r.XX, p1)
	chk.Float64(t, "σ2", 1e-12, r.YY, p2)
	chk.Float64(t, "σ1 (quoted)", 0.05, p1, 130.9)
	chk.Float64(t, "σ2 (quoted)", 0.05, p2, 19.1)
}
