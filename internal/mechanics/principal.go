package mechanics

import (
	"fmt"
	"math"

	"github.com/san-kum/mechlab/internal/tensor"
)

// PrincipalStress follows a unit normal that ends on one principal
// direction of a Cauchy stress tensor, together with its traction vector.
type PrincipalStress struct {
	Sigma     tensor.Tensor
	Direction int // 1, 2 or 3
}

func NewPrincipalStress() *PrincipalStress {
	return &PrincipalStress{
		Sigma:     tensor.Tensor{{0, 1, 0}, {1, 2, 2}, {0, 2, 0}},
		Direction: 3,
	}
}

// Traction is the state of the cutting plane at one point of the path.
type Traction struct {
	N      tensor.Vec3
	T      tensor.Vec3
	Normal float64 // σn = n·T
	Shear  float64 // |T − σn n|
	Angle  float64 // between n and T, radians
}

// Principal returns the principal values and directions of Sigma. Each
// direction is oriented so that its first non-zero component is positive.
func (p *PrincipalStress) Principal() ([3]float64, [3]tensor.Vec3, error) {
	vals, vecs, err := p.Sigma.Eigen()
	if err != nil {
		return vals, vecs, err
	}
	for k := range vecs {
		for _, c := range vecs[k] {
			if math.Abs(c) > 1e-12 {
				if c < 0 {
					vecs[k] = vecs[k].Scale(-1)
				}
				break
			}
		}
	}
	return vals, vecs, nil
}

// Target returns the principal value and direction the path ends on.
func (p *PrincipalStress) Target() (float64, tensor.Vec3, error) {
	if p.Direction < 1 || p.Direction > 3 {
		return 0, tensor.Vec3{}, fmt.Errorf("principal direction %d out of range [1, 3]", p.Direction)
	}
	vals, vecs, err := p.Principal()
	if err != nil {
		return 0, tensor.Vec3{}, err
	}
	return vals[p.Direction-1], vecs[p.Direction-1], nil
}

// NormalPath returns the unit normal at t ∈ [0, 1]. At t = 1 it equals nf.
func NormalPath(nf tensor.Vec3, t float64) (tensor.Vec3, error) {
	n := tensor.Vec3{
		nf[0] * math.Cos(2*math.Pi*t),
		nf[1] + math.Sin(math.Pi*t)/4,
		nf[2] + (t-1)*(t-1),
	}
	return n.Normalize()
}

// At evaluates the normal and its traction at t.
func (p *PrincipalStress) At(t float64) (Traction, error) {
	_, nf, err := p.Target()
	if err != nil {
		return Traction{}, err
	}
	n, err := NormalPath(nf, t)
	if err != nil {
		return Traction{}, fmt.Errorf("normal at t=%g: %w", t, err)
	}
	return p.TractionOn(n), nil
}

// TractionOn returns the traction on the plane with unit normal n.
func (p *PrincipalStress) TractionOn(n tensor.Vec3) Traction {
	T := p.Sigma.Apply(n)
	sn := n.Dot(T)
	return Traction{
		N:      n,
		T:      T,
		Normal: sn,
		Shear:  T.Sub(n.Scale(sn)).Norm(),
		Angle:  n.Angle(T),
	}
}

func (p *PrincipalStress) GetParams() map[string]float64 {
	return map[string]float64{"direction": float64(p.Direction)}
}

func (p *PrincipalStress) SetParam(name string, value float64) error {
	switch name {
	case "direction":
		p.Direction = int(value)
	default:
		return unknownParam(name)
	}
	return nil
}
