package mechanics

import (
	"math"

	"github.com/san-kum/mechlab/internal/tensor"
)

// ShearStrain deforms a rotated square grid with the displacement field of
// uniaxial tension, u = εxx x and v = −ν εxx y. Lines along the loading
// axis stay orthogonal; lines at ±45° do not.
type ShearStrain struct {
	NX, NY  int
	Angle   float64
	Poisson float64
	MaxEXX  float64
}

func NewShearStrain() *ShearStrain {
	return &ShearStrain{NX: 20, NY: 20, Angle: math.Pi / 4, Poisson: 0.3, MaxEXX: 1}
}

// Grid returns the rotated reference nodes indexed [row][col].
func (s *ShearStrain) Grid() [][][2]float64 {
	xs := Sweep(-1, 1, s.NX, true)
	ys := Sweep(-1, 1, s.NY, true)
	c, sn := math.Cos(s.Angle), math.Sin(s.Angle)
	g := make([][][2]float64, s.NY)
	for j, y := range ys {
		g[j] = make([][2]float64, s.NX)
		for i, x := range xs {
			g[j][i] = [2]float64{x*c - y*sn, x*sn + y*c}
		}
	}
	return g
}

// Displace returns the displacement of (x, y) at load factor t ∈ [0, 1].
func (s *ShearStrain) Displace(x, y, t float64) (u, v float64) {
	exx := s.MaxEXX * t
	return exx * x, -s.Poisson * exx * y
}

// Deformed returns the grid nodes moved by the displacement at t.
func (s *ShearStrain) Deformed(t float64) [][][2]float64 {
	g := s.Grid()
	for j := range g {
		for i, p := range g[j] {
			u, v := s.Displace(p[0], p[1], t)
			g[j][i] = [2]float64{p[0] + u, p[1] + v}
		}
	}
	return g
}

// Strain returns the small-strain tensor in the grid frame at t.
func (s *ShearStrain) Strain(t float64) tensor.Plane {
	exx := s.MaxEXX * t
	return tensor.Plane{XX: exx, YY: -s.Poisson * exx}.Rotate(s.Angle)
}

// Gamma is the small-strain engineering shear γ = 2εx'y' between grid lines.
func (s *ShearStrain) Gamma(t float64) float64 {
	return 2 * s.Strain(t).XY
}

// FiniteGamma is the exact decrease of the right angle between the grid
// line directions after deformation.
func (s *ShearStrain) FiniteGamma(t float64) float64 {
	exx := s.MaxEXX * t
	F := tensor.Tensor{{1 + exx, 0, 0}, {0, 1 - s.Poisson*exx, 0}, {0, 0, 1}}
	c, sn := math.Cos(s.Angle), math.Sin(s.Angle)
	a := F.Apply(tensor.Vec3{c, sn, 0})
	b := F.Apply(tensor.Vec3{-sn, c, 0})
	return math.Pi/2 - a.Angle(b)
}

func (s *ShearStrain) GetParams() map[string]float64 {
	return map[string]float64{
		"nx":      float64(s.NX),
		"ny":      float64(s.NY),
		"angle":   s.Angle,
		"poisson": s.Poisson,
		"exx":     s.MaxEXX,
	}
}

func (s *ShearStrain) SetParam(name string, value float64) error {
	switch name {
	case "nx":
		s.NX = int(value)
	case "ny":
		s.NY = int(value)
	case "angle":
		s.Angle = value
	case "poisson":
		s.Poisson = value
	case "exx":
		s.MaxEXX = value
	default:
		return unknownParam(name)
	}
	return nil
}
