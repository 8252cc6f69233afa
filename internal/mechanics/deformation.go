package mechanics

import (
	"math"

	"github.com/san-kum/mechlab/internal/tensor"
)

// Deformation is the homogeneous mapping
//
//	x1 = X1 − A X3
//	x2 = X2 − A X3
//	x3 = −A X1 + A X2 + X3
//
// applied to the cube [−1, 1]³. The load factor a ramps from 0 to A.
type Deformation struct {
	A float64
}

func NewDeformation() *Deformation {
	return &Deformation{A: 0.5}
}

// Gradient returns F at load factor a.
func (d *Deformation) Gradient(a float64) tensor.Tensor {
	return tensor.Tensor{
		{1, 0, -a},
		{0, 1, -a},
		{-a, a, 1},
	}
}

// Map returns the current position of material point X.
func (d *Deformation) Map(X tensor.Vec3, a float64) tensor.Vec3 {
	return d.Gradient(a).Apply(X)
}

// Jacobian is det F.
func (d *Deformation) Jacobian(a float64) float64 {
	return d.Gradient(a).Det()
}

// RightCauchyGreen is C = FᵀF.
func (d *Deformation) RightCauchyGreen(a float64) tensor.Tensor {
	F := d.Gradient(a)
	return F.Transpose().Mul(F)
}

// GreenLagrange is E = ½(C − I).
func (d *Deformation) GreenLagrange(a float64) tensor.Tensor {
	return d.RightCauchyGreen(a).Add(tensor.Identity().Scale(-1)).Scale(0.5)
}

// Stretches returns the principal stretches √λ(C), largest first.
func (d *Deformation) Stretches(a float64) ([3]float64, error) {
	vals, _, err := d.RightCauchyGreen(a).Eigen()
	if err != nil {
		return vals, err
	}
	for i, v := range vals {
		vals[i] = math.Sqrt(math.Max(v, 0))
	}
	return vals, nil
}

// Faces returns the six faces of the reference cube as quads whose corners
// run around the face.
func (d *Deformation) Faces() [6][4]tensor.Vec3 {
	var faces [6][4]tensor.Vec3
	k := 0
	for axis := 0; axis < 3; axis++ {
		u, v := (axis+1)%3, (axis+2)%3
		for _, s := range []float64{-1, 1} {
			corners := [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
			for c, uv := range corners {
				var p tensor.Vec3
				p[axis] = s
				p[u] = uv[0]
				p[v] = uv[1]
				faces[k][c] = p
			}
			k++
		}
	}
	return faces
}

// DeformedFaces maps every face corner at load factor a.
func (d *Deformation) DeformedFaces(a float64) [6][4]tensor.Vec3 {
	faces := d.Faces()
	for i := range faces {
		for c := range faces[i] {
			faces[i][c] = d.Map(faces[i][c], a)
		}
	}
	return faces
}

func (d *Deformation) GetParams() map[string]float64 {
	return map[string]float64{"a": d.A}
}

func (d *Deformation) SetParam(name string, value float64) error {
	switch name {
	case "a":
		d.A = value
	default:
		return unknownParam(name)
	}
	return nil
}
