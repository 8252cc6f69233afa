package tensor

import "math"

// Vec3 is a vector in R³.
type Vec3 [3]float64

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v[0] * s, v[1] * s, v[2] * s} }
func (v Vec3) Dot(o Vec3) float64   { return v[0]*o[0] + v[1]*o[1] + v[2]*o[2] }
func (v Vec3) Norm() float64        { return math.Sqrt(v.Dot(v)) }

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v[1]*o[2] - v[2]*o[1],
		v[2]*o[0] - v[0]*o[2],
		v[0]*o[1] - v[1]*o[0],
	}
}

// Normalize returns the unit vector along v.
func (v Vec3) Normalize() (Vec3, error) {
	n := v.Norm()
	if n == 0 {
		return Vec3{}, ErrZeroVector
	}
	return v.Scale(1 / n), nil
}

// Angle returns the angle in radians between v and o.
func (v Vec3) Angle(o Vec3) float64 {
	d := v.Norm() * o.Norm()
	if d == 0 {
		return 0
	}
	c := v.Dot(o) / d
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	return math.Acos(c)
}

// IsValid reports whether all components are finite.
func (v Vec3) IsValid() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
