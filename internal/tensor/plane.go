package tensor

import "math"

// Plane holds the in-plane components of a symmetric second-order tensor.
// For stress XY is the shear stress τxy; for strain it is the tensorial
// shear εxy = γxy/2.
type Plane struct {
	XX, YY, XY float64
}

// Rotate returns the components in axes rotated counter-clockwise by theta.
func (p Plane) Rotate(theta float64) Plane {
	c := p.Center()
	r := (p.XX - p.YY) / 2
	c2, s2 := math.Cos(2*theta), math.Sin(2*theta)
	return Plane{
		XX: c + r*c2 + p.XY*s2,
		YY: c - r*c2 - p.XY*s2,
		XY: -r*s2 + p.XY*c2,
	}
}

// Center is the mean normal component, the centre of Mohr's circle.
func (p Plane) Center() float64 {
	return (p.XX + p.YY) / 2
}

// Radius is the radius of Mohr's circle, equal to the maximum in-plane shear.
func (p Plane) Radius() float64 {
	return math.Hypot((p.XX-p.YY)/2, p.XY)
}

// Principal returns the in-plane principal values, p1 ≥ p2.
func (p Plane) Principal() (p1, p2 float64) {
	c, r := p.Center(), p.Radius()
	return c + r, c - r
}

// PrincipalAngle returns the rotation θp in (−π/2, π/2] that zeroes the
// shear component and carries x onto the direction of the major principal
// value.
func (p Plane) PrincipalAngle() float64 {
	return 0.5 * math.Atan2(2*p.XY, p.XX-p.YY)
}

// Tensor embeds the plane components in a 3x3 tensor with zero out-of-plane terms.
func (p Plane) Tensor() Tensor {
	return Tensor{{p.XX, p.XY, 0}, {p.XY, p.YY, 0}, {0, 0, 0}}
}
