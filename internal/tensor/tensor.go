package tensor

import (
	"math"
	"sort"
)

// Tensor is a second-order tensor in three dimensions, stored row-major.
type Tensor [3][3]float64

const (
	symTol       = 1e-12
	jacobiSweeps = 64
	jacobiTol    = 1e-15
)

// Identity returns the identity tensor.
func Identity() Tensor {
	return Tensor{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// Apply returns the vector T·v.
func (t Tensor) Apply(v Vec3) Vec3 {
	var r Vec3
	for i := 0; i < 3; i++ {
		r[i] = t[i][0]*v[0] + t[i][1]*v[1] + t[i][2]*v[2]
	}
	return r
}

func (t Tensor) Transpose() Tensor {
	var r Tensor
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = t[j][i]
		}
	}
	return r
}

// Mul returns the product T·o.
func (t Tensor) Mul(o Tensor) Tensor {
	var r Tensor
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				r[i][j] += t[i][k] * o[k][j]
			}
		}
	}
	return r
}

func (t Tensor) Add(o Tensor) Tensor {
	var r Tensor
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = t[i][j] + o[i][j]
		}
	}
	return r
}

func (t Tensor) Scale(s float64) Tensor {
	var r Tensor
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = t[i][j] * s
		}
	}
	return r
}

func (t Tensor) Trace() float64 {
	return t[0][0] + t[1][1] + t[2][2]
}

func (t Tensor) Det() float64 {
	return t[0][0]*(t[1][1]*t[2][2]-t[1][2]*t[2][1]) -
		t[0][1]*(t[1][0]*t[2][2]-t[1][2]*t[2][0]) +
		t[0][2]*(t[1][0]*t[2][1]-t[1][1]*t[2][0])
}

// Invariants returns the principal invariants I1, I2 and I3.
func (t Tensor) Invariants() (i1, i2, i3 float64) {
	i1 = t.Trace()
	i2 = t[0][0]*t[1][1] + t[1][1]*t[2][2] + t[0][0]*t[2][2] -
		t[0][1]*t[1][0] - t[1][2]*t[2][1] - t[0][2]*t[2][0]
	i3 = t.Det()
	return
}

// Deviator returns T − (tr T / 3) I.
func (t Tensor) Deviator() Tensor {
	return t.Add(Identity().Scale(-t.Trace() / 3))
}

// VonMises returns the von Mises equivalent of a stress tensor.
func (t Tensor) VonMises() float64 {
	s := t.Deviator()
	sum := 0.0
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			sum += s[i][j] * s[i][j]
		}
	}
	return math.Sqrt(1.5 * sum)
}

func (t Tensor) IsSymmetric() bool {
	scale := 1.0
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			scale = math.Max(scale, math.Abs(t[i][j]))
		}
	}
	return math.Abs(t[0][1]-t[1][0]) <= symTol*scale &&
		math.Abs(t[0][2]-t[2][0]) <= symTol*scale &&
		math.Abs(t[1][2]-t[2][1]) <= symTol*scale
}

func (t Tensor) IsValid() bool {
	for i := 0; i < 3; i++ {
		if !Vec3(t[i]).IsValid() {
			return false
		}
	}
	return true
}

// Column returns column j.
func (t Tensor) Column(j int) Vec3 {
	return Vec3{t[0][j], t[1][j], t[2][j]}
}

// Eigen diagonalises a symmetric tensor with cyclic Jacobi rotations. The
// eigenvalues are sorted in descending order and vecs[k] is the unit
// eigenvector of vals[k]. The basis is right-handed.
func (t Tensor) Eigen() (vals [3]float64, vecs [3]Vec3, err error) {
	if !t.IsValid() {
		return vals, vecs, &ComputeError{Op: "eigen", Operand: t, Wrapped: ErrInvalidValue}
	}
	if !t.IsSymmetric() {
		return vals, vecs, &ComputeError{Op: "eigen", Operand: t, Wrapped: ErrNotSymmetric}
	}

	a := t
	q := Identity()
	converged := false
	for sweep := 0; sweep < jacobiSweeps; sweep++ {
		off := a[0][1]*a[0][1] + a[0][2]*a[0][2] + a[1][2]*a[1][2]
		diag := a[0][0]*a[0][0] + a[1][1]*a[1][1] + a[2][2]*a[2][2]
		if off <= jacobiTol*jacobiTol*math.Max(diag, 1) {
			converged = true
			break
		}
		for p := 0; p < 2; p++ {
			for r := p + 1; r < 3; r++ {
				rotate(&a, &q, p, r)
			}
		}
	}
	if !converged {
		return vals, vecs, &ComputeError{Op: "eigen", Operand: t, Wrapped: ErrNoConvergence}
	}

	idx := []int{0, 1, 2}
	sort.Slice(idx, func(i, j int) bool { return a[idx[i]][idx[i]] > a[idx[j]][idx[j]] })
	for k, c := range idx {
		vals[k] = a[c][c]
		vecs[k] = q.Column(c)
	}
	if vecs[0].Cross(vecs[1]).Dot(vecs[2]) < 0 {
		vecs[2] = vecs[2].Scale(-1)
	}
	return vals, vecs, nil
}

// rotate applies one Jacobi rotation zeroing a[p][r] and accumulates it in q.
func rotate(a, q *Tensor, p, r int) {
	if a[p][r] == 0 {
		return
	}
	theta := (a[r][r] - a[p][p]) / (2 * a[p][r])
	tn := 1 / (math.Abs(theta) + math.Sqrt(theta*theta+1))
	if theta < 0 {
		tn = -tn
	}
	c := 1 / math.Sqrt(tn*tn+1)
	s := tn * c

	for k := 0; k < 3; k++ {
		akp, akr := a[k][p], a[k][r]
		a[k][p] = c*akp - s*akr
		a[k][r] = s*akp + c*akr
	}
	for k := 0; k < 3; k++ {
		apk, ark := a[p][k], a[r][k]
		a[p][k] = c*apk - s*ark
		a[r][k] = s*apk + c*ark
	}
	for k := 0; k < 3; k++ {
		qkp, qkr := q[k][p], q[k][r]
		q[k][p] = c*qkp - s*qkr
		q[k][r] = s*qkp + c*qkr
	}
}
