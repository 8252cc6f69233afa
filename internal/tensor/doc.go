// Package tensor provides the small amount of linear algebra the teaching
// scripts need: 3-vectors, second-order tensors in three dimensions and the
// plane stress/strain state used by Mohr's circle.
//
//   - [Vec3]: vector in R³
//   - [Tensor]: row-major 3x3 second-order tensor
//   - [Plane]: in-plane components (xx, yy, xy) of a symmetric tensor
//
// # Eigen decomposition
//
// Symmetric tensors are diagonalised with cyclic Jacobi rotations:
//
//	sigma := tensor.Tensor{{0, 1, 0}, {1, 2, 2}, {0, 2, 0}}
//	vals, vecs, err := sigma.Eigen()
//
// Eigenvalues come back sorted in descending order (σ1 ≥ σ2 ≥ σ3) and the
// eigenvectors form a right-handed orthonormal basis.
package tensor
