package tensor

import "errors"

// Domain errors for tensor operations.
var (
	// ErrNotSymmetric indicates an operation that requires a symmetric tensor.
	ErrNotSymmetric = errors.New("tensor: tensor is not symmetric")

	// ErrNoConvergence indicates the Jacobi sweeps did not drive the
	// off-diagonal terms to zero.
	ErrNoConvergence = errors.New("tensor: eigen decomposition did not converge")

	// ErrZeroVector indicates normalisation of a zero-length vector.
	ErrZeroVector = errors.New("tensor: zero-length vector")

	// ErrInvalidValue indicates a NaN or Inf component.
	ErrInvalidValue = errors.New("tensor: invalid value (NaN or Inf detected)")
)

// ComputeError wraps an error with the operation and operand that caused it.
type ComputeError struct {
	Op      string
	Operand Tensor
	Wrapped error
}

func (e *ComputeError) Error() string {
	return e.Op + ": " + e.Wrapped.Error()
}

func (e *ComputeError) Unwrap() error {
	return e.Wrapped
}
