package point

import "errors"

// Sentinel errors for point construction, arithmetic, and dominance queries.
var (
	// ErrDimensionMismatch indicates two points (or a point and a box) do
	// not share the same dimension.
	ErrDimensionMismatch = errors.New("point: dimension mismatch")

	// ErrDirectionMismatch indicates a Direction's length does not equal
	// the dimension of the point(s) it is applied to.
	ErrDirectionMismatch = errors.New("point: direction length mismatch")

	// ErrZeroDimension indicates an operation that requires at least one
	// axis was invoked on a dimension-0 point.
	ErrZeroDimension = errors.New("point: dimension is zero")
)
