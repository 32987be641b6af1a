package index

import "github.com/arkhipov/paretoidx/point"

// checkDim returns ErrDimensionMismatch if p's dimension differs from
// dims. Every impl_*.go query/mutation entry point calls this first.
func checkDim[T point.Numeric](p point.Point[T], dims int) error {
	if p.Dim() != dims {
		return ErrDimensionMismatch
	}
	return nil
}

// checkBoxDim returns ErrDimensionMismatch if box's dimension differs
// from dims.
func checkBoxDim[T point.Numeric](box Box[T], dims int) error {
	if box.Dim() != dims {
		return ErrDimensionMismatch
	}
	return nil
}
