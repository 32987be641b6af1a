package point

import "math"

// Distance returns the Euclidean distance between p and q, as a float64 —
// the distance type D of the source design, see the Point doc comment for
// why this package uses float64 uniformly rather than tracking T.
//
// Returns ErrDimensionMismatch if p and q differ in dimension.
// Complexity: O(d).
func Distance[T Numeric](p, q Point[T]) (float64, error) {
	if err := sameDim(p, q); err != nil {
		return 0, err
	}
	var sum float64
	for i, v := range p.coords {
		d := float64(v) - float64(q.coords[i])
		sum += d * d
	}
	return math.Sqrt(sum), nil
}

// DominatedBoxDistance returns the Euclidean distance from other to the
// hyperbox weakly dominated by self under dir — the set of points no
// better than self on every axis. Each coordinate of other is first clamped
// to the boundary of that region (the improving side, i.e. towards self)
// wherever other already beats self on that axis, then the L2 norm of the
// clamped displacement is taken. A other already inside the dominated
// region (weakly dominated by self) has distance 0.
//
// This is the building block for the IGD+/GD+ indicators (§4.5), which
// replace GD/IGD's plain Euclidean distance with this one.
//
// Returns ErrDimensionMismatch if self and other differ in dimension, or
// ErrDirectionMismatch if dir does not cover that dimension.
// Complexity: O(d).
func (self Point[T]) DominatedBoxDistance(other Point[T], dir Direction) (float64, error) {
	if err := sameDim(self, other); err != nil {
		return 0, err
	}
	if dir.Len() != self.Dim() {
		return 0, ErrDirectionMismatch
	}

	var sum float64
	for k, s := range self.coords {
		o := other.coords[k]
		var clamped float64
		if dir.Minimize(k) {
			// Region is {x : x_k >= self_k}; clamp other up to the boundary
			// whenever other is strictly better (smaller) than self.
			clamped = math.Max(float64(o), float64(s))
		} else {
			clamped = math.Min(float64(o), float64(s))
		}
		d := float64(o) - clamped
		sum += d * d
	}
	return math.Sqrt(sum), nil
}
