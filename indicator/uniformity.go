package indicator

import (
	"gonum.org/v1/gonum/stat"

	"github.com/arkhipov/paretoidx/point"
)

// Uniformity returns the minimum, mean, and standard deviation of each
// front point's distance to its nearest neighbour in the same front — a
// spacing measure: a uniformly-spread front has a small stddev, a front
// with a large gap or a tight cluster has a large one.
//
// Returns ErrEmptyInput if front has fewer than 2 points.
// Complexity: O(n^2 * d).
func Uniformity[T point.Numeric](front []point.Point[T]) (min, mean, stddev float64, err error) {
	if len(front) < 2 {
		return 0, 0, 0, ErrEmptyInput
	}

	nearest := make([]float64, len(front))
	for i, p := range front {
		best := 0.0
		first := true
		for j, q := range front {
			if i == j {
				continue
			}
			d, derr := point.Distance(p, q)
			if derr != nil {
				return 0, 0, 0, derr
			}
			if first || d < best {
				best = d
				first = false
			}
		}
		nearest[i] = best
	}

	min = nearest[0]
	for _, d := range nearest[1:] {
		if d < min {
			min = d
		}
	}
	mean = stat.Mean(nearest, nil)
	stddev = stat.StdDev(nearest, nil)
	return min, mean, stddev, nil
}
