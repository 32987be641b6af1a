package indicator

import "github.com/arkhipov/paretoidx/point"

// GD returns the generational distance of approx from reference: the mean
// Euclidean distance from each point in approx to its nearest point in
// reference. Lower is better; 0 means every approx point coincides with
// some reference point.
//
// Returns ErrEmptyInput if either set is empty, or the first dimension
// mismatch encountered while comparing points.
// Complexity: O(|approx| * |reference| * d).
func GD[T point.Numeric](approx, reference []point.Point[T]) (float64, error) {
	return meanNearestDist(approx, reference, point.Distance[T])
}

// IGD returns the inverted generational distance: GD with the two sets
// swapped, measuring how well reference is covered by approx. Lower is
// better.
func IGD[T point.Numeric](approx, reference []point.Point[T]) (float64, error) {
	return meanNearestDist(reference, approx, point.Distance[T])
}

// GDPlus is GD with DominatedBoxDistance in place of Euclidean distance:
// a front point that already weakly dominates a reference point
// contributes 0 rather than its raw Euclidean distance, per Ishibuchi et
// al.'s correction for non-dominated-front comparisons.
//
// Returns ErrDirectionMismatch if dir does not match the points' common
// dimension.
func GDPlus[T point.Numeric](approx, reference []point.Point[T], dir point.Direction) (float64, error) {
	return meanNearestDist(approx, reference, boxDistFn[T](dir))
}

// IGDPlus is IGD with DominatedBoxDistance in place of Euclidean distance.
// For each reference point z, the nearest approx point a contributes
// a.DominatedBoxDistance(z, dir): the distance from z to the region a
// weakly dominates, which is 0 whenever a already dominates z.
func IGDPlus[T point.Numeric](approx, reference []point.Point[T], dir point.Direction) (float64, error) {
	return meanNearestDist(reference, approx, func(z, a point.Point[T]) (float64, error) {
		return a.DominatedBoxDistance(z, dir)
	})
}

func boxDistFn[T point.Numeric](dir point.Direction) func(a, z point.Point[T]) (float64, error) {
	return func(a, z point.Point[T]) (float64, error) {
		return a.DominatedBoxDistance(z, dir)
	}
}

// meanNearestDist averages, over every point in from, the distance (per
// distFn) to its nearest point in to.
func meanNearestDist[T point.Numeric](from, to []point.Point[T], distFn func(a, b point.Point[T]) (float64, error)) (float64, error) {
	if len(from) == 0 || len(to) == 0 {
		return 0, ErrEmptyInput
	}
	var sum float64
	for _, a := range from {
		best := 0.0
		first := true
		for _, b := range to {
			d, err := distFn(a, b)
			if err != nil {
				return 0, err
			}
			if first || d < best {
				best = d
				first = false
			}
		}
		sum += best
	}
	return sum / float64(len(from)), nil
}
