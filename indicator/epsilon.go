package indicator

import "github.com/arkhipov/paretoidx/point"

// EpsilonIndicator returns the additive epsilon indicator I_eps+(approx,
// reference): the smallest eps such that adding eps to every coordinate
// of every point in approx (on its improving side per dir) makes it weakly
// dominate every point in reference.
//
//	I_eps+ = max over z in reference, min over a in approx, max over axis k
//	         of signed gap(a_k, z_k, dir_k)
//
// where the signed gap is a_k - z_k when axis k is minimized, z_k - a_k
// when maximized — positive when a is worse than z on that axis. Lower is
// better; a value <= 0 means approx already weakly dominates reference.
//
// Returns ErrEmptyInput if either set is empty, ErrDimensionMismatch or
// ErrDirectionMismatch on mismatched inputs.
// Complexity: O(|approx| * |reference| * d).
func EpsilonIndicator[T point.Numeric](approx, reference []point.Point[T], dir point.Direction) (float64, error) {
	if len(approx) == 0 || len(reference) == 0 {
		return 0, ErrEmptyInput
	}
	if err := checkCommonDim(approx, reference, dir); err != nil {
		return 0, err
	}

	var result float64
	first := true
	for _, z := range reference {
		bestOverA := 0.0
		firstA := true
		for _, a := range approx {
			gap := maxSignedGap(a, z, dir)
			if firstA || gap < bestOverA {
				bestOverA = gap
				firstA = false
			}
		}
		if first || bestOverA > result {
			result = bestOverA
			first = false
		}
	}
	return result, nil
}

// EpsilonIndicatorMultiplicative is the ratio analogue of
// EpsilonIndicator: the smallest factor eps such that scaling every
// coordinate of every approx point by eps (on its improving side) makes
// it weakly dominate reference. Requires every coordinate involved to be
// strictly positive, since the ratio is undefined otherwise.
//
// Returns ErrNonPositiveCoordinate if any coordinate is <= 0.
func EpsilonIndicatorMultiplicative[T point.Numeric](approx, reference []point.Point[T], dir point.Direction) (float64, error) {
	if len(approx) == 0 || len(reference) == 0 {
		return 0, ErrEmptyInput
	}
	if err := checkCommonDim(approx, reference, dir); err != nil {
		return 0, err
	}
	for _, p := range approx {
		if err := requirePositive(p); err != nil {
			return 0, err
		}
	}
	for _, p := range reference {
		if err := requirePositive(p); err != nil {
			return 0, err
		}
	}

	var result float64
	first := true
	for _, z := range reference {
		bestOverA := 0.0
		firstA := true
		for _, a := range approx {
			ratio := maxSignedRatio(a, z, dir)
			if firstA || ratio < bestOverA {
				bestOverA = ratio
				firstA = false
			}
		}
		if first || bestOverA > result {
			result = bestOverA
			first = false
		}
	}
	return result, nil
}

func maxSignedGap[T point.Numeric](a, z point.Point[T], dir point.Direction) float64 {
	var best float64
	for k := 0; k < a.Dim(); k++ {
		var gap float64
		if dir.Minimize(k) {
			gap = float64(a.At(k)) - float64(z.At(k))
		} else {
			gap = float64(z.At(k)) - float64(a.At(k))
		}
		if k == 0 || gap > best {
			best = gap
		}
	}
	return best
}

func maxSignedRatio[T point.Numeric](a, z point.Point[T], dir point.Direction) float64 {
	var best float64
	for k := 0; k < a.Dim(); k++ {
		var ratio float64
		if dir.Minimize(k) {
			ratio = float64(a.At(k)) / float64(z.At(k))
		} else {
			ratio = float64(z.At(k)) / float64(a.At(k))
		}
		if k == 0 || ratio > best {
			best = ratio
		}
	}
	return best
}

func requirePositive[T point.Numeric](p point.Point[T]) error {
	for k := 0; k < p.Dim(); k++ {
		if float64(p.At(k)) <= 0 {
			return ErrNonPositiveCoordinate
		}
	}
	return nil
}

// checkCommonDim verifies every point in a and b shares a[0]'s dimension
// and that dir covers it.
func checkCommonDim[T point.Numeric](a, b []point.Point[T], dir point.Direction) error {
	dims := a[0].Dim()
	for _, p := range a {
		if p.Dim() != dims {
			return point.ErrDimensionMismatch
		}
	}
	for _, p := range b {
		if p.Dim() != dims {
			return point.ErrDimensionMismatch
		}
	}
	if dir.Len() != dims {
		return point.ErrDirectionMismatch
	}
	return nil
}
