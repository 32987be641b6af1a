package indicator

import (
	"gonum.org/v1/gonum/stat"

	"github.com/arkhipov/paretoidx/point"
)

// CMetric returns the fraction of points in b that are weakly dominated
// by at least one point in a: C(a, b) = |{z in b : exists p in a, p
// dominates or equals z}| / |b|. C(a, b) == 1 means a fully covers b;
// C(a, b) and C(b, a) are independent and usually reported as a pair.
//
// Returns ErrEmptyInput if b is empty.
// Complexity: O(|a| * |b| * d).
func CMetric[T point.Numeric](a, b []point.Point[T], dir point.Direction) (float64, error) {
	if len(b) == 0 {
		return 0, ErrEmptyInput
	}
	var covered int
	for _, z := range b {
		for _, p := range a {
			dominates, err := point.Dominates(p, z, dir)
			if err != nil {
				return 0, err
			}
			if dominates {
				covered++
				break
			}
			equal := p.Equal(z)
			if equal {
				covered++
				break
			}
		}
	}
	return float64(covered) / float64(len(b)), nil
}

// ConflictMatrix returns the d x d matrix of Pearson correlation
// coefficients between every pair of objective axes across front. A
// strongly negative entry at (i, j) indicates objectives i and j
// conflict (improving one tends to worsen the other); a strongly
// positive entry indicates they tend to move together and one may be
// redundant. The diagonal is always 1.
//
// This is a supplement beyond a single pairwise scalar: it reports every
// axis pair at once, which is what a caller comparing more than two
// objectives actually needs.
//
// Returns ErrEmptyInput if front has fewer than 2 points.
// Complexity: O(d^2 * n).
func ConflictMatrix[T point.Numeric](front []point.Point[T]) ([][]float64, error) {
	if len(front) < 2 {
		return nil, ErrEmptyInput
	}
	dims := front[0].Dim()
	for _, p := range front {
		if p.Dim() != dims {
			return nil, point.ErrDimensionMismatch
		}
	}

	columns := make([][]float64, dims)
	for k := range columns {
		col := make([]float64, len(front))
		for i, p := range front {
			col[i] = float64(p.At(k))
		}
		columns[k] = col
	}

	matrix := make([][]float64, dims)
	for i := range matrix {
		matrix[i] = make([]float64, dims)
		for j := range matrix[i] {
			if i == j {
				matrix[i][j] = 1
				continue
			}
			matrix[i][j] = stat.Correlation(columns[i], columns[j], nil)
		}
	}
	return matrix, nil
}
