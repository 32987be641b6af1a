package index

import "github.com/arkhipov/paretoidx/point"

// Tag selects which spatial-index implementation backs an Index[T, V].
type Tag int

const (
	// Linear is the O(n)-query flat oracle (§4.3 "Linear index").
	Linear Tag = iota
	// KdTree is the binary space-partitioning tree on median splits.
	KdTree
	// QuadTree is the 2^d-way recursive subdivision tree.
	QuadTree
	// RTree is the balanced bounding-box tree with quadratic split.
	RTree
	// RStarTree is the R-tree variant with reinsert-on-overflow.
	RStarTree
)

// String renders the Tag's name, for error messages and logging call
// sites that choose to format it.
func (t Tag) String() string {
	switch t {
	case Linear:
		return "Linear"
	case KdTree:
		return "KdTree"
	case QuadTree:
		return "QuadTree"
	case RTree:
		return "RTree"
	case RStarTree:
		return "RStarTree"
	default:
		return "Tag(?)"
	}
}

// Element is a (point, value) pair as stored by an Index. Value is an
// opaque user payload; the index never inspects it.
type Element[T point.Numeric, V any] struct {
	Point point.Point[T]
	Value V
}

// Box is a closed, axis-aligned hyperbox [Min, Max] in d dimensions. It is
// the query shape for Range/Disjoint and the bounding volume box-based
// trees (R-tree, R*-tree) annotate every internal node with.
type Box[T point.Numeric] struct {
	Min, Max point.Point[T]
}

// NewBox returns the Box [min, max]. It does not validate min <= max per
// axis; callers that need a canonical box should use BoxOf.
func NewBox[T point.Numeric](min, max point.Point[T]) Box[T] {
	return Box[T]{Min: min, Max: max}
}

// BoxOf returns the smallest Box containing every point in pts.
// Complexity: O(n*d).
func BoxOf[T point.Numeric](pts ...point.Point[T]) Box[T] {
	if len(pts) == 0 {
		return Box[T]{}
	}
	min := pts[0].Coords()
	max := pts[0].Coords()
	for _, p := range pts[1:] {
		for k := 0; k < p.Dim(); k++ {
			v := p.At(k)
			if v < min[k] {
				min[k] = v
			}
			if v > max[k] {
				max[k] = v
			}
		}
	}
	return Box[T]{Min: point.Of(min...), Max: point.Of(max...)}
}

// Dim returns the box's dimension.
func (b Box[T]) Dim() int { return b.Min.Dim() }

// Contains reports whether p lies within the closed box b on every axis.
func (b Box[T]) Contains(p point.Point[T]) bool {
	for k := 0; k < p.Dim(); k++ {
		v := p.At(k)
		if v < b.Min.At(k) || v > b.Max.At(k) {
			return false
		}
	}
	return true
}

// ContainsBox reports whether other lies entirely within b.
func (b Box[T]) ContainsBox(other Box[T]) bool {
	for k := 0; k < b.Dim(); k++ {
		if other.Min.At(k) < b.Min.At(k) || other.Max.At(k) > b.Max.At(k) {
			return false
		}
	}
	return true
}

// Intersects reports whether b and other share at least one point.
func (b Box[T]) Intersects(other Box[T]) bool {
	for k := 0; k < b.Dim(); k++ {
		if b.Max.At(k) < other.Min.At(k) || other.Max.At(k) < b.Min.At(k) {
			return false
		}
	}
	return true
}

// Enlarge returns the smallest box containing both b and other.
func (b Box[T]) Enlarge(other Box[T]) Box[T] {
	min := b.Min.Coords()
	max := b.Max.Coords()
	for k := 0; k < b.Dim(); k++ {
		if other.Min.At(k) < min[k] {
			min[k] = other.Min.At(k)
		}
		if other.Max.At(k) > max[k] {
			max[k] = other.Max.At(k)
		}
	}
	return Box[T]{Min: point.Of(min...), Max: point.Of(max...)}
}

// Area returns the d-dimensional volume (product of per-axis extents) of
// b, as a float64 regardless of T — the same distance-type rationale as
// point.Distance.
func (b Box[T]) Area() float64 {
	area := 1.0
	for k := 0; k < b.Dim(); k++ {
		area *= float64(b.Max.At(k)) - float64(b.Min.At(k))
	}
	return area
}

// Perimeter returns the sum of per-axis extents of b (the R*-tree split
// heuristic minimises the sum of these across candidate distributions).
func (b Box[T]) Perimeter() float64 {
	var p float64
	for k := 0; k < b.Dim(); k++ {
		p += float64(b.Max.At(k)) - float64(b.Min.At(k))
	}
	return p
}

// Predicate is a single-axis or dominance test an element's point must
// satisfy; Satisfies(preds) accepts elements passing every predicate in
// the slice (a conjunction), per §4.2.
type Predicate[T point.Numeric] func(p point.Point[T]) bool

// AxisAtMost returns a Predicate matching points whose axis-k coordinate
// is <= v.
func AxisAtMost[T point.Numeric](k int, v T) Predicate[T] {
	return func(p point.Point[T]) bool { return p.At(k) <= v }
}

// AxisAtLeast returns a Predicate matching points whose axis-k coordinate
// is >= v.
func AxisAtLeast[T point.Numeric](k int, v T) Predicate[T] {
	return func(p point.Point[T]) bool { return p.At(k) >= v }
}

// Dominates returns a Predicate matching points that weakly dominate ref
// under dir. A malformed dir (wrong length) makes the predicate reject
// every point, since Predicate has no error channel; validate dir before
// constructing this predicate.
func Dominates[T point.Numeric](ref point.Point[T], dir point.Direction) Predicate[T] {
	return func(p point.Point[T]) bool {
		ok, err := point.Dominates(p, ref, dir)
		return err == nil && ok
	}
}

// DominatedBy returns a Predicate matching points weakly dominated by ref
// under dir.
func DominatedBy[T point.Numeric](ref point.Point[T], dir point.Direction) Predicate[T] {
	return func(p point.Point[T]) bool {
		ok, err := point.Dominates(ref, p, dir)
		return err == nil && ok
	}
}

// stored is the internal representation every impl_*.go file keeps: an
// Element plus a monotonic insertion sequence number, used to break
// nearest-neighbour distance ties by insertion order. (The archive breaks
// crowding-distance ties with its own per-entry sequence number.)
type stored[T point.Numeric, V any] struct {
	elem Element[T, V]
	seq  uint64
}

// satisfiesAll reports whether p passes every predicate in preds.
func satisfiesAll[T point.Numeric](p point.Point[T], preds []Predicate[T]) bool {
	for _, pred := range preds {
		if !pred(p) {
			return false
		}
	}
	return true
}
