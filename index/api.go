package index

import "github.com/arkhipov/paretoidx/point"

// Index is the uniform spatial-access contract every tree variant in this
// package satisfies. A Front (see package front) is written entirely
// against this interface and never against a concrete tree type, so that
// choosing RTree vs. KdTree vs. Linear is a one-line constructor change.
//
// Mutating methods (Insert, EraseOne, EraseAll, Clear) invalidate every
// Iterator previously obtained from the same Index.
type Index[T point.Numeric, V any] interface {
	// Insert adds (p, v) to the index, duplicate points permitted, and
	// returns a single-element Iterator positioned at the new element.
	Insert(p point.Point[T], v V) (Iterator[T, V], error)

	// EraseAll removes every element at point p and returns how many were
	// removed.
	EraseAll(p point.Point[T]) (int, error)

	// EraseOne removes one element at point p and reports whether one was
	// removed. Linear removes the earliest inserted one still present; the
	// tree variants remove the first match their traversal reaches, which
	// is not necessarily the earliest.
	EraseOne(p point.Point[T]) (bool, error)

	// Find returns an Iterator over every element at exactly point p.
	Find(p point.Point[T]) (Iterator[T, V], error)

	// Contains reports whether any element is stored at point p.
	Contains(p point.Point[T]) (bool, error)

	// Nearest returns an Iterator over the k elements nearest p by
	// Euclidean distance, closest first, ties broken by insertion order.
	// Returns ErrInvalidArgument if k == 0, ErrEmptyIndex if the index has
	// no elements.
	Nearest(p point.Point[T], k int) (Iterator[T, V], error)

	// Range returns an Iterator over every element whose point lies
	// within the closed axis-aligned box.
	Range(box Box[T]) (Iterator[T, V], error)

	// Disjoint returns an Iterator over every element whose point lies
	// outside the closed axis-aligned box.
	Disjoint(box Box[T]) (Iterator[T, V], error)

	// Intersects reports whether the index's aggregate bounding box
	// intersects box. An empty index never intersects anything.
	Intersects(box Box[T]) bool

	// Satisfies returns an Iterator over every element whose point passes
	// every predicate in preds (a conjunction). An empty preds slice
	// matches every element.
	Satisfies(preds []Predicate[T]) (Iterator[T, V], error)

	// Size returns the number of stored elements.
	Size() int

	// Dimensions returns the index's fixed dimension.
	Dimensions() int

	// Empty reports whether Size() == 0.
	Empty() bool

	// Clear removes every element, resetting Size() to 0.
	Clear()
}

// New constructs an Index of the given Tag. If elements is non-empty, it
// is bulk-loaded (expected O(n log n)); if empty, WithDimensions must be
// supplied in opts so the index knows its dimension up front.
//
// Returns ErrDimensionMismatch if elements is empty and no WithDimensions
// option was given, or if elements is non-empty and WithDimensions was
// given but disagrees with the elements' actual dimension.
func New[T point.Numeric, V any](tag Tag, elements []Element[T, V], opts ...Option) (Index[T, V], error) {
	o := gatherOptions(opts...)
	dims, err := resolveDimensions(o, elements)
	if err != nil {
		return nil, err
	}
	o.dimensions = dims

	switch tag {
	case Linear:
		return newLinear[T, V](elements, o)
	case KdTree:
		return newKdTree[T, V](elements, o)
	case QuadTree:
		return newQuadTree[T, V](elements, o)
	case RTree:
		return newRTree[T, V](elements, o)
	case RStarTree:
		return newRStarTree[T, V](elements, o)
	default:
		return nil, ErrInvalidArgument
	}
}

// resolveDimensions determines the index's dimension from elements (if
// any) and the dimensions option, checking the two agree when both are
// present.
func resolveDimensions[T point.Numeric, V any](o Options, elements []Element[T, V]) (int, error) {
	if len(elements) == 0 {
		if o.dimensions <= 0 {
			return 0, ErrDimensionMismatch
		}
		return o.dimensions, nil
	}
	d := elements[0].Point.Dim()
	for _, e := range elements[1:] {
		if e.Point.Dim() != d {
			return 0, ErrDimensionMismatch
		}
	}
	if o.dimensions > 0 && o.dimensions != d {
		return 0, ErrDimensionMismatch
	}
	return d, nil
}
