package point

// Numeric constrains the element type T of a Point to integer or floating
// point kinds. Arithmetic, comparison, and distance all specialize on this
// constraint.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Point is a d-dimensional vector over a single numeric element type T.
// Points are value objects: two Points are equal iff they have the same
// dimension and equal coordinates at every axis.
//
// Distances (Distance, DominatedBoxDistance) always return float64 — the
// "distance type D" of the source design — regardless of T, since Go has
// no conditional-associated-type mechanism to make D track T only when T
// is itself floating; float64 is exact for every integer T up to 2^53 and
// is the natural choice for T already floating. See DESIGN.md.
type Point[T Numeric] struct {
	coords []T
}

// New returns a dimension-n Point with every coordinate zero-filled.
// Complexity: O(n).
func New[T Numeric](n int) Point[T] {
	return Point[T]{coords: make([]T, n)}
}

// Fill returns a dimension-n Point with every coordinate set to v.
// Complexity: O(n).
func Fill[T Numeric](n int, v T) Point[T] {
	c := make([]T, n)
	for i := range c {
		c[i] = v
	}
	return Point[T]{coords: c}
}

// Of returns a Point built from the given coordinates, in order. The
// returned Point owns a copy of values, not the backing array.
// Complexity: O(n).
func Of[T Numeric](values ...T) Point[T] {
	c := make([]T, len(values))
	copy(c, values)
	return Point[T]{coords: c}
}

// From converts a Point of one numeric element type to another, possibly
// with a different static dimension in the caller's mind (the returned
// Point's dimension always equals p's). Complexity: O(n).
func From[T, U Numeric](p Point[U]) Point[T] {
	c := make([]T, len(p.coords))
	for i, v := range p.coords {
		c[i] = T(v)
	}
	return Point[T]{coords: c}
}

// Dim returns the number of axes in p.
func (p Point[T]) Dim() int { return len(p.coords) }

// At returns the coordinate at axis k. It panics if k is out of range,
// consistent with Go slice semantics — callers in hot paths are expected
// to have validated k via Dim already.
func (p Point[T]) At(k int) T { return p.coords[k] }

// Set returns a copy of p with axis k replaced by v. Points are value
// objects; Set never mutates the receiver's backing array.
func (p Point[T]) Set(k int, v T) Point[T] {
	c := make([]T, len(p.coords))
	copy(c, p.coords)
	c[k] = v
	return Point[T]{coords: c}
}

// Coords returns a defensive copy of p's coordinates, in axis order.
func (p Point[T]) Coords() []T {
	c := make([]T, len(p.coords))
	copy(c, p.coords)
	return c
}

// Equal reports whether p and q have the same dimension and equal
// coordinates at every axis.
func (p Point[T]) Equal(q Point[T]) bool {
	if len(p.coords) != len(q.coords) {
		return false
	}
	for i, v := range p.coords {
		if v != q.coords[i] {
			return false
		}
	}
	return true
}

// sameDim reports whether p and q share a dimension, returning
// ErrDimensionMismatch when they do not.
func sameDim[T Numeric](p, q Point[T]) error {
	if len(p.coords) != len(q.coords) {
		return ErrDimensionMismatch
	}
	return nil
}
