package front

import (
	"github.com/arkhipov/paretoidx/index"
	"github.com/arkhipov/paretoidx/point"
)

// Front is a dominance-filtered spatial container: it owns an
// index.Index and enforces, on every Insert, that the set of stored
// points remains mutually non-dominated under dir.
//
// Front is not safe for concurrent use without external synchronisation,
// matching the rest of this module (§5).
type Front[T point.Numeric, V any] struct {
	idx     index.Index[T, V]
	dir     point.Direction
	version uint64
}

// New constructs an empty Front of the given Tag and direction. opts are
// forwarded to index.New; a WithDimensions option matching dir.Len() is
// always appended last, so any WithDimensions passed in opts is ignored
// in favour of dir's own length — a Front's dimension is dir.Len(), not
// independently configurable.
func New[T point.Numeric, V any](tag index.Tag, dir point.Direction, opts ...index.Option) (*Front[T, V], error) {
	merged := make([]index.Option, 0, len(opts)+1)
	merged = append(merged, opts...)
	merged = append(merged, index.WithDimensions(dir.Len()))

	idx, err := index.New[T, V](tag, nil, merged...)
	if err != nil {
		return nil, err
	}
	return &Front[T, V]{idx: idx, dir: dir}, nil
}

// Direction returns the direction vector this Front enforces dominance
// under.
func (f *Front[T, V]) Direction() point.Direction { return f.dir }

// Version returns a counter incremented by every mutation (accepted
// Insert, EraseAll, EraseOne, Clear). A caller can compare it with a
// value it saw earlier to tell whether the Front has changed since then.
func (f *Front[T, V]) Version() uint64 { return f.version }

// Insert attempts to admit (p, v) per §4.4's protocol:
//
//  1. If any stored point weakly dominates p, reject: accepted is false
//     and blocker is that element.
//  2. Otherwise, erase every stored point p weakly dominates — returned
//     as displaced, since a caller layering fronts (archive) needs to
//     know exactly which elements were supplanted, not just that some
//     were — insert (p, v), and bump Version.
//
// Returns index.ErrDimensionMismatch (from the index) if p's dimension
// differs from the front's.
func (f *Front[T, V]) Insert(p point.Point[T], v V) (accepted bool, blocker index.Element[T, V], displaced []index.Element[T, V], err error) {
	blockers, err := f.idx.Satisfies([]index.Predicate[T]{index.Dominates(p, f.dir)})
	if err != nil {
		return false, index.Element[T, V]{}, nil, err
	}
	if blockers.Next() {
		return false, blockers.Element(), nil, nil
	}
	if err := blockers.Err(); err != nil {
		return false, index.Element[T, V]{}, nil, err
	}

	superseded, err := f.idx.Satisfies([]index.Predicate[T]{index.DominatedBy(p, f.dir)})
	if err != nil {
		return false, index.Element[T, V]{}, nil, err
	}
	for superseded.Next() {
		displaced = append(displaced, superseded.Element())
	}
	if err := superseded.Err(); err != nil {
		return false, index.Element[T, V]{}, nil, err
	}

	for _, d := range displaced {
		if _, err := f.idx.EraseAll(d.Point); err != nil {
			return false, index.Element[T, V]{}, nil, err
		}
	}
	if _, err := f.idx.Insert(p, v); err != nil {
		return false, index.Element[T, V]{}, nil, err
	}
	f.version++
	return true, index.Element[T, V]{}, displaced, nil
}

// EraseAll removes every element at p and bumps Version if any was
// removed.
func (f *Front[T, V]) EraseAll(p point.Point[T]) (int, error) {
	n, err := f.idx.EraseAll(p)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		f.version++
	}
	return n, nil
}

// EraseOne removes one element at p and bumps Version if one was
// removed.
func (f *Front[T, V]) EraseOne(p point.Point[T]) (bool, error) {
	ok, err := f.idx.EraseOne(p)
	if err != nil {
		return false, err
	}
	if ok {
		f.version++
	}
	return ok, nil
}

// Clear removes every element and bumps Version.
func (f *Front[T, V]) Clear() {
	f.idx.Clear()
	f.version++
}

// Dominates reports whether some stored point weakly dominates p.
func (f *Front[T, V]) Dominates(p point.Point[T]) (bool, error) {
	return f.anyMatch(index.Dominates(p, f.dir))
}

// IsDominatedBy reports whether p weakly dominates some stored point.
func (f *Front[T, V]) IsDominatedBy(p point.Point[T]) (bool, error) {
	return f.anyMatch(index.DominatedBy(p, f.dir))
}

// NonDominatedWith reports whether p is non-dominated with respect to
// every stored point: neither the front nor p dominates the other. An
// empty front is trivially non-dominated with any p.
func (f *Front[T, V]) NonDominatedWith(p point.Point[T]) (bool, error) {
	dominates, err := f.Dominates(p)
	if err != nil {
		return false, err
	}
	dominatedBy, err := f.IsDominatedBy(p)
	if err != nil {
		return false, err
	}
	return !dominates && !dominatedBy, nil
}

func (f *Front[T, V]) anyMatch(pred index.Predicate[T]) (bool, error) {
	it, err := f.idx.Satisfies([]index.Predicate[T]{pred})
	if err != nil {
		return false, err
	}
	if it.Next() {
		return true, nil
	}
	return false, it.Err()
}

// Ideal returns the componentwise best coordinate across every stored
// point (the best possible value on each axis independently — not
// necessarily a stored point itself).
//
// Returns ErrEmptyFront if the front has no elements.
func (f *Front[T, V]) Ideal() (point.Point[T], error) { return f.extreme(true) }

// Nadir returns the componentwise worst coordinate among the front's
// (mutually non-dominated) points. Equal to Worst whenever the front
// invariant holds, which it always does for a Front — the distinction
// matters only for Worst's generalisation to an arbitrary, possibly
// dominance-unfiltered index (see Worst).
//
// Returns ErrEmptyFront if the front has no elements.
func (f *Front[T, V]) Nadir() (point.Point[T], error) { return f.extreme(false) }

// Worst returns the componentwise worst coordinate across the underlying
// index's elements, independent of whether those elements are mutually
// non-dominated. For a Front this always equals Nadir, since Insert
// enforces the non-dominance invariant on every stored point; the two
// methods are kept distinct because an archive layer built directly on
// an index.Index (bypassing Front's invariant) would need Worst without
// Nadir's "non-dominated" precondition.
//
// Returns ErrEmptyFront if the front has no elements.
func (f *Front[T, V]) Worst() (point.Point[T], error) { return f.extreme(false) }

func (f *Front[T, V]) extreme(best bool) (point.Point[T], error) {
	it, err := f.idx.Satisfies(nil)
	if err != nil {
		return point.Point[T]{}, err
	}
	var coords []T
	for it.Next() {
		p := it.Element().Point
		if coords == nil {
			coords = p.Coords()
			continue
		}
		for k := range coords {
			v := p.At(k)
			minimize := f.dir.Minimize(k)
			pickV := (minimize && best) || (!minimize && !best)
			if pickV {
				if v < coords[k] {
					coords[k] = v
				}
			} else {
				if v > coords[k] {
					coords[k] = v
				}
			}
		}
	}
	if err := it.Err(); err != nil {
		return point.Point[T]{}, err
	}
	if coords == nil {
		return point.Point[T]{}, ErrEmptyFront
	}
	return point.Of(coords...), nil
}

// Elements returns an Iterator over every stored element, in no
// particular order beyond what the backing index yields.
func (f *Front[T, V]) Elements() (index.Iterator[T, V], error) {
	return f.idx.Satisfies(nil)
}

// Contains reports whether any element is stored at point p.
func (f *Front[T, V]) Contains(p point.Point[T]) (bool, error) {
	return f.idx.Contains(p)
}

// Find returns an Iterator over every element stored at exactly p.
func (f *Front[T, V]) Find(p point.Point[T]) (index.Iterator[T, V], error) {
	return f.idx.Find(p)
}

// Range returns an Iterator over every element within box.
func (f *Front[T, V]) Range(box index.Box[T]) (index.Iterator[T, V], error) {
	return f.idx.Range(box)
}

// Nearest returns an Iterator over the k elements nearest p, closest
// first.
func (f *Front[T, V]) Nearest(p point.Point[T], k int) (index.Iterator[T, V], error) {
	return f.idx.Nearest(p, k)
}

// Size returns the number of stored elements.
func (f *Front[T, V]) Size() int { return f.idx.Size() }

// Dimensions returns the front's fixed dimension.
func (f *Front[T, V]) Dimensions() int { return f.idx.Dimensions() }

// Empty reports whether Size() == 0.
func (f *Front[T, V]) Empty() bool { return f.idx.Empty() }
