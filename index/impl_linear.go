package index

import "github.com/arkhipov/paretoidx/point"

// linearIndex is the "Linear index" of §4.3: a flat slice of elements,
// every query an O(n) scan. It exists as a correctness oracle that the
// other four tree implementations are tested against (see
// equivalence_test.go) and as a degenerate fallback for very small fronts
// where a tree's overhead outweighs its asymptotic advantage.
type linearIndex[T point.Numeric, V any] struct {
	dims    int
	elems   []stored[T, V]
	nextSeq uint64
	gen     uint64
}

// newLinear builds a linearIndex, bulk-loading elements in order.
// Complexity: O(n).
func newLinear[T point.Numeric, V any](elements []Element[T, V], o Options) (*linearIndex[T, V], error) {
	idx := &linearIndex[T, V]{dims: o.dimensions, elems: make([]stored[T, V], 0, len(elements))}
	for _, e := range elements {
		idx.elems = append(idx.elems, stored[T, V]{elem: e, seq: idx.nextSeq})
		idx.nextSeq++
	}
	return idx, nil
}

func (x *linearIndex[T, V]) Insert(p point.Point[T], v V) (Iterator[T, V], error) {
	if err := checkDim(p, x.dims); err != nil {
		return nil, err
	}
	e := Element[T, V]{Point: p, Value: v}
	x.elems = append(x.elems, stored[T, V]{elem: e, seq: x.nextSeq})
	x.nextSeq++
	x.gen++
	return newSliceIterator([]Element[T, V]{e}, &x.gen), nil
}

func (x *linearIndex[T, V]) EraseAll(p point.Point[T]) (int, error) {
	if err := checkDim(p, x.dims); err != nil {
		return 0, err
	}
	kept := x.elems[:0]
	count := 0
	for _, s := range x.elems {
		if s.elem.Point.Equal(p) {
			count++
			continue
		}
		kept = append(kept, s)
	}
	x.elems = kept
	if count > 0 {
		x.gen++
	}
	return count, nil
}

func (x *linearIndex[T, V]) EraseOne(p point.Point[T]) (bool, error) {
	if err := checkDim(p, x.dims); err != nil {
		return false, err
	}
	for i, s := range x.elems {
		if s.elem.Point.Equal(p) {
			x.elems = append(x.elems[:i], x.elems[i+1:]...)
			x.gen++
			return true, nil
		}
	}
	return false, nil
}

func (x *linearIndex[T, V]) Find(p point.Point[T]) (Iterator[T, V], error) {
	if err := checkDim(p, x.dims); err != nil {
		return nil, err
	}
	var out []Element[T, V]
	for _, s := range x.elems {
		if s.elem.Point.Equal(p) {
			out = append(out, s.elem)
		}
	}
	return newSliceIterator(out, &x.gen), nil
}

func (x *linearIndex[T, V]) Contains(p point.Point[T]) (bool, error) {
	if err := checkDim(p, x.dims); err != nil {
		return false, err
	}
	for _, s := range x.elems {
		if s.elem.Point.Equal(p) {
			return true, nil
		}
	}
	return false, nil
}

func (x *linearIndex[T, V]) Nearest(p point.Point[T], k int) (Iterator[T, V], error) {
	if err := checkDim(p, x.dims); err != nil {
		return nil, err
	}
	if k == 0 {
		return nil, ErrInvalidArgument
	}
	if len(x.elems) == 0 {
		return nil, ErrEmptyIndex
	}
	return newSliceIterator(nearestK(x.elems, p, k), &x.gen), nil
}

func (x *linearIndex[T, V]) Range(box Box[T]) (Iterator[T, V], error) {
	if err := checkBoxDim(box, x.dims); err != nil {
		return nil, err
	}
	var out []Element[T, V]
	for _, s := range x.elems {
		if box.Contains(s.elem.Point) {
			out = append(out, s.elem)
		}
	}
	return newSliceIterator(out, &x.gen), nil
}

func (x *linearIndex[T, V]) Disjoint(box Box[T]) (Iterator[T, V], error) {
	if err := checkBoxDim(box, x.dims); err != nil {
		return nil, err
	}
	var out []Element[T, V]
	for _, s := range x.elems {
		if !box.Contains(s.elem.Point) {
			out = append(out, s.elem)
		}
	}
	return newSliceIterator(out, &x.gen), nil
}

func (x *linearIndex[T, V]) Intersects(box Box[T]) bool {
	if len(x.elems) == 0 {
		return false
	}
	return box.Intersects(x.boundingBox())
}

func (x *linearIndex[T, V]) Satisfies(preds []Predicate[T]) (Iterator[T, V], error) {
	var out []Element[T, V]
	for _, s := range x.elems {
		if satisfiesAll(s.elem.Point, preds) {
			out = append(out, s.elem)
		}
	}
	return newSliceIterator(out, &x.gen), nil
}

func (x *linearIndex[T, V]) Size() int       { return len(x.elems) }
func (x *linearIndex[T, V]) Dimensions() int { return x.dims }
func (x *linearIndex[T, V]) Empty() bool     { return len(x.elems) == 0 }

func (x *linearIndex[T, V]) Clear() {
	x.elems = nil
	x.gen++
}

func (x *linearIndex[T, V]) boundingBox() Box[T] {
	pts := make([]point.Point[T], len(x.elems))
	for i, s := range x.elems {
		pts[i] = s.elem.Point
	}
	return BoxOf(pts...)
}
