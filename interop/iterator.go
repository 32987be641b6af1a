package interop

import "github.com/arkhipov/paretoidx/index"

// sliceIter is the same lazy-advance-over-an-eagerly-filtered-slice
// iterator shape index.sliceIterator uses, reimplemented locally since
// that type is unexported and this package intentionally implements
// index.Iterator without importing index's internals.
type sliceIter[V any] struct {
	elems    []index.Element[float64, V]
	pos      int
	gen      *uint64
	startGen uint64
	cur      index.Element[float64, V]
	err      error
}

func newSliceIter[V any](elems []index.Element[float64, V], gen *uint64) index.Iterator[float64, V] {
	return &sliceIter[V]{elems: elems, gen: gen, startGen: *gen}
}

func (it *sliceIter[V]) Next() bool {
	if it.err != nil {
		return false
	}
	if *it.gen != it.startGen {
		it.err = ErrIteratorInvalidated
		return false
	}
	if it.pos >= len(it.elems) {
		return false
	}
	it.cur = it.elems[it.pos]
	it.pos++
	return true
}

func (it *sliceIter[V]) Element() index.Element[float64, V] { return it.cur }
func (it *sliceIter[V]) Err() error                         { return it.err }
