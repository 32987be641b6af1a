package index

import "github.com/arkhipov/paretoidx/point"

// Iterator is a forward-only, lazy view over a sequence of Elements
// produced by an Index query. It borrows its index and is invalidated by
// any subsequent mutation of that index (insert, erase, or clear) — this
// is a precondition of the design, not merely a recommendation, though
// detection is best-effort via the index's generation counter.
//
// Usage:
//
//	for it.Next() {
//	    e := it.Element()
//	    ...
//	}
//	if err := it.Err(); err != nil { ... }
type Iterator[T point.Numeric, V any] interface {
	// Next advances the iterator and reports whether an Element is
	// available. It returns false at end-of-sequence and on error; check
	// Err to distinguish the two.
	Next() bool
	// Element returns the Element the most recent Next call produced. Its
	// result is undefined before the first Next call or after Next
	// returns false.
	Element() Element[T, V]
	// Err returns ErrIteratorInvalidated if the index mutated since this
	// iterator was created, else nil.
	Err() error
}

// sliceIterator implements Iterator over an eagerly-gathered slice of
// Elements. Every impl_*.go query method walks its tree and collects the
// complete result before returning; Find, Contains and Range prune
// subtrees that cannot hold a match, while Nearest, Disjoint and
// Satisfies scan every live element. The sliceIterator then advances over
// that already-built slice one element per Next call; nodes are not
// visited on demand (compare bufio.Scanner, which also exposes a
// lazy-advance API over an internally buffered slice).
type sliceIterator[T point.Numeric, V any] struct {
	elems    []Element[T, V]
	pos      int
	gen      *uint64
	startGen uint64
	cur      Element[T, V]
	err      error
}

// newSliceIterator returns an Iterator over elems, tied to the generation
// counter gen (captured at construction as startGen).
func newSliceIterator[T point.Numeric, V any](elems []Element[T, V], gen *uint64) Iterator[T, V] {
	return &sliceIterator[T, V]{elems: elems, gen: gen, startGen: *gen}
}

func (it *sliceIterator[T, V]) Next() bool {
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

func (it *sliceIterator[T, V]) Element() Element[T, V] { return it.cur }
func (it *sliceIterator[T, V]) Err() error             { return it.err }
