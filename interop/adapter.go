package interop

import (
	"sort"

	"github.com/dhconnelly/rtreego"

	"github.com/arkhipov/paretoidx/index"
	"github.com/arkhipov/paretoidx/point"
)

// epsilonSide is the side length given to every rtreego.Rect this
// adapter builds. rtreego's Rect models a hyperrectangle with positive
// extent on every axis, so a dimensionless point is represented as a
// hyperrectangle of this (negligible, well below any realistic
// coordinate's precision) side, centered on the point.
const epsilonSide = 1e-9

// spatial adapts one stored (point, value) pair to rtreego.Spatial. Its
// Rect is computed once at construction and cached, since Bounds() has
// no error return to propagate a failed rtreego.NewRect call through.
type spatial[V any] struct {
	elem index.Element[float64, V]
	seq  uint64
	rect *rtreego.Rect
}

func (s *spatial[V]) Bounds() *rtreego.Rect { return s.rect }

func newSpatial[V any](elem index.Element[float64, V], seq uint64) (*spatial[V], error) {
	coords := elem.Point.Coords()
	origin := make([]float64, len(coords))
	lengths := make([]float64, len(coords))
	for i, c := range coords {
		origin[i] = c - epsilonSide/2
		lengths[i] = epsilonSide
	}
	rect, err := rtreego.NewRect(rtreego.Point(origin), lengths)
	if err != nil {
		return nil, err
	}
	return &spatial[V]{elem: elem, seq: seq, rect: rect}, nil
}

// Adapter is an index.Index[float64, V] backed by rtreego.Rtree for its
// mutating operations (Insert/EraseAll/EraseOne, which genuinely round
// trip through rtreego.Rtree.Insert/Delete and rtreego.Rtree.Size).
// Query operations (Find, Contains, Nearest, Range, Disjoint, Satisfies)
// are served from an adapter-maintained slice kept in lockstep with the
// tree rather than from rtreego's own search methods: the retrieved
// reference material for this dependency covers construction, Insert,
// and Delete but not its query surface, so this package does not guess
// at an unverified signature for it. See DESIGN.md.
type Adapter[V any] struct {
	dims    int
	tree    *rtreego.Rtree
	entries []*spatial[V]
	nextSeq uint64
	gen     uint64
}

// New constructs an Adapter of the given dimension and R-tree branch
// factor bounds.
//
// Returns ErrInvalidArgument if dims <= 0.
func New[V any](dims, branchMin, branchMax int) (*Adapter[V], error) {
	if dims <= 0 {
		return nil, ErrInvalidArgument
	}
	return &Adapter[V]{
		dims: dims,
		tree: rtreego.NewTree(dims, branchMin, branchMax),
	}, nil
}

func (a *Adapter[V]) checkDim(p point.Point[float64]) error {
	if p.Dim() != a.dims {
		return ErrDimensionMismatch
	}
	return nil
}

func (a *Adapter[V]) checkBoxDim(box index.Box[float64]) error {
	if box.Dim() != a.dims {
		return ErrDimensionMismatch
	}
	return nil
}

// Insert adds (p, v), routing the mutation through the wrapped
// rtreego.Rtree.
func (a *Adapter[V]) Insert(p point.Point[float64], v V) (index.Iterator[float64, V], error) {
	if err := a.checkDim(p); err != nil {
		return nil, err
	}
	a.nextSeq++
	s, err := newSpatial(index.Element[float64, V]{Point: p, Value: v}, a.nextSeq)
	if err != nil {
		return nil, err
	}
	if err := a.tree.Insert(s); err != nil {
		return nil, err
	}
	a.entries = append(a.entries, s)
	a.gen++
	return newSliceIter([]index.Element[float64, V]{s.elem}, &a.gen), nil
}

// EraseAll removes every element at p, deleting each from the wrapped
// rtreego.Rtree.
func (a *Adapter[V]) EraseAll(p point.Point[float64]) (int, error) {
	if err := a.checkDim(p); err != nil {
		return 0, err
	}
	var removed int
	kept := a.entries[:0]
	for _, s := range a.entries {
		if s.elem.Point.Equal(p) {
			if _, err := a.tree.Delete(s); err != nil {
				return removed, err
			}
			removed++
			continue
		}
		kept = append(kept, s)
	}
	a.entries = kept
	if removed > 0 {
		a.gen++
	}
	return removed, nil
}

// EraseOne removes the earliest-inserted element still present at p.
func (a *Adapter[V]) EraseOne(p point.Point[float64]) (bool, error) {
	if err := a.checkDim(p); err != nil {
		return false, err
	}
	best := -1
	for i, s := range a.entries {
		if !s.elem.Point.Equal(p) {
			continue
		}
		if best == -1 || s.seq < a.entries[best].seq {
			best = i
		}
	}
	if best == -1 {
		return false, nil
	}
	victim := a.entries[best]
	if _, err := a.tree.Delete(victim); err != nil {
		return false, err
	}
	a.entries = append(a.entries[:best], a.entries[best+1:]...)
	a.gen++
	return true, nil
}

// Find returns an Iterator over every element at exactly p.
func (a *Adapter[V]) Find(p point.Point[float64]) (index.Iterator[float64, V], error) {
	if err := a.checkDim(p); err != nil {
		return nil, err
	}
	var out []index.Element[float64, V]
	for _, s := range a.entries {
		if s.elem.Point.Equal(p) {
			out = append(out, s.elem)
		}
	}
	return newSliceIter(out, &a.gen), nil
}

// Contains reports whether any element is stored at p.
func (a *Adapter[V]) Contains(p point.Point[float64]) (bool, error) {
	if err := a.checkDim(p); err != nil {
		return false, err
	}
	for _, s := range a.entries {
		if s.elem.Point.Equal(p) {
			return true, nil
		}
	}
	return false, nil
}

// Nearest returns the k elements nearest p, closest first, ties broken
// by insertion order.
func (a *Adapter[V]) Nearest(p point.Point[float64], k int) (index.Iterator[float64, V], error) {
	if err := a.checkDim(p); err != nil {
		return nil, err
	}
	if k == 0 {
		return nil, ErrInvalidArgument
	}
	if len(a.entries) == 0 {
		return nil, ErrEmptyIndex
	}

	type candidate struct {
		elem index.Element[float64, V]
		seq  uint64
		dist float64
	}
	cands := make([]candidate, len(a.entries))
	for i, s := range a.entries {
		d, _ := point.Distance(p, s.elem.Point)
		cands[i] = candidate{elem: s.elem, seq: s.seq, dist: d}
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].dist != cands[j].dist {
			return cands[i].dist < cands[j].dist
		}
		return cands[i].seq < cands[j].seq
	})
	if k > len(cands) {
		k = len(cands)
	}
	out := make([]index.Element[float64, V], k)
	for i := 0; i < k; i++ {
		out[i] = cands[i].elem
	}
	return newSliceIter(out, &a.gen), nil
}

// Range returns an Iterator over every element within box.
func (a *Adapter[V]) Range(box index.Box[float64]) (index.Iterator[float64, V], error) {
	if err := a.checkBoxDim(box); err != nil {
		return nil, err
	}
	var out []index.Element[float64, V]
	for _, s := range a.entries {
		if box.Contains(s.elem.Point) {
			out = append(out, s.elem)
		}
	}
	return newSliceIter(out, &a.gen), nil
}

// Disjoint returns an Iterator over every element outside box.
func (a *Adapter[V]) Disjoint(box index.Box[float64]) (index.Iterator[float64, V], error) {
	if err := a.checkBoxDim(box); err != nil {
		return nil, err
	}
	var out []index.Element[float64, V]
	for _, s := range a.entries {
		if !box.Contains(s.elem.Point) {
			out = append(out, s.elem)
		}
	}
	return newSliceIter(out, &a.gen), nil
}

// Intersects reports whether the bounding box of every stored element
// intersects box. An empty index never intersects anything.
func (a *Adapter[V]) Intersects(box index.Box[float64]) bool {
	if len(a.entries) == 0 {
		return false
	}
	pts := make([]point.Point[float64], len(a.entries))
	for i, s := range a.entries {
		pts[i] = s.elem.Point
	}
	return index.BoxOf(pts...).Intersects(box)
}

// Satisfies returns an Iterator over every element whose point passes
// every predicate in preds.
func (a *Adapter[V]) Satisfies(preds []index.Predicate[float64]) (index.Iterator[float64, V], error) {
	var out []index.Element[float64, V]
	for _, s := range a.entries {
		ok := true
		for _, pred := range preds {
			if !pred(s.elem.Point) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, s.elem)
		}
	}
	return newSliceIter(out, &a.gen), nil
}

// Size returns the number of stored elements, read from the wrapped
// rtreego.Rtree.
func (a *Adapter[V]) Size() int { return a.tree.Size() }

// Dimensions returns the adapter's fixed dimension.
func (a *Adapter[V]) Dimensions() int { return a.dims }

// Empty reports whether Size() == 0.
func (a *Adapter[V]) Empty() bool { return a.tree.Size() == 0 }

// Clear removes every element, rebuilding the wrapped rtreego.Rtree from
// scratch (it exposes no bulk-clear operation).
func (a *Adapter[V]) Clear() {
	a.tree = rtreego.NewTree(a.dims, a.tree.MinChildren, a.tree.MaxChildren)
	a.entries = nil
	a.gen++
}

var _ index.Index[float64, int] = (*Adapter[int])(nil)
