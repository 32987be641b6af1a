package index

import (
	"sort"

	"github.com/arkhipov/paretoidx/point"
)

// kdNode is one node of a kdTreeIndex: a stored element, the axis it
// splits on (depth mod dims), and its two children. dead marks a
// tombstoned (erased-but-not-unlinked) node; see kdTreeIndex's doc comment
// for why erase tombstones instead of physically unlinking.
type kdNode[T point.Numeric, V any] struct {
	s           stored[T, V]
	axis        int
	left, right *kdNode[T, V]
	dead        bool
}

// kdTreeIndex implements Index as a k-d tree: node i splits on axis
// i mod d at the median of its subtree, per §4.3. Range queries prune by
// comparing the query box against each node's split plane.
//
// Erase marks the node dead rather than physically removing it (an
// in-place kd-tree deletion that preserves the median-split invariant
// requires finding a replacement from the deeper subtree and is
// needlessly intricate for a structure that's rebuilt wholesale anyway
// once it drifts too far from balanced); once dead nodes reach half the
// tree, rebalance rebuilds from the live set in O(n log n).
type kdTreeIndex[T point.Numeric, V any] struct {
	dims       int
	root       *kdNode[T, V]
	live       int
	dead       int
	nextSeq    uint64
	gen        uint64
	alloc      Allocator[kdNode[T, V]]
}

// newKdTree bulk-loads elements into a balanced k-d tree via recursive
// median split. Complexity: O(n log^2 n) (a sort per level; true O(n log n)
// needs quickselect, which this package forgoes for clarity).
func newKdTree[T point.Numeric, V any](elements []Element[T, V], o Options) (*kdTreeIndex[T, V], error) {
	idx := &kdTreeIndex[T, V]{dims: o.dimensions, alloc: allocatorOf[kdNode[T, V]](o)}
	items := make([]stored[T, V], len(elements))
	for i, e := range elements {
		items[i] = stored[T, V]{elem: e, seq: idx.nextSeq}
		idx.nextSeq++
	}
	idx.root = idx.build(items, 0)
	idx.live = len(items)
	return idx, nil
}

func (x *kdTreeIndex[T, V]) build(items []stored[T, V], depth int) *kdNode[T, V] {
	if len(items) == 0 {
		return nil
	}
	axis := depth % x.dims
	sort.Slice(items, func(i, j int) bool {
		return items[i].elem.Point.At(axis) < items[j].elem.Point.At(axis)
	})
	mid := len(items) / 2
	n := x.alloc.New()
	n.s = items[mid]
	n.axis = axis
	n.left = x.build(items[:mid], depth+1)
	n.right = x.build(items[mid+1:], depth+1)
	return n
}

func (x *kdTreeIndex[T, V]) Insert(p point.Point[T], v V) (Iterator[T, V], error) {
	if err := checkDim(p, x.dims); err != nil {
		return nil, err
	}
	e := Element[T, V]{Point: p, Value: v}
	s := stored[T, V]{elem: e, seq: x.nextSeq}
	x.nextSeq++

	if x.root == nil {
		x.root = x.alloc.New()
		x.root.s = s
		x.root.axis = 0
	} else {
		cur := x.root
		for {
			axis := cur.axis
			if p.At(axis) <= cur.s.elem.Point.At(axis) {
				if cur.left == nil {
					n := x.alloc.New()
					n.s = s
					n.axis = (axis + 1) % x.dims
					cur.left = n
					break
				}
				cur = cur.left
			} else {
				if cur.right == nil {
					n := x.alloc.New()
					n.s = s
					n.axis = (axis + 1) % x.dims
					cur.right = n
					break
				}
				cur = cur.right
			}
		}
	}
	x.live++
	x.gen++
	return newSliceIterator([]Element[T, V]{e}, &x.gen), nil
}

// EraseAll tombstones every live node at point p.
func (x *kdTreeIndex[T, V]) EraseAll(p point.Point[T]) (int, error) {
	if err := checkDim(p, x.dims); err != nil {
		return 0, err
	}
	count := 0
	x.eraseWalk(x.root, p, func(n *kdNode[T, V]) bool {
		n.dead = true
		count++
		return true // keep descending to find further duplicates
	})
	if count > 0 {
		x.live -= count
		x.dead += count
		x.gen++
		x.maybeRebalance()
	}
	return count, nil
}

// EraseOne tombstones the first live node at point p.
func (x *kdTreeIndex[T, V]) EraseOne(p point.Point[T]) (bool, error) {
	if err := checkDim(p, x.dims); err != nil {
		return false, err
	}
	found := false
	x.eraseWalk(x.root, p, func(n *kdNode[T, V]) bool {
		n.dead = true
		found = true
		return false // stop after first
	})
	if found {
		x.live--
		x.dead++
		x.gen++
		x.maybeRebalance()
	}
	return found, nil
}

// eraseWalk performs the exact-match traversal for p and calls mark on
// every live node equal to p, stopping early if mark returns false. Insert
// sends a tied split coordinate left, but a median build can leave tied
// coordinates on either side, so on a tie both subtrees are searched. It
// reports whether the walk should continue.
func (x *kdTreeIndex[T, V]) eraseWalk(n *kdNode[T, V], p point.Point[T], mark func(*kdNode[T, V]) bool) bool {
	if n == nil {
		return true
	}
	if !n.dead && n.s.elem.Point.Equal(p) {
		if !mark(n) {
			return false
		}
	}
	axis := n.axis
	if p.At(axis) <= n.s.elem.Point.At(axis) {
		if !x.eraseWalk(n.left, p, mark) {
			return false
		}
	}
	if p.At(axis) >= n.s.elem.Point.At(axis) {
		return x.eraseWalk(n.right, p, mark)
	}
	return true
}

// maybeRebalance rebuilds the tree from its live elements once dead nodes
// reach half the total node count.
func (x *kdTreeIndex[T, V]) maybeRebalance() {
	total := x.live + x.dead
	if total == 0 || x.dead*2 < total {
		return
	}
	items := x.liveStored()
	x.root = x.build(items, 0)
	x.dead = 0
}

func (x *kdTreeIndex[T, V]) liveStored() []stored[T, V] {
	out := make([]stored[T, V], 0, x.live)
	var walk func(*kdNode[T, V])
	walk = func(n *kdNode[T, V]) {
		if n == nil {
			return
		}
		if !n.dead {
			out = append(out, n.s)
		}
		walk(n.left)
		walk(n.right)
	}
	walk(x.root)
	return out
}

func (x *kdTreeIndex[T, V]) Find(p point.Point[T]) (Iterator[T, V], error) {
	if err := checkDim(p, x.dims); err != nil {
		return nil, err
	}
	var out []Element[T, V]
	x.eraseWalk(x.root, p, func(n *kdNode[T, V]) bool {
		out = append(out, n.elemCopy())
		return true
	})
	return newSliceIterator(out, &x.gen), nil
}

func (n *kdNode[T, V]) elemCopy() Element[T, V] { return n.s.elem }

func (x *kdTreeIndex[T, V]) Contains(p point.Point[T]) (bool, error) {
	if err := checkDim(p, x.dims); err != nil {
		return false, err
	}
	found := false
	x.eraseWalk(x.root, p, func(n *kdNode[T, V]) bool {
		found = true
		return false
	})
	return found, nil
}

func (x *kdTreeIndex[T, V]) Nearest(p point.Point[T], k int) (Iterator[T, V], error) {
	if err := checkDim(p, x.dims); err != nil {
		return nil, err
	}
	if k == 0 {
		return nil, ErrInvalidArgument
	}
	if x.live == 0 {
		return nil, ErrEmptyIndex
	}
	return newSliceIterator(nearestK(x.liveStored(), p, k), &x.gen), nil
}

func (x *kdTreeIndex[T, V]) Range(box Box[T]) (Iterator[T, V], error) {
	if err := checkBoxDim(box, x.dims); err != nil {
		return nil, err
	}
	var out []Element[T, V]
	var walk func(*kdNode[T, V])
	walk = func(n *kdNode[T, V]) {
		if n == nil {
			return
		}
		if !n.dead && box.Contains(n.s.elem.Point) {
			out = append(out, n.s.elem)
		}
		axis := n.axis
		if box.Min.At(axis) <= n.s.elem.Point.At(axis) {
			walk(n.left)
		}
		if box.Max.At(axis) >= n.s.elem.Point.At(axis) {
			walk(n.right)
		}
	}
	walk(x.root)
	return newSliceIterator(out, &x.gen), nil
}

func (x *kdTreeIndex[T, V]) Disjoint(box Box[T]) (Iterator[T, V], error) {
	if err := checkBoxDim(box, x.dims); err != nil {
		return nil, err
	}
	var out []Element[T, V]
	for _, s := range x.liveStored() {
		if !box.Contains(s.elem.Point) {
			out = append(out, s.elem)
		}
	}
	return newSliceIterator(out, &x.gen), nil
}

func (x *kdTreeIndex[T, V]) Intersects(box Box[T]) bool {
	if x.live == 0 {
		return false
	}
	pts := make([]point.Point[T], 0, x.live)
	for _, s := range x.liveStored() {
		pts = append(pts, s.elem.Point)
	}
	return box.Intersects(BoxOf(pts...))
}

func (x *kdTreeIndex[T, V]) Satisfies(preds []Predicate[T]) (Iterator[T, V], error) {
	var out []Element[T, V]
	for _, s := range x.liveStored() {
		if satisfiesAll(s.elem.Point, preds) {
			out = append(out, s.elem)
		}
	}
	return newSliceIterator(out, &x.gen), nil
}

func (x *kdTreeIndex[T, V]) Size() int       { return x.live }
func (x *kdTreeIndex[T, V]) Dimensions() int { return x.dims }
func (x *kdTreeIndex[T, V]) Empty() bool     { return x.live == 0 }

func (x *kdTreeIndex[T, V]) Clear() {
	x.root = nil
	x.live = 0
	x.dead = 0
	x.gen++
}
