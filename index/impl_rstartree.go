package index

import (
	"sort"

	"github.com/arkhipov/paretoidx/point"
)

// rsNode is one node of an rStarTreeIndex — same shape as rNode but kept
// as its own type so the two tree variants stay structurally independent
// (an R*-tree node additionally needs "is this a leaf-level parent",
// asked by choosing its first child's leaf flag, so no extra field is
// needed over rNode's shape).
type rsNode[T point.Numeric, V any] struct {
	box      Box[T]
	leaf     bool
	entries  []stored[T, V]
	children []*rsNode[T, V]
}

// rStarTreeIndex implements Index as an R*-tree (Beckmann et al.): choose-
// subtree minimizes overlap-enlargement at the leaf-parent level (area-
// enlargement above that, as in a plain R-tree), overflow triggers one
// round of forced reinsertion of the farthest-from-center entries before
// falling back to a split, and the split itself chooses its axis by
// minimum total margin (perimeter) and its distribution by minimum
// overlap, per §4.3.
type rStarTreeIndex[T point.Numeric, V any] struct {
	dims      int
	root      *rsNode[T, V]
	size      int
	nextSeq   uint64
	gen       uint64
	branchMin int
	branchMax int
	alloc     Allocator[rsNode[T, V]]
}

func newRStarTree[T point.Numeric, V any](elements []Element[T, V], o Options) (*rStarTreeIndex[T, V], error) {
	x := &rStarTreeIndex[T, V]{
		dims:      o.dimensions,
		branchMin: o.branchMin,
		branchMax: o.branchMax,
		alloc:     allocatorOf[rsNode[T, V]](o),
	}
	x.root = x.newLeaf()
	for _, e := range elements {
		if _, err := x.Insert(e.Point, e.Value); err != nil {
			return nil, err
		}
	}
	return x, nil
}

func (x *rStarTreeIndex[T, V]) newLeaf() *rsNode[T, V] {
	n := x.alloc.New()
	n.leaf = true
	return n
}

func (x *rStarTreeIndex[T, V]) newInternal() *rsNode[T, V] {
	n := x.alloc.New()
	n.leaf = false
	return n
}

func rsChildrenBox[T point.Numeric, V any](children []*rsNode[T, V]) Box[T] {
	box := children[0].box
	for _, c := range children[1:] {
		box = box.Enlarge(c.box)
	}
	return box
}

// boxOverlapArea returns the volume of the intersection of a and b, 0 if
// they do not overlap.
func boxOverlapArea[T point.Numeric](a, b Box[T]) float64 {
	vol := 1.0
	for k := 0; k < a.Dim(); k++ {
		lo := a.Min.At(k)
		if b.Min.At(k) > lo {
			lo = b.Min.At(k)
		}
		hi := a.Max.At(k)
		if b.Max.At(k) < hi {
			hi = b.Max.At(k)
		}
		if hi <= lo {
			return 0
		}
		vol *= float64(hi) - float64(lo)
	}
	return vol
}

func (x *rStarTreeIndex[T, V]) Insert(p point.Point[T], v V) (Iterator[T, V], error) {
	if err := checkDim(p, x.dims); err != nil {
		return nil, err
	}
	e := Element[T, V]{Point: p, Value: v}
	s := stored[T, V]{elem: e, seq: x.nextSeq}
	x.nextSeq++

	x.insertEntry(s, true)
	x.size++
	x.gen++
	return newSliceIterator([]Element[T, V]{e}, &x.gen), nil
}

func (x *rStarTreeIndex[T, V]) insertEntry(s stored[T, V], allowReinsert bool) {
	leaf := x.chooseLeaf(x.root, s.elem.Point)
	leaf.entries = append(leaf.entries, s)
	leaf.box = elemBox[T, V](leaf.entries)
	x.recomputeBox(x.root)

	if len(leaf.entries) <= x.branchMax {
		return
	}
	if allowReinsert {
		x.forcedReinsert(leaf)
		return
	}
	x.splitLeaf(leaf)
}

// chooseLeaf descends using area-enlargement at internal levels and
// overlap-enlargement (R*-tree's refinement) at the level directly above
// the leaves.
func (x *rStarTreeIndex[T, V]) chooseLeaf(node *rsNode[T, V], p point.Point[T]) *rsNode[T, V] {
	for !node.leaf {
		if len(node.children) > 0 && node.children[0].leaf {
			node = node.children[x.pickByOverlap(node.children, p)]
			continue
		}
		node = node.children[x.pickByArea(node.children, p)]
	}
	return node
}

func (x *rStarTreeIndex[T, V]) pickByArea(children []*rsNode[T, V], p point.Point[T]) int {
	best, bestEnlarge, bestArea := 0, -1.0, -1.0
	for i, c := range children {
		enlarged := c.box.Enlarge(NewBox(p, p))
		enlarge := enlarged.Area() - c.box.Area()
		if bestEnlarge < 0 || enlarge < bestEnlarge || (enlarge == bestEnlarge && enlarged.Area() < bestArea) {
			best, bestEnlarge, bestArea = i, enlarge, enlarged.Area()
		}
	}
	return best
}

func (x *rStarTreeIndex[T, V]) pickByOverlap(children []*rsNode[T, V], p point.Point[T]) int {
	best, bestDelta, bestAreaDelta := 0, -1.0, -1.0
	for i, c := range children {
		enlarged := c.box.Enlarge(NewBox(p, p))
		before, after := 0.0, 0.0
		for j, other := range children {
			if j == i {
				continue
			}
			before += boxOverlapArea(c.box, other.box)
			after += boxOverlapArea(enlarged, other.box)
		}
		delta := after - before
		areaDelta := enlarged.Area() - c.box.Area()
		if bestDelta < 0 || delta < bestDelta || (delta == bestDelta && areaDelta < bestAreaDelta) {
			best, bestDelta, bestAreaDelta = i, delta, areaDelta
		}
	}
	return best
}

func (x *rStarTreeIndex[T, V]) recomputeBox(node *rsNode[T, V]) Box[T] {
	if node.leaf {
		if len(node.entries) > 0 {
			node.box = elemBox[T, V](node.entries)
		}
		return node.box
	}
	if len(node.children) == 0 {
		return node.box
	}
	box := x.recomputeBox(node.children[0])
	for _, c := range node.children[1:] {
		box = box.Enlarge(x.recomputeBox(c))
	}
	node.box = box
	return box
}

// forcedReinsert removes the 30% of leaf's entries farthest from its box
// center and reinserts them from the root, the R*-tree's signature
// overflow treatment: a node that has just overflowed gets one chance to
// redistribute its worst-placed entries elsewhere in the tree before
// paying for a split. Nested reinsertion is disallowed (insertEntry is
// called with allowReinsert=false) so this terminates in one pass.
func (x *rStarTreeIndex[T, V]) forcedReinsert(leaf *rsNode[T, V]) {
	center := boxCenter(leaf.box)
	entries := append([]stored[T, V]{}, leaf.entries...)
	sort.Slice(entries, func(i, j int) bool {
		di, _ := point.Distance(entries[i].elem.Point, center)
		dj, _ := point.Distance(entries[j].elem.Point, center)
		return di > dj
	})
	p := len(entries) * 3 / 10
	if p < 1 {
		p = 1
	}
	if p >= len(entries) {
		p = len(entries) - 1
	}
	removed := entries[:p]
	leaf.entries = append([]stored[T, V]{}, entries[p:]...)
	leaf.box = elemBox[T, V](leaf.entries)
	x.recomputeBox(x.root)

	for _, r := range removed {
		x.insertEntry(r, false)
	}
}

func (x *rStarTreeIndex[T, V]) splitLeaf(leaf *rsNode[T, V]) {
	groupA, groupB := rStarSplitEntries(leaf.entries, x.dims, x.branchMin)
	leaf.entries = groupA
	leaf.box = elemBox[T, V](groupA)
	sibling := x.newLeaf()
	sibling.entries = groupB
	sibling.box = elemBox[T, V](groupB)
	x.attachNewSibling(leaf, sibling)
}

func (x *rStarTreeIndex[T, V]) splitInternal(node *rsNode[T, V]) {
	groupA, groupB := rStarSplitNodes(node.children, x.dims, x.branchMin)
	node.children = groupA
	node.box = rsChildrenBox[T, V](groupA)
	sibling := x.newInternal()
	sibling.children = groupB
	sibling.box = rsChildrenBox[T, V](groupB)
	x.attachNewSibling(node, sibling)
}

// attachNewSibling inserts sibling next to node in node's parent (or
// creates a new root if node has none), splitting the parent in turn if
// it now overflows.
func (x *rStarTreeIndex[T, V]) attachNewSibling(node, sibling *rsNode[T, V]) {
	if node == x.root {
		newRoot := x.newInternal()
		newRoot.children = []*rsNode[T, V]{node, sibling}
		newRoot.box = rsChildrenBox[T, V](newRoot.children)
		x.root = newRoot
		return
	}
	x.attachUnder(x.root, node, sibling)
}

func (x *rStarTreeIndex[T, V]) attachUnder(parent, target, sibling *rsNode[T, V]) bool {
	if parent.leaf {
		return false
	}
	for _, c := range parent.children {
		if c == target {
			parent.children = append(parent.children, sibling)
			parent.box = rsChildrenBox[T, V](parent.children)
			if len(parent.children) > x.branchMax {
				x.splitInternal(parent)
			}
			return true
		}
		if x.attachUnder(c, target, sibling) {
			parent.box = rsChildrenBox[T, V](parent.children)
			return true
		}
	}
	return false
}

// rStarSplitEntries implements the R*-tree split: choose the axis with
// the smallest total margin (perimeter) summed across every valid
// distribution, then choose the distribution along that axis minimizing
// overlap (ties broken by area sum).
func rStarSplitEntries[T point.Numeric, V any](entries []stored[T, V], dims, branchMin int) ([]stored[T, V], []stored[T, V]) {
	bestAxis, bestMargin, set := 0, 0.0, false
	for axis := 0; axis < dims; axis++ {
		sorted := sortedByAxis(entries, axis)
		margin := 0.0
		for m := branchMin; m <= len(sorted)-branchMin; m++ {
			margin += elemBox[T, V](sorted[:m]).Perimeter() + elemBox[T, V](sorted[m:]).Perimeter()
		}
		if !set || margin < bestMargin {
			bestMargin, bestAxis, set = margin, axis, true
		}
	}

	sorted := sortedByAxis(entries, bestAxis)
	bestM, bestOverlap, bestArea, distSet := branchMin, 0.0, 0.0, false
	for m := branchMin; m <= len(sorted)-branchMin; m++ {
		boxA := elemBox[T, V](sorted[:m])
		boxB := elemBox[T, V](sorted[m:])
		overlap := boxOverlapArea(boxA, boxB)
		area := boxA.Area() + boxB.Area()
		if !distSet || overlap < bestOverlap || (overlap == bestOverlap && area < bestArea) {
			bestM, bestOverlap, bestArea, distSet = m, overlap, area, true
		}
	}
	return sorted[:bestM], sorted[bestM:]
}

func sortedByAxis[T point.Numeric, V any](entries []stored[T, V], axis int) []stored[T, V] {
	sorted := append([]stored[T, V]{}, entries...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].elem.Point.At(axis) < sorted[j].elem.Point.At(axis)
	})
	return sorted
}

// rStarSplitNodes is rStarSplitEntries' counterpart for internal nodes.
func rStarSplitNodes[T point.Numeric, V any](children []*rsNode[T, V], dims, branchMin int) ([]*rsNode[T, V], []*rsNode[T, V]) {
	bestAxis, bestMargin, set := 0, 0.0, false
	for axis := 0; axis < dims; axis++ {
		sorted := sortedNodesByAxis(children, axis)
		margin := 0.0
		for m := branchMin; m <= len(sorted)-branchMin; m++ {
			margin += rsChildrenBox[T, V](sorted[:m]).Perimeter() + rsChildrenBox[T, V](sorted[m:]).Perimeter()
		}
		if !set || margin < bestMargin {
			bestMargin, bestAxis, set = margin, axis, true
		}
	}

	sorted := sortedNodesByAxis(children, bestAxis)
	bestM, bestOverlap, bestArea, distSet := branchMin, 0.0, 0.0, false
	for m := branchMin; m <= len(sorted)-branchMin; m++ {
		boxA := rsChildrenBox[T, V](sorted[:m])
		boxB := rsChildrenBox[T, V](sorted[m:])
		overlap := boxOverlapArea(boxA, boxB)
		area := boxA.Area() + boxB.Area()
		if !distSet || overlap < bestOverlap || (overlap == bestOverlap && area < bestArea) {
			bestM, bestOverlap, bestArea, distSet = m, overlap, area, true
		}
	}
	return sorted[:bestM], sorted[bestM:]
}

func sortedNodesByAxis[T point.Numeric, V any](children []*rsNode[T, V], axis int) []*rsNode[T, V] {
	sorted := append([]*rsNode[T, V]{}, children...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].box.Min.At(axis) < sorted[j].box.Min.At(axis)
	})
	return sorted
}

func (x *rStarTreeIndex[T, V]) EraseAll(p point.Point[T]) (int, error) {
	if err := checkDim(p, x.dims); err != nil {
		return 0, err
	}
	count := 0
	x.eraseWalk(x.root, p, func(leaf *rsNode[T, V]) {
		kept := leaf.entries[:0]
		for _, s := range leaf.entries {
			if s.elem.Point.Equal(p) {
				count++
				continue
			}
			kept = append(kept, s)
		}
		leaf.entries = kept
	})
	if count > 0 {
		x.size -= count
		x.recomputeBox(x.root)
		x.gen++
	}
	return count, nil
}

func (x *rStarTreeIndex[T, V]) EraseOne(p point.Point[T]) (bool, error) {
	if err := checkDim(p, x.dims); err != nil {
		return false, err
	}
	found := false
	x.eraseWalk(x.root, p, func(leaf *rsNode[T, V]) {
		if found {
			return
		}
		for i, s := range leaf.entries {
			if s.elem.Point.Equal(p) {
				leaf.entries = append(leaf.entries[:i], leaf.entries[i+1:]...)
				found = true
				return
			}
		}
	})
	if found {
		x.size--
		x.recomputeBox(x.root)
		x.gen++
	}
	return found, nil
}

func (x *rStarTreeIndex[T, V]) eraseWalk(node *rsNode[T, V], p point.Point[T], f func(*rsNode[T, V])) {
	if node == nil || !node.box.Contains(p) {
		return
	}
	if node.leaf {
		f(node)
		return
	}
	for _, c := range node.children {
		x.eraseWalk(c, p, f)
	}
}

func (x *rStarTreeIndex[T, V]) Find(p point.Point[T]) (Iterator[T, V], error) {
	if err := checkDim(p, x.dims); err != nil {
		return nil, err
	}
	var out []Element[T, V]
	x.eraseWalk(x.root, p, func(leaf *rsNode[T, V]) {
		for _, s := range leaf.entries {
			if s.elem.Point.Equal(p) {
				out = append(out, s.elem)
			}
		}
	})
	return newSliceIterator(out, &x.gen), nil
}

func (x *rStarTreeIndex[T, V]) Contains(p point.Point[T]) (bool, error) {
	if err := checkDim(p, x.dims); err != nil {
		return false, err
	}
	found := false
	x.eraseWalk(x.root, p, func(leaf *rsNode[T, V]) {
		for _, s := range leaf.entries {
			if s.elem.Point.Equal(p) {
				found = true
			}
		}
	})
	return found, nil
}

func (x *rStarTreeIndex[T, V]) Nearest(p point.Point[T], k int) (Iterator[T, V], error) {
	if err := checkDim(p, x.dims); err != nil {
		return nil, err
	}
	if k == 0 {
		return nil, ErrInvalidArgument
	}
	if x.size == 0 {
		return nil, ErrEmptyIndex
	}
	return newSliceIterator(nearestK(x.liveStored(), p, k), &x.gen), nil
}

func (x *rStarTreeIndex[T, V]) Range(box Box[T]) (Iterator[T, V], error) {
	if err := checkBoxDim(box, x.dims); err != nil {
		return nil, err
	}
	var out []Element[T, V]
	var walk func(*rsNode[T, V])
	walk = func(n *rsNode[T, V]) {
		if n == nil || !n.box.Intersects(box) {
			return
		}
		if n.leaf {
			for _, s := range n.entries {
				if box.Contains(s.elem.Point) {
					out = append(out, s.elem)
				}
			}
			return
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(x.root)
	return newSliceIterator(out, &x.gen), nil
}

func (x *rStarTreeIndex[T, V]) Disjoint(box Box[T]) (Iterator[T, V], error) {
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

func (x *rStarTreeIndex[T, V]) Intersects(box Box[T]) bool {
	if x.size == 0 {
		return false
	}
	return x.root.box.Intersects(box)
}

func (x *rStarTreeIndex[T, V]) Satisfies(preds []Predicate[T]) (Iterator[T, V], error) {
	var out []Element[T, V]
	for _, s := range x.liveStored() {
		if satisfiesAll(s.elem.Point, preds) {
			out = append(out, s.elem)
		}
	}
	return newSliceIterator(out, &x.gen), nil
}

func (x *rStarTreeIndex[T, V]) liveStored() []stored[T, V] {
	out := make([]stored[T, V], 0, x.size)
	var walk func(*rsNode[T, V])
	walk = func(n *rsNode[T, V]) {
		if n == nil {
			return
		}
		if n.leaf {
			out = append(out, n.entries...)
			return
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(x.root)
	return out
}

func (x *rStarTreeIndex[T, V]) Size() int       { return x.size }
func (x *rStarTreeIndex[T, V]) Dimensions() int { return x.dims }
func (x *rStarTreeIndex[T, V]) Empty() bool     { return x.size == 0 }

func (x *rStarTreeIndex[T, V]) Clear() {
	x.root = x.newLeaf()
	x.size = 0
	x.gen++
}
