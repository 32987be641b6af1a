package index

import "github.com/arkhipov/paretoidx/point"

// rNode is one node of an rTreeIndex. Leaves hold stored elements directly
// (box is the tight bound of leaf.entries' points); internal nodes hold
// child nodes (box is the union of each child's box). Insert and its
// splits keep every node within [branchMin, branchMax] entries, the
// classic R-tree invariant, per the design grounded on rtreego's
// quadratic-split R-tree. Erase removes entries in place and does not
// merge or reinsert nodes left under branchMin, so after erasures a node
// may hold fewer than branchMin entries (or none).
type rNode[T point.Numeric, V any] struct {
	box      Box[T]
	leaf     bool
	entries  []stored[T, V] // populated when leaf
	children []*rNode[T, V] // populated when !leaf
}

// rTreeIndex implements Index as an R-tree with Guttman's quadratic-cost
// split algorithm (the original R-tree paper's split heuristic, simpler
// than R*-tree's forced-reinsert variant in impl_rstartree.go).
type rTreeIndex[T point.Numeric, V any] struct {
	dims      int
	root      *rNode[T, V]
	size      int
	nextSeq   uint64
	gen       uint64
	branchMin int
	branchMax int
	alloc     Allocator[rNode[T, V]]
}

func newRTree[T point.Numeric, V any](elements []Element[T, V], o Options) (*rTreeIndex[T, V], error) {
	x := &rTreeIndex[T, V]{
		dims:      o.dimensions,
		branchMin: o.branchMin,
		branchMax: o.branchMax,
		alloc:     allocatorOf[rNode[T, V]](o),
	}
	x.root = x.newLeaf()
	for _, e := range elements {
		if _, err := x.Insert(e.Point, e.Value); err != nil {
			return nil, err
		}
	}
	return x, nil
}

func (x *rTreeIndex[T, V]) newLeaf() *rNode[T, V] {
	n := x.alloc.New()
	n.leaf = true
	return n
}

func (x *rTreeIndex[T, V]) newInternal() *rNode[T, V] {
	n := x.alloc.New()
	n.leaf = false
	return n
}

func elemBox[T point.Numeric, V any](entries []stored[T, V]) Box[T] {
	pts := make([]point.Point[T], len(entries))
	for i, s := range entries {
		pts[i] = s.elem.Point
	}
	return BoxOf(pts...)
}

func childrenBox[T point.Numeric, V any](children []*rNode[T, V]) Box[T] {
	box := children[0].box
	for _, c := range children[1:] {
		box = box.Enlarge(c.box)
	}
	return box
}

func (x *rTreeIndex[T, V]) Insert(p point.Point[T], v V) (Iterator[T, V], error) {
	if err := checkDim(p, x.dims); err != nil {
		return nil, err
	}
	e := Element[T, V]{Point: p, Value: v}
	s := stored[T, V]{elem: e, seq: x.nextSeq}
	x.nextSeq++

	leaf := x.chooseLeaf(x.root, p)
	leaf.entries = append(leaf.entries, s)
	leaf.box = elemBox[T, V](leaf.entries)
	x.recomputeBox(x.root)

	if len(leaf.entries) > x.branchMax {
		x.splitLeaf(leaf)
	}
	x.size++
	x.gen++
	return newSliceIterator([]Element[T, V]{e}, &x.gen), nil
}

// chooseLeaf descends from node, at each internal level picking the child
// whose box needs the least enlargement to cover p (ties broken by
// smaller resulting area), Guttman's ChooseLeaf.
func (x *rTreeIndex[T, V]) chooseLeaf(node *rNode[T, V], p point.Point[T]) *rNode[T, V] {
	for !node.leaf {
		best := 0
		bestEnlarge, bestArea := -1.0, -1.0
		for i, c := range node.children {
			enlarged := c.box.Enlarge(NewBox(p, p))
			enlarge := enlarged.Area() - c.box.Area()
			if bestEnlarge < 0 || enlarge < bestEnlarge || (enlarge == bestEnlarge && enlarged.Area() < bestArea) {
				best, bestEnlarge, bestArea = i, enlarge, enlarged.Area()
			}
		}
		node = node.children[best]
	}
	return node
}

// recomputeBox recomputes node's bounding box bottom-up from its entries
// or children. Since this representation keeps no parent pointers, Insert,
// EraseAll and EraseOne call this on the whole tree from the root rather
// than retracing a single path.
func (x *rTreeIndex[T, V]) recomputeBox(node *rNode[T, V]) Box[T] {
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

// splitLeaf performs Guttman's quadratic-cost split on an overflowed leaf,
// replacing it in its parent with two leaves. Since this representation
// has no parent pointers, the parent is found by re-descending from the
// root (attachSibling), and an overflowing parent is split in turn by
// splitInternal.
func (x *rTreeIndex[T, V]) splitLeaf(leaf *rNode[T, V]) {
	groupA, groupB := quadraticSplit(leaf.entries, x.branchMin)
	leaf.entries = groupA
	leaf.box = elemBox[T, V](groupA)
	sibling := x.newLeaf()
	sibling.entries = groupB
	sibling.box = elemBox[T, V](groupB)

	if leaf == x.root {
		newRoot := x.newInternal()
		newRoot.children = []*rNode[T, V]{leaf, sibling}
		newRoot.box = childrenBox[T, V](newRoot.children)
		x.root = newRoot
		return
	}
	x.attachSibling(x.root, leaf, sibling)
}

// attachSibling finds leaf's parent under node and appends sibling as a
// new child, splitting the parent in turn if it overflows.
func (x *rTreeIndex[T, V]) attachSibling(node, leaf, sibling *rNode[T, V]) bool {
	if node.leaf {
		return false
	}
	for _, c := range node.children {
		if c == leaf {
			node.children = append(node.children, sibling)
			node.box = childrenBox[T, V](node.children)
			if len(node.children) > x.branchMax {
				x.splitInternal(node)
			}
			return true
		}
		if x.attachSibling(c, leaf, sibling) {
			node.box = childrenBox[T, V](node.children)
			return true
		}
	}
	return false
}

func (x *rTreeIndex[T, V]) splitInternal(node *rNode[T, V]) {
	groupA, groupB := quadraticSplitNodes(node.children, x.branchMin)
	node.children = groupA
	node.box = childrenBox[T, V](groupA)
	sibling := x.newInternal()
	sibling.children = groupB
	sibling.box = childrenBox[T, V](groupB)

	if node == x.root {
		newRoot := x.newInternal()
		newRoot.children = []*rNode[T, V]{node, sibling}
		newRoot.box = childrenBox[T, V](newRoot.children)
		x.root = newRoot
		return
	}
	x.attachInternalSibling(x.root, node, sibling)
}

func (x *rTreeIndex[T, V]) attachInternalSibling(node, target, sibling *rNode[T, V]) bool {
	if node.leaf {
		return false
	}
	for _, c := range node.children {
		if c == target {
			node.children = append(node.children, sibling)
			node.box = childrenBox[T, V](node.children)
			if len(node.children) > x.branchMax {
				x.splitInternal(node)
			}
			return true
		}
		if x.attachInternalSibling(c, target, sibling) {
			node.box = childrenBox[T, V](node.children)
			return true
		}
	}
	return false
}

// quadraticSplit implements Guttman's quadratic PickSeeds/PickNext over
// stored entries, returning two groups each with at least branchMin
// entries (forcing remaining entries into the deficient group once the
// other has no room to shrink further).
func quadraticSplit[T point.Numeric, V any](entries []stored[T, V], branchMin int) ([]stored[T, V], []stored[T, V]) {
	seedA, seedB := pickSeeds(entries)
	groupA := []stored[T, V]{entries[seedA]}
	groupB := []stored[T, V]{entries[seedB]}
	boxA := NewBox(entries[seedA].elem.Point, entries[seedA].elem.Point)
	boxB := NewBox(entries[seedB].elem.Point, entries[seedB].elem.Point)

	remaining := make([]stored[T, V], 0, len(entries)-2)
	for i, e := range entries {
		if i != seedA && i != seedB {
			remaining = append(remaining, e)
		}
	}

	for len(remaining) > 0 {
		need := len(remaining)
		if len(groupA) < branchMin && len(groupA)+need <= branchMin {
			groupA = append(groupA, remaining...)
			break
		}
		if len(groupB) < branchMin && len(groupB)+need <= branchMin {
			groupB = append(groupB, remaining...)
			break
		}
		pick, toA := pickNext(remaining, boxA, boxB)
		e := remaining[pick]
		remaining = append(remaining[:pick], remaining[pick+1:]...)
		if toA {
			groupA = append(groupA, e)
			boxA = boxA.Enlarge(NewBox(e.elem.Point, e.elem.Point))
		} else {
			groupB = append(groupB, e)
			boxB = boxB.Enlarge(NewBox(e.elem.Point, e.elem.Point))
		}
	}
	return groupA, groupB
}

// pickSeeds returns the index pair whose combined bounding box wastes the
// most area relative to the two entries' own (degenerate, point) boxes —
// Guttman's quadratic PickSeeds, adapted to point entries.
func pickSeeds[T point.Numeric, V any](entries []stored[T, V]) (int, int) {
	bestI, bestJ := 0, 1
	bestWaste := -1.0
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			bi := NewBox(entries[i].elem.Point, entries[i].elem.Point)
			bj := NewBox(entries[j].elem.Point, entries[j].elem.Point)
			combined := bi.Enlarge(bj)
			waste := combined.Area() - bi.Area() - bj.Area()
			if waste > bestWaste {
				bestWaste, bestI, bestJ = waste, i, j
			}
		}
	}
	return bestI, bestJ
}

// pickNext returns the index into remaining with the greatest preference
// for one group over the other (max difference in enlargement cost), and
// which group (true = A) it prefers.
func pickNext[T point.Numeric, V any](remaining []stored[T, V], boxA, boxB Box[T]) (int, bool) {
	bestIdx := 0
	bestDiff := -1.0
	bestToA := true
	for i, e := range remaining {
		pb := NewBox(e.elem.Point, e.elem.Point)
		da := boxA.Enlarge(pb).Area() - boxA.Area()
		db := boxB.Enlarge(pb).Area() - boxB.Area()
		diff := da - db
		if diff < 0 {
			diff = -diff
		}
		if diff > bestDiff {
			bestDiff, bestIdx, bestToA = diff, i, da <= db
		}
	}
	return bestIdx, bestToA
}

// quadraticSplitNodes is quadraticSplit's counterpart for internal nodes,
// splitting by child box rather than by point.
func quadraticSplitNodes[T point.Numeric, V any](children []*rNode[T, V], branchMin int) ([]*rNode[T, V], []*rNode[T, V]) {
	bestI, bestJ := 0, 1
	bestWaste := -1.0
	for i := 0; i < len(children); i++ {
		for j := i + 1; j < len(children); j++ {
			combined := children[i].box.Enlarge(children[j].box)
			waste := combined.Area() - children[i].box.Area() - children[j].box.Area()
			if waste > bestWaste {
				bestWaste, bestI, bestJ = waste, i, j
			}
		}
	}
	groupA := []*rNode[T, V]{children[bestI]}
	groupB := []*rNode[T, V]{children[bestJ]}
	boxA := children[bestI].box
	boxB := children[bestJ].box

	remaining := make([]*rNode[T, V], 0, len(children)-2)
	for i, c := range children {
		if i != bestI && i != bestJ {
			remaining = append(remaining, c)
		}
	}

	for len(remaining) > 0 {
		need := len(remaining)
		if len(groupA) < branchMin && len(groupA)+need <= branchMin {
			groupA = append(groupA, remaining...)
			break
		}
		if len(groupB) < branchMin && len(groupB)+need <= branchMin {
			groupB = append(groupB, remaining...)
			break
		}
		bestIdx, bestToA, bestDiff := 0, true, -1.0
		for i, c := range remaining {
			da := boxA.Enlarge(c.box).Area() - boxA.Area()
			db := boxB.Enlarge(c.box).Area() - boxB.Area()
			diff := da - db
			if diff < 0 {
				diff = -diff
			}
			if diff > bestDiff {
				bestDiff, bestIdx, bestToA = diff, i, da <= db
			}
		}
		c := remaining[bestIdx]
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
		if bestToA {
			groupA = append(groupA, c)
			boxA = boxA.Enlarge(c.box)
		} else {
			groupB = append(groupB, c)
			boxB = boxB.Enlarge(c.box)
		}
	}
	return groupA, groupB
}

func (x *rTreeIndex[T, V]) EraseAll(p point.Point[T]) (int, error) {
	if err := checkDim(p, x.dims); err != nil {
		return 0, err
	}
	count := 0
	x.eraseWalk(x.root, p, func(leaf *rNode[T, V]) {
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

func (x *rTreeIndex[T, V]) EraseOne(p point.Point[T]) (bool, error) {
	if err := checkDim(p, x.dims); err != nil {
		return false, err
	}
	found := false
	x.eraseWalk(x.root, p, func(leaf *rNode[T, V]) {
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

// eraseWalk visits every leaf whose box could contain p.
func (x *rTreeIndex[T, V]) eraseWalk(node *rNode[T, V], p point.Point[T], f func(*rNode[T, V])) {
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

func (x *rTreeIndex[T, V]) Find(p point.Point[T]) (Iterator[T, V], error) {
	if err := checkDim(p, x.dims); err != nil {
		return nil, err
	}
	var out []Element[T, V]
	x.eraseWalk(x.root, p, func(leaf *rNode[T, V]) {
		for _, s := range leaf.entries {
			if s.elem.Point.Equal(p) {
				out = append(out, s.elem)
			}
		}
	})
	return newSliceIterator(out, &x.gen), nil
}

func (x *rTreeIndex[T, V]) Contains(p point.Point[T]) (bool, error) {
	if err := checkDim(p, x.dims); err != nil {
		return false, err
	}
	found := false
	x.eraseWalk(x.root, p, func(leaf *rNode[T, V]) {
		for _, s := range leaf.entries {
			if s.elem.Point.Equal(p) {
				found = true
			}
		}
	})
	return found, nil
}

func (x *rTreeIndex[T, V]) Nearest(p point.Point[T], k int) (Iterator[T, V], error) {
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

func (x *rTreeIndex[T, V]) Range(box Box[T]) (Iterator[T, V], error) {
	if err := checkBoxDim(box, x.dims); err != nil {
		return nil, err
	}
	var out []Element[T, V]
	var walk func(*rNode[T, V])
	walk = func(n *rNode[T, V]) {
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

func (x *rTreeIndex[T, V]) Disjoint(box Box[T]) (Iterator[T, V], error) {
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

func (x *rTreeIndex[T, V]) Intersects(box Box[T]) bool {
	if x.size == 0 {
		return false
	}
	return x.root.box.Intersects(box)
}

func (x *rTreeIndex[T, V]) Satisfies(preds []Predicate[T]) (Iterator[T, V], error) {
	var out []Element[T, V]
	for _, s := range x.liveStored() {
		if satisfiesAll(s.elem.Point, preds) {
			out = append(out, s.elem)
		}
	}
	return newSliceIterator(out, &x.gen), nil
}

func (x *rTreeIndex[T, V]) liveStored() []stored[T, V] {
	out := make([]stored[T, V], 0, x.size)
	var walk func(*rNode[T, V])
	walk = func(n *rNode[T, V]) {
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

func (x *rTreeIndex[T, V]) Size() int       { return x.size }
func (x *rTreeIndex[T, V]) Dimensions() int { return x.dims }
func (x *rTreeIndex[T, V]) Empty() bool     { return x.size == 0 }

func (x *rTreeIndex[T, V]) Clear() {
	x.root = x.newLeaf()
	x.size = 0
	x.gen++
}
