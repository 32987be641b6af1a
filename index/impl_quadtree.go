package index

import "github.com/arkhipov/paretoidx/point"

// quadNode is one node of a quadTreeIndex. Leaves hold elements directly;
// internal nodes hold exactly 2^dims children, indexed by which side of
// the node's box center each axis coordinate falls on (bit k of the index
// is 0 for "below center on axis k", 1 for "at or above").
type quadNode[T point.Numeric, V any] struct {
	box      Box[T]
	elems    []stored[T, V]
	children []*quadNode[T, V]
	leaf     bool
}

// quadTreeIndex implements Index as a point region quadtree (2^d-way
// recursive subdivision, per §4.3). Unlike k-d/R-tree, a quadtree node's
// box is fixed by its position in the subdivision, not by the points it
// holds, so the index tracks its own world-covering box separately and
// grows it (rebuilding wholesale) the first time an inserted point falls
// outside it — a region quadtree has no notion of "the box containing
// everything inserted so far" until one is chosen.
type quadTreeIndex[T point.Numeric, V any] struct {
	dims      int
	root      *quadNode[T, V]
	box       Box[T]
	size      int
	nextSeq   uint64
	gen       uint64
	branchMax int
	alloc     Allocator[quadNode[T, V]]
}

func newQuadTree[T point.Numeric, V any](elements []Element[T, V], o Options) (*quadTreeIndex[T, V], error) {
	x := &quadTreeIndex[T, V]{
		dims:      o.dimensions,
		branchMax: o.branchMax,
		alloc:     allocatorOf[quadNode[T, V]](o),
	}
	if len(elements) == 0 {
		return x, nil
	}
	pts := make([]point.Point[T], len(elements))
	items := make([]stored[T, V], len(elements))
	for i, e := range elements {
		pts[i] = e.Point
		items[i] = stored[T, V]{elem: e, seq: x.nextSeq}
		x.nextSeq++
	}
	x.box = BoxOf(pts...)
	x.root = x.buildFrom(items, x.box)
	x.size = len(items)
	return x, nil
}

func (x *quadTreeIndex[T, V]) buildFrom(items []stored[T, V], box Box[T]) *quadNode[T, V] {
	root := x.alloc.New()
	root.box = box
	root.leaf = true
	root.elems = items
	x.split(root)
	return root
}

// split subdivides node into 2^dims children once it holds more than
// branchMax elements, redistributing its elements by quadrant. It bails
// out (leaving node an oversized leaf) if every element lands in the same
// quadrant, since that means splitting made no progress — a degenerate
// cluster of coincident or near-coincident points.
func (x *quadTreeIndex[T, V]) split(node *quadNode[T, V]) {
	if !node.leaf || len(node.elems) <= x.branchMax {
		return
	}
	center := boxCenter(node.box)
	children := make([]*quadNode[T, V], 1<<x.dims)
	for _, s := range node.elems {
		idx := quadChildIndex(s.elem.Point, center)
		if children[idx] == nil {
			c := x.alloc.New()
			c.box = quadChildBox(node.box, center, idx)
			c.leaf = true
			children[idx] = c
		}
		children[idx].elems = append(children[idx].elems, s)
	}
	nonEmpty := 0
	for _, c := range children {
		if c != nil {
			nonEmpty++
		}
	}
	if nonEmpty <= 1 {
		return
	}
	node.children = children
	node.elems = nil
	node.leaf = false
	for _, c := range children {
		if c != nil {
			x.split(c)
		}
	}
}

func quadChildIndex[T point.Numeric](p, center point.Point[T]) int {
	idx := 0
	for k := 0; k < p.Dim(); k++ {
		if p.At(k) >= center.At(k) {
			idx |= 1 << k
		}
	}
	return idx
}

func quadChildBox[T point.Numeric](parent Box[T], center point.Point[T], idx int) Box[T] {
	dims := parent.Dim()
	min := make([]T, dims)
	max := make([]T, dims)
	for k := 0; k < dims; k++ {
		if idx&(1<<k) == 0 {
			min[k] = parent.Min.At(k)
			max[k] = center.At(k)
		} else {
			min[k] = center.At(k)
			max[k] = parent.Max.At(k)
		}
	}
	return NewBox(point.Of(min...), point.Of(max...))
}

func boxCenter[T point.Numeric](b Box[T]) point.Point[T] {
	dims := b.Dim()
	c := make([]T, dims)
	for k := 0; k < dims; k++ {
		c[k] = b.Min.At(k) + (b.Max.At(k)-b.Min.At(k))/2
	}
	return point.Of(c...)
}

// leafFor descends to the leaf that would hold p, or nil if the index is
// empty or p lies outside the index's current world box.
func (x *quadTreeIndex[T, V]) leafFor(p point.Point[T]) *quadNode[T, V] {
	if x.root == nil || !x.box.Contains(p) {
		return nil
	}
	node := x.root
	for !node.leaf {
		center := boxCenter(node.box)
		idx := quadChildIndex(p, center)
		child := node.children[idx]
		if child == nil {
			return nil
		}
		node = child
	}
	return node
}

func (x *quadTreeIndex[T, V]) insertInto(node *quadNode[T, V], s stored[T, V]) {
	if node.leaf {
		node.elems = append(node.elems, s)
		x.split(node)
		return
	}
	center := boxCenter(node.box)
	idx := quadChildIndex(s.elem.Point, center)
	child := node.children[idx]
	if child == nil {
		child = x.alloc.New()
		child.box = quadChildBox(node.box, center, idx)
		child.leaf = true
		node.children[idx] = child
	}
	x.insertInto(child, s)
}

func (x *quadTreeIndex[T, V]) Insert(p point.Point[T], v V) (Iterator[T, V], error) {
	if err := checkDim(p, x.dims); err != nil {
		return nil, err
	}
	e := Element[T, V]{Point: p, Value: v}
	s := stored[T, V]{elem: e, seq: x.nextSeq}
	x.nextSeq++

	switch {
	case x.root == nil:
		x.box = NewBox(p, p)
		x.root = x.buildFrom([]stored[T, V]{s}, x.box)
	case !x.box.Contains(p):
		all := append(x.liveStored(), s)
		x.box = x.box.Enlarge(NewBox(p, p))
		x.root = x.buildFrom(all, x.box)
	default:
		x.insertInto(x.root, s)
	}
	x.size++
	x.gen++
	return newSliceIterator([]Element[T, V]{e}, &x.gen), nil
}

func (x *quadTreeIndex[T, V]) EraseAll(p point.Point[T]) (int, error) {
	if err := checkDim(p, x.dims); err != nil {
		return 0, err
	}
	leaf := x.leafFor(p)
	if leaf == nil {
		return 0, nil
	}
	kept := leaf.elems[:0]
	count := 0
	for _, s := range leaf.elems {
		if s.elem.Point.Equal(p) {
			count++
			continue
		}
		kept = append(kept, s)
	}
	leaf.elems = kept
	if count > 0 {
		x.size -= count
		x.gen++
	}
	return count, nil
}

func (x *quadTreeIndex[T, V]) EraseOne(p point.Point[T]) (bool, error) {
	if err := checkDim(p, x.dims); err != nil {
		return false, err
	}
	leaf := x.leafFor(p)
	if leaf == nil {
		return false, nil
	}
	for i, s := range leaf.elems {
		if s.elem.Point.Equal(p) {
			leaf.elems = append(leaf.elems[:i], leaf.elems[i+1:]...)
			x.size--
			x.gen++
			return true, nil
		}
	}
	return false, nil
}

func (x *quadTreeIndex[T, V]) Find(p point.Point[T]) (Iterator[T, V], error) {
	if err := checkDim(p, x.dims); err != nil {
		return nil, err
	}
	leaf := x.leafFor(p)
	var out []Element[T, V]
	if leaf != nil {
		for _, s := range leaf.elems {
			if s.elem.Point.Equal(p) {
				out = append(out, s.elem)
			}
		}
	}
	return newSliceIterator(out, &x.gen), nil
}

func (x *quadTreeIndex[T, V]) Contains(p point.Point[T]) (bool, error) {
	if err := checkDim(p, x.dims); err != nil {
		return false, err
	}
	leaf := x.leafFor(p)
	if leaf == nil {
		return false, nil
	}
	for _, s := range leaf.elems {
		if s.elem.Point.Equal(p) {
			return true, nil
		}
	}
	return false, nil
}

func (x *quadTreeIndex[T, V]) Nearest(p point.Point[T], k int) (Iterator[T, V], error) {
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

func (x *quadTreeIndex[T, V]) Range(box Box[T]) (Iterator[T, V], error) {
	if err := checkBoxDim(box, x.dims); err != nil {
		return nil, err
	}
	var out []Element[T, V]
	var walk func(*quadNode[T, V])
	walk = func(n *quadNode[T, V]) {
		if n == nil || !n.box.Intersects(box) {
			return
		}
		if n.leaf {
			for _, s := range n.elems {
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

func (x *quadTreeIndex[T, V]) Disjoint(box Box[T]) (Iterator[T, V], error) {
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

func (x *quadTreeIndex[T, V]) Intersects(box Box[T]) bool {
	if x.size == 0 {
		return false
	}
	return x.box.Intersects(box)
}

func (x *quadTreeIndex[T, V]) Satisfies(preds []Predicate[T]) (Iterator[T, V], error) {
	var out []Element[T, V]
	for _, s := range x.liveStored() {
		if satisfiesAll(s.elem.Point, preds) {
			out = append(out, s.elem)
		}
	}
	return newSliceIterator(out, &x.gen), nil
}

func (x *quadTreeIndex[T, V]) liveStored() []stored[T, V] {
	out := make([]stored[T, V], 0, x.size)
	var walk func(*quadNode[T, V])
	walk = func(n *quadNode[T, V]) {
		if n == nil {
			return
		}
		if n.leaf {
			out = append(out, n.elems...)
			return
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(x.root)
	return out
}

func (x *quadTreeIndex[T, V]) Size() int       { return x.size }
func (x *quadTreeIndex[T, V]) Dimensions() int { return x.dims }
func (x *quadTreeIndex[T, V]) Empty() bool     { return x.size == 0 }

func (x *quadTreeIndex[T, V]) Clear() {
	x.root = nil
	x.size = 0
	x.box = Box[T]{}
	x.gen++
}
