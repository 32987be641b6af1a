package archive

import (
	"math"
	"sort"

	"github.com/arkhipov/paretoidx/front"
	"github.com/arkhipov/paretoidx/index"
	"github.com/arkhipov/paretoidx/point"
)

// RankedElement is an archive element annotated with the index of the
// layer it currently belongs to.
type RankedElement[T point.Numeric, V any] struct {
	Point point.Point[T]
	Value V
	Rank  int
}

// Archive is a capacity-bounded stack of Fronts: layer 0 holds the
// overall non-dominated set, layer i (i > 0) holds points dominated by
// at least one point of every shallower layer, and the total element
// count across all layers never exceeds capacity.
//
// Archive is not safe for concurrent use without external
// synchronisation (§5).
type Archive[T point.Numeric, V any] struct {
	tag      index.Tag
	dir      point.Direction
	opts     []index.Option
	capacity int
	layers   []*front.Front[T, entry[V]]
	nextSeq  uint64
}

// New constructs an empty Archive backed by Tag-indexed Fronts, sharing
// direction dir and bounded to capacity elements in total. opts are
// forwarded to every layer's front.New call.
func New[T point.Numeric, V any](tag index.Tag, dir point.Direction, capacity int, opts ...index.Option) *Archive[T, V] {
	return &Archive[T, V]{tag: tag, dir: dir, opts: opts, capacity: capacity}
}

// Capacity returns the archive's configured element cap.
func (a *Archive[T, V]) Capacity() int { return a.capacity }

// Depth returns the number of layers currently in use.
func (a *Archive[T, V]) Depth() int { return len(a.layers) }

// Size returns the total number of elements across every layer.
func (a *Archive[T, V]) Size() int {
	var total int
	for _, f := range a.layers {
		total += f.Size()
	}
	return total
}

// Insert admits (p, v) per §4.6's cascading protocol: try layer 0; if
// rejected because p is dominated, try layer 1, then layer 2, and so on,
// creating a new tail layer if every existing layer rejects it. Whichever
// layer accepts p then cascades every element it displaces into the next
// layer, recursively. Finally, if the archive's total size now exceeds
// its capacity, evict the lowest-crowding-distance element of the
// deepest layer, repeating until the archive is back within capacity.
//
// Returns ErrInvalidArgument if the archive's capacity is <= 0.
func (a *Archive[T, V]) Insert(p point.Point[T], v V) error {
	if a.capacity <= 0 {
		return ErrInvalidArgument
	}
	a.nextSeq++
	if err := a.insertAt(0, p, entry[V]{value: v, seq: a.nextSeq}); err != nil {
		return err
	}
	return a.evict()
}

func (a *Archive[T, V]) insertAt(level int, p point.Point[T], e entry[V]) error {
	if level == len(a.layers) {
		f, err := front.New[T, entry[V]](a.tag, a.dir, a.opts...)
		if err != nil {
			return err
		}
		a.layers = append(a.layers, f)
	}

	f := a.layers[level]
	accepted, _, displaced, err := f.Insert(p, e)
	if err != nil {
		return err
	}
	if !accepted {
		return a.insertAt(level+1, p, e)
	}
	for _, d := range displaced {
		if err := a.insertAt(level+1, d.Point, d.Value); err != nil {
			return err
		}
	}
	return nil
}

// evict repeatedly removes the lowest-crowding-distance element of the
// deepest layer (ties broken by earliest insertion order) until the
// archive's total size is within capacity, dropping any layer that
// empties in the process.
func (a *Archive[T, V]) evict() error {
	for a.Size() > a.capacity && len(a.layers) > 0 {
		deepest := a.layers[len(a.layers)-1]
		elems, err := gatherElements(deepest)
		if err != nil {
			return err
		}
		if len(elems) == 0 {
			a.layers = a.layers[:len(a.layers)-1]
			continue
		}

		pts := make([]point.Point[T], len(elems))
		for i, e := range elems {
			pts[i] = e.Point
		}
		dist := crowdingDistances(pts)

		victim := 0
		for i := 1; i < len(elems); i++ {
			if dist[i] < dist[victim] ||
				(dist[i] == dist[victim] && elems[i].Value.seq < elems[victim].Value.seq) {
				victim = i
			}
		}
		if _, err := deepest.EraseOne(elems[victim].Point); err != nil {
			return err
		}
		if deepest.Empty() {
			a.layers = a.layers[:len(a.layers)-1]
		}
	}
	return nil
}

func gatherElements[T point.Numeric, V any](f *front.Front[T, entry[V]]) ([]index.Element[T, entry[V]], error) {
	it, err := f.Elements()
	if err != nil {
		return nil, err
	}
	var out []index.Element[T, entry[V]]
	for it.Next() {
		out = append(out, it.Element())
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// crowdingDistances returns, for each point in pts, the NSGA-II crowding
// distance: the sum, over every axis, of the normalised gap between its
// two neighbours on that axis once pts is sorted by it. The two points
// sorted to either end of an axis (its boundary) receive +Inf on that
// axis, so they are never the archive's eviction victim unless every
// point ties at +Inf. An axis with zero spread across pts adds no finite
// gap to any point (there's no gap to normalise by), though its two
// boundary points still receive +Inf.
func crowdingDistances[T point.Numeric](pts []point.Point[T]) []float64 {
	n := len(pts)
	dist := make([]float64, n)
	if n == 0 {
		return dist
	}
	dims := pts[0].Dim()

	order := make([]int, n)
	for k := 0; k < dims; k++ {
		for i := range order {
			order[i] = i
		}
		sort.Slice(order, func(i, j int) bool {
			return pts[order[i]].At(k) < pts[order[j]].At(k)
		})

		lo := float64(pts[order[0]].At(k))
		hi := float64(pts[order[n-1]].At(k))
		dist[order[0]] = math.Inf(1)
		dist[order[n-1]] = math.Inf(1)
		if hi == lo {
			continue
		}
		span := hi - lo
		for pos := 1; pos < n-1; pos++ {
			i := order[pos]
			if math.IsInf(dist[i], 1) {
				continue
			}
			prev := float64(pts[order[pos-1]].At(k))
			next := float64(pts[order[pos+1]].At(k))
			dist[i] += (next - prev) / span
		}
	}
	return dist
}

// Rank returns the layer index containing p and true, or (0, false) if
// no layer holds p.
func (a *Archive[T, V]) Rank(p point.Point[T]) (int, bool, error) {
	for i, f := range a.layers {
		ok, err := f.Contains(p)
		if err != nil {
			return 0, false, err
		}
		if ok {
			return i, true, nil
		}
	}
	return 0, false, nil
}

// Elements returns every element across every layer, annotated with its
// layer's rank.
func (a *Archive[T, V]) Elements() ([]RankedElement[T, V], error) {
	var out []RankedElement[T, V]
	for rank, f := range a.layers {
		elems, err := gatherElements(f)
		if err != nil {
			return nil, err
		}
		for _, e := range elems {
			out = append(out, RankedElement[T, V]{Point: e.Point, Value: e.Value.value, Rank: rank})
		}
	}
	return out, nil
}
