package index

import (
	"sort"

	"github.com/arkhipov/paretoidx/point"
)

// distCandidate pairs a stored element with its distance to a query
// point, for the shared nearestK ranking used by every impl_*.go file.
type distCandidate[T point.Numeric, V any] struct {
	elem Element[T, V]
	seq  uint64
	dist float64
}

// nearestK returns the min(k, len(cands)) elements of cands closest to p
// by Euclidean distance, increasing distance, ties broken by insertion
// sequence — the tie-breaking rule every index variant must share per
// §4.3. Callers must have already validated p's dimension against cands'.
func nearestK[T point.Numeric, V any](cands []stored[T, V], p point.Point[T], k int) []Element[T, V] {
	dc := make([]distCandidate[T, V], len(cands))
	for i, s := range cands {
		d, _ := point.Distance(p, s.elem.Point)
		dc[i] = distCandidate[T, V]{elem: s.elem, seq: s.seq, dist: d}
	}
	sort.Slice(dc, func(i, j int) bool {
		if dc[i].dist != dc[j].dist {
			return dc[i].dist < dc[j].dist
		}
		return dc[i].seq < dc[j].seq
	})
	if k > len(dc) {
		k = len(dc)
	}
	out := make([]Element[T, V], k)
	for i := 0; i < k; i++ {
		out[i] = dc[i].elem
	}
	return out
}
