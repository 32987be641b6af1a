package archive

// entry wraps a caller's value with the sequence number it was first
// given to the archive under, so that crowding-distance eviction ties
// can be broken by insertion order (§4.6) regardless of which layer an
// element has cascaded into, or the iteration order the backing index
// happens to produce. An element keeps its original seq for its entire
// lifetime in the archive, including every cascade to a deeper layer.
type entry[V any] struct {
	value V
	seq   uint64
}
