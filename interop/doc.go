// Package interop offers an optional index.Index[float64, V] adapter
// backed by github.com/dhconnelly/rtreego.Rtree, per spec.md §9's
// "Boost-R-tree interop in the source: an optional comparison path
// only; not part of the core contract". It exists so this module's own
// R-tree (index.RTree) can be benchmarked or cross-checked against an
// independently implemented one.
//
// rtreego is float64-only and uses its own Point/Rect types rather than
// this module's generic point.Point[T], so the adapter is specialised
// to T = float64 and does the coordinate conversion at the boundary.
package interop
