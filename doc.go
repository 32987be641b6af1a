// Package paretoidx provides spatial containers for multi-objective
// points: a dominance algebra over ordered coordinate tuples, a
// polymorphic spatial index (R-tree, R*-tree, k-d tree, quadtree, and a
// linear scan oracle, all behind one interface), a dominance-filtered
// Pareto front built on top of it, and a bounded, multi-layered archive
// of successive fronts with crowding-distance eviction.
//
// Everything is organized under six subpackages:
//
//	point/     — Numeric points, Direction, and the dominance/distance algebra
//	index/     — the shared Index[T, V] contract and its five implementations
//	front/     — a single dominance-filtered front built on one index.Index
//	archive/   — a bounded stack of fronts with crowding-distance eviction
//	indicator/ — quality indicators: hypervolume, GD/IGD, epsilon, uniformity
//	interop/   — an index.Index adapter backed by github.com/dhconnelly/rtreego
package paretoidx
