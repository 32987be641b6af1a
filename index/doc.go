// Package index implements the spatial-index trait shared by every tree
// variant in this module, and the five interchangeable implementations of
// it: a linear (flat) oracle, a k-d tree, a quadtree, an R-tree, and an
// R*-tree.
//
// What:
//
//   - Index[T, V] is the uniform contract (bulk-load, insert, erase, find,
//     contains, nearest, range, disjoint, intersects, satisfies, size).
//   - Tag selects an implementation at construction time; dispatch is
//     dynamic only at that boundary — every returned Index[T, V] is a
//     single interface value regardless of which tree backs it.
//   - Iteration is forward-only: a query gathers its full result before
//     returning, and the Iterator then hands out one element per Next
//     call. An Iterator is invalidated by the next mutation of its index
//     (best-effort, enforced via a per-index generation counter).
//
// Why:
//
//   - A Pareto front or archive needs to swap its storage strategy (dense
//     box tree vs. sparse k-d tree vs. O(n) linear oracle) without any
//     change to its dominance-filtering logic; this package is the layer
//     that makes that swap a one-line constructor change.
//
// Errors:
//
//   - ErrDimensionMismatch: a query point/box's dimension != index dimension.
//   - ErrEmptyIndex: Nearest/Ideal-style query on an empty index.
//   - ErrInvalidArgument: k=0 passed to Nearest, or an unknown Tag passed to New.
//   - ErrIteratorInvalidated: an iterator was advanced after its index mutated.
//
// Complexity: see each impl_*.go file's doc comment; bulk_load is the only
// operation expected at O(n log n), everything else follows §4.2/§4.3 of
// the design this package implements.
package index
