// Package point implements the numeric vector and dominance algebra that
// every spatial index, front, and archive in this module builds on.
//
// What:
//
//   - Point[T] is a dimension-d vector over a single numeric element type T.
//   - Direction encodes, per axis, whether smaller (minimise) or larger
//     (maximise) values are preferred.
//   - Dominance predicates (Dominates, StronglyDominates, NonDominated)
//     compare two points under a Direction.
//   - Distance and DominatedBoxDistance give the Euclidean metrics the
//     spatial indices and quality indicators need.
//   - Quadrant gives a point's 2^d-way orthant relative to a pivot (the
//     index package's quadtree uses its own centre-based routing instead).
//
// Why:
//
//   - Every higher layer (index, front, indicator, archive) is generic over
//     T and needs one shared, well-tested notion of "better" and "distance"
//     so that, e.g., a k-d tree and an R-tree agree on nearest-neighbour
//     order for the same input.
//
// Errors:
//
//   - ErrDimensionMismatch: operands have different dimension.
//   - ErrDirectionMismatch: a Direction's length does not match a Point's.
//
// Complexity: all operations in this package are O(d) in the point
// dimension unless noted otherwise.
package point
