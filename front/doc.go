// Package front implements the dominance-filtered Pareto front of
// §4.4: a thin, invariant-enforcing wrapper around an index.Index that
// guarantees every stored point is mutually non-dominated, plus the
// ideal/nadir/worst queries and a version counter a caller can compare
// to tell whether the front has changed. No package in this module reads
// that counter, and quality indicators are not cached.
//
// A Front never bypasses its index: every query and mutation here is
// expressed in terms of index.Index methods (Satisfies, EraseAll,
// Insert, Clear), so choosing the backing Tag (R-tree, k-d tree, ...) is
// a one-line constructor change, exactly as it is for a bare index.Index.
package front
