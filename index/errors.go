package index

import "errors"

// Sentinel errors for spatial-index construction and queries, per the
// error taxonomy of the design this package implements.
var (
	// ErrDimensionMismatch indicates a query point or box's dimension does
	// not match the index's configured dimension.
	ErrDimensionMismatch = errors.New("index: dimension mismatch")

	// ErrEmptyIndex indicates a query that requires at least one stored
	// element (e.g. Nearest) was run against an empty index.
	ErrEmptyIndex = errors.New("index: index is empty")

	// ErrInvalidArgument indicates a malformed argument: k=0 for Nearest,
	// or an unknown Tag passed to New. (A branch factor outside
	// 2 <= min <= ceil(max/2) makes WithBranchFactor panic instead.)
	ErrInvalidArgument = errors.New("index: invalid argument")

	// ErrIteratorInvalidated indicates an iterator was advanced after the
	// index it borrows from was mutated. Detection is best-effort via a
	// generation counter, as the design's concurrency model recommends.
	ErrIteratorInvalidated = errors.New("index: iterator invalidated by mutation")
)
