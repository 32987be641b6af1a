package interop

import "errors"

// Sentinel errors mirroring index's taxonomy (§7), reused here rather
// than re-exported from index so this package never imports index for
// anything but the types (Index, Element, Iterator, Box, Predicate) it
// implements against.
var (
	ErrDimensionMismatch   = errors.New("interop: dimension mismatch")
	ErrInvalidArgument     = errors.New("interop: invalid argument")
	ErrEmptyIndex          = errors.New("interop: index is empty")
	ErrIteratorInvalidated = errors.New("interop: iterator invalidated by mutation")
)
