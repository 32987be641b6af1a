package index

// Default branch factor bounds, picked within the design's documented
// [8, 64] range and satisfying 2 <= min <= ceil(max/2).
const (
	DefaultBranchMin = 8
	DefaultBranchMax = 32
)

// Option configures an Index at construction time. Safe to apply
// repeatedly; later options in a call override earlier ones.
type Option func(*Options)

// Options holds the resolved construction configuration for an Index.
// Its fields are unexported: callers build one via WithX(...) functional
// options and gatherOptions resolves the final value.
type Options struct {
	dimensions int
	branchMin  int
	branchMax  int
	allocator  any // type-asserted by each impl's constructor; see allocator.go
}

// WithDimensions sets the index's fixed dimension d. Required whenever
// the element type's dimension is not otherwise inferable, i.e. whenever
// New is not given a non-empty initial element slice.
func WithDimensions(d int) Option {
	return func(o *Options) { o.dimensions = d }
}

// WithBranchFactor sets the (min, max) children bound for box/partition
// trees (R-tree, R*-tree; the quadtree uses max as its leaf capacity).
// Ignored by Linear and KdTree. Panics if the pair violates 2 <= min <= ceil(max/2), a
// programmer error caught at construction time rather than surfaced as a
// runtime error from every subsequent Insert.
func WithBranchFactor(min, max int) Option {
	if min < 2 || max < min || min > (max+1)/2 {
		panic("index: WithBranchFactor: require 2 <= min <= ceil(max/2)")
	}
	return func(o *Options) { o.branchMin, o.branchMax = min, max }
}

// WithAllocator supplies a custom Allocator[N] for the node type N the
// chosen Tag's implementation uses internally. Passing a value of the
// wrong node type is equivalent to omitting this option: each impl's
// constructor falls back to the default global allocator when the type
// assertion fails.
func WithAllocator(a any) Option {
	return func(o *Options) { o.allocator = a }
}

// defaultOptions returns the documented defaults (single source of truth
// for zero-value behavior), the way matrix.defaultOptions does.
func defaultOptions() Options {
	return Options{
		dimensions: 0,
		branchMin:  DefaultBranchMin,
		branchMax:  DefaultBranchMax,
		allocator:  nil,
	}
}

// gatherOptions resolves opts against defaultOptions, last-writer-wins.
func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, set := range opts {
		set(&o)
	}
	return o
}

// allocatorOf type-asserts o's allocator to Allocator[N], falling back to
// the global allocator when none was supplied or the type does not match.
func allocatorOf[N any](o Options) Allocator[N] {
	if a, ok := o.allocator.(Allocator[N]); ok {
		return a
	}
	return globalAllocator[N]{}
}
