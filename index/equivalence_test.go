package index_test

import (
	"fmt"
	"testing"

	"github.com/arkhipov/paretoidx/index"
	"github.com/arkhipov/paretoidx/point"
	"github.com/stretchr/testify/require"
)

var allTags = []index.Tag{index.Linear, index.KdTree, index.QuadTree, index.RTree, index.RStarTree}

func samplePoints() []point.Point[int] {
	return []point.Point[int]{
		point.Of(1, 5), point.Of(2, 3), point.Of(3, 1), point.Of(4, 4),
		point.Of(5, 2), point.Of(2, 4), point.Of(3, 3), point.Of(0, 0),
		point.Of(6, 6), point.Of(2, 3),
	}
}

// collect drains it into a multiset keyed by point coordinates (values are
// not compared), order-independent, for cross-variant comparison.
func collect[T point.Numeric, V any](t *testing.T, it index.Iterator[T, V]) map[string]int {
	t.Helper()
	out := map[string]int{}
	for it.Next() {
		e := it.Element()
		out[pointKey(e.Point)]++
	}
	require.NoError(t, it.Err())
	return out
}

func pointKey[T point.Numeric](p point.Point[T]) string {
	return fmt.Sprint(p.Coords())
}

// TestIndexEquivalence_FindRangeNearest builds the same element set in
// every Tag and checks Find/Range/Nearest agree across all five, per
// property #2 (linear is the oracle).
func TestIndexEquivalence_FindRangeNearest(t *testing.T) {
	pts := samplePoints()
	elements := make([]index.Element[int, int], len(pts))
	for i, p := range pts {
		elements[i] = index.Element[int, int]{Point: p, Value: i}
	}

	indices := map[index.Tag]index.Index[int, int]{}
	for _, tag := range allTags {
		idx, err := index.New[int, int](tag, elements)
		require.NoError(t, err, tag.String())
		indices[tag] = idx
	}

	oracle := indices[index.Linear]

	for _, q := range []point.Point[int]{point.Of(2, 3), point.Of(9, 9)} {
		it, err := oracle.Find(q)
		require.NoError(t, err)
		want := collect[int, int](t, it)

		for _, tag := range allTags {
			it, err := indices[tag].Find(q)
			require.NoError(t, err, tag.String())
			got := collect[int, int](t, it)
			require.Equal(t, want, got, "Find mismatch for %s at %v", tag, q)
		}
	}

	box := index.NewBox(point.Of(0, 0), point.Of(3, 3))
	it, err := oracle.Range(box)
	require.NoError(t, err)
	want := collect[int, int](t, it)
	for _, tag := range allTags {
		it, err := indices[tag].Range(box)
		require.NoError(t, err, tag.String())
		got := collect[int, int](t, it)
		require.Equal(t, want, got, "Range mismatch for %s", tag)
	}

	it, err = oracle.Nearest(point.Of(0, 0), 3)
	require.NoError(t, err)
	want = collect[int, int](t, it)
	for _, tag := range allTags {
		it, err := indices[tag].Nearest(point.Of(0, 0), 3)
		require.NoError(t, err, tag.String())
		got := collect[int, int](t, it)
		require.Equal(t, want, got, "Nearest mismatch for %s", tag)
	}
}

// TestIndexEquivalence_EraseAll checks that erasing the same point from
// every Tag's index leaves the same residual multiset.
func TestIndexEquivalence_EraseAll(t *testing.T) {
	pts := samplePoints()
	elements := make([]index.Element[int, int], len(pts))
	for i, p := range pts {
		elements[i] = index.Element[int, int]{Point: p, Value: i}
	}

	for _, tag := range allTags {
		idx, err := index.New[int, int](tag, elements)
		require.NoError(t, err, tag.String())

		n, err := idx.EraseAll(point.Of(2, 3))
		require.NoError(t, err, tag.String())
		require.Equal(t, 2, n, "two (2,3) points were inserted, tag %s", tag)
		require.Equal(t, len(pts)-2, idx.Size(), tag.String())

		ok, err := idx.Contains(point.Of(2, 3))
		require.NoError(t, err)
		require.False(t, ok, tag.String())
	}
}
