package index_test

import (
	"testing"

	"github.com/arkhipov/paretoidx/index"
	"github.com/arkhipov/paretoidx/point"
	"github.com/stretchr/testify/require"
)

// TestQuadTree_WorldBoxGrowsOnOutOfBoundsInsert checks that inserting a
// point outside the quadtree's current world-covering box succeeds and
// the point remains findable, exercising the documented rebuild-on-grow
// path.
func TestQuadTree_WorldBoxGrowsOnOutOfBoundsInsert(t *testing.T) {
	idx, err := index.New[int, int](index.QuadTree, []index.Element[int, int]{
		{Point: point.Of(1, 1), Value: 1},
		{Point: point.Of(2, 2), Value: 2},
	})
	require.NoError(t, err)

	_, err = idx.Insert(point.Of(1000, -1000), 3)
	require.NoError(t, err)
	require.Equal(t, 3, idx.Size())

	for _, p := range []point.Point[int]{point.Of(1, 1), point.Of(2, 2), point.Of(1000, -1000)} {
		ok, err := idx.Contains(p)
		require.NoError(t, err)
		require.True(t, ok, "%v must survive world-box growth", p)
	}
}

// TestQuadTree_DegenerateClusterBailsOutOfSplit checks that a cluster of
// coincident points exceeding branchMax does not panic or lose elements
// even though the quadtree cannot subdivide a single point further.
func TestQuadTree_DegenerateClusterBailsOutOfSplit(t *testing.T) {
	idx, err := index.New[int, int](index.QuadTree, nil,
		index.WithDimensions(2), index.WithBranchFactor(2, 4))
	require.NoError(t, err)

	const n = 20
	for i := 0; i < n; i++ {
		_, err := idx.Insert(point.Of(7, 7), i)
		require.NoError(t, err)
	}
	require.Equal(t, n, idx.Size())

	it, err := idx.Find(point.Of(7, 7))
	require.NoError(t, err)
	count := 0
	for it.Next() {
		count++
	}
	require.NoError(t, it.Err())
	require.Equal(t, n, count)
}
