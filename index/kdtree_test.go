package index_test

import (
	"testing"

	"github.com/arkhipov/paretoidx/index"
	"github.com/arkhipov/paretoidx/point"
	"github.com/stretchr/testify/require"
)

// TestKdTree_EraseTombstonesThenRebalances checks that erasing half a
// tree's points shrinks Size immediately but still finds every surviving
// point, through the tombstone-then-rebuild threshold documented on
// kdTreeIndex.
func TestKdTree_EraseTombstonesThenRebalances(t *testing.T) {
	idx, err := index.New[int, int](index.KdTree, nil, index.WithDimensions(2))
	require.NoError(t, err)

	const n = 40
	for i := 0; i < n; i++ {
		_, err := idx.Insert(point.Of(i, i*2), i)
		require.NoError(t, err)
	}
	require.Equal(t, n, idx.Size())

	// Erase every even-indexed point: the last of these erases reaches the
	// "dead >= half" rebuild threshold.
	for i := 0; i < n; i += 2 {
		ok, err := idx.EraseOne(point.Of(i, i*2))
		require.NoError(t, err)
		require.True(t, ok)
	}
	require.Equal(t, n/2, idx.Size())

	for i := 0; i < n; i++ {
		ok, err := idx.Contains(point.Of(i, i*2))
		require.NoError(t, err)
		if i%2 == 0 {
			require.False(t, ok, "point %d was erased", i)
		} else {
			require.True(t, ok, "point %d must survive rebalance", i)
		}
	}

	it, err := idx.Range(index.NewBox(point.Of(0, 0), point.Of(n, n*2)))
	require.NoError(t, err)
	count := 0
	for it.Next() {
		count++
	}
	require.NoError(t, it.Err())
	require.Equal(t, n/2, count)
}

// TestKdTree_EraseAllDuplicates checks EraseAll removes every element
// stored at a coincident point and none other.
func TestKdTree_EraseAllDuplicates(t *testing.T) {
	idx, err := index.New[int, int](index.KdTree, nil, index.WithDimensions(2))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := idx.Insert(point.Of(5, 5), i)
		require.NoError(t, err)
	}
	_, err = idx.Insert(point.Of(1, 1), 99)
	require.NoError(t, err)

	n, err := idx.EraseAll(point.Of(5, 5))
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, 1, idx.Size())

	ok, err := idx.Contains(point.Of(1, 1))
	require.NoError(t, err)
	require.True(t, ok)
}
