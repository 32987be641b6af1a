package interop_test

import (
	"testing"

	"github.com/arkhipov/paretoidx/index"
	"github.com/arkhipov/paretoidx/interop"
	"github.com/arkhipov/paretoidx/point"
	"github.com/stretchr/testify/require"
)

// TestAdapter_InsertFindNearest checks the basic round trip: inserted
// points are findable, Size tracks rtreego's own counter, and Nearest
// orders by Euclidean distance.
func TestAdapter_InsertFindNearest(t *testing.T) {
	a, err := interop.New[string](2, 2, 4)
	require.NoError(t, err)
	require.True(t, a.Empty())

	pts := []point.Point[float64]{
		point.Of(1.0, 5.0), point.Of(2.0, 3.0), point.Of(3.0, 1.0),
	}
	for i, p := range pts {
		_, err := a.Insert(p, "v")
		require.NoError(t, err)
		require.Equal(t, i+1, a.Size())
	}

	ok, err := a.Contains(point.Of(2.0, 3.0))
	require.NoError(t, err)
	require.True(t, ok)

	it, err := a.Nearest(point.Of(0.0, 0.0), 1)
	require.NoError(t, err)
	require.True(t, it.Next())
	require.Equal(t, []float64{3.0, 1.0}, it.Element().Point.Coords())
	require.NoError(t, it.Err())
}

// TestAdapter_EraseOneThenClear checks EraseOne removes exactly one
// coincident entry and Clear drops everything, both routed through the
// wrapped rtreego.Rtree.
func TestAdapter_EraseOneThenClear(t *testing.T) {
	a, err := interop.New[int](2, 2, 4)
	require.NoError(t, err)

	_, err = a.Insert(point.Of(1.0, 1.0), 10)
	require.NoError(t, err)
	_, err = a.Insert(point.Of(1.0, 1.0), 20)
	require.NoError(t, err)
	require.Equal(t, 2, a.Size())

	ok, err := a.EraseOne(point.Of(1.0, 1.0))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 1, a.Size())

	a.Clear()
	require.Equal(t, 0, a.Size())
	require.True(t, a.Empty())
}

// TestAdapter_DimensionMismatch checks the documented error on a
// mismatched-dimension point.
func TestAdapter_DimensionMismatch(t *testing.T) {
	a, err := interop.New[int](2, 2, 4)
	require.NoError(t, err)

	_, err = a.Insert(point.Of(1.0, 1.0, 1.0), 1)
	require.ErrorIs(t, err, interop.ErrDimensionMismatch)
}

// TestAdapter_ImplementsIndex is a compile-time-adjacent sanity check
// that Adapter satisfies index.Index via a runtime assignment too.
func TestAdapter_ImplementsIndex(t *testing.T) {
	a, err := interop.New[int](2, 2, 4)
	require.NoError(t, err)
	var _ index.Index[float64, int] = a
}
