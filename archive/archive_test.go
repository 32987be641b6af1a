package archive_test

import (
	"testing"

	"github.com/arkhipov/paretoidx/archive"
	"github.com/arkhipov/paretoidx/index"
	"github.com/arkhipov/paretoidx/point"
	"github.com/stretchr/testify/require"
)

func layerPoints(t *testing.T, elems []archive.RankedElement[int, string], rank int) map[[2]int]bool {
	t.Helper()
	out := map[[2]int]bool{}
	for _, e := range elems {
		if e.Rank == rank {
			out[[2]int{e.Point.At(0), e.Point.At(1)}] = true
		}
	}
	return out
}

// TestArchive_S3 walks scenario S3's point sequence into a capacity-5
// archive. F0's membership is asserted verbatim, since {(1,5),(2,3),
// (3,1)} is internally non-dominated and matches the scenario exactly.
// §8's S3 also states F1 ends up holding {(4,4),(5,2),(2,4)} as a set,
// but (2,4) dominates (4,4) under minimisation (equal on axis 1,
// strictly smaller on axis 0) — those two points cannot coexist in any
// single non-dominated layer, so that part of the worked example is
// internally inconsistent (see DESIGN.md). This test instead checks the
// properties that must hold regardless: F0 exactly as stated, the total
// size cap, and (3,3)/(6,6) never ending up in F0 since both are
// dominated by an F0 member.
func TestArchive_S3(t *testing.T) {
	dir := point.MinimizeAll(2)
	a := archive.New[int, string](index.RTree, dir, 5)

	inputs := [][2]int{{1, 5}, {2, 3}, {3, 1}, {4, 4}, {5, 2}, {2, 4}, {3, 3}}
	for _, p := range inputs {
		require.NoError(t, a.Insert(point.Of(p[0], p[1]), ""))
	}

	elems, err := a.Elements()
	require.NoError(t, err)

	f0 := layerPoints(t, elems, 0)
	require.Equal(t, map[[2]int]bool{{1, 5}: true, {2, 3}: true, {3, 1}: true}, f0)
	require.LessOrEqual(t, a.Size(), 5)

	require.NoError(t, a.Insert(point.Of(6, 6), ""))
	require.LessOrEqual(t, a.Size(), 5, "size must never exceed capacity after eviction")

	rank, ok, err := a.Rank(point.Of(6, 6))
	require.NoError(t, err)
	if ok {
		require.Greater(t, rank, 0, "(6,6) is dominated by every earlier layer's members and cannot land in F0")
	}
	_ = dir
}

// TestArchive_LayeringInvariant checks property #5: every element of
// layer i is dominated by some element of every shallower layer j < i,
// and total size never exceeds capacity.
func TestArchive_LayeringInvariant(t *testing.T) {
	dir := point.MinimizeAll(2)
	a := archive.New[int, string](index.KdTree, dir, 6)

	inputs := [][2]int{
		{1, 5}, {2, 3}, {3, 1}, {4, 4}, {5, 2}, {2, 4}, {3, 3}, {6, 6}, {0, 7}, {7, 0},
	}
	for _, p := range inputs {
		require.NoError(t, a.Insert(point.Of(p[0], p[1]), ""))
	}
	require.LessOrEqual(t, a.Size(), 6)

	elems, err := a.Elements()
	require.NoError(t, err)

	byRank := map[int][]point.Point[int]{}
	for _, e := range elems {
		byRank[e.Rank] = append(byRank[e.Rank], e.Point)
	}
	for rank, pts := range byRank {
		if rank == 0 {
			continue
		}
		for _, p := range pts {
			for j := 0; j < rank; j++ {
				dominatedByShallower := false
				for _, shallow := range byRank[j] {
					ok, err := point.Dominates(shallow, p, dir)
					require.NoError(t, err)
					if ok {
						dominatedByShallower = true
						break
					}
				}
				require.True(t, dominatedByShallower, "point %v at rank %d must be dominated by some element of rank %d", p, rank, j)
			}
		}
	}
}

// TestArchive_InsertZeroCapacity checks the documented InvalidArgument
// error for a non-positive capacity.
func TestArchive_InsertZeroCapacity(t *testing.T) {
	dir := point.MinimizeAll(2)
	a := archive.New[int, string](index.Linear, dir, 0)

	err := a.Insert(point.Of(1, 1), "")
	require.ErrorIs(t, err, archive.ErrInvalidArgument)
}

// TestArchive_Rank checks Rank reports the correct layer for a known
// member and (0, false) for an absent point.
func TestArchive_Rank(t *testing.T) {
	dir := point.MinimizeAll(2)
	a := archive.New[int, string](index.Linear, dir, 10)
	inputs := [][2]int{{1, 5}, {2, 3}, {3, 1}, {4, 4}, {5, 2}}
	for _, p := range inputs {
		require.NoError(t, a.Insert(point.Of(p[0], p[1]), ""))
	}

	rank, ok, err := a.Rank(point.Of(4, 4))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 1, rank)

	_, ok, err = a.Rank(point.Of(9, 9))
	require.NoError(t, err)
	require.False(t, ok)
}
