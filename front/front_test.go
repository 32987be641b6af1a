package front_test

import (
	"testing"

	"github.com/arkhipov/paretoidx/front"
	"github.com/arkhipov/paretoidx/index"
	"github.com/arkhipov/paretoidx/indicator"
	"github.com/arkhipov/paretoidx/point"
	"github.com/stretchr/testify/require"
)

func newFront(t *testing.T) *front.Front[int, string] {
	t.Helper()
	dir := point.MinimizeAll(2)
	f, err := front.New[int, string](index.RTree, dir)
	require.NoError(t, err)
	return f
}

func frontPoints(t *testing.T, f *front.Front[int, string]) map[[2]int]bool {
	t.Helper()
	it, err := f.Elements()
	require.NoError(t, err)
	out := map[[2]int]bool{}
	for it.Next() {
		p := it.Element().Point
		out[[2]int{p.At(0), p.At(1)}] = true
	}
	require.NoError(t, it.Err())
	return out
}

// TestFront_S1 inserts {(1,5),(2,3),(3,1),(4,4)} and checks (4,4) is
// rejected, per spec scenario S1.
func TestFront_S1(t *testing.T) {
	f := newFront(t)

	for _, p := range [][2]int{{1, 5}, {2, 3}, {3, 1}} {
		accepted, _, _, err := f.Insert(point.Of(p[0], p[1]), "")
		require.NoError(t, err)
		require.True(t, accepted, "%v should be accepted", p)
	}

	accepted, blocker, _, err := f.Insert(point.Of(4, 4), "")
	require.NoError(t, err)
	require.False(t, accepted, "(4,4) is dominated by (2,3)")
	require.Equal(t, []int{2, 3}, blocker.Point.Coords())

	require.Equal(t, map[[2]int]bool{{1, 5}: true, {2, 3}: true, {3, 1}: true}, frontPoints(t, f))
}

// TestFront_S2 continues S1 by inserting (2,2), which displaces (2,3),
// and checks the resulting hypervolume w.r.t. (5,6) equals 15.
func TestFront_S2(t *testing.T) {
	f := newFront(t)
	for _, p := range [][2]int{{1, 5}, {2, 3}, {3, 1}} {
		_, _, _, err := f.Insert(point.Of(p[0], p[1]), "")
		require.NoError(t, err)
	}

	accepted, _, displaced, err := f.Insert(point.Of(2, 2), "")
	require.NoError(t, err)
	require.True(t, accepted)
	require.Len(t, displaced, 1)
	require.Equal(t, []int{2, 3}, displaced[0].Point.Coords())

	require.Equal(t, map[[2]int]bool{{1, 5}: true, {2, 2}: true, {3, 1}: true}, frontPoints(t, f))

	it, err := f.Elements()
	require.NoError(t, err)
	var pts []point.Point[int]
	for it.Next() {
		pts = append(pts, it.Element().Point)
	}
	require.NoError(t, it.Err())

	dir := point.MinimizeAll(2)
	hv, err := indicator.Hypervolume(pts, point.Of(5, 6), dir)
	require.NoError(t, err)
	require.InDelta(t, 15.0, hv, 1e-9)
}

// TestFront_S4 checks nearest((0,0), 2) on {(1,5),(2,3),(3,1)}: by
// Euclidean distance (3,1) (sqrt(10)) is strictly closer to the origin
// than (2,3) (sqrt(13)), so the expected order here is (3,1) then (2,3)
// rather than the reverse — see DESIGN.md for why this departs from the
// scenario's literal wording.
func TestFront_S4(t *testing.T) {
	f := newFront(t)
	for _, p := range [][2]int{{1, 5}, {2, 3}, {3, 1}} {
		_, _, _, err := f.Insert(point.Of(p[0], p[1]), "")
		require.NoError(t, err)
	}

	it, err := f.Nearest(point.Of(0, 0), 2)
	require.NoError(t, err)

	var got [][]int
	for it.Next() {
		got = append(got, it.Element().Point.Coords())
	}
	require.NoError(t, it.Err())
	require.Equal(t, [][]int{{3, 1}, {2, 3}}, got)
}

// TestFront_S5 checks range([(0,0),(3,3)]) returns {(2,3),(3,1)}.
func TestFront_S5(t *testing.T) {
	f := newFront(t)
	for _, p := range [][2]int{{1, 5}, {2, 3}, {3, 1}} {
		_, _, _, err := f.Insert(point.Of(p[0], p[1]), "")
		require.NoError(t, err)
	}

	box := index.NewBox(point.Of(0, 0), point.Of(3, 3))
	it, err := f.Range(box)
	require.NoError(t, err)

	got := map[[2]int]bool{}
	for it.Next() {
		p := it.Element().Point
		got[[2]int{p.At(0), p.At(1)}] = true
	}
	require.NoError(t, it.Err())
	require.Equal(t, map[[2]int]bool{{2, 3}: true, {3, 1}: true}, got)
}

// TestFront_InvariantHoldsAfterInserts checks property #3: no two stored
// points are ever in a dominance relation.
func TestFront_InvariantHoldsAfterInserts(t *testing.T) {
	f := newFront(t)
	inputs := [][2]int{{1, 5}, {2, 3}, {3, 1}, {4, 4}, {2, 2}, {5, 2}, {2, 4}, {3, 3}, {0, 6}}
	for _, p := range inputs {
		_, _, _, err := f.Insert(point.Of(p[0], p[1]), "")
		require.NoError(t, err)
	}

	it, err := f.Elements()
	require.NoError(t, err)
	var pts []point.Point[int]
	for it.Next() {
		pts = append(pts, it.Element().Point)
	}
	require.NoError(t, it.Err())

	dir := f.Direction()
	for i := range pts {
		for j := range pts {
			if i == j {
				continue
			}
			dominates, err := point.Dominates(pts[i], pts[j], dir)
			require.NoError(t, err)
			require.False(t, dominates, "%v must not dominate %v in a valid front", pts[i], pts[j])
		}
	}
}

// TestFront_VersionIncrementsOnMutation checks the mutation counter
// §9 describes advances on every accepted change and not on a rejection.
func TestFront_VersionIncrementsOnMutation(t *testing.T) {
	f := newFront(t)
	require.EqualValues(t, 0, f.Version())

	accepted, _, _, err := f.Insert(point.Of(1, 1), "")
	require.NoError(t, err)
	require.True(t, accepted)
	require.EqualValues(t, 1, f.Version())

	accepted, _, _, err = f.Insert(point.Of(5, 5), "")
	require.NoError(t, err)
	require.False(t, accepted)
	require.EqualValues(t, 1, f.Version(), "a rejected insert must not bump the version")
}
