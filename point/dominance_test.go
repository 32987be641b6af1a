package point_test

import (
	"testing"

	"github.com/arkhipov/paretoidx/point"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDominates_MinimizeAll checks weak dominance under default minimisation.
func TestDominates_MinimizeAll(t *testing.T) {
	dir := point.MinimizeAll(2)

	p := point.Of(1, 5)
	q := point.Of(2, 3)
	dominates, err := point.Dominates(p, q, dir)
	require.NoError(t, err)
	assert.False(t, dominates, "(1,5) does not dominate (2,3): worse on axis 1")

	r := point.Of(1, 2)
	dominates, err = point.Dominates(r, p, dir)
	require.NoError(t, err)
	assert.True(t, dominates, "(1,2) dominates (1,5): equal axis0, strictly better axis1")
}

// TestDominates_SelfIsFalse checks that no point dominates itself.
func TestDominates_SelfIsFalse(t *testing.T) {
	dir := point.MinimizeAll(3)
	p := point.Of(1, 2, 3)

	dominates, err := point.Dominates(p, p, dir)
	require.NoError(t, err)
	assert.False(t, dominates, "a point must not dominate itself")

	strong, err := point.StronglyDominates(p, p, dir)
	require.NoError(t, err)
	assert.False(t, strong)
}

// TestDominates_ZeroDimension checks that dimension-0 points dominate nothing.
func TestDominates_ZeroDimension(t *testing.T) {
	dir, err := point.NewDirection(0)
	require.NoError(t, err)

	p := point.New[int](0)
	q := point.New[int](0)

	dominates, err := point.Dominates(p, q, dir)
	require.NoError(t, err)
	assert.False(t, dominates)
	assert.True(t, p.Equal(q), "dimension-0 points compare equal")
}

// TestDominance_Trichotomy checks that for distinct points exactly one of
// {x dominates y, y dominates x, non-dominated} holds, and that strong
// dominance implies weak dominance.
func TestDominance_Trichotomy(t *testing.T) {
	dir := point.MinimizeAll(2)
	cases := []struct{ a, b point.Point[int] }{
		{point.Of(1, 5), point.Of(2, 3)},
		{point.Of(1, 2), point.Of(1, 5)},
		{point.Of(0, 0), point.Of(1, 1)},
	}

	for _, c := range cases {
		aDomB, err := point.Dominates(c.a, c.b, dir)
		require.NoError(t, err)
		bDomA, err := point.Dominates(c.b, c.a, dir)
		require.NoError(t, err)
		nonDom, err := point.NonDominated(c.a, c.b, dir)
		require.NoError(t, err)

		trueCount := 0
		for _, v := range []bool{aDomB, bDomA, nonDom} {
			if v {
				trueCount++
			}
		}
		assert.Equal(t, 1, trueCount, "exactly one relation must hold for %v vs %v", c.a, c.b)

		strongADomB, err := point.StronglyDominates(c.a, c.b, dir)
		require.NoError(t, err)
		if strongADomB {
			assert.True(t, aDomB, "strong dominance must imply weak dominance")
		}
	}
}

// TestDominance_DirectionMismatch checks the direction-length precondition.
func TestDominance_DirectionMismatch(t *testing.T) {
	dir := point.MinimizeAll(3)
	p := point.Of(1, 2)
	q := point.Of(3, 4)

	_, err := point.Dominates(p, q, dir)
	assert.ErrorIs(t, err, point.ErrDirectionMismatch)
}

// TestDominance_DimensionMismatch checks the point-dimension precondition.
func TestDominance_DimensionMismatch(t *testing.T) {
	dir := point.MinimizeAll(2)
	p := point.Of(1, 2)
	q := point.Of(1, 2, 3)

	_, err := point.Dominates(p, q, dir)
	assert.ErrorIs(t, err, point.ErrDimensionMismatch)
}

// TestDistance_Euclidean checks a 3-4-5 triangle.
func TestDistance_Euclidean(t *testing.T) {
	p := point.Of(0.0, 0.0)
	q := point.Of(3.0, 4.0)

	d, err := point.Distance(p, q)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, d, 1e-9)
}

// TestDominatedBoxDistance_InsideRegionIsZero checks that a point already
// weakly dominated by self has zero distance to self's dominated box.
func TestDominatedBoxDistance_InsideRegionIsZero(t *testing.T) {
	dir := point.MinimizeAll(2)
	self := point.Of(2.0, 2.0)
	inside := point.Of(3.0, 5.0) // worse on both axes => inside the region

	d, err := self.DominatedBoxDistance(inside, dir)
	require.NoError(t, err)
	assert.Equal(t, 0.0, d)
}

// TestDominatedBoxDistance_OutsideRegion checks the clamped L2 distance
// for a point strictly better than self on one axis.
func TestDominatedBoxDistance_OutsideRegion(t *testing.T) {
	dir := point.MinimizeAll(2)
	self := point.Of(2.0, 2.0)
	outside := point.Of(0.0, 2.0) // better on axis 0

	d, err := self.DominatedBoxDistance(outside, dir)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, d, 1e-9)
}

// TestQuadrant_Bitmask checks the quadrant bitmask against a pivot.
func TestQuadrant_Bitmask(t *testing.T) {
	pivot := point.Of(0, 0)

	q, err := point.Quadrant(point.Of(-1, -1), pivot)
	require.NoError(t, err)
	assert.Equal(t, 0b11, q)

	q, err = point.Quadrant(point.Of(1, -1), pivot)
	require.NoError(t, err)
	assert.Equal(t, 0b10, q)

	q, err = point.Quadrant(point.Of(1, 1), pivot)
	require.NoError(t, err)
	assert.Equal(t, 0b00, q)
}
