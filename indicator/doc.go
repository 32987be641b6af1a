// Package indicator computes the scalar quality indicators of §4.5:
// hypervolume, generational distance (GD/IGD and their "+" box-distance
// variants), the epsilon indicator, a uniformity/spacing measure, and
// cardinality/conflict comparisons between two point sets.
//
// Every function here takes plain point.Point[T] slices rather than a
// front.Front, so this package has no dependency on index or front, and
// neither front nor archive imports it. Results are not cached: each call
// recomputes its indicator from the points it is given. Functions in
// this package do not assume their input is mutually non-dominated;
// callers that pass a front.Front's elements get that for free, but the
// formulas here are well-defined for any point set.
package indicator
