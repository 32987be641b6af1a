// Package archive implements the layered Pareto archive of §4.6: a
// stack of front.Front layers sharing one direction vector, with
// cascading admission (a point rejected by layer i as dominated is
// offered to layer i+1) and crowding-distance eviction once the
// archive's total size exceeds its capacity.
package archive
