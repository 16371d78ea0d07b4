// Package entities defines the immutable configuration model the decision
// pipeline operates on: experiments with weighted traffic allocations,
// variations, mutually exclusive groups, feature flags and rollouts.
//
// A configuration snapshot is built once by a loader (see pkg/datafile) and
// is never mutated afterwards, so concurrent decisions against the same
// snapshot need no locking. The ProjectConfig interface is the narrow
// accessor surface the decision service consumes; lookups report absence
// with an ok bool instead of erroring, because handling dangling references
// is part of the decision logic, not a loader failure.
package entities
