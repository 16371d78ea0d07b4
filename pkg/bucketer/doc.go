// Package bucketer implements deterministic hash-based traffic allocation.
//
// An identity is hashed together with the entity id using MurmurHash3
// (x86 32-bit, seed 1) and reduced to a bucket value in [0, 10000) basis
// points; the first cumulative traffic range whose upper bound exceeds the
// value wins. The hash and reduction are a compatibility surface shared
// with other SDK implementations: the same user must land in the same
// bucket for a given experiment on every platform and every release, so
// neither may change.
//
// Bucketing is a pure function of its inputs. Falling past the last range
// is a normal "not allocated" outcome, not an error.
package bucketer
