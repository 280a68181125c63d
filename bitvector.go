package bitkit

import "iter"

// NotFound is the sentinel returned by navigation queries when no qualifying
// bit exists in the representable domain.
const NotFound = int64(-1)

// Run is a maximal contiguous interval of set bits, half-open [Start, End).
type Run struct {
	Start int64
	End   int64
}

// Len returns the number of bits covered by the run.
func (r Run) Len() int64 { return r.End - r.Start }

// Empty reports whether the run covers no bits.
func (r Run) Empty() bool { return r.End <= r.Start }

// Contains reports whether index i lies inside the run.
func (r Run) Contains(i int64) bool { return i >= r.Start && i < r.End }

// Overlaps reports whether r and o share at least one bit.
func (r Run) Overlaps(o Run) bool { return r.Start < o.End && o.Start < r.End }

// Abuts reports whether r and o touch without overlapping.
// Abutting runs violate canonical form and must be coalesced.
func (r Run) Abuts(o Run) bool { return r.End == o.Start || o.End == r.Start }

// BitVector is the read-side capability contract shared by all backends.
//
// Navigation queries return NotFound (-1) for indices outside the
// representable domain; they never fail. Index semantics are 64-bit
// throughout; backends with a narrower native domain (see the LongValued
// characteristic) bounds-check and report absence beyond it.
type BitVector interface {
	// Characteristics describes the backend's capabilities for dispatch.
	Characteristics() Characteristics

	// Get reports whether the bit at index is set. Out-of-domain indices
	// read as clear.
	Get(index int64) bool

	// Cardinality returns the number of set bits.
	Cardinality() int64

	// NextSetBit returns the lowest set index >= from, or NotFound.
	NextSetBit(from int64) int64
	// PreviousSetBit returns the highest set index <= from, or NotFound.
	PreviousSetBit(from int64) int64
	// NextClearBit returns the lowest clear index >= from within the
	// backend's domain, or NotFound.
	NextClearBit(from int64) int64
	// PreviousClearBit returns the highest clear index <= from within the
	// backend's domain, or NotFound.
	PreviousClearBit(from int64) int64

	// Runs yields the canonical run decomposition in ascending order:
	// sorted, non-overlapping, non-abutting, no empty runs.
	Runs() iter.Seq[Run]

	// AndWith, OrWith, XorWith and AndNotWith return a new instance holding
	// the combination of the receiver and other. The result's backend type
	// is chosen by the receiver, never forced to match the argument.
	AndWith(other BitVector) BitVector
	OrWith(other BitVector) BitVector
	XorWith(other BitVector) BitVector
	AndNotWith(other BitVector) BitVector

	// Shift returns a new instance with every set index translated by
	// `by`. Indices shifted outside the backend's domain are dropped.
	Shift(by int64) BitVector

	// Filter returns a new instance retaining only the set bits for which
	// pred returns true.
	Filter(pred func(index int64) bool) BitVector
}

// Mutable is the in-place mutation capability. The run-set backend
// implements it without internal synchronization; the atomic backend
// implements it on top of its CAS primitives.
type Mutable interface {
	BitVector

	// Set and Clear mutate a single bit. They fail on indices outside the
	// backend's mutable domain.
	Set(index int64) error
	Clear(index int64) error

	// SetRange and ClearRange mutate the half-open range [start, end).
	// They fail when end < start.
	SetRange(start, end int64) error
	ClearRange(start, end int64) error

	// And, Or, Xor and AndNot combine other into the receiver in place.
	And(other BitVector) error
	Or(other BitVector) error
	Xor(other BitVector) error
	AndNot(other BitVector) error
}

// RangeAdder accumulates half-open ranges. It is the materialization target
// of the cross-backend algebra glue; every backend's builder or mutable form
// satisfies it.
type RangeAdder interface {
	AddRange(start, end int64)
}

// ForEach visits every set bit of v in ascending order until fn returns
// false.
func ForEach(v BitVector, fn func(index int64) bool) {
	for r := range v.Runs() {
		for i := r.Start; i < r.End; i++ {
			if !fn(i) {
				return
			}
		}
	}
}

// CollectRuns materializes the run decomposition of v.
func CollectRuns(v BitVector) []Run {
	var runs []Run
	for r := range v.Runs() {
		runs = append(runs, r)
	}
	return runs
}

// ContentEquals reports whether a and b hold exactly the same set bits,
// compared run by run.
func ContentEquals(a, b BitVector) bool {
	nextB, stopB := iter.Pull(b.Runs())
	defer stopB()
	for ra := range a.Runs() {
		rb, ok := nextB()
		if !ok || ra != rb {
			return false
		}
	}
	_, ok := nextB()
	return !ok
}
