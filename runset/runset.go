package runset

import (
	"fmt"
	"iter"
	"math"

	"github.com/tidwall/btree"

	"github.com/hupe1980/bitkit"
)

// Set64 is a mutable bit store over sorted, disjoint, non-abutting
// [start, end) runs. Negative indices are part of the domain.
//
// Canonical-form invariant: at every stable observation point the runs are
// sorted by start, mutually non-overlapping and non-abutting, and no run is
// empty. CheckCanonical verifies this and doubles as a test oracle.
type Set64 struct {
	runs *btree.BTreeG[bitkit.Run]
	card int64
}

func runLess(a, b bitkit.Run) bool { return a.Start < b.Start }

func newTree() *btree.BTreeG[bitkit.Run] {
	// The store is documented as externally synchronized; skip the tree's
	// internal locking.
	return btree.NewBTreeGOptions(runLess, btree.Options{NoLocks: true})
}

// New creates an empty Set64.
func New() *Set64 {
	return &Set64{runs: newTree()}
}

// FromBitVector creates a Set64 holding the set bits of src.
func FromBitVector(src bitkit.BitVector) *Set64 {
	s := New()
	for r := range src.Runs() {
		s.AddRange(r.Start, r.End)
	}
	return s
}

// Characteristics reports LongValued, RLECompressed and NegativeValues.
func (s *Set64) Characteristics() bitkit.Characteristics {
	return bitkit.LongValued | bitkit.RLECompressed | bitkit.NegativeValues
}

// Get reports whether bit index is set.
func (s *Set64) Get(index int64) bool {
	r, ok := s.floorRun(index)
	return ok && r.Contains(index)
}

// floorRun returns the run with the greatest start <= index.
func (s *Set64) floorRun(index int64) (bitkit.Run, bool) {
	var found bitkit.Run
	var ok bool
	s.runs.Descend(bitkit.Run{Start: index}, func(r bitkit.Run) bool {
		found, ok = r, true
		return false
	})
	return found, ok
}

// ceilingRun returns the run with the lowest start >= index.
func (s *Set64) ceilingRun(index int64) (bitkit.Run, bool) {
	var found bitkit.Run
	var ok bool
	s.runs.Ascend(bitkit.Run{Start: index}, func(r bitkit.Run) bool {
		found, ok = r, true
		return false
	})
	return found, ok
}

// Cardinality returns the number of set bits.
func (s *Set64) Cardinality() int64 { return s.card }

// RunCount returns the number of runs in canonical form.
func (s *Set64) RunCount() int { return s.runs.Len() }

// Set sets bit index, locating the run that contains or abuts it and
// coalescing with the neighbors as needed.
func (s *Set64) Set(index int64) error {
	if index == math.MaxInt64 {
		return fmt.Errorf("runset: set: %w", bitkit.NewErrDomainExceeded(index, math.MaxInt64))
	}
	return s.SetRange(index, index+1)
}

// Clear clears bit index, shrinking, deleting or splitting the containing
// run.
func (s *Set64) Clear(index int64) error {
	if index == math.MaxInt64 {
		return fmt.Errorf("runset: clear: %w", bitkit.NewErrDomainExceeded(index, math.MaxInt64))
	}
	return s.ClearRange(index, index+1)
}

// SetRange sets every bit in [start, end). All runs that overlap or abut
// the target range are absorbed into a single covering run.
func (s *Set64) SetRange(start, end int64) error {
	if end < start {
		return fmt.Errorf("runset: %w", bitkit.NewErrInvalidRange(start, end))
	}
	if start == end {
		return nil
	}
	s.setRange(start, end)
	return nil
}

func (s *Set64) setRange(start, end int64) {
	newStart, newEnd := start, end

	// Walk left from the highest run starting at or before end. Every run
	// with run.End >= start overlaps or abuts the target; runs are
	// disjoint, so the first one entirely left of start ends the walk.
	var absorbed []bitkit.Run
	s.runs.Descend(bitkit.Run{Start: end}, func(r bitkit.Run) bool {
		if r.End < start {
			return false
		}
		absorbed = append(absorbed, r)
		return true
	})

	for _, r := range absorbed {
		s.runs.Delete(r)
		s.card -= r.Len()
		if r.Start < newStart {
			newStart = r.Start
		}
		if r.End > newEnd {
			newEnd = r.End
		}
	}

	s.runs.Set(bitkit.Run{Start: newStart, End: newEnd})
	s.card += newEnd - newStart
}

// ClearRange clears every bit in [start, end). Runs fully covered are
// deleted; runs overlapping one edge are shrunk; a run strictly covering
// the range is split in two.
func (s *Set64) ClearRange(start, end int64) error {
	if end < start {
		return fmt.Errorf("runset: %w", bitkit.NewErrInvalidRange(start, end))
	}
	if start == end {
		return nil
	}

	// Only overlapping runs are touched; abutting neighbors stay intact.
	var overlapped []bitkit.Run
	s.runs.Descend(bitkit.Run{Start: end}, func(r bitkit.Run) bool {
		if r.End <= start {
			return false
		}
		if r.Start < end {
			overlapped = append(overlapped, r)
		}
		return true
	})

	for _, r := range overlapped {
		s.runs.Delete(r)
		s.card -= r.Len()
		if r.Start < start {
			left := bitkit.Run{Start: r.Start, End: start}
			s.runs.Set(left)
			s.card += left.Len()
		}
		if r.End > end {
			right := bitkit.Run{Start: end, End: r.End}
			s.runs.Set(right)
			s.card += right.Len()
		}
	}
	return nil
}

// AddRange accumulates [start, end); it satisfies bitkit.RangeAdder for the
// cross-backend algebra glue. Empty or inverted ranges are ignored.
func (s *Set64) AddRange(start, end int64) {
	if start < end {
		s.setRange(start, end)
	}
}

// Runs yields the canonical run decomposition in ascending order. The
// store must not be mutated during iteration.
func (s *Set64) Runs() iter.Seq[bitkit.Run] {
	return func(yield func(bitkit.Run) bool) {
		s.runs.Scan(func(r bitkit.Run) bool {
			return yield(r)
		})
	}
}

// CheckCanonical verifies the canonical-form invariant: no empty run, no
// two runs overlapping or abutting, strictly ascending starts, and a
// cardinality consistent with the run lengths.
func (s *Set64) CheckCanonical() error {
	var prev bitkit.Run
	havePrev := false
	var total int64
	var err error
	s.runs.Scan(func(r bitkit.Run) bool {
		if r.Empty() {
			err = fmt.Errorf("runset: empty run [%d, %d)", r.Start, r.End)
			return false
		}
		if havePrev && prev.End >= r.Start {
			err = fmt.Errorf("runset: runs [%d, %d) and [%d, %d) overlap or abut", prev.Start, prev.End, r.Start, r.End)
			return false
		}
		total += r.Len()
		prev, havePrev = r, true
		return true
	})
	if err != nil {
		return err
	}
	if total != s.card {
		return fmt.Errorf("runset: cardinality %d does not match run total %d", s.card, total)
	}
	return nil
}

// NextSetBit returns the lowest set index >= from, or -1.
func (s *Set64) NextSetBit(from int64) int64 {
	if r, ok := s.floorRun(from); ok && r.Contains(from) {
		return from
	}
	if r, ok := s.ceilingRun(from); ok {
		return r.Start
	}
	return bitkit.NotFound
}

// PreviousSetBit returns the highest set index <= from, or -1.
func (s *Set64) PreviousSetBit(from int64) int64 {
	r, ok := s.floorRun(from)
	if !ok {
		return bitkit.NotFound
	}
	if r.Contains(from) {
		return from
	}
	return r.End - 1
}

// NextClearBit returns the lowest clear index >= from. The sparse domain is
// unbounded, so the answer exists unless the containing run extends to the
// end of the domain.
func (s *Set64) NextClearBit(from int64) int64 {
	if r, ok := s.floorRun(from); ok && r.Contains(from) {
		if r.End == math.MaxInt64 {
			return bitkit.NotFound
		}
		return r.End
	}
	return from
}

// PreviousClearBit returns the highest clear index <= from.
func (s *Set64) PreviousClearBit(from int64) int64 {
	if r, ok := s.floorRun(from); ok && r.Contains(from) {
		if r.Start == math.MinInt64 {
			return bitkit.NotFound
		}
		return r.Start - 1
	}
	return from
}
