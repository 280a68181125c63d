package rlebits

import (
	"fmt"
	"iter"
	"math"

	"github.com/hupe1980/bitkit"
)

// MaxIndex is the highest representable bit index.
const MaxIndex = int64(math.MaxUint32)

// Runs is an immutable, sorted array of packed (start, end) runs. The zero
// value is the empty set.
type Runs struct {
	data []uint64 // start | end<<32, end inclusive
	used int
	card int64
}

// Empty is the canonical empty instance.
var Empty = &Runs{}

func pack(start, endIncl uint32) uint64 {
	return uint64(start) | uint64(endIncl)<<32
}

func (r *Runs) start(i int) uint32 { return uint32(r.data[i]) }

func (r *Runs) endIncl(i int) uint32 { return uint32(r.data[i] >> 32) }

func (r *Runs) runAt(i int) (start, endIncl uint32) {
	return uint32(r.data[i]), uint32(r.data[i] >> 32)
}

// RunCount returns the number of packed runs.
func (r *Runs) RunCount() int { return r.used }

// RunAt returns run i as a half-open bitkit.Run.
func (r *Runs) RunAt(i int) bitkit.Run {
	s, e := r.runAt(i)
	return bitkit.Run{Start: int64(s), End: int64(e) + 1}
}

// Characteristics reports RLECompressed and ThreadSafe (immutability makes
// unlimited concurrent reads safe).
func (r *Runs) Characteristics() bitkit.Characteristics {
	return bitkit.RLECompressed | bitkit.ThreadSafe
}

// CellKind classifies a binary-search lookup.
type CellKind uint8

const (
	// CellAbsent means the bit is not covered by any run.
	CellAbsent CellKind = iota
	// CellExact means the bit hit a run boundary exactly.
	CellExact
	// CellContained means the bit lies strictly inside a run.
	CellContained
)

func (k CellKind) String() string {
	switch k {
	case CellAbsent:
		return "Absent"
	case CellExact:
		return "Exact"
	case CellContained:
		return "Contained"
	default:
		return fmt.Sprintf("CellKind(%d)", uint8(k))
	}
}

// Cell is the result of a binary-search lookup. For CellAbsent, Index is
// the nearest preceding run (-1 when the bit precedes every run) and
// Distance is the gap from that run's inclusive end to the bit; both let
// navigation and insertion points be computed without a linear scan.
type Cell struct {
	Kind     CellKind
	Index    int
	Distance int64
}

// CellForBit classifies index against the packed runs. Indices outside
// [0, MaxIndex] classify as absent relative to the domain edge.
func (r *Runs) CellForBit(index int64) Cell {
	if index < 0 {
		return Cell{Kind: CellAbsent, Index: -1}
	}
	if index > MaxIndex {
		return Cell{Kind: CellAbsent, Index: r.used - 1, Distance: distanceFromEnd(r, index)}
	}
	return r.cellForBit(uint32(index))
}

func distanceFromEnd(r *Runs, index int64) int64 {
	if r.used == 0 {
		return index + 1
	}
	return index - int64(r.endIncl(r.used-1))
}

func (r *Runs) cellForBit(bit uint32) Cell {
	if r.used == 0 {
		return Cell{Kind: CellAbsent, Index: -1, Distance: int64(bit) + 1}
	}
	return r.binarySearch(bit, 0, r.used-1)
}

// binarySearch compares the target against the head and tail run boundaries
// first (cheap common-case hits), then recurses into the midpoint split.
func (r *Runs) binarySearch(bit uint32, head, tail int) Cell {
	hs, he := r.runAt(head)
	if bit <= he {
		if bit == hs || bit == he {
			return Cell{Kind: CellExact, Index: head}
		}
		if bit > hs {
			return Cell{Kind: CellContained, Index: head}
		}
		if head == 0 {
			// Precedes every run; the virtual predecessor ends at -1.
			return Cell{Kind: CellAbsent, Index: -1, Distance: int64(bit) + 1}
		}
		_, pe := r.runAt(head - 1)
		return Cell{Kind: CellAbsent, Index: head - 1, Distance: int64(bit) - int64(pe)}
	}

	ts, te := r.runAt(tail)
	if bit >= ts {
		if bit == ts || bit == te {
			return Cell{Kind: CellExact, Index: tail}
		}
		if bit < te {
			return Cell{Kind: CellContained, Index: tail}
		}
		return Cell{Kind: CellAbsent, Index: tail, Distance: int64(bit) - int64(te)}
	}

	// The bit lies strictly between head's end and tail's start.
	if tail-head <= 1 {
		return Cell{Kind: CellAbsent, Index: head, Distance: int64(bit) - int64(he)}
	}
	mid := head + (tail-head)/2
	if bit < r.start(mid) {
		return r.binarySearch(bit, head+1, mid)
	}
	return r.binarySearch(bit, mid, tail-1)
}

// Get reports whether bit index is set.
func (r *Runs) Get(index int64) bool {
	if index < 0 || index > MaxIndex {
		return false
	}
	return r.cellForBit(uint32(index)).Kind != CellAbsent
}

// Cardinality returns the number of set bits.
func (r *Runs) Cardinality() int64 { return r.card }

// NextSetBit returns the lowest set index >= from, or -1.
func (r *Runs) NextSetBit(from int64) int64 {
	if from < 0 {
		from = 0
	}
	if from > MaxIndex {
		return bitkit.NotFound
	}
	cell := r.cellForBit(uint32(from))
	if cell.Kind != CellAbsent {
		return from
	}
	if next := cell.Index + 1; next < r.used {
		return int64(r.start(next))
	}
	return bitkit.NotFound
}

// PreviousSetBit returns the highest set index <= from, or -1.
func (r *Runs) PreviousSetBit(from int64) int64 {
	if from < 0 {
		return bitkit.NotFound
	}
	if from > MaxIndex {
		from = MaxIndex
	}
	cell := r.cellForBit(uint32(from))
	if cell.Kind != CellAbsent {
		return from
	}
	if cell.Index >= 0 {
		return int64(r.endIncl(cell.Index))
	}
	return bitkit.NotFound
}

// NextClearBit returns the lowest clear index >= from inside the domain,
// or -1.
func (r *Runs) NextClearBit(from int64) int64 {
	if from < 0 {
		from = 0
	}
	if from > MaxIndex {
		return bitkit.NotFound
	}
	cell := r.cellForBit(uint32(from))
	if cell.Kind == CellAbsent {
		return from
	}
	// Canonical runs never abut, so the bit after a run's inclusive end
	// is clear when it exists.
	if end := int64(r.endIncl(cell.Index)); end < MaxIndex {
		return end + 1
	}
	return bitkit.NotFound
}

// PreviousClearBit returns the highest clear index <= from inside the
// domain, or -1.
func (r *Runs) PreviousClearBit(from int64) int64 {
	if from < 0 {
		return bitkit.NotFound
	}
	if from > MaxIndex {
		from = MaxIndex
	}
	cell := r.cellForBit(uint32(from))
	if cell.Kind == CellAbsent {
		return from
	}
	if start := int64(r.start(cell.Index)); start > 0 {
		return start - 1
	}
	return bitkit.NotFound
}

// Runs yields the canonical run decomposition in ascending order as
// half-open intervals.
func (r *Runs) Runs() iter.Seq[bitkit.Run] {
	return func(yield func(bitkit.Run) bool) {
		for i := 0; i < r.used; i++ {
			s, e := r.runAt(i)
			if !yield(bitkit.Run{Start: int64(s), End: int64(e) + 1}) {
				return
			}
		}
	}
}

// ContentEquals reports whether other holds exactly the same runs.
func (r *Runs) ContentEquals(other *Runs) bool {
	if other == nil || r.used != other.used {
		return false
	}
	for i := 0; i < r.used; i++ {
		if r.data[i] != other.data[i] {
			return false
		}
	}
	return true
}
