package rlebits

import (
	"fmt"
	"sort"

	"github.com/hupe1980/bitkit"
)

// growIncrement is the minimum slot growth of the packed backing array.
const growIncrement = 16

// Builder is a streaming constructor for Runs. It accepts ranges in any
// order, including overlapping ones; Build normalizes them into canonical
// form. The backing array grows geometrically and is never shrunk.
//
// Builder is not safe for concurrent use.
type Builder struct {
	pending []bitkit.Run
	err     error
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithRange records the half-open range [start, end). Ranges with
// end < start or endpoints outside [0, 2^32] fail Build; empty ranges are
// ignored.
func (b *Builder) WithRange(start, end int64) *Builder {
	if b.err != nil {
		return b
	}
	if end < start {
		b.err = fmt.Errorf("rlebits: %w", bitkit.NewErrInvalidRange(start, end))
		return b
	}
	if start < 0 {
		b.err = fmt.Errorf("rlebits: %w", bitkit.NewErrDomainExceeded(start, MaxIndex+1))
		return b
	}
	if end > MaxIndex+1 {
		b.err = fmt.Errorf("rlebits: %w", bitkit.NewErrDomainExceeded(end, MaxIndex+1))
		return b
	}
	if start < end {
		b.pending = append(b.pending, bitkit.Run{Start: start, End: end})
	}
	return b
}

// AddRange records [start, end) clipped to the representable domain. It
// satisfies bitkit.RangeAdder for the cross-backend algebra glue, which may
// emit ranges from operands with a wider domain.
func (b *Builder) AddRange(start, end int64) {
	if start < 0 {
		start = 0
	}
	if end > MaxIndex+1 {
		end = MaxIndex + 1
	}
	if start < end {
		b.pending = append(b.pending, bitkit.Run{Start: start, End: end})
	}
}

// AddBitVector records every run of v, clipped to the representable domain.
func (b *Builder) AddBitVector(v bitkit.BitVector) *Builder {
	for r := range v.Runs() {
		b.AddRange(r.Start, r.End)
	}
	return b
}

// Build sorts the recorded ranges, repeatedly coalesces any pair that
// overlaps or touches until a minimal canonical run list remains, and packs
// each surviving run into one 64-bit word.
func (b *Builder) Build() (*Runs, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.pending) == 0 {
		return Empty, nil
	}

	sort.Slice(b.pending, func(i, j int) bool {
		return b.pending[i].Start < b.pending[j].Start
	})

	out := &Runs{}
	cur := b.pending[0]
	for _, r := range b.pending[1:] {
		if r.Start <= cur.End {
			if r.End > cur.End {
				cur.End = r.End
			}
			continue
		}
		out.appendRun(cur)
		cur = r
	}
	out.appendRun(cur)
	return out, nil
}

// appendRun packs a normalized run, growing the backing array as needed.
func (r *Runs) appendRun(run bitkit.Run) {
	if r.used == len(r.data) {
		r.grow()
	}
	r.data[r.used] = pack(uint32(run.Start), uint32(run.End-1))
	r.used++
	r.card += run.Len()
}

func (r *Runs) grow() {
	inc := len(r.data) / 2
	if inc < growIncrement {
		inc = growIncrement
	}
	next := make([]uint64, len(r.data)+inc)
	copy(next, r.data)
	r.data = next
}

// FromBitVector builds a Runs from the set bits of v that fall inside the
// representable domain.
func FromBitVector(v bitkit.BitVector) *Runs {
	out, _ := NewBuilder().AddBitVector(v).Build()
	return out
}
