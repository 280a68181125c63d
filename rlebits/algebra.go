package rlebits

import (
	"github.com/hupe1980/bitkit"
)

var _ bitkit.BitVector = (*Runs)(nil)

// And returns the intersection of two packed run arrays. The receiver's
// runs are walked and intersected against the other operand's coverage;
// only the overlapping sub-ranges are re-emitted.
func (r *Runs) And(other *Runs) *Runs {
	out := &Runs{}
	i, j := 0, 0
	for i < r.used && j < other.used {
		as, ae := r.runAt(i)
		bs, be := other.runAt(j)
		start, end := as, ae
		if bs > start {
			start = bs
		}
		if be < end {
			end = be
		}
		if start <= end {
			out.appendRun(bitkit.Run{Start: int64(start), End: int64(end) + 1})
		}
		if ae < be {
			i++
		} else {
			j++
		}
	}
	return out
}

// Or returns the union: a builder accumulate-and-coalesce of both operands'
// ranges.
func (r *Runs) Or(other *Runs) *Runs {
	b := NewBuilder()
	b.AddBitVector(r)
	b.AddBitVector(other)
	out, _ := b.Build()
	return out
}

// Xor returns the symmetric difference, tracking the alternating transition
// points of both operands in lock-step and emitting a run each time the
// combined bit value changes.
func (r *Runs) Xor(other *Runs) *Runs {
	b := NewBuilder()
	bitkit.AppendSymmetricDifference(b, r, other)
	out, _ := b.Build()
	return out
}

// AndNot returns the difference r AND NOT other via the same lock-step
// transition walk.
func (r *Runs) AndNot(other *Runs) *Runs {
	b := NewBuilder()
	bitkit.AppendDifference(b, r, other)
	out, _ := b.Build()
	return out
}

// AndWith returns a new Runs holding the intersection. Same-type operands
// take the native run-intersection path.
func (r *Runs) AndWith(other bitkit.BitVector) bitkit.BitVector {
	if o, ok := other.(*Runs); ok {
		return r.And(o)
	}
	b := NewBuilder()
	bitkit.AppendIntersection(b, r, other)
	out, _ := b.Build()
	return out
}

// OrWith returns a new Runs holding the union, clipped to the packed
// domain.
func (r *Runs) OrWith(other bitkit.BitVector) bitkit.BitVector {
	if o, ok := other.(*Runs); ok {
		return r.Or(o)
	}
	b := NewBuilder()
	bitkit.AppendUnion(b, r, other)
	out, _ := b.Build()
	return out
}

// XorWith returns a new Runs holding the symmetric difference, clipped to
// the packed domain.
func (r *Runs) XorWith(other bitkit.BitVector) bitkit.BitVector {
	if o, ok := other.(*Runs); ok {
		return r.Xor(o)
	}
	b := NewBuilder()
	bitkit.AppendSymmetricDifference(b, r, other)
	out, _ := b.Build()
	return out
}

// AndNotWith returns a new Runs holding the difference.
func (r *Runs) AndNotWith(other bitkit.BitVector) bitkit.BitVector {
	if o, ok := other.(*Runs); ok {
		return r.AndNot(o)
	}
	b := NewBuilder()
	bitkit.AppendDifference(b, r, other)
	out, _ := b.Build()
	return out
}

// Shift returns a new Runs with every run translated by `by`, clipped to
// the representable domain.
func (r *Runs) Shift(by int64) bitkit.BitVector {
	b := NewBuilder()
	for i := 0; i < r.used; i++ {
		s, e := r.runAt(i)
		b.AddRange(int64(s)+by, int64(e)+1+by)
	}
	out, _ := b.Build()
	return out
}

// Filter returns a new Runs retaining only the set bits accepted by pred.
// The cost is proportional to the number of set bits.
func (r *Runs) Filter(pred func(index int64) bool) bitkit.BitVector {
	b := NewBuilder()
	for i := 0; i < r.used; i++ {
		s, e := r.runAt(i)
		for bit := int64(s); bit <= int64(e); bit++ {
			if pred(bit) {
				b.AddRange(bit, bit+1)
			}
		}
	}
	out, _ := b.Build()
	return out
}
