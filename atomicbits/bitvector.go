package atomicbits

import (
	"fmt"

	"github.com/hupe1980/bitkit"
)

var _ bitkit.Mutable = (*Vector)(nil)

// Set sets bit index, failing on out-of-range indices. Callers that want
// the claim-detection result use Setting directly.
func (v *Vector) Set(index int64) error {
	if index < 0 || index >= v.capacity {
		return fmt.Errorf("atomicbits: set: %w", bitkit.NewErrDomainExceeded(index, v.capacity))
	}
	v.Setting(index)
	return nil
}

// Clear clears bit index, failing on out-of-range indices.
func (v *Vector) Clear(index int64) error {
	if index < 0 || index >= v.capacity {
		return fmt.Errorf("atomicbits: clear: %w", bitkit.NewErrDomainExceeded(index, v.capacity))
	}
	v.Clearing(index)
	return nil
}

func (v *Vector) checkRange(start, end int64) error {
	if end < start {
		return fmt.Errorf("atomicbits: %w", bitkit.NewErrInvalidRange(start, end))
	}
	if start < 0 || end > v.capacity {
		return fmt.Errorf("atomicbits: range [%d, %d): %w", start, end, bitkit.NewErrDomainExceeded(end, v.capacity))
	}
	return nil
}

// SetRange sets every bit in [start, end).
func (v *Vector) SetRange(start, end int64) error {
	if err := v.checkRange(start, end); err != nil {
		return err
	}
	v.setRangeWords(start, end)
	return nil
}

// ClearRange clears every bit in [start, end).
func (v *Vector) ClearRange(start, end int64) error {
	if err := v.checkRange(start, end); err != nil {
		return err
	}
	v.clearRangeWords(start, end)
	return nil
}

// clip bounds a run to the vector's domain.
func (v *Vector) clip(r bitkit.Run) (start, end int64, ok bool) {
	start, end = r.Start, r.End
	if start < 0 {
		start = 0
	}
	if end > v.capacity {
		end = v.capacity
	}
	return start, end, start < end
}

// And intersects other into the receiver in place. Word-wise when other is
// another Vector, otherwise via the cross-backend run walk.
func (v *Vector) And(other bitkit.BitVector) error {
	if o, ok := other.(*Vector); ok {
		for i := range v.words {
			var ow uint64
			if i < len(o.words) {
				ow = o.words[i].Load()
				if i == len(o.words)-1 {
					ow &= o.lastMask
				}
			}
			v.words[i].And(ow)
		}
		return nil
	}
	// Collect the bits to drop before mutating; the runs are read live.
	var toClear runList
	bitkit.AppendDifference(&toClear, v, other)
	for _, r := range toClear {
		v.clearRangeWords(r.Start, r.End)
	}
	return nil
}

// Or unions other into the receiver in place. Set bits of other outside
// [0, capacity) are dropped.
func (v *Vector) Or(other bitkit.BitVector) error {
	for r := range other.Runs() {
		if start, end, ok := v.clip(r); ok {
			v.setRangeWords(start, end)
		}
	}
	return nil
}

// Xor flips the receiver's bits wherever other is set, within the
// receiver's domain.
func (v *Vector) Xor(other bitkit.BitVector) error {
	if o, ok := other.(*Vector); ok && o == v {
		v.ClearAll()
		return nil
	}
	var flips runList
	for r := range other.Runs() {
		if start, end, ok := v.clip(r); ok {
			flips = append(flips, bitkit.Run{Start: start, End: end})
		}
	}
	for _, r := range flips {
		v.flipRangeWords(r.Start, r.End)
	}
	return nil
}

// AndNot clears the receiver's bits wherever other is set.
func (v *Vector) AndNot(other bitkit.BitVector) error {
	if o, ok := other.(*Vector); ok && o == v {
		v.ClearAll()
		return nil
	}
	var clears runList
	for r := range other.Runs() {
		if start, end, ok := v.clip(r); ok {
			clears = append(clears, bitkit.Run{Start: start, End: end})
		}
	}
	for _, r := range clears {
		v.clearRangeWords(r.Start, r.End)
	}
	return nil
}

// AndWith returns a new Vector holding the intersection.
func (v *Vector) AndWith(other bitkit.BitVector) bitkit.BitVector {
	out, _ := v.Copy(v.capacity)
	_ = out.And(other)
	return out
}

// OrWith returns a new Vector holding the union clipped to the receiver's
// capacity.
func (v *Vector) OrWith(other bitkit.BitVector) bitkit.BitVector {
	out, _ := v.Copy(v.capacity)
	_ = out.Or(other)
	return out
}

// XorWith returns a new Vector holding the symmetric difference clipped to
// the receiver's capacity.
func (v *Vector) XorWith(other bitkit.BitVector) bitkit.BitVector {
	out, _ := v.Copy(v.capacity)
	_ = out.Xor(other)
	return out
}

// AndNotWith returns a new Vector holding the difference.
func (v *Vector) AndNotWith(other bitkit.BitVector) bitkit.BitVector {
	out, _ := v.Copy(v.capacity)
	_ = out.AndNot(other)
	return out
}

// Shift returns a new Vector with every set index translated by `by`.
// Indices shifted outside [0, capacity) are dropped.
func (v *Vector) Shift(by int64) bitkit.BitVector {
	out := newVector(v.capacity)
	for r := range v.Runs() {
		if start, end, ok := out.clip(bitkit.Run{Start: r.Start + by, End: r.End + by}); ok {
			out.setRangeWords(start, end)
		}
	}
	return out
}

// Filter returns a new Vector retaining only the set bits accepted by pred.
func (v *Vector) Filter(pred func(index int64) bool) bitkit.BitVector {
	out := newVector(v.capacity)
	v.ForEach(func(i int64) bool {
		if pred(i) {
			out.Setting(i)
		}
		return true
	})
	return out
}

// runList is a RangeAdder collecting half-open ranges.
type runList []bitkit.Run

func (l *runList) AddRange(start, end int64) {
	*l = append(*l, bitkit.Run{Start: start, End: end})
}
