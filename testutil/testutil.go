package testutil

import (
	"iter"
	"math/bits"
	"math/rand"

	"github.com/hupe1980/bitkit"
)

// RNG struct encapsulates the random number generator and seed.
type RNG struct {
	rand *rand.Rand
	seed int64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 { return r.seed }

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int { return r.rand.Intn(n) }

// Int63n returns a non-negative pseudo-random int64 in [0,n).
func (r *RNG) Int63n(n int64) int64 { return r.rand.Int63n(n) }

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 { return r.rand.Uint64() }

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 { return r.rand.Float64() }

// RandomDense generates a Dense of the given size where each bit is set
// with probability density.
func (r *RNG) RandomDense(size int64, density float64) *Dense {
	d := NewDense(size)
	for i := int64(0); i < size; i++ {
		if r.rand.Float64() < density {
			d.Set(i)
		}
	}
	return d
}

// Dense is a plain growable bit vector over non-negative indices. It is the
// reference representation the hard backends are checked against, and a
// convenient foreign operand for cross-backend algebra tests.
//
// Dense is not safe for concurrent use.
type Dense struct {
	bits []uint64
}

var _ bitkit.BitVector = (*Dense)(nil)

// NewDense creates a Dense sized for capacity bits.
func NewDense(capacity int64) *Dense {
	return &Dense{bits: make([]uint64, (capacity+63)/64)}
}

// Set sets bit i, growing the word slice as needed.
func (d *Dense) Set(i int64) {
	w := int(i >> 6)
	if w >= len(d.bits) {
		next := make([]uint64, max(w+1, len(d.bits)*2))
		copy(next, d.bits)
		d.bits = next
	}
	d.bits[w] |= uint64(1) << (i & 63)
}

// Clear clears bit i.
func (d *Dense) Clear(i int64) {
	if w := int(i >> 6); w < len(d.bits) {
		d.bits[w] &^= uint64(1) << (i & 63)
	}
}

// Get reports whether bit i is set.
func (d *Dense) Get(i int64) bool {
	if i < 0 {
		return false
	}
	w := int(i >> 6)
	return w < len(d.bits) && d.bits[w]&(uint64(1)<<(i&63)) != 0
}

// Len returns the bit length of the backing words.
func (d *Dense) Len() int64 { return int64(len(d.bits)) * 64 }

// Characteristics reports no special capabilities.
func (d *Dense) Characteristics() bitkit.Characteristics { return 0 }

// Cardinality returns the number of set bits.
func (d *Dense) Cardinality() int64 {
	var count int64
	for _, w := range d.bits {
		count += int64(bits.OnesCount64(w))
	}
	return count
}

// NextSetBit returns the lowest set index >= from, or -1.
func (d *Dense) NextSetBit(from int64) int64 {
	if from < 0 {
		from = 0
	}
	for i := from; i < d.Len(); i++ {
		if d.Get(i) {
			return i
		}
	}
	return bitkit.NotFound
}

// PreviousSetBit returns the highest set index <= from, or -1.
func (d *Dense) PreviousSetBit(from int64) int64 {
	if from >= d.Len() {
		from = d.Len() - 1
	}
	for i := from; i >= 0; i-- {
		if d.Get(i) {
			return i
		}
	}
	return bitkit.NotFound
}

// NextClearBit returns the lowest clear index >= from, or -1 past the
// backing words.
func (d *Dense) NextClearBit(from int64) int64 {
	if from < 0 {
		from = 0
	}
	for i := from; i < d.Len(); i++ {
		if !d.Get(i) {
			return i
		}
	}
	return bitkit.NotFound
}

// PreviousClearBit returns the highest clear index <= from, or -1.
func (d *Dense) PreviousClearBit(from int64) int64 {
	if from >= d.Len() {
		from = d.Len() - 1
	}
	for i := from; i >= 0; i-- {
		if !d.Get(i) {
			return i
		}
	}
	return bitkit.NotFound
}

// Runs yields maximal set-bit intervals in ascending order.
func (d *Dense) Runs() iter.Seq[bitkit.Run] {
	return func(yield func(bitkit.Run) bool) {
		i := d.NextSetBit(0)
		for i != bitkit.NotFound {
			end := i + 1
			for end < d.Len() && d.Get(end) {
				end++
			}
			if !yield(bitkit.Run{Start: i, End: end}) {
				return
			}
			i = d.NextSetBit(end)
		}
	}
}

// AddRange satisfies bitkit.RangeAdder.
func (d *Dense) AddRange(start, end int64) {
	for i := start; i < end; i++ {
		d.Set(i)
	}
}

// AndWith returns a new Dense holding the intersection.
func (d *Dense) AndWith(other bitkit.BitVector) bitkit.BitVector {
	out := NewDense(d.Len())
	bitkit.AppendIntersection(out, d, other)
	return out
}

// OrWith returns a new Dense holding the union.
func (d *Dense) OrWith(other bitkit.BitVector) bitkit.BitVector {
	out := NewDense(d.Len())
	bitkit.AppendUnion(out, d, other)
	return out
}

// XorWith returns a new Dense holding the symmetric difference.
func (d *Dense) XorWith(other bitkit.BitVector) bitkit.BitVector {
	out := NewDense(d.Len())
	bitkit.AppendSymmetricDifference(out, d, other)
	return out
}

// AndNotWith returns a new Dense holding the difference.
func (d *Dense) AndNotWith(other bitkit.BitVector) bitkit.BitVector {
	out := NewDense(d.Len())
	bitkit.AppendDifference(out, d, other)
	return out
}

// Shift returns a new Dense with every set index translated by `by`;
// negative results are dropped.
func (d *Dense) Shift(by int64) bitkit.BitVector {
	out := NewDense(d.Len())
	for r := range d.Runs() {
		start, end := r.Start+by, r.End+by
		if start < 0 {
			start = 0
		}
		if start < end {
			out.AddRange(start, end)
		}
	}
	return out
}

// Filter returns a new Dense retaining only the set bits accepted by pred.
func (d *Dense) Filter(pred func(index int64) bool) bitkit.BitVector {
	out := NewDense(d.Len())
	bitkit.ForEach(d, func(i int64) bool {
		if pred(i) {
			out.Set(i)
		}
		return true
	})
	return out
}
