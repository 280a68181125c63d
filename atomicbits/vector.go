package atomicbits

import (
	"fmt"
	"hash/fnv"
	"math/bits"
	"sync/atomic"

	"github.com/hupe1980/bitkit"
)

// Vector is a fixed-capacity bit array manipulated exclusively via
// compare-and-swap. All operations are safe for concurrent use; none ever
// block, contention is resolved by optimistic retry.
//
// The capacity is immutable. Growth requires Copy into a larger Vector;
// there is no in-place resize.
type Vector struct {
	words    []atomic.Uint64
	capacity int64
	lastMask uint64 // capacity-bounded mask for the final word
}

// New creates a Vector holding capacity bits, all clear.
func New(capacity int64) (*Vector, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("atomicbits: capacity %d: %w", capacity, bitkit.ErrInvalidCapacity)
	}
	return newVector(capacity), nil
}

func newVector(capacity int64) *Vector {
	n := int((capacity + 63) / 64)
	v := &Vector{
		words:    make([]atomic.Uint64, n),
		capacity: capacity,
		lastMask: lastWordMask(capacity),
	}
	return v
}

func lastWordMask(capacity int64) uint64 {
	if rem := capacity & 63; rem != 0 {
		return (uint64(1) << rem) - 1
	}
	return ^uint64(0)
}

// FromWords creates a Vector from a packed word slice. numBits overrides the
// total bit count; bits at or beyond numBits are masked off.
func FromWords(words []uint64, numBits int64) (*Vector, error) {
	if numBits <= 0 {
		return nil, fmt.Errorf("atomicbits: capacity %d: %w", numBits, bitkit.ErrInvalidCapacity)
	}
	if need := int((numBits + 63) / 64); need > len(words) {
		return nil, fmt.Errorf("atomicbits: %d bits need %d words, have %d", numBits, need, len(words))
	}
	v := newVector(numBits)
	for i := range v.words {
		w := words[i]
		if i == len(v.words)-1 {
			w &= v.lastMask
		}
		v.words[i].Store(w)
	}
	return v, nil
}

// FromBitVector creates a Vector of the given capacity populated with the
// set bits of src that fall inside [0, capacity).
func FromBitVector(src bitkit.BitVector, capacity int64) (*Vector, error) {
	v, err := New(capacity)
	if err != nil {
		return nil, err
	}
	for r := range src.Runs() {
		start, end := r.Start, r.End
		if start < 0 {
			start = 0
		}
		if end > capacity {
			end = capacity
		}
		if start < end {
			v.setRangeWords(start, end)
		}
	}
	return v, nil
}

// Capacity returns the fixed bit capacity.
func (v *Vector) Capacity() int64 { return v.capacity }

// Characteristics reports FixedSize, ThreadSafe and Atomic.
func (v *Vector) Characteristics() bitkit.Characteristics {
	return bitkit.FixedSize | bitkit.ThreadSafe | bitkit.Atomic
}

func (v *Vector) checkIndex(i int64) {
	if i < 0 || i >= v.capacity {
		panic(fmt.Sprintf("atomicbits: index %d out of range [0, %d)", i, v.capacity))
	}
}

// wordMask returns the valid-bit mask for word w. Only the final word is
// partial; bits at or beyond capacity are never observably set.
func (v *Vector) wordMask(w int64) uint64 {
	if w == int64(len(v.words))-1 {
		return v.lastMask
	}
	return ^uint64(0)
}

// Get reports whether bit i is set. Out-of-range indices read as clear.
// Get is linearizable with respect to Setting and Clearing on the same bit.
func (v *Vector) Get(i int64) bool {
	if i < 0 || i >= v.capacity {
		return false
	}
	return v.words[i>>6].Load()&(uint64(1)<<(i&63)) != 0
}

// Setting atomically sets bit i and reports whether the bit was previously
// clear, letting callers detect "first to claim" races. It panics when i is
// outside [0, capacity); an out-of-range mutation index is a programmer
// error, not contention.
func (v *Vector) Setting(i int64) bool {
	v.checkIndex(i)
	w := i >> 6
	mask := uint64(1) << (i & 63)
	for {
		old := v.words[w].Load()
		if old&mask != 0 {
			return false
		}
		if v.words[w].CompareAndSwap(old, old|mask) {
			return true
		}
	}
}

// Clearing atomically clears bit i and reports whether the bit was
// previously set. It panics when i is outside [0, capacity).
func (v *Vector) Clearing(i int64) bool {
	v.checkIndex(i)
	w := i >> 6
	mask := uint64(1) << (i & 63)
	for {
		old := v.words[w].Load()
		if old&mask == 0 {
			return false
		}
		if v.words[w].CompareAndSwap(old, old&^mask) {
			return true
		}
	}
}

// flipRangeWords XORs the bits of [start, end) word by word via CAS.
func (v *Vector) flipRangeWords(start, end int64) {
	forEachRangeWord(start, end, func(w int64, mask uint64) {
		for {
			old := v.words[w].Load()
			if v.words[w].CompareAndSwap(old, old^mask) {
				return
			}
		}
	})
}

// setRangeWords ORs the bits of [start, end) word by word.
func (v *Vector) setRangeWords(start, end int64) {
	forEachRangeWord(start, end, func(w int64, mask uint64) {
		v.words[w].Or(mask)
	})
}

// clearRangeWords clears the bits of [start, end) word by word.
func (v *Vector) clearRangeWords(start, end int64) {
	forEachRangeWord(start, end, func(w int64, mask uint64) {
		v.words[w].And(^mask)
	})
}

// forEachRangeWord visits every word overlapping [start, end) in ascending
// order with the mask of range bits inside that word.
func forEachRangeWord(start, end int64, fn func(wordIdx int64, mask uint64)) {
	if start >= end {
		return
	}
	firstWord := start >> 6
	lastWord := (end - 1) >> 6
	for w := firstWord; w <= lastWord; w++ {
		fn(w, rangeMaskForWord(w, start, end))
	}
}

// rangeMaskForWord returns the bits of word w covered by [start, end).
func rangeMaskForWord(w, start, end int64) uint64 {
	mask := ^uint64(0)
	if start>>6 == w {
		mask &= ^uint64(0) << (start & 63)
	}
	if (end-1)>>6 == w {
		mask &= ^uint64(0) >> (63 - (end-1)&63)
	}
	return mask
}

// Cardinality returns the number of set bits.
func (v *Vector) Cardinality() int64 {
	var count int64
	for i := range v.words {
		if val := v.words[i].Load(); val != 0 {
			count += int64(bits.OnesCount64(val))
		}
	}
	return count
}

// ClearAll clears every bit.
func (v *Vector) ClearAll() {
	for i := range v.words {
		v.words[i].Store(0)
	}
}

// Copy allocates a new Vector of newCapacity bits and copies the shared
// prefix in. There is no in-place resize; the fixed-capacity contract is
// what the lock-free invariants rest on.
func (v *Vector) Copy(newCapacity int64) (*Vector, error) {
	if newCapacity <= 0 {
		return nil, fmt.Errorf("atomicbits: capacity %d: %w", newCapacity, bitkit.ErrInvalidCapacity)
	}
	out := newVector(newCapacity)
	n := min(len(out.words), len(v.words))
	for i := 0; i < n; i++ {
		w := v.words[i].Load()
		if i == len(out.words)-1 {
			w &= out.lastMask
		}
		out.words[i].Store(w)
	}
	return out, nil
}

// ContentEquals reports whether other has the same capacity and exactly the
// same set bits.
func (v *Vector) ContentEquals(other *Vector) bool {
	if other == nil || v.capacity != other.capacity {
		return false
	}
	for i := range v.words {
		if v.words[i].Load() != other.words[i].Load() {
			return false
		}
	}
	return true
}

// Hash returns an FNV-1a hash of the capacity and word contents. Vectors for
// which ContentEquals holds hash equal.
func (v *Vector) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	putUint64(buf[:], uint64(v.capacity))
	_, _ = h.Write(buf[:])
	for i := range v.words {
		putUint64(buf[:], v.words[i].Load())
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}

func putUint64(b []byte, x uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(x >> (8 * i))
	}
}
