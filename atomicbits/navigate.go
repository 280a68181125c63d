package atomicbits

import (
	"iter"
	"math/bits"

	"github.com/hupe1980/bitkit"
)

// NextSetBit returns the lowest set index >= from, or -1. Navigation never
// fails; out-of-domain starting points report absence.
func (v *Vector) NextSetBit(from int64) int64 {
	if from < 0 {
		from = 0
	}
	if from >= v.capacity {
		return bitkit.NotFound
	}
	wordIdx := from >> 6
	val := v.words[wordIdx].Load() & (^uint64(0) << (from & 63))
	for {
		if val != 0 {
			return wordIdx<<6 | int64(bits.TrailingZeros64(val))
		}
		wordIdx++
		if wordIdx >= int64(len(v.words)) {
			return bitkit.NotFound
		}
		val = v.words[wordIdx].Load()
	}
}

// PreviousSetBit returns the highest set index <= from, or -1.
func (v *Vector) PreviousSetBit(from int64) int64 {
	if from < 0 {
		return bitkit.NotFound
	}
	if from >= v.capacity {
		from = v.capacity - 1
	}
	wordIdx := from >> 6
	val := v.words[wordIdx].Load() & (^uint64(0) >> (63 - from&63))
	for {
		if val != 0 {
			return wordIdx<<6 | int64(63-bits.LeadingZeros64(val))
		}
		wordIdx--
		if wordIdx < 0 {
			return bitkit.NotFound
		}
		val = v.words[wordIdx].Load()
	}
}

// NextClearBit returns the lowest clear index >= from inside [0, capacity),
// or -1 when every remaining bit is set.
func (v *Vector) NextClearBit(from int64) int64 {
	if from < 0 {
		from = 0
	}
	if from >= v.capacity {
		return bitkit.NotFound
	}
	wordIdx := from >> 6
	val := ^v.words[wordIdx].Load() & v.wordMask(wordIdx) & (^uint64(0) << (from & 63))
	for {
		if val != 0 {
			return wordIdx<<6 | int64(bits.TrailingZeros64(val))
		}
		wordIdx++
		if wordIdx >= int64(len(v.words)) {
			return bitkit.NotFound
		}
		val = ^v.words[wordIdx].Load() & v.wordMask(wordIdx)
	}
}

// PreviousClearBit returns the highest clear index <= from inside
// [0, capacity), or -1.
func (v *Vector) PreviousClearBit(from int64) int64 {
	if from < 0 {
		return bitkit.NotFound
	}
	if from >= v.capacity {
		from = v.capacity - 1
	}
	wordIdx := from >> 6
	val := ^v.words[wordIdx].Load() & v.wordMask(wordIdx) & (^uint64(0) >> (63 - from&63))
	for {
		if val != 0 {
			return wordIdx<<6 | int64(63-bits.LeadingZeros64(val))
		}
		wordIdx--
		if wordIdx < 0 {
			return bitkit.NotFound
		}
		val = ^v.words[wordIdx].Load() & v.wordMask(wordIdx)
	}
}

// Runs yields maximal intervals of set bits in ascending order. Each run
// reflects the word contents at the moment it is scanned; concurrent
// mutation may interleave between runs.
func (v *Vector) Runs() iter.Seq[bitkit.Run] {
	return func(yield func(bitkit.Run) bool) {
		i := v.NextSetBit(0)
		for i != bitkit.NotFound {
			end := v.NextClearBit(i)
			if end == bitkit.NotFound {
				yield(bitkit.Run{Start: i, End: v.capacity})
				return
			}
			if !yield(bitkit.Run{Start: i, End: end}) {
				return
			}
			i = v.NextSetBit(end)
		}
	}
}

// ForEach visits every set bit in ascending order until fn returns false.
func (v *Vector) ForEach(fn func(index int64) bool) {
	for i := v.NextSetBit(0); i != bitkit.NotFound; i = v.NextSetBit(i + 1) {
		if !fn(i) {
			return
		}
	}
}
