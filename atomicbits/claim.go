package atomicbits

import (
	"fmt"
	"math/bits"
)

// SetPreference fixes the order of the two single-bit operations when
// SetAndClear spans two words and cannot be covered by one CAS. Downstream
// consumers use it to reason about which invariant is momentarily visible to
// a concurrent reader while a bit moves.
type SetPreference uint8

const (
	// ClearFirst clears the old bit before setting the new one.
	ClearFirst SetPreference = iota
	// SetFirst sets the new bit before clearing the old one, so a logical
	// token is never seen absent entirely.
	SetFirst
	// LeastFirst applies the operation on the lower index first.
	LeastFirst
	// GreatestFirst applies the operation on the higher index first.
	GreatestFirst
)

func (p SetPreference) String() string {
	switch p {
	case ClearFirst:
		return "ClearFirst"
	case SetFirst:
		return "SetFirst"
	case LeastFirst:
		return "LeastFirst"
	case GreatestFirst:
		return "GreatestFirst"
	default:
		return fmt.Sprintf("SetPreference(%d)", uint8(p))
	}
}

// SettingNextClearBit atomically finds and claims the lowest clear bit at or
// after from. No two concurrent callers are ever handed the same bit. It
// returns -1 exactly when, from some consistent snapshot, no clear bit
// existed in [from, capacity).
//
// There is no guarantee about which of several simultaneously-clear bits a
// caller receives; under contention different callers may claim bits out of
// numeric order.
//
// A negative from panics; from at or beyond capacity reports exhaustion.
func (v *Vector) SettingNextClearBit(from int64) int64 {
	if from < 0 {
		panic(fmt.Sprintf("atomicbits: claim start %d out of range [0, %d)", from, v.capacity))
	}
	if from >= v.capacity {
		return -1
	}

	wordIdx := from >> 6
	offMask := ^uint64(0) << (from & 63)

	// Iterate word by word; the loop is bounded by word count, not bit
	// count. On CAS failure the same word is retried against its updated
	// value, never a lock.
	for wordIdx < int64(len(v.words)) {
		cur := v.words[wordIdx].Load()
		cand := ^cur & v.wordMask(wordIdx) & offMask
		if cand == 0 {
			wordIdx++
			offMask = ^uint64(0)
			continue
		}
		bit := int64(bits.TrailingZeros64(cand & -cand))
		if v.words[wordIdx].CompareAndSwap(cur, cur|(cand&-cand)) {
			return wordIdx<<6 | bit
		}
	}
	return -1
}

// SetAndClear sets toSet and clears toClear. When both indices share a word
// the update is one CAS: either both halves are observed together or
// neither. When they span two words no single hardware primitive covers
// them; pref fixes the order of the two single-bit operations.
//
// Both indices must lie in [0, capacity) and must differ; violations panic.
func (v *Vector) SetAndClear(toSet, toClear int64, pref SetPreference) {
	v.checkIndex(toSet)
	v.checkIndex(toClear)
	if toSet == toClear {
		panic(fmt.Sprintf("atomicbits: set and clear target the same index %d", toSet))
	}

	setWord, clearWord := toSet>>6, toClear>>6
	setMask := uint64(1) << (toSet & 63)
	clearMask := uint64(1) << (toClear & 63)

	if setWord == clearWord {
		for {
			old := v.words[setWord].Load()
			next := (old | setMask) &^ clearMask
			if old == next || v.words[setWord].CompareAndSwap(old, next) {
				return
			}
		}
	}

	clearBeforeSet := false
	switch pref {
	case ClearFirst:
		clearBeforeSet = true
	case SetFirst:
		clearBeforeSet = false
	case LeastFirst:
		clearBeforeSet = toClear < toSet
	case GreatestFirst:
		clearBeforeSet = toClear > toSet
	}

	if clearBeforeSet {
		v.Clearing(toClear)
		v.Setting(toSet)
	} else {
		v.Setting(toSet)
		v.Clearing(toClear)
	}
}

// ClearRangeAndSet clears every bit in [clearStart, clearEnd) except
// setIndex, which is forced set, processing words in ascending order.
//
// If the region held at least one set bit before the call, a concurrent
// reader never observes it transiently drop to zero set bits once the word
// holding setIndex has been processed; callers that need the no-gap
// guarantee at the high end of the range use ClearRangeAndSetBackwards.
func (v *Vector) ClearRangeAndSet(clearStart, clearEnd, setIndex int64) {
	v.clearRangeAndSet(clearStart, clearEnd, setIndex, false)
}

// ClearRangeAndSetBackwards is ClearRangeAndSet processing words in
// descending order.
func (v *Vector) ClearRangeAndSetBackwards(clearStart, clearEnd, setIndex int64) {
	v.clearRangeAndSet(clearStart, clearEnd, setIndex, true)
}

func (v *Vector) clearRangeAndSet(clearStart, clearEnd, setIndex int64, backwards bool) {
	if clearEnd < clearStart {
		panic(fmt.Sprintf("atomicbits: invalid clear range: end %d < start %d", clearEnd, clearStart))
	}
	if clearStart < 0 || clearEnd > v.capacity {
		panic(fmt.Sprintf("atomicbits: clear range [%d, %d) out of range [0, %d)", clearStart, clearEnd, v.capacity))
	}
	if setIndex < clearStart || setIndex >= clearEnd {
		panic(fmt.Sprintf("atomicbits: set index %d outside clear range [%d, %d)", setIndex, clearStart, clearEnd))
	}

	setWord := setIndex >> 6
	setMask := uint64(1) << (setIndex & 63)

	process := func(w int64) {
		mask := rangeMaskForWord(w, clearStart, clearEnd)
		if w == setWord {
			// Clear and set within this word as one CAS so the
			// region's single surviving bit appears in the same
			// step that its word is scrubbed.
			mask &^= setMask
			for {
				old := v.words[w].Load()
				next := (old &^ mask) | setMask
				if old == next || v.words[w].CompareAndSwap(old, next) {
					return
				}
			}
		}
		v.words[w].And(^mask)
	}

	firstWord := clearStart >> 6
	lastWord := (clearEnd - 1) >> 6
	if backwards {
		for w := lastWord; w >= firstWord; w-- {
			process(w)
		}
		return
	}
	for w := firstWord; w <= lastWord; w++ {
		process(w)
	}
}
