package bitkit

import (
	"fmt"
	"iter"
	"math"
)

// Empty is the immutable all-clear sentinel. It implements only the read
// side of the contract; mutation is excluded at the type level.
var Empty BitVector = emptyVector{}

// Ones is the immutable all-set sentinel over the non-negative domain.
// Operations whose result would be an unrepresentable complement (XorWith,
// AndNotWith, Filter, non-zero Shift) fail with an unsupported-operation
// panic by contract.
var Ones BitVector = onesVector{}

type emptyVector struct{}

func (emptyVector) Characteristics() Characteristics { return ThreadSafe | LongValued }

func (emptyVector) Get(int64) bool      { return false }
func (emptyVector) Cardinality() int64  { return 0 }
func (emptyVector) NextSetBit(int64) int64 { return NotFound }
func (emptyVector) PreviousSetBit(int64) int64 { return NotFound }

func (emptyVector) NextClearBit(from int64) int64 {
	if from < 0 {
		return 0
	}
	return from
}

func (emptyVector) PreviousClearBit(from int64) int64 {
	if from < 0 {
		return NotFound
	}
	return from
}

func (emptyVector) Runs() iter.Seq[Run] {
	return func(func(Run) bool) {}
}

func (e emptyVector) AndWith(BitVector) BitVector       { return e }
func (e emptyVector) OrWith(other BitVector) BitVector  { return other }
func (e emptyVector) XorWith(other BitVector) BitVector { return other }
func (e emptyVector) AndNotWith(BitVector) BitVector    { return e }
func (e emptyVector) Shift(int64) BitVector             { return e }
func (e emptyVector) Filter(func(int64) bool) BitVector { return e }

type onesVector struct{}

func (onesVector) Characteristics() Characteristics { return ThreadSafe | LongValued }

func (onesVector) Get(index int64) bool { return index >= 0 }
func (onesVector) Cardinality() int64   { return math.MaxInt64 }

func (onesVector) NextSetBit(from int64) int64 {
	if from < 0 {
		return 0
	}
	return from
}

func (onesVector) PreviousSetBit(from int64) int64 {
	if from < 0 {
		return NotFound
	}
	return from
}

func (onesVector) NextClearBit(int64) int64     { return NotFound }
func (onesVector) PreviousClearBit(int64) int64 { return NotFound }

func (onesVector) Runs() iter.Seq[Run] {
	return func(yield func(Run) bool) {
		yield(Run{Start: 0, End: math.MaxInt64})
	}
}

func (onesVector) AndWith(other BitVector) BitVector { return other }
func (o onesVector) OrWith(BitVector) BitVector      { return o }

func (onesVector) XorWith(BitVector) BitVector {
	panic(fmt.Errorf("bitkit: XorWith on Ones: %w", ErrUnsupported))
}

func (onesVector) AndNotWith(BitVector) BitVector {
	panic(fmt.Errorf("bitkit: AndNotWith on Ones: %w", ErrUnsupported))
}

func (o onesVector) Shift(by int64) BitVector {
	if by == 0 {
		return o
	}
	panic(fmt.Errorf("bitkit: Shift on Ones: %w", ErrUnsupported))
}

func (onesVector) Filter(func(int64) bool) BitVector {
	panic(fmt.Errorf("bitkit: Filter on Ones: %w", ErrUnsupported))
}
