package bitkit

import (
	"iter"
	"math"
)

// The cross-backend algebra glue combines two arbitrary BitVectors by walking
// their canonical run decompositions in lock-step. At every transition point
// (a run boundary of either operand) the combined membership is re-evaluated
// and a range is emitted each time it flips. The receiver of the algebraic
// operation materializes the emitted ranges into its own backend type.

// appendCombined sweeps both operands' run boundaries in ascending order.
// keep decides membership of the result from the operand memberships.
// keep(false, false) must be false; the sweep never emits outside run cover.
func appendCombined(dst RangeAdder, a, b BitVector, keep func(inA, inB bool) bool) {
	nextA, stopA := iter.Pull(a.Runs())
	defer stopA()
	nextB, stopB := iter.Pull(b.Runs())
	defer stopB()

	ra, okA := nextA()
	rb, okB := nextB()

	inA, inB := false, false
	emitting := false
	var emitStart int64

	for okA || okB {
		pos := int64(math.MaxInt64)
		if okA {
			if inA {
				pos = ra.End
			} else {
				pos = ra.Start
			}
		}
		if okB {
			bp := rb.Start
			if inB {
				bp = rb.End
			}
			if bp < pos {
				pos = bp
			}
		}

		if okA {
			if inA && ra.End == pos {
				inA = false
				ra, okA = nextA()
			} else if !inA && ra.Start == pos {
				inA = true
			}
		}
		if okB {
			if inB && rb.End == pos {
				inB = false
				rb, okB = nextB()
			} else if !inB && rb.Start == pos {
				inB = true
			}
		}

		if now := keep(inA, inB); now && !emitting {
			emitting = true
			emitStart = pos
		} else if !now && emitting {
			emitting = false
			dst.AddRange(emitStart, pos)
		}
	}
}

// AppendIntersection emits the ranges of a AND b into dst.
func AppendIntersection(dst RangeAdder, a, b BitVector) {
	appendCombined(dst, a, b, func(inA, inB bool) bool { return inA && inB })
}

// AppendUnion emits the ranges of a OR b into dst.
func AppendUnion(dst RangeAdder, a, b BitVector) {
	appendCombined(dst, a, b, func(inA, inB bool) bool { return inA || inB })
}

// AppendDifference emits the ranges of a AND NOT b into dst.
func AppendDifference(dst RangeAdder, a, b BitVector) {
	appendCombined(dst, a, b, func(inA, inB bool) bool { return inA && !inB })
}

// AppendSymmetricDifference emits the ranges of a XOR b into dst.
func AppendSymmetricDifference(dst RangeAdder, a, b BitVector) {
	appendCombined(dst, a, b, func(inA, inB bool) bool { return inA != inB })
}

// AppendRuns emits every run of v into dst unchanged.
func AppendRuns(dst RangeAdder, v BitVector) {
	for r := range v.Runs() {
		dst.AddRange(r.Start, r.End)
	}
}
