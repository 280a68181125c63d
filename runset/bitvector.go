package runset

import (
	"github.com/hupe1980/bitkit"
)

var _ bitkit.Mutable = (*Set64)(nil)

// And intersects other into the receiver in place.
func (s *Set64) And(other bitkit.BitVector) error {
	// Materialize the bits to drop before mutating; Runs reads the live
	// tree.
	var toClear runList
	bitkit.AppendDifference(&toClear, s, other)
	for _, r := range toClear {
		if err := s.ClearRange(r.Start, r.End); err != nil {
			return err
		}
	}
	return nil
}

// Or unions other into the receiver in place.
func (s *Set64) Or(other bitkit.BitVector) error {
	var toSet []bitkit.Run
	for r := range other.Runs() {
		toSet = append(toSet, r)
	}
	for _, r := range toSet {
		if err := s.SetRange(r.Start, r.End); err != nil {
			return err
		}
	}
	return nil
}

// Xor replaces the receiver's contents with the symmetric difference.
func (s *Set64) Xor(other bitkit.BitVector) error {
	var result runList
	bitkit.AppendSymmetricDifference(&result, s, other)
	s.runs = newTree()
	s.card = 0
	for _, r := range result {
		s.setRange(r.Start, r.End)
	}
	return nil
}

// AndNot clears the receiver's bits wherever other is set.
func (s *Set64) AndNot(other bitkit.BitVector) error {
	var toClear []bitkit.Run
	for r := range other.Runs() {
		toClear = append(toClear, r)
	}
	for _, r := range toClear {
		if err := s.ClearRange(r.Start, r.End); err != nil {
			return err
		}
	}
	return nil
}

// AndWith returns a new Set64 holding the intersection.
func (s *Set64) AndWith(other bitkit.BitVector) bitkit.BitVector {
	out := New()
	bitkit.AppendIntersection(out, s, other)
	return out
}

// OrWith returns a new Set64 holding the union.
func (s *Set64) OrWith(other bitkit.BitVector) bitkit.BitVector {
	out := New()
	bitkit.AppendUnion(out, s, other)
	return out
}

// XorWith returns a new Set64 holding the symmetric difference.
func (s *Set64) XorWith(other bitkit.BitVector) bitkit.BitVector {
	out := New()
	bitkit.AppendSymmetricDifference(out, s, other)
	return out
}

// AndNotWith returns a new Set64 holding the difference.
func (s *Set64) AndNotWith(other bitkit.BitVector) bitkit.BitVector {
	out := New()
	bitkit.AppendDifference(out, s, other)
	return out
}

// Shift returns a new Set64 with every run translated by `by`.
func (s *Set64) Shift(by int64) bitkit.BitVector {
	out := New()
	s.runs.Scan(func(r bitkit.Run) bool {
		out.AddRange(r.Start+by, r.End+by)
		return true
	})
	return out
}

// Filter returns a new Set64 retaining only the set bits accepted by pred.
// The cost is proportional to the number of set bits, not runs.
func (s *Set64) Filter(pred func(index int64) bool) bitkit.BitVector {
	out := New()
	bitkit.ForEach(s, func(i int64) bool {
		if pred(i) {
			out.AddRange(i, i+1)
		}
		return true
	})
	return out
}

// runList adapts a []bitkit.Run to bitkit.RangeAdder.
type runList []bitkit.Run

func (l *runList) AddRange(start, end int64) {
	*l = append(*l, bitkit.Run{Start: start, End: end})
}
