package rlebits

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// FromRoaring builds a Runs from a roaring bitmap, accumulating consecutive
// values into runs before normalization.
func FromRoaring(rb *roaring.Bitmap) *Runs {
	b := NewBuilder()
	it := rb.Iterator()
	if !it.HasNext() {
		return Empty
	}

	start := int64(it.Next())
	prev := start
	for it.HasNext() {
		v := int64(it.Next())
		if v == prev+1 {
			prev = v
			continue
		}
		b.AddRange(start, prev+1)
		start, prev = v, v
	}
	b.AddRange(start, prev+1)

	out, _ := b.Build()
	return out
}

// ToRoaring materializes the packed runs into a roaring bitmap.
func (r *Runs) ToRoaring() *roaring.Bitmap {
	rb := roaring.New()
	for i := 0; i < r.used; i++ {
		s, e := r.runAt(i)
		rb.AddRange(uint64(s), uint64(e)+1)
	}
	return rb
}
