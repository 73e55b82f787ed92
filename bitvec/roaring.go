package bitvec

import "github.com/RoaringBitmap/roaring/v2"

// ToRoaring materializes the set bits into a roaring bitmap. Useful when a
// dense vector needs to flow into roaring-based set algebra.
func (b *BitVector) ToRoaring() *roaring.Bitmap {
	rb := roaring.New()
	b.ForEach(func(i int) bool {
		rb.Add(uint32(i))
		return true
	})
	return rb
}

// FromRoaring creates a BitVector holding the bits of rb. The logical size
// is the maximum contained value + 1, or 0 for an empty bitmap.
func FromRoaring(rb *roaring.Bitmap) *BitVector {
	if rb.IsEmpty() {
		return New(0)
	}
	b := New(int(rb.Maximum()) + 1)
	it := rb.Iterator()
	for it.HasNext() {
		b.Set1(int(it.Next()))
	}
	return b
}
