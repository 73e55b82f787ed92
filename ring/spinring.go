package ring

import (
	"math/bits"
	"runtime"
	"sync/atomic"
)

// SpinRing is a bounded ring buffer guarded by a single CAS spinlock.
//
// It trades the per-slot sequencing of Ring for one critical section, which
// keeps push and pop trivially consistent when a single atomic increment is
// not enough (for example when callers need the head and count observed
// together). Sized critical sections are tiny, so contention is resolved by
// busy-waiting with a scheduler yield.
type SpinRing[T any] struct {
	lock  atomic.Int32
	buf   []T
	mask  int
	head  int // next read position
	count int
}

// NewSpin creates a SpinRing with the given capacity, rounded up to a
// power of two (minimum 2).
func NewSpin[T any](capacity int) *SpinRing[T] {
	if capacity < 2 {
		capacity = 2
	}
	if capacity&(capacity-1) != 0 {
		capacity = 1 << bits.Len(uint(capacity))
	}
	return &SpinRing[T]{
		buf:  make([]T, capacity),
		mask: capacity - 1,
	}
}

func (r *SpinRing[T]) acquire() {
	for !r.lock.CompareAndSwap(0, 1) {
		runtime.Gosched()
	}
}

func (r *SpinRing[T]) release() {
	r.lock.Store(0)
}

// Cap returns the buffer capacity.
func (r *SpinRing[T]) Cap() int { return len(r.buf) }

// Len returns the current element count.
func (r *SpinRing[T]) Len() int {
	r.acquire()
	n := r.count
	r.release()
	return n
}

// TryPush enqueues value, returning false if the buffer is full.
func (r *SpinRing[T]) TryPush(value T) bool {
	r.acquire()
	if r.count == len(r.buf) {
		r.release()
		return false
	}
	r.buf[(r.head+r.count)&r.mask] = value
	r.count++
	r.release()
	return true
}

// TryPop dequeues a value, returning false if the buffer is empty.
func (r *SpinRing[T]) TryPop() (T, bool) {
	r.acquire()
	if r.count == 0 {
		r.release()
		var zero T
		return zero, false
	}
	value := r.buf[r.head]
	var zero T
	r.buf[r.head] = zero
	r.head = (r.head + 1) & r.mask
	r.count--
	r.release()
	return value, true
}
