package ring

import (
	"math/bits"
	"sync/atomic"
)

// Ring is a bounded, lock-free MPMC ring buffer.
//
// Each slot carries a sequence number that encodes which cursor epoch may
// touch it, so the capacity check happens atomically before a cursor is
// claimed: a producer CASes the enqueue cursor only after observing a slot
// whose sequence says it is free, and symmetrically for consumers. TryPush
// and TryPop never block; they report full/empty instead.
type Ring[T any] struct {
	slots []slot[T]
	mask  uint64

	_       [7]uint64 // keep the hot cursors on separate cache lines
	enqueue atomic.Uint64
	_       [7]uint64
	dequeue atomic.Uint64
}

type slot[T any] struct {
	sequence atomic.Uint64
	value    T
}

// New creates a Ring with the given capacity, rounded up to a power of
// two (minimum 2).
func New[T any](capacity int) *Ring[T] {
	if capacity < 2 {
		capacity = 2
	}
	if capacity&(capacity-1) != 0 {
		capacity = 1 << bits.Len(uint(capacity))
	}
	r := &Ring[T]{
		slots: make([]slot[T], capacity),
		mask:  uint64(capacity - 1),
	}
	for i := range r.slots {
		r.slots[i].sequence.Store(uint64(i))
	}
	return r
}

// Cap returns the buffer capacity.
func (r *Ring[T]) Cap() int { return len(r.slots) }

// Len returns a point-in-time estimate of the element count. Under
// concurrent use it is only an estimate.
func (r *Ring[T]) Len() int {
	d := r.enqueue.Load() - r.dequeue.Load()
	if d > uint64(len(r.slots)) {
		return len(r.slots)
	}
	return int(d)
}

// TryPush enqueues value, returning false if the buffer is full.
func (r *Ring[T]) TryPush(value T) bool {
	pos := r.enqueue.Load()
	for {
		s := &r.slots[pos&r.mask]
		seq := s.sequence.Load()
		switch {
		case seq == pos:
			// Slot free for this epoch: claim the cursor.
			if r.enqueue.CompareAndSwap(pos, pos+1) {
				s.value = value
				s.sequence.Store(pos + 1)
				return true
			}
			pos = r.enqueue.Load()
		case seq < pos:
			// Slot still holds an unconsumed value from a full lap.
			return false
		default:
			// Another producer advanced past us; retry at the new cursor.
			pos = r.enqueue.Load()
		}
	}
}

// TryPop dequeues a value, returning false if the buffer is empty.
func (r *Ring[T]) TryPop() (T, bool) {
	pos := r.dequeue.Load()
	for {
		s := &r.slots[pos&r.mask]
		seq := s.sequence.Load()
		switch {
		case seq == pos+1:
			// Slot published for this epoch: claim the cursor.
			if r.dequeue.CompareAndSwap(pos, pos+1) {
				value := s.value
				var zero T
				s.value = zero
				s.sequence.Store(pos + r.mask + 1)
				return value, true
			}
			pos = r.dequeue.Load()
		case seq <= pos:
			// Producer has not published this slot yet.
			var zero T
			return zero, false
		default:
			pos = r.dequeue.Load()
		}
	}
}
