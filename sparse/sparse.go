package sparse

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/hupe1980/densekit/bitvec"
)

// List is a list of value-or-absent slots stored as a dense value array
// plus a presence bit vector. A logical index translates to its dense
// offset via presence rank, so an absent slot costs one bit instead of a
// boxed value.
//
// Invariant: len(dense) always equals presence.Count(). List is not safe
// for concurrent use.
type List[V any] struct {
	presence *bitvec.BitVector
	dense    []V
	size     int // logical length; may exceed the presence length when trailing slots are absent
}

// New creates a List with capacity hints for logical slots and present
// values.
func New[V any](expectedSize, expectedPresent int) *List[V] {
	if expectedPresent > expectedSize {
		expectedPresent = expectedSize
	}
	if expectedPresent < 0 {
		expectedPresent = 0
	}
	return &List[V]{
		presence: bitvec.New(expectedSize),
		dense:    make([]V, 0, expectedPresent),
	}
}

// Len returns the logical length, counting absent slots.
func (l *List[V]) Len() int { return l.size }

// PresentCount returns the number of present values.
func (l *List[V]) PresentCount() int { return len(l.dense) }

// IsEmpty reports whether the list has no logical slots.
func (l *List[V]) IsEmpty() bool { return l.size == 0 }

// Present reports whether logical index i holds a value. Out-of-range
// indexes read as absent.
func (l *List[V]) Present(i int) bool {
	return i >= 0 && i < l.size && l.presence.Get(i)
}

// Get returns the value at logical index i, or false if the slot is absent
// or out of range.
func (l *List[V]) Get(i int) (V, bool) {
	if !l.Present(i) {
		var zero V
		return zero, false
	}
	return l.dense[l.presence.Rank(i)-1], true
}

// MustGet returns the value at logical index i and panics when i is outside
// the logical length. Use Get for sentinel-returning access.
func (l *List[V]) MustGet(i int) (V, bool) {
	if i < 0 || i >= l.size {
		panic(fmt.Sprintf("sparse: index %d out of range [0, %d)", i, l.size))
	}
	return l.Get(i)
}

// Set stores value at logical index i, extending the logical length if
// needed.
func (l *List[V]) Set(i int, value V) {
	if i < 0 {
		return
	}
	if i >= l.size {
		l.size = i + 1
	}
	rank := l.presence.Rank(i)
	if l.presence.Get(i) {
		l.dense[rank-1] = value
		return
	}
	l.dense = slices.Insert(l.dense, rank, value)
	l.presence.Set1(i)
}

// SetNull marks logical index i absent, extending the logical length if
// needed.
func (l *List[V]) SetNull(i int) {
	if i < 0 {
		return
	}
	if i >= l.size {
		l.size = i + 1
		return
	}
	if !l.presence.Get(i) {
		return
	}
	l.dense = slices.Delete(l.dense, l.presence.Rank(i)-1, l.presence.Rank(i))
	l.presence.Set0(i)
}

// Append adds a present value at the end.
func (l *List[V]) Append(value V) {
	l.presence.Set1(l.size)
	l.dense = append(l.dense, value)
	l.size++
}

// AppendNull adds an absent slot at the end.
func (l *List[V]) AppendNull() {
	l.size++
}

// Swap exchanges the logical slots i and j, covering all four presence
// combinations. Swapping a present/absent pair moves the dense value to
// the other slot's compacted offset and flips both presence bits.
func (l *List[V]) Swap(i, j int) {
	if i == j || i < 0 || j < 0 || i >= l.size || j >= l.size {
		return
	}
	pi, pj := l.presence.Get(i), l.presence.Get(j)
	switch {
	case pi && pj:
		ri, rj := l.presence.Rank(i)-1, l.presence.Rank(j)-1
		l.dense[ri], l.dense[rj] = l.dense[rj], l.dense[ri]
	case pi && !pj:
		l.moveDense(i, j)
	case !pi && pj:
		l.moveDense(j, i)
	}
}

// moveDense relocates the present value at logical index from to the
// absent logical index to.
func (l *List[V]) moveDense(from, to int) {
	value := l.dense[l.presence.Rank(from)-1]
	l.dense = slices.Delete(l.dense, l.presence.Rank(from)-1, l.presence.Rank(from))
	l.presence.Set0(from)
	l.dense = slices.Insert(l.dense, l.presence.Rank(to), value)
	l.presence.Set1(to)
}

// Clear removes all slots.
func (l *List[V]) Clear() {
	l.presence.Clear()
	l.dense = l.dense[:0]
	l.size = 0
}

// Presence exposes the presence bit vector for read-only use (rank/select
// queries, snapshot encoding). Mutating it breaks the dense invariant.
func (l *List[V]) Presence() *bitvec.BitVector { return l.presence }

// Dense exposes the dense value array for read-only use.
func (l *List[V]) Dense() []V { return l.dense }

// All returns an iterator over all logical slots in order; absent slots
// yield ok == false.
func (l *List[V]) All() iter.Seq2[int, V] {
	return func(yield func(int, V) bool) {
		rank := 0
		for i := 0; i < l.size; i++ {
			var value V
			if l.presence.Get(i) {
				value = l.dense[rank]
				rank++
			}
			if !yield(i, value) {
				return
			}
		}
	}
}

// Values returns an iterator over the present slots only.
func (l *List[V]) Values() iter.Seq2[int, V] {
	return func(yield func(int, V) bool) {
		rank := 0
		for i := 0; i < l.size; i++ {
			if !l.presence.Get(i) {
				continue
			}
			if !yield(i, l.dense[rank]) {
				return
			}
			rank++
		}
	}
}

// Clone returns a deep copy with independent backing storage.
func (l *List[V]) Clone() *List[V] {
	dense := make([]V, len(l.dense))
	copy(dense, l.dense)
	return &List[V]{
		presence: l.presence.Clone(),
		dense:    dense,
		size:     l.size,
	}
}

// String renders the slots one per line, "Ø" for absent, for diagnostics.
func (l *List[V]) String() string {
	var sb strings.Builder
	rank := 0
	for i := 0; i < l.size; i++ {
		if l.presence.Get(i) {
			fmt.Fprintf(&sb, "%d -> %v\n", i, l.dense[rank])
			rank++
		} else {
			fmt.Fprintf(&sb, "%d -> Ø\n", i)
		}
	}
	return sb.String()
}

// Equal reports deep value-based equality of two lists.
func Equal[V comparable](a, b *List[V]) bool {
	return EqualFunc(a, b, func(x, y V) bool { return x == y })
}

// EqualFunc reports deep equality of two lists using eq to compare values.
func EqualFunc[V any](a, b *List[V], eq func(x, y V) bool) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.size != b.size || len(a.dense) != len(b.dense) {
		return false
	}
	if !a.presence.Equal(b.presence) {
		return false
	}
	for i := range a.dense {
		if !eq(a.dense[i], b.dense[i]) {
			return false
		}
	}
	return true
}
