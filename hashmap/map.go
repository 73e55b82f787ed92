package hashmap

import (
	"fmt"
	"iter"
	"math"
	"math/bits"
	"slices"
	"strings"

	"github.com/hupe1980/densekit/internal/hash"
)

// Key is the set of primitive key domains the table supports. The zero
// value of K is reserved as the empty-slot sentinel; a real zero key is
// tracked out of band.
type Key interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

const (
	// DefaultLoadFactor matches the classic open-addressing sweet spot.
	DefaultLoadFactor = 0.75

	minCapacity = 4
)

// TokenNone is returned by the cursor protocol when iteration is exhausted
// and by token lookups on a miss.
const TokenNone = -1

// Option configures table construction.
type Option func(*config)

type config struct {
	loadFactor float64
}

// WithLoadFactor sets the load factor in (0.01, 0.99]. Values outside the
// range fall back to DefaultLoadFactor.
func WithLoadFactor(lf float64) Option {
	return func(c *config) {
		if lf > 0.01 && lf <= 0.99 {
			c.loadFactor = lf
		}
	}
}

// bitsOf returns the raw bits of a primitive key for hashing. Floats hash
// by bit pattern so that distinct payloads spread; other domains convert
// losslessly.
func bitsOf[K Key](key K) uint64 {
	switch v := any(key).(type) {
	case float32:
		return uint64(math.Float32bits(v))
	case float64:
		return math.Float64bits(v)
	default:
		return uint64(key)
	}
}

// keyEqual compares a stored key against a probe key. Floats compare by
// bit pattern so a NaN key stays locatable after insertion instead of
// failing every probe match.
func keyEqual[K Key](a, b K) bool {
	switch any(a).(type) {
	case float32, float64:
		return bitsOf(a) == bitsOf(b)
	default:
		return a == b
	}
}

// Map is an open-addressing hash table with linear probing and
// backward-shift (tombstone-free) deletion.
//
// The zero value of K marks an empty slot, so a real zero key and the
// out-of-band null key (for boxed-key callers) live in dedicated fields
// beside the array. Map is not safe for concurrent use.
type Map[K Key, V any] struct {
	keys   []K
	values []V

	mask       int
	assigned   int
	resizeAt   int
	loadFactor float64

	hasZeroKey bool
	zeroValue  V
	hasNullKey bool
	nullValue  V
}

// New creates a Map sized so that expected entries fit without rehashing.
func New[K Key, V any](expected int, opts ...Option) *Map[K, V] {
	cfg := config{loadFactor: DefaultLoadFactor}
	for _, opt := range opts {
		opt(&cfg)
	}
	m := &Map[K, V]{loadFactor: cfg.loadFactor}
	m.allocate(capacityFor(expected, cfg.loadFactor))
	return m
}

// capacityFor returns the minimal power-of-two capacity that holds expected
// entries under the given load factor.
func capacityFor(expected int, loadFactor float64) int {
	if expected < 0 {
		expected = 0
	}
	need := int(math.Ceil(float64(expected) / loadFactor))
	if need < minCapacity {
		need = minCapacity
	}
	if need&(need-1) != 0 {
		need = 1 << bits.Len(uint(need))
	}
	return need
}

// allocate replaces the backing arrays with ones of newCapacity (a power of
// two) and rehashes every live array entry. Zero and null keys stay in
// their out-of-band fields and are never rehashed.
func (m *Map[K, V]) allocate(newCapacity int) {
	oldKeys, oldValues := m.keys, m.values

	m.keys = make([]K, newCapacity)
	m.values = make([]V, newCapacity)
	m.mask = newCapacity - 1
	m.resizeAt = int(math.Ceil(float64(newCapacity) * m.loadFactor))
	if m.resizeAt > newCapacity-1 {
		m.resizeAt = newCapacity - 1
	}

	var zero K
	for i, key := range oldKeys {
		if key == zero {
			continue
		}
		// Raw linear-probe insertion: keys are known distinct and the new
		// table is large enough, so no resize check is needed here.
		slot := m.hashSlot(key)
		for m.keys[slot] != zero {
			slot = (slot + 1) & m.mask
		}
		m.keys[slot] = key
		m.values[slot] = oldValues[i]
	}
}

func (m *Map[K, V]) hashSlot(key K) int {
	return int(hash.Mix64(bitsOf(key))) & m.mask
}

// Len returns the number of entries, including zero-key and null-key
// entries.
func (m *Map[K, V]) Len() int {
	n := m.assigned
	if m.hasZeroKey {
		n++
	}
	if m.hasNullKey {
		n++
	}
	return n
}

// IsEmpty reports whether the map has no entries.
func (m *Map[K, V]) IsEmpty() bool { return m.Len() == 0 }

// Capacity returns the current slot count of the backing array.
func (m *Map[K, V]) Capacity() int { return len(m.keys) }

// Put stores value under key and reports whether a prior value existed.
func (m *Map[K, V]) Put(key K, value V) bool {
	var zero K
	if key == zero {
		existed := m.hasZeroKey
		m.hasZeroKey = true
		m.zeroValue = value
		return existed
	}

	slot := m.hashSlot(key)
	for m.keys[slot] != zero {
		if keyEqual(m.keys[slot], key) {
			m.values[slot] = value
			return true
		}
		slot = (slot + 1) & m.mask
	}

	m.keys[slot] = key
	m.values[slot] = value
	m.assigned++
	if m.assigned == m.resizeAt {
		m.allocate(2 * len(m.keys))
	}
	return false
}

// Get returns the value stored under key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	tok := m.Token(key)
	if tok == TokenNone {
		var zeroV V
		return zeroV, false
	}
	return m.ValueAt(tok), true
}

// Contains reports whether key has an entry.
func (m *Map[K, V]) Contains(key K) bool {
	return m.Token(key) != TokenNone
}

// Token returns the slot token for key, or TokenNone on a miss. Tokens stay
// valid until the next mutation.
func (m *Map[K, V]) Token(key K) int {
	var zero K
	if key == zero {
		if m.hasZeroKey {
			return m.zeroToken()
		}
		return TokenNone
	}
	slot := m.hashSlot(key)
	for m.keys[slot] != zero {
		if keyEqual(m.keys[slot], key) {
			return slot
		}
		slot = (slot + 1) & m.mask
	}
	return TokenNone
}

// Remove deletes the entry for key and reports whether it existed. Array
// entries are removed with backward-shift deletion, keeping probe chains
// intact without tombstones.
func (m *Map[K, V]) Remove(key K) bool {
	var zero K
	var zeroV V
	if key == zero {
		existed := m.hasZeroKey
		m.hasZeroKey = false
		m.zeroValue = zeroV
		return existed
	}

	slot := m.hashSlot(key)
	for m.keys[slot] != zero {
		if keyEqual(m.keys[slot], key) {
			m.shiftConflictingKeys(slot)
			return true
		}
		slot = (slot + 1) & m.mask
	}
	return false
}

// shiftConflictingKeys closes the gap left at gapSlot by moving any entry
// whose probe distance allows it, then vacates the final slot.
func (m *Map[K, V]) shiftConflictingKeys(gapSlot int) {
	var zero K
	var zeroV V
	distance := 0
	for {
		distance++
		slot := (gapSlot + distance) & m.mask
		existing := m.keys[slot]
		if existing == zero {
			break
		}
		// How far has the candidate already probed from its ideal slot?
		if ((slot - m.hashSlot(existing)) & m.mask) >= distance {
			m.keys[gapSlot] = existing
			m.values[gapSlot] = m.values[slot]
			gapSlot = slot
			distance = 0
		}
	}
	m.keys[gapSlot] = zero
	m.values[gapSlot] = zeroV
	m.assigned--
}

// PutNull stores value under the null key and reports whether a prior
// value existed.
func (m *Map[K, V]) PutNull(value V) bool {
	existed := m.hasNullKey
	m.hasNullKey = true
	m.nullValue = value
	return existed
}

// GetNull returns the value stored under the null key.
func (m *Map[K, V]) GetNull() (V, bool) {
	if !m.hasNullKey {
		var zeroV V
		return zeroV, false
	}
	return m.nullValue, true
}

// ContainsNull reports whether the null key has an entry.
func (m *Map[K, V]) ContainsNull() bool { return m.hasNullKey }

// RemoveNull deletes the null-key entry and reports whether it existed.
func (m *Map[K, V]) RemoveNull() bool {
	existed := m.hasNullKey
	var zeroV V
	m.hasNullKey = false
	m.nullValue = zeroV
	return existed
}

// Clear removes all entries, keeping the current capacity.
func (m *Map[K, V]) Clear() {
	var zero K
	var zeroV V
	for i := range m.keys {
		m.keys[i] = zero
		m.values[i] = zeroV
	}
	m.assigned = 0
	m.hasZeroKey = false
	m.zeroValue = zeroV
	m.hasNullKey = false
	m.nullValue = zeroV
}

// Token layout: array slots use their index; the null and zero entries get
// the two tokens just past the array so they are reported first.
func (m *Map[K, V]) nullToken() int { return len(m.keys) + 1 }
func (m *Map[K, V]) zeroToken() int { return len(m.keys) }

// IsNullToken reports whether tok addresses the null-key entry.
func (m *Map[K, V]) IsNullToken(tok int) bool { return tok == m.nullToken() }

// FirstToken starts a cursor pass. Null-key and zero-key entries are
// reported first, then array slots in storage order.
func (m *Map[K, V]) FirstToken() int {
	if m.hasNullKey {
		return m.nullToken()
	}
	if m.hasZeroKey {
		return m.zeroToken()
	}
	return m.nextSlotToken(0)
}

// NextToken advances the cursor, returning TokenNone at the end.
func (m *Map[K, V]) NextToken(tok int) int {
	switch {
	case tok == m.nullToken():
		if m.hasZeroKey {
			return m.zeroToken()
		}
		return m.nextSlotToken(0)
	case tok == m.zeroToken():
		return m.nextSlotToken(0)
	default:
		return m.nextSlotToken(tok + 1)
	}
}

func (m *Map[K, V]) nextSlotToken(from int) int {
	var zero K
	for slot := from; slot < len(m.keys); slot++ {
		if m.keys[slot] != zero {
			return slot
		}
	}
	return TokenNone
}

// KeyAt returns the key addressed by tok. The null token yields the zero
// value of K; use IsNullToken to tell the two apart.
func (m *Map[K, V]) KeyAt(tok int) K {
	if tok >= len(m.keys) {
		var zero K
		return zero
	}
	return m.keys[tok]
}

// ValueAt returns the value addressed by tok.
func (m *Map[K, V]) ValueAt(tok int) V {
	switch {
	case tok == m.nullToken():
		return m.nullValue
	case tok == m.zeroToken():
		return m.zeroValue
	default:
		return m.values[tok]
	}
}

// SetValueAt replaces the value addressed by tok.
func (m *Map[K, V]) SetValueAt(tok int, value V) {
	switch {
	case tok == m.nullToken():
		m.nullValue = value
	case tok == m.zeroToken():
		m.zeroValue = value
	default:
		m.values[tok] = value
	}
}

// All returns an iterator over the entries in cursor order. The null-key
// entry, if present, is yielded under the zero value of K.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for tok := m.FirstToken(); tok != TokenNone; tok = m.NextToken(tok) {
			if !yield(m.KeyAt(tok), m.ValueAt(tok)) {
				return
			}
		}
	}
}

// Keys returns the keys in cursor order, excluding the null key.
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, 0, m.Len())
	if m.hasZeroKey {
		var zero K
		keys = append(keys, zero)
	}
	var zero K
	for _, key := range m.keys {
		if key != zero {
			keys = append(keys, key)
		}
	}
	return keys
}

// SortedKeys returns the keys ordered by cmp, excluding the null key.
// Iteration order is otherwise unspecified, so deterministic serialization
// goes through this path.
func (m *Map[K, V]) SortedKeys(cmp func(a, b K) int) []K {
	keys := m.Keys()
	slices.SortFunc(keys, cmp)
	return keys
}

// Clone returns a deep copy with independent backing arrays.
func (m *Map[K, V]) Clone() *Map[K, V] {
	c := *m
	c.keys = make([]K, len(m.keys))
	copy(c.keys, m.keys)
	c.values = make([]V, len(m.values))
	copy(c.values, m.values)
	return &c
}

// String renders the entries as "key -> value" lines for diagnostics. The
// null-key entry renders as "null -> value".
func (m *Map[K, V]) String() string {
	var sb strings.Builder
	for tok := m.FirstToken(); tok != TokenNone; tok = m.NextToken(tok) {
		if m.IsNullToken(tok) {
			fmt.Fprintf(&sb, "null -> %v\n", m.ValueAt(tok))
			continue
		}
		fmt.Fprintf(&sb, "%v -> %v\n", m.KeyAt(tok), m.ValueAt(tok))
	}
	return sb.String()
}

// Equal reports deep value-based equality of two maps.
func Equal[K Key, V comparable](a, b *Map[K, V]) bool {
	return EqualFunc(a, b, func(x, y V) bool { return x == y })
}

// EqualFunc reports deep equality of two maps using eq to compare values.
func EqualFunc[K Key, V any](a, b *Map[K, V], eq func(x, y V) bool) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.Len() != b.Len() {
		return false
	}
	if a.hasNullKey != b.hasNullKey {
		return false
	}
	if a.hasNullKey && !eq(a.nullValue, b.nullValue) {
		return false
	}
	for tok := a.FirstToken(); tok != TokenNone; tok = a.NextToken(tok) {
		if a.IsNullToken(tok) {
			continue
		}
		other, ok := b.Get(a.KeyAt(tok))
		if !ok || !eq(a.ValueAt(tok), other) {
			return false
		}
	}
	return true
}

// nullEntrySeed separates the null entry's hash contribution from the
// commutative per-key sum: real entries are summed, the null entry folds
// in afterwards with one more avalanche round.
const nullEntrySeed = 0x9e3779b97f4a7c15

// HashMap returns an order-independent structural hash: per-entry hashes
// are combined commutatively so that equal maps hash equal regardless of
// slot layout.
func HashMap[K Key, V comparable](m *Map[K, V]) uint64 {
	var h uint64
	for tok := m.FirstToken(); tok != TokenNone; tok = m.NextToken(tok) {
		if m.IsNullToken(tok) {
			continue
		}
		kh := hash.Mix64(bitsOf(m.KeyAt(tok)))
		h += hash.Mix64(kh ^ comparableHash(m.ValueAt(tok)))
	}
	if nv, ok := m.GetNull(); ok {
		h = hash.Mix64(h ^ nullEntrySeed ^ comparableHash(nv))
	}
	return h + uint64(m.Len())
}
