package hashmap

import (
	"fmt"
	"iter"
	"strings"

	"github.com/hupe1980/densekit/internal/hash"
)

// Set is a key-only view over the same open-addressing engine as Map.
type Set[K Key] struct {
	m *Map[K, struct{}]
}

// NewSet creates a Set sized so that expected members fit without
// rehashing.
func NewSet[K Key](expected int, opts ...Option) *Set[K] {
	return &Set[K]{m: New[K, struct{}](expected, opts...)}
}

// SetOf creates a Set holding the given keys.
func SetOf[K Key](keys ...K) *Set[K] {
	s := NewSet[K](len(keys))
	for _, k := range keys {
		s.Add(k)
	}
	return s
}

// Add inserts key and reports whether the set changed.
func (s *Set[K]) Add(key K) bool {
	return !s.m.Put(key, struct{}{})
}

// Remove deletes key and reports whether the set changed.
func (s *Set[K]) Remove(key K) bool { return s.m.Remove(key) }

// Contains reports whether key is a member.
func (s *Set[K]) Contains(key K) bool { return s.m.Contains(key) }

// AddNull inserts the null member and reports whether the set changed.
func (s *Set[K]) AddNull() bool { return !s.m.PutNull(struct{}{}) }

// RemoveNull deletes the null member and reports whether the set changed.
func (s *Set[K]) RemoveNull() bool { return s.m.RemoveNull() }

// ContainsNull reports whether the null member is present.
func (s *Set[K]) ContainsNull() bool { return s.m.ContainsNull() }

// Len returns the number of members.
func (s *Set[K]) Len() int { return s.m.Len() }

// IsEmpty reports whether the set has no members.
func (s *Set[K]) IsEmpty() bool { return s.m.IsEmpty() }

// Clear removes all members, keeping the current capacity.
func (s *Set[K]) Clear() { s.m.Clear() }

// FirstToken starts a cursor pass; see Map.FirstToken.
func (s *Set[K]) FirstToken() int { return s.m.FirstToken() }

// NextToken advances the cursor; see Map.NextToken.
func (s *Set[K]) NextToken(tok int) int { return s.m.NextToken(tok) }

// KeyAt returns the member addressed by tok.
func (s *Set[K]) KeyAt(tok int) K { return s.m.KeyAt(tok) }

// IsNullToken reports whether tok addresses the null member.
func (s *Set[K]) IsNullToken(tok int) bool { return s.m.IsNullToken(tok) }

// All returns an iterator over the members in cursor order. The null
// member, if present, is yielded as the zero value of K.
func (s *Set[K]) All() iter.Seq[K] {
	return func(yield func(K) bool) {
		for tok := s.FirstToken(); tok != TokenNone; tok = s.NextToken(tok) {
			if !yield(s.KeyAt(tok)) {
				return
			}
		}
	}
}

// Clone returns a deep copy with independent backing storage.
func (s *Set[K]) Clone() *Set[K] {
	return &Set[K]{m: s.m.Clone()}
}

// Equal reports value-based equality, including null membership.
func (s *Set[K]) Equal(other *Set[K]) bool {
	if s == other {
		return true
	}
	if other == nil {
		return false
	}
	return EqualFunc(s.m, other.m, func(struct{}, struct{}) bool { return true })
}

// Hash returns an order-independent structural hash over the members. The
// null member folds in after the sum so it cannot collide with a real key.
func (s *Set[K]) Hash() uint64 {
	var h uint64
	for tok := s.FirstToken(); tok != TokenNone; tok = s.NextToken(tok) {
		if s.IsNullToken(tok) {
			continue
		}
		h += hash.Mix64(bitsOf(s.KeyAt(tok)))
	}
	if s.ContainsNull() {
		h = hash.Mix64(h ^ nullEntrySeed)
	}
	return h + uint64(s.Len())
}

// String renders the members as "{a, b, ...}" for diagnostics.
func (s *Set[K]) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	for tok := s.FirstToken(); tok != TokenNone; tok = s.NextToken(tok) {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		if s.IsNullToken(tok) {
			sb.WriteString("null")
			continue
		}
		fmt.Fprintf(&sb, "%v", s.KeyAt(tok))
	}
	sb.WriteByte('}')
	return sb.String()
}
