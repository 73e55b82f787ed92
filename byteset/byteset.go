package byteset

import (
	"iter"
	"math/bits"
	"strconv"
	"strings"

	"github.com/hupe1980/densekit/internal/hash"
)

const numWords = 4 // 256 bits, one per possible byte value

// Set is a fixed 256-slot membership set over the byte key domain, with an
// out-of-band null member for boxed-key use. The key domain is small and
// dense enough that hashing would be wasted work: membership is one word
// probe, rank is at most four popcounts.
//
// Set is not safe for concurrent use.
type Set struct {
	words   [numWords]uint64
	count   int
	hasNull bool
}

// New creates an empty Set.
func New() *Set {
	return &Set{}
}

// Of creates a Set holding the given keys.
func Of(keys ...byte) *Set {
	s := New()
	for _, k := range keys {
		s.Add(k)
	}
	return s
}

// Add inserts key and reports whether the set changed.
func (s *Set) Add(key byte) bool {
	w, mask := key>>6, uint64(1)<<(key&63)
	if s.words[w]&mask != 0 {
		return false
	}
	s.words[w] |= mask
	s.count++
	return true
}

// Remove deletes key and reports whether the set changed.
func (s *Set) Remove(key byte) bool {
	w, mask := key>>6, uint64(1)<<(key&63)
	if s.words[w]&mask == 0 {
		return false
	}
	s.words[w] &^= mask
	s.count--
	return true
}

// Contains reports whether key is a member.
func (s *Set) Contains(key byte) bool {
	return s.words[key>>6]&(uint64(1)<<(key&63)) != 0
}

// AddNull inserts the null member and reports whether the set changed.
func (s *Set) AddNull() bool {
	if s.hasNull {
		return false
	}
	s.hasNull = true
	return true
}

// RemoveNull deletes the null member and reports whether the set changed.
func (s *Set) RemoveNull() bool {
	if !s.hasNull {
		return false
	}
	s.hasNull = false
	return true
}

// ContainsNull reports whether the null member is present.
func (s *Set) ContainsNull() bool { return s.hasNull }

// Rank returns position+1 (1-based, by ascending key order) if key is
// present, else the bitwise complement of the insertion point. The sign
// doubles as the membership test, so dependent containers can locate a
// value slot without a second lookup.
func (s *Set) Rank(key byte) int {
	w := int(key >> 6)
	rank := 0
	for i := 0; i < w; i++ {
		rank += bits.OnesCount64(s.words[i])
	}
	mask := (uint64(1) << (key & 63)) - 1
	rank += bits.OnesCount64(s.words[w] & mask)
	if s.Contains(key) {
		return rank + 1
	}
	return ^rank
}

// Len returns the number of members, excluding the null member.
func (s *Set) Len() int { return s.count }

// IsEmpty reports whether the set has no members, including null.
func (s *Set) IsEmpty() bool { return s.count == 0 && !s.hasNull }

// Clear removes all members, including null.
func (s *Set) Clear() {
	s.words = [numWords]uint64{}
	s.count = 0
	s.hasNull = false
}

// Next returns the smallest member >= key, or -1 if none.
func (s *Set) Next(key byte) int {
	w := int(key >> 6)
	word := s.words[w] &^ ((uint64(1) << (key & 63)) - 1)
	for {
		if word != 0 {
			return w*64 + bits.TrailingZeros64(word)
		}
		w++
		if w >= numWords {
			return -1
		}
		word = s.words[w]
	}
}

// Prev returns the largest member <= key, or -1 if none.
func (s *Set) Prev(key byte) int {
	w := int(key >> 6)
	word := s.words[w] & (^uint64(0) >> (63 - key&63))
	for {
		if word != 0 {
			return w*64 + 63 - bits.LeadingZeros64(word)
		}
		w--
		if w < 0 {
			return -1
		}
		word = s.words[w]
	}
}

// All returns an iterator over the members in ascending numeric order.
// The null member is not yielded.
func (s *Set) All() iter.Seq[byte] {
	return func(yield func(byte) bool) {
		for w := 0; w < numWords; w++ {
			word := s.words[w]
			for word != 0 {
				if !yield(byte(w*64 + bits.TrailingZeros64(word))) {
					return
				}
				word &= word - 1
			}
		}
	}
}

// Clone returns an independent copy.
func (s *Set) Clone() *Set {
	c := *s
	return &c
}

// Equal reports value-based equality, including the null member.
func (s *Set) Equal(other *Set) bool {
	if s == other {
		return true
	}
	if other == nil {
		return false
	}
	return s.words == other.words && s.hasNull == other.hasNull
}

// Hash returns a structural hash. Membership order cannot differ, so the
// hash is simply a mix over the fixed words.
func (s *Set) Hash() uint64 {
	h := uint64(numWords)
	for _, w := range s.words {
		h = hash.Mix64(h ^ w)
	}
	if s.hasNull {
		h = hash.Mix64(h ^ 1)
	}
	return h
}

// String renders the members as "{null, 1, 5, ...}" for diagnostics.
func (s *Set) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	if s.hasNull {
		sb.WriteString("null")
		first = false
	}
	for k := range s.All() {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.WriteString(strconv.Itoa(int(k)))
	}
	sb.WriteByte('}')
	return sb.String()
}
