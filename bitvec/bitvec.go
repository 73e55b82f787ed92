package bitvec

import (
	"encoding/binary"
	"io"
	"iter"
	"math/bits"
	"strconv"
	"strings"

	"github.com/hupe1980/densekit/internal/hash"
)

const wordBits = 64

// BitVector is a packed, growable bit vector with O(word) rank/select.
//
// Reads past the backing storage return zero bits; writes grow the backing
// storage on demand. BitVector is not safe for concurrent use.
type BitVector struct {
	words []uint64
	size  int // logical length in bits

	// used is the index of the highest non-zero word + 1. It is cached and
	// recomputed lazily: clearing bits only marks it dirty.
	used  int
	dirty bool
}

// New creates a BitVector with the given logical size in bits.
func New(size int) *BitVector {
	if size < 0 {
		size = 0
	}
	return &BitVector{
		words: make([]uint64, (size+wordBits-1)/wordBits),
		size:  size,
	}
}

// FromWords creates a BitVector that takes ownership of words.
// The logical size is len(words)*64.
func FromWords(words []uint64) *BitVector {
	b := &BitVector{
		words: words,
		size:  len(words) * wordBits,
		dirty: true,
	}
	return b
}

// Len returns the logical size in bits.
func (b *BitVector) Len() int { return b.size }

// usedWords returns the number of words up to and including the highest
// non-zero word, recomputing the cached value if dirty.
func (b *BitVector) usedWords() int {
	if b.dirty {
		u := len(b.words)
		for u > 0 && b.words[u-1] == 0 {
			u--
		}
		b.used = u
		b.dirty = false
	}
	return b.used
}

// grow ensures the backing array covers bit index i and extends the logical
// size to include it.
func (b *BitVector) grow(i int) {
	if i >= b.size {
		b.size = i + 1
	}
	w := i / wordBits
	if w < len(b.words) {
		return
	}
	newLen := 2 * len(b.words)
	if newLen <= w {
		newLen = w + 1
	}
	words := make([]uint64, newLen)
	copy(words, b.words)
	b.words = words
}

// Get reports whether bit i is set. Out-of-range indexes read as false.
func (b *BitVector) Get(i int) bool {
	if i < 0 {
		return false
	}
	w := i / wordBits
	if w >= len(b.words) {
		return false
	}
	return b.words[w]&(1<<(i%wordBits)) != 0
}

// Set1 sets bit i, growing the vector if needed.
func (b *BitVector) Set1(i int) {
	if i < 0 {
		return
	}
	b.grow(i)
	w := i / wordBits
	b.words[w] |= 1 << (i % wordBits)
	if !b.dirty && w+1 > b.used {
		b.used = w + 1
	}
}

// Set0 clears bit i. Clearing past the backing storage is a no-op, but the
// logical size still extends to cover i.
func (b *BitVector) Set0(i int) {
	if i < 0 {
		return
	}
	if i >= b.size {
		b.size = i + 1
	}
	w := i / wordBits
	if w >= len(b.words) {
		return
	}
	b.words[w] &^= 1 << (i % wordBits)
	if !b.dirty && w == b.used-1 && b.words[w] == 0 {
		b.dirty = true
	}
}

// Flip inverts bit i, growing the vector if needed.
func (b *BitVector) Flip(i int) {
	if i < 0 {
		return
	}
	b.grow(i)
	w := i / wordBits
	b.words[w] ^= 1 << (i % wordBits)
	b.dirty = true
}

// rangeMasks returns the word span [fw, lw] and the partial masks for the
// half-open bit range [from, to).
func rangeMasks(from, to int) (fw, lw int, firstMask, lastMask uint64) {
	fw = from / wordBits
	lw = (to - 1) / wordBits
	firstMask = ^uint64(0) << (from % wordBits)
	lastMask = ^uint64(0) >> (wordBits - 1 - (to-1)%wordBits)
	return fw, lw, firstMask, lastMask
}

// Set1Range sets all bits in the half-open range [from, to).
func (b *BitVector) Set1Range(from, to int) {
	if from < 0 {
		from = 0
	}
	if to <= from {
		return
	}
	b.grow(to - 1)
	fw, lw, firstMask, lastMask := rangeMasks(from, to)
	if fw == lw {
		b.words[fw] |= firstMask & lastMask
	} else {
		b.words[fw] |= firstMask
		for w := fw + 1; w < lw; w++ {
			b.words[w] = ^uint64(0)
		}
		b.words[lw] |= lastMask
	}
	if !b.dirty && lw+1 > b.used {
		b.used = lw + 1
	}
}

// Set0Range clears all bits in the half-open range [from, to).
func (b *BitVector) Set0Range(from, to int) {
	if from < 0 {
		from = 0
	}
	if to <= from {
		return
	}
	if to > b.size {
		b.size = to
	}
	if last := len(b.words) * wordBits; to > last {
		to = last
	}
	if to <= from {
		return
	}
	fw, lw, firstMask, lastMask := rangeMasks(from, to)
	if fw == lw {
		b.words[fw] &^= firstMask & lastMask
	} else {
		b.words[fw] &^= firstMask
		for w := fw + 1; w < lw; w++ {
			b.words[w] = 0
		}
		b.words[lw] &^= lastMask
	}
	b.dirty = true
}

// FlipRange inverts all bits in the half-open range [from, to).
func (b *BitVector) FlipRange(from, to int) {
	if from < 0 {
		from = 0
	}
	if to <= from {
		return
	}
	b.grow(to - 1)
	fw, lw, firstMask, lastMask := rangeMasks(from, to)
	if fw == lw {
		b.words[fw] ^= firstMask & lastMask
	} else {
		b.words[fw] ^= firstMask
		for w := fw + 1; w < lw; w++ {
			b.words[w] = ^b.words[w]
		}
		b.words[lw] ^= lastMask
	}
	b.dirty = true
}

// Count returns the number of set bits.
func (b *BitVector) Count() int {
	count := 0
	for _, w := range b.words[:b.usedWords()] {
		count += bits.OnesCount64(w)
	}
	return count
}

// Rank returns the number of set bits in [0, i], inclusive.
func (b *BitVector) Rank(i int) int {
	if i < 0 {
		return 0
	}
	used := b.usedWords()
	w := i / wordBits
	if w >= used {
		w = used
	}
	rank := 0
	for _, word := range b.words[:w] {
		rank += bits.OnesCount64(word)
	}
	if w < used {
		mask := ^uint64(0) >> (wordBits - 1 - i%wordBits)
		rank += bits.OnesCount64(b.words[w] & mask)
	}
	return rank
}

// Bit returns the index of the n-th set bit (1-based cardinality), or -1 if
// fewer than cardinality bits are set. It is the select counterpart to Rank:
// Rank(Bit(k)) == k for every valid k.
func (b *BitVector) Bit(cardinality int) int {
	if cardinality < 1 {
		return -1
	}
	remaining := cardinality
	for w, word := range b.words[:b.usedWords()] {
		pop := bits.OnesCount64(word)
		if pop < remaining {
			remaining -= pop
			continue
		}
		for word != 0 {
			remaining--
			if remaining == 0 {
				return w*wordBits + bits.TrailingZeros64(word)
			}
			word &= word - 1
		}
	}
	return -1
}

// Next1 returns the index of the nearest set bit at or after i, or -1.
func (b *BitVector) Next1(i int) int {
	if i < 0 {
		i = 0
	}
	used := b.usedWords()
	w := i / wordBits
	if w >= used {
		return -1
	}
	word := b.words[w] &^ ((1 << (i % wordBits)) - 1)
	for {
		if word != 0 {
			return w*wordBits + bits.TrailingZeros64(word)
		}
		w++
		if w >= used {
			return -1
		}
		word = b.words[w]
	}
}

// Prev1 returns the index of the nearest set bit at or before i, or -1.
func (b *BitVector) Prev1(i int) int {
	if i < 0 {
		return -1
	}
	used := b.usedWords()
	if used == 0 {
		return -1
	}
	w := i / wordBits
	var word uint64
	if w >= used {
		w = used - 1
		word = b.words[w]
	} else {
		word = b.words[w] & (^uint64(0) >> (wordBits - 1 - i%wordBits))
	}
	for {
		if word != 0 {
			return w*wordBits + wordBits - 1 - bits.LeadingZeros64(word)
		}
		w--
		if w < 0 {
			return -1
		}
		word = b.words[w]
	}
}

// Next0 returns the index of the nearest clear bit at or after i. Bits past
// the backing storage read as zero, so a clear bit always exists; i itself
// is returned when it lies beyond the highest used word.
func (b *BitVector) Next0(i int) int {
	if i < 0 {
		i = 0
	}
	used := b.usedWords()
	w := i / wordBits
	if w >= used {
		return i
	}
	word := ^b.words[w] &^ ((1 << (i % wordBits)) - 1)
	for {
		if word != 0 {
			return w*wordBits + bits.TrailingZeros64(word)
		}
		w++
		if w >= used {
			return w * wordBits
		}
		word = ^b.words[w]
	}
}

// Prev0 returns the index of the nearest clear bit at or before i, or -1 if
// bits 0..i are all set. Indexes beyond the logical size are clamped.
func (b *BitVector) Prev0(i int) int {
	if i < 0 {
		return -1
	}
	if i >= b.size {
		i = b.size - 1
		if i < 0 {
			return -1
		}
	}
	used := b.usedWords()
	w := i / wordBits
	if w >= used {
		return i
	}
	word := ^b.words[w] & (^uint64(0) >> (wordBits - 1 - i%wordBits))
	for {
		if word != 0 {
			return w*wordBits + wordBits - 1 - bits.LeadingZeros64(word)
		}
		w--
		if w < 0 {
			return -1
		}
		word = ^b.words[w]
	}
}

// SubRange extracts the half-open bit range [from, to) into a new
// BitVector of length to-from. The extraction is bit-accurate across word
// boundaries.
func (b *BitVector) SubRange(from, to int) *BitVector {
	if from < 0 {
		from = 0
	}
	if to < from {
		to = from
	}
	out := New(to - from)
	if to == from {
		return out
	}
	used := b.usedWords()
	off := from % wordBits
	fw := from / wordBits
	for k := range out.words {
		var word uint64
		if fw+k < used {
			word = b.words[fw+k] >> off
			if off != 0 && fw+k+1 < used {
				word |= b.words[fw+k+1] << (wordBits - off)
			}
		}
		out.words[k] = word
	}
	// Mask the tail of the last word to the extracted length.
	if tail := (to - from) % wordBits; tail != 0 {
		out.words[len(out.words)-1] &= ^uint64(0) >> (wordBits - tail)
	}
	out.dirty = true
	return out
}

// Clear resets all bits to zero, keeping the logical size and capacity.
func (b *BitVector) Clear() {
	for i := range b.words {
		b.words[i] = 0
	}
	b.used = 0
	b.dirty = false
}

// Clone returns a deep copy with independent backing storage.
func (b *BitVector) Clone() *BitVector {
	words := make([]uint64, len(b.words))
	copy(words, b.words)
	return &BitVector{
		words: words,
		size:  b.size,
		used:  b.used,
		dirty: b.dirty,
	}
}

// Equal reports whether two vectors hold the same logical bit content.
// Trailing zero bits do not affect equality.
func (b *BitVector) Equal(other *BitVector) bool {
	if b == other {
		return true
	}
	if other == nil {
		return false
	}
	bu, ou := b.usedWords(), other.usedWords()
	if bu != ou {
		return false
	}
	for i := 0; i < bu; i++ {
		if b.words[i] != other.words[i] {
			return false
		}
	}
	return true
}

// Compare orders two vectors as unsigned big integers: by effective word
// length first, then word content from the highest word down.
func (b *BitVector) Compare(other *BitVector) int {
	bu, ou := b.usedWords(), other.usedWords()
	if bu != ou {
		if bu < ou {
			return -1
		}
		return 1
	}
	for i := bu - 1; i >= 0; i-- {
		if b.words[i] != other.words[i] {
			if b.words[i] < other.words[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Hash returns a content hash over the effective words. Equal vectors hash
// equal regardless of capacity or logical size.
func (b *BitVector) Hash() uint64 {
	used := b.usedWords()
	h := uint64(used)
	for _, w := range b.words[:used] {
		h = hash.Mix64(h ^ w)
	}
	return h
}

// ForEach calls fn for each set bit in ascending order until fn returns
// false.
func (b *BitVector) ForEach(fn func(i int) bool) {
	for w, word := range b.words[:b.usedWords()] {
		for word != 0 {
			if !fn(w*wordBits + bits.TrailingZeros64(word)) {
				return
			}
			word &= word - 1
		}
	}
}

// All returns an iterator over the indexes of set bits in ascending order.
func (b *BitVector) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		b.ForEach(yield)
	}
}

// String renders the set bits as "{i, j, ...}" for diagnostics.
func (b *BitVector) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	b.ForEach(func(i int) bool {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.WriteString(strconv.Itoa(i))
		return true
	})
	sb.WriteByte('}')
	return sb.String()
}

// WriteTo writes the vector as a little-endian word dump: the logical size
// in bits followed by the backing words covering it.
func (b *BitVector) WriteTo(w io.Writer) (int64, error) {
	if err := binary.Write(w, binary.LittleEndian, uint64(b.size)); err != nil {
		return 0, err
	}
	n := int64(8)
	numWords := (b.size + wordBits - 1) / wordBits
	for i := 0; i < numWords; i++ {
		var word uint64
		if i < len(b.words) {
			word = b.words[i]
		}
		if err := binary.Write(w, binary.LittleEndian, word); err != nil {
			return n, err
		}
		n += 8
	}
	return n, nil
}

// ReadFrom replaces the vector content with a dump produced by WriteTo.
func (b *BitVector) ReadFrom(r io.Reader) (int64, error) {
	var size uint64
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return 0, err
	}
	n := int64(8)
	numWords := (int(size) + wordBits - 1) / wordBits
	words := make([]uint64, numWords)
	for i := 0; i < numWords; i++ {
		if err := binary.Read(r, binary.LittleEndian, &words[i]); err != nil {
			return n, err
		}
		n += 8
	}
	b.words = words
	b.size = int(size)
	b.dirty = true
	return n, nil
}
