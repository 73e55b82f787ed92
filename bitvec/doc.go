// Package bitvec implements a packed, growable bit vector with rank/select
// queries.
//
// The vector stores bits in 64-bit words. Rank (count of set bits up to an
// index) and Bit (index of the n-th set bit) make it usable as the
// index-compaction function beneath sparse value storage: a logical index
// translates to a dense offset via Rank.
//
// The highest-used-word count is cached and invalidated by a dirty flag so
// that clearing bits stays O(1); Count, Rank and the scan operations
// recompute it lazily.
//
// BitVector is not safe for concurrent use.
package bitvec
