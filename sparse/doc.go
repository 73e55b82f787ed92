// Package sparse implements a null-tracking value list as a dense value
// array plus a presence bit vector.
//
// The presence vector's rank query is the index-compaction function: a
// present logical index i stores its value at dense offset Rank(i)-1.
// An optional primitive therefore costs one bit plus, when present, one
// value slot, instead of a boxed reference per slot.
package sparse
