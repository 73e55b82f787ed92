// Package hashmap implements a generic open-addressing hash table with
// linear probing and backward-shift deletion.
//
// All entries live directly in a power-of-two backing array. The zero
// value of the key type doubles as the empty-slot sentinel, so a real zero
// key and the null key used by boxed-key callers are tracked out of band
// in two dedicated fields; this avoids spending an occupied bit per slot
// and keeps the token numbering stable. Deletion shifts conflicting
// entries backward over the gap instead of writing tombstones, so lookup
// cost stays bounded without compaction passes.
//
// Iteration uses an explicit token cursor (FirstToken/NextToken) so a
// single pass can distinguish the null-key entry from a real zero key.
// Order is unspecified beyond null and zero entries coming first; use
// SortedKeys for deterministic output.
//
// Map and Set are not safe for concurrent use.
package hashmap
