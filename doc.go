// Package densekit provides specialized in-memory containers for primitive
// key and value domains: a packed bit vector with rank/select (bitvec), a
// fixed 256-slot byte-domain set (byteset), a generic open-addressing hash
// table with backward-shift deletion (hashmap), a null-tracking dense value
// list (sparse), bounded ring buffers (ring) and snapshot encoding (codec).
//
// The containers are synchronous and not internally locked; the ring
// package holds the only concurrent structures. See the package docs for
// the individual contracts.
package densekit
