// Package byteset implements a fixed 256-slot set specialized for the byte
// key domain.
//
// Four 64-bit words cover every possible key, so the set needs no hashing,
// no growth and a constant 32-byte footprint. Rank returns a signed
// position that doubles as the membership test and the insertion point,
// which lets byte-keyed containers locate a dense value slot without a
// second lookup.
package byteset
