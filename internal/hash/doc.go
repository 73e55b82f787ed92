// Package hash provides the hashing kernels shared by the container
// packages: avalanche mixers for primitive hash-table keys and
// CRC32-Castagnoli checksums for snapshot integrity.
//
// # Key mixing
//
// Open-addressing tables mask the hash with a power-of-two capacity, so the
// low bits must carry entropy even for sequential integer keys. Mix64 and
// Mix32 are full-avalanche finalizers (splitmix64 / murmur3 fmix32).
//
// # CRC32C
//
// Snapshot checksums use CRC32-Castagnoli, hardware accelerated on x86
// (SSE4.2) and ARM (CRC extension):
//
//	checksum := hash.CRC32C(data)
//
// For streaming checksums use NewCRC32C and write chunks into the
// returned hash.Hash32.
package hash
