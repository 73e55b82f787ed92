package hash

// Mix64 is the splitmix64 finalizer. It spreads the low entropy of small
// integer keys across all 64 bits so that masking with a power-of-two
// capacity still probes well.
func Mix64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// Mix32 is a 32-bit avalanche finalizer (murmur3 fmix32).
func Mix32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x85ebca6b
	x ^= x >> 13
	x *= 0xc2b2ae35
	x ^= x >> 16
	return x
}
