package hashmap

import "hash/maphash"

// structuralSeed is fixed per process; structural hashes are only required
// to be consistent within a process, matching Go's map hashing.
var structuralSeed = maphash.MakeSeed()

func comparableHash[V comparable](v V) uint64 {
	return maphash.Comparable(structuralSeed, v)
}
