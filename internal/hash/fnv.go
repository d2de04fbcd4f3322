package hash

import "hash/fnv"

// FNV maps s onto [0, max) with 32-bit FNV-1.
func FNV(s string, max uint32) uint32 {
	hash := fnv.New32()
	_, _ = hash.Write([]byte(s))
	return hash.Sum32() % max
}
