package pathgen

import (
	"hash/fnv"
	"math/rand"
)

// DeterministicSeed derives a reproducible int64 seed from a root seed
// string and a subsystem label: an FNV-1a hash of "root\x00label" so every
// subsystem gets its own independent stream without needing to pass RNGs
// around by reference.
func DeterministicSeed(rootSeed string, label string) int64 {
	hasher := fnv.New64a()
	hasher.Write([]byte(rootSeed))
	hasher.Write([]byte{0})
	hasher.Write([]byte(label))
	sum := hasher.Sum64()
	if sum == 0 {
		sum = 1
	}
	return int64(sum)
}

// NewRNG returns a deterministic *rand.Rand seeded from (rootSeed, label).
func NewRNG(rootSeed string, label string) *rand.Rand {
	return rand.New(rand.NewSource(DeterministicSeed(rootSeed, label)))
}
