package engine

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// RandomResource is the single shared generator used for duration and drop sampling
// Deterministic for a fixed seed; not safe for concurrent use
type RandomResource struct {
	seed int64
	rng  *rand.Rand
}

// NewRandomResource creates a PCG generator derived from seed
func NewRandomResource(seed int64) *RandomResource {
	// #nosec G404 -- simulation randomness, not security sensitive
	return &RandomResource{
		seed: seed,
		rng:  rand.New(rand.NewPCG(seedWord(seed, "a"), seedWord(seed, "b"))),
	}
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}

// Seed returns the seed the generator was built from
func (r *RandomResource) Seed() int64 {
	return r.seed
}

// UniformInt returns a uniformly distributed value in [min, max]
// min >= max yields min
func (r *RandomResource) UniformInt(min, max uint32) uint32 {
	if max <= min {
		return min
	}
	return min + uint32(r.rng.Uint64N(uint64(max-min)+1))
}
