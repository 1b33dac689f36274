package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// === Subsystem Constants ===

const (
	// SubsystemService is the RNG subsystem shared by all stations for
	// service-time draws.
	SubsystemService = "service"
)

// SubsystemGenerator returns the subsystem name for generator N, giving
// each client process an isolated random stream.
func SubsystemGenerator(id int) string {
	return fmt.Sprintf("generator_%d", id)
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
// Two simulations constructed from the same master seed and identical
// configuration MUST produce bit-for-bit identical results.
//
// Derivation formula: masterSeed XOR fnv1a64(subsystemName).
//
// Thread-safety: NOT thread-safe. Must be called from a single goroutine,
// which is all the single-threaded event loop ever needs.
type PartitionedRNG struct {
	seed       int64
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a master seed.
func NewPartitionedRNG(seed int64) *PartitionedRNG {
	return &PartitionedRNG{
		seed:       seed,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewSource(p.seed ^ fnv1a64(name)))
	p.subsystems[name] = rng
	return rng
}

// Seed returns the master seed used to create this PartitionedRNG.
func (p *PartitionedRNG) Seed() int64 {
	return p.seed
}

// uniformTicks draws a tick count uniformly from [lo, hi). A degenerate
// range (hi <= lo) yields lo without consuming randomness.
func uniformTicks(rng *rand.Rand, lo, hi int64) int64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Int63n(hi-lo)
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
