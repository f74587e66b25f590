package kitchen

import (
	"hash/fnv"
	"math/rand"
)

// === MatchKey ===

// MatchKey uniquely identifies a reproducible match. Two matches with the
// same MatchKey, catalog, and request script MUST produce identical results.
type MatchKey int64

// NewMatchKey creates a MatchKey from a seed value.
func NewMatchKey(seed int64) MatchKey {
	return MatchKey(seed)
}

// === Subsystem Constants ===

const (
	// SubsystemOrders is the RNG subsystem for order pacing and recipe choice.
	SubsystemOrders = "orders"

	// SubsystemSpawn is the RNG subsystem for item spawning variation.
	SubsystemSpawn = "spawn"
)

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per
// subsystem, so adding a consumer of randomness in one subsystem cannot
// perturb the draw sequence of another.
//
// Derivation: masterSeed XOR fnv1a64(subsystemName).
//
// Thread-safety: NOT thread-safe. Must be called from the tick goroutine.
type PartitionedRNG struct {
	key        MatchKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a MatchKey.
func NewPartitionedRNG(key MatchKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named
// subsystem. The same name always returns the same *rand.Rand instance
// (cached). Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	derivedSeed := int64(p.key) ^ fnv1a64(name)
	rng := rand.New(rand.NewSource(derivedSeed))
	p.subsystems[name] = rng
	return rng
}

// Key returns the MatchKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() MatchKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
