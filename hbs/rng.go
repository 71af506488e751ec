package hbs

import (
	"crypto/rand"
	"fmt"

	"github.com/tuneinsight/lattigo/v4/utils"
)

// SeedSize is the width of every secret or public seed.
const SeedSize = 32

// RhoSize is the width of the per-signature randomizer.
const RhoSize = 32

// RandomSeed returns SeedSize fresh bytes from crypto/rand.
func RandomSeed() ([]byte, error) {
	s := make([]byte, SeedSize)
	if _, err := rand.Read(s); err != nil {
		return nil, fmt.Errorf("read random seed: %w", err)
	}
	return s, nil
}

// keyedStream opens the deterministic expansion stream for key.
// The key must stay within the Blake2b XOF limit of 64 bytes.
func keyedStream(key []byte) (*utils.KeyedPRNG, error) {
	prng, err := utils.NewKeyedPRNG(key)
	if err != nil {
		return nil, fmt.Errorf("keyed PRNG: %w", err)
	}
	return prng, nil
}

// expandChainBases derives k chain-base values of n bytes each from a
// secret seed and the key id. The same (seed, keyID) always yields the
// same bases, which is what makes seeded key restore possible.
func expandChainBases(seed []byte, keyID uint32, k, n int) ([][]byte, error) {
	key := make([]byte, 0, len(seed)+4)
	key = append(key, seed...)
	key = append(key, be32(keyID)...)
	prng, err := keyedStream(key)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, k*n)
	if _, err := prng.Read(buf); err != nil {
		return nil, fmt.Errorf("expand chain bases: %w", err)
	}
	bases := make([][]byte, k)
	for i := 0; i < k; i++ {
		bases[i] = buf[i*n : (i+1)*n]
	}
	return bases, nil
}
