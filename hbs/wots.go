package hbs

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"sync"
)

// WotsKeypair is a one-time key: k secret chain bases and their
// compressed public value. Sign refuses a second call; composed
// multi-time schemes enforce single use through their own index
// discipline and call SignDigest directly.
type WotsKeypair struct {
	Params  *Params
	PubSeed []byte
	KeyID   uint32

	mu   sync.Mutex
	seed []byte
	priv [][]byte
	leaf []byte
	used bool
}

// WotsPublicKey carries the public seed, key id and compressed value
// needed to verify one key's signatures.
type WotsPublicKey struct {
	Params  *Params
	PubSeed []byte
	KeyID   uint32
	Value   []byte
}

// WotsSignature is the per-signature randomizer plus one revealed chain
// value per chain, each at the position of its encoded digit.
type WotsSignature struct {
	Rho    []byte
	Chains [][]byte
}

// GenerateWots creates a keypair from fresh random seeds.
func GenerateWots(p *Params) (*WotsKeypair, error) {
	seed, err := RandomSeed()
	if err != nil {
		return nil, err
	}
	pubSeed, err := RandomSeed()
	if err != nil {
		return nil, err
	}
	return WotsFromSeed(p, seed, pubSeed, 0)
}

// WotsFromSeed derives the keypair deterministically from (seed, keyID)
// under pubSeed. The same inputs always restore the same key.
func WotsFromSeed(p *Params, seed, pubSeed []byte, keyID uint32) (*WotsKeypair, error) {
	if len(seed) != SeedSize || len(pubSeed) != SeedSize {
		return nil, fmt.Errorf("%w: seed lengths %d/%d, want %d", ErrParams, len(seed), len(pubSeed), SeedSize)
	}
	h := p.Hasher()
	k := p.Chains()
	priv, err := expandChainBases(seed, keyID, k, h.Size())
	if err != nil {
		return nil, err
	}
	ends := make([][]byte, k)
	for i := 0; i < k; i++ {
		ends[i] = ChainWalk(h, pubSeed, keyID, uint32(i), 0, p.W-1, priv[i])
	}
	kp := &WotsKeypair{
		Params:  p,
		PubSeed: append([]byte(nil), pubSeed...),
		KeyID:   keyID,
		seed:    append([]byte(nil), seed...),
		priv:    priv,
		leaf:    LeafHash(h, pubSeed, keyID, ends),
	}
	return kp, nil
}

// PublicKey returns the compressed public key.
func (kp *WotsKeypair) PublicKey() *WotsPublicKey {
	return &WotsPublicKey{
		Params:  kp.Params,
		PubSeed: append([]byte(nil), kp.PubSeed...),
		KeyID:   kp.KeyID,
		Value:   append([]byte(nil), kp.leaf...),
	}
}

// Leaf returns the compressed public value.
func (kp *WotsKeypair) Leaf() []byte {
	return append([]byte(nil), kp.leaf...)
}

// Sign signs msg once under a fresh randomizer. A second call returns
// ErrKeyReused.
func (kp *WotsKeypair) Sign(msg []byte) (*WotsSignature, error) {
	kp.mu.Lock()
	defer kp.mu.Unlock()
	if kp.used {
		return nil, ErrKeyReused
	}
	rho := make([]byte, RhoSize)
	if _, err := rand.Read(rho); err != nil {
		return nil, fmt.Errorf("read randomizer: %w", err)
	}
	digest := MessageDigest(kp.Params.Hasher(), rho, wotsCtx(kp.PubSeed, kp.KeyID), msg)
	sig, err := kp.SignDigest(digest, rho)
	if err != nil {
		return nil, err
	}
	kp.used = true
	return sig, nil
}

// SignDigest reveals one chain value per encoded digit of digest. It
// performs no reuse bookkeeping; the caller owns that invariant.
func (kp *WotsKeypair) SignDigest(digest, rho []byte) (*WotsSignature, error) {
	digits, err := kp.Params.Encode(digest, rho)
	if err != nil {
		return nil, err
	}
	h := kp.Params.Hasher()
	chains := make([][]byte, len(digits))
	for i, a := range digits {
		chains[i] = ChainWalk(h, kp.PubSeed, kp.KeyID, uint32(i), 0, int(a), kp.priv[i])
	}
	return &WotsSignature{Rho: append([]byte(nil), rho...), Chains: chains}, nil
}

// Zeroize wipes the secret seed and chain bases.
func (kp *WotsKeypair) Zeroize() {
	kp.mu.Lock()
	defer kp.mu.Unlock()
	Zero(kp.seed)
	ZeroAll(kp.priv)
}

// RecoverLeaf walks every revealed chain value to its end and
// recompresses the public value a signature over digest implies.
func RecoverLeaf(p *Params, pubSeed []byte, keyID uint32, digest []byte, sig *WotsSignature) ([]byte, error) {
	if sig == nil || len(sig.Rho) != RhoSize {
		return nil, fmt.Errorf("%w: malformed signature", ErrParams)
	}
	h := p.Hasher()
	if len(sig.Chains) != p.Chains() {
		return nil, fmt.Errorf("%w: %d chains, want %d", ErrParams, len(sig.Chains), p.Chains())
	}
	digits, err := p.Encode(digest, sig.Rho)
	if err != nil {
		return nil, err
	}
	ends := make([][]byte, len(digits))
	for i, a := range digits {
		if len(sig.Chains[i]) != h.Size() {
			return nil, fmt.Errorf("%w: chain %d width %d", ErrParams, i, len(sig.Chains[i]))
		}
		ends[i] = ChainWalk(h, pubSeed, keyID, uint32(i), int(a), p.W-1-int(a), sig.Chains[i])
	}
	return LeafHash(h, pubSeed, keyID, ends), nil
}

// VerifyWots reports whether sig is a valid signature on msg under pk.
// It never panics and reports no mismatch detail.
func VerifyWots(pk *WotsPublicKey, msg []byte, sig *WotsSignature) bool {
	if pk == nil || pk.Params == nil || sig == nil {
		return false
	}
	digest := MessageDigest(pk.Params.Hasher(), sig.Rho, wotsCtx(pk.PubSeed, pk.KeyID), msg)
	leaf, err := RecoverLeaf(pk.Params, pk.PubSeed, pk.KeyID, digest, sig)
	if err != nil {
		return false
	}
	return bytes.Equal(leaf, pk.Value)
}

func wotsCtx(pubSeed []byte, keyID uint32) []byte {
	ctx := make([]byte, 0, len(pubSeed)+4)
	ctx = append(ctx, pubSeed...)
	return append(ctx, be32(keyID)...)
}
