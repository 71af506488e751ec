package xmss

import (
	"crypto/rand"
	"fmt"
	"sync"

	"hypercube-Signature/hbs"
)

// PrivateKey is the stateful signing key: three 32-byte seeds, the
// cached tree and the lowest unused leaf index. The index only moves
// forward, and Sign persists the advance before releasing a signature.
type PrivateKey struct {
	Params *Params

	mu      sync.Mutex
	skSeed  []byte
	skPRF   []byte
	pubSeed []byte
	root    []byte
	index   uint32
	tree    *MerkleTree
	store   StateStore
}

// PublicKey is the root, the public seed and the parameters needed to
// recompute chains and tree nodes.
type PublicKey struct {
	Params  *Params
	Root    []byte
	PubSeed []byte
}

// State is the serializable private-key state: everything needed to
// restore the key on another machine, including the next leaf index.
type State struct {
	Scheme hbs.Scheme
	Hash   hbs.HashID
	Level  int
	Height int

	SkSeed  []byte
	SkPRF   []byte
	PubSeed []byte
	Index   uint32
}

// Generate creates a key from a fresh random master seed. A nil store
// keeps the index in memory only.
func Generate(p *Params, store StateStore) (*PrivateKey, error) {
	seed := make([]byte, MasterSeedSize)
	if _, err := rand.Read(seed); err != nil {
		return nil, fmt.Errorf("read master seed: %w", err)
	}
	return GenerateFromSeed(p, seed, store)
}

// GenerateFromSeed derives the key deterministically from a 96-byte
// master seed split into secret, PRF and public seed. The same seed
// always rebuilds the same tree and root.
func GenerateFromSeed(p *Params, seed []byte, store StateStore) (*PrivateKey, error) {
	if len(seed) != MasterSeedSize {
		return nil, fmt.Errorf("%w: master seed %d bytes, want %d", hbs.ErrParams, len(seed), MasterSeedSize)
	}
	sk := &PrivateKey{
		Params:  p,
		skSeed:  append([]byte(nil), seed[:hbs.SeedSize]...),
		skPRF:   append([]byte(nil), seed[hbs.SeedSize:2*hbs.SeedSize]...),
		pubSeed: append([]byte(nil), seed[2*hbs.SeedSize:]...),
		store:   store,
	}
	if err := sk.rebuild(); err != nil {
		return nil, err
	}
	return sk, nil
}

func (sk *PrivateKey) rebuild() error {
	leaves, err := deriveLeaves(sk.Params, sk.skSeed, sk.pubSeed)
	if err != nil {
		return err
	}
	tree, err := buildTree(sk.Params.Ots.Hasher(), sk.pubSeed, sk.Params.Height, leaves)
	if err != nil {
		return err
	}
	sk.tree = tree
	sk.root = tree.Root()
	return nil
}

// PublicKey returns the verification key.
func (sk *PrivateKey) PublicKey() *PublicKey {
	return &PublicKey{
		Params:  sk.Params,
		Root:    append([]byte(nil), sk.root...),
		PubSeed: append([]byte(nil), sk.pubSeed...),
	}
}

// Index returns the lowest unused leaf index.
func (sk *PrivateKey) Index() uint32 {
	sk.mu.Lock()
	defer sk.mu.Unlock()
	return sk.index
}

// Remaining returns how many signatures the key can still produce.
func (sk *PrivateKey) Remaining() uint32 {
	sk.mu.Lock()
	defer sk.mu.Unlock()
	return sk.Params.MaxSignatures() - sk.index
}

// Sign signs msg with the next unused leaf. The index advance is
// persisted before the signature is returned; once every leaf has
// signed it fails with ErrExhausted.
func (sk *PrivateKey) Sign(msg []byte) (*Signature, error) {
	sk.mu.Lock()
	defer sk.mu.Unlock()
	if sk.index >= sk.Params.MaxSignatures() {
		return nil, ErrExhausted
	}
	idx := sk.index
	h := sk.Params.Ots.Hasher()
	rho := hbs.Randomizer(h, sk.skPRF, idx, msg)
	digest := hbs.MessageDigest(h, rho, signCtx(sk.root, idx), msg)
	kp, err := hbs.WotsFromSeed(sk.Params.Ots, sk.skSeed, sk.pubSeed, idx)
	if err != nil {
		return nil, err
	}
	wsig, err := kp.SignDigest(digest, rho)
	kp.Zeroize()
	if err != nil {
		return nil, err
	}
	sig := &Signature{
		LeafIndex: idx,
		Wots:      wsig,
		AuthPath:  sk.tree.AuthPath(idx),
	}
	if sk.store != nil {
		if err := sk.store.Advance(idx + 1); err != nil {
			return nil, fmt.Errorf("persist leaf index %d: %w", idx+1, err)
		}
	}
	sk.index = idx + 1
	return sig, nil
}

// ExportState snapshots the key for restore.
func (sk *PrivateKey) ExportState() *State {
	sk.mu.Lock()
	defer sk.mu.Unlock()
	return &State{
		Scheme:  sk.Params.Ots.Scheme,
		Hash:    sk.Params.Ots.Hash,
		Level:   sk.Params.Ots.Level,
		Height:  sk.Params.Height,
		SkSeed:  append([]byte(nil), sk.skSeed...),
		SkPRF:   append([]byte(nil), sk.skPRF...),
		PubSeed: append([]byte(nil), sk.pubSeed...),
		Index:   sk.index,
	}
}

// Restore rebuilds a private key from an exported state. The state's
// scheme, hash, level and height must match p; the restored index is
// persisted immediately so the store can never fall behind it.
func Restore(p *Params, st *State, store StateStore) (*PrivateKey, error) {
	if st == nil {
		return nil, fmt.Errorf("%w: nil state", ErrState)
	}
	if st.Scheme != p.Ots.Scheme || st.Hash != p.Ots.Hash ||
		st.Level != p.Ots.Level || st.Height != p.Height {
		return nil, fmt.Errorf("%w: state parameters do not match", ErrState)
	}
	if len(st.SkSeed) != hbs.SeedSize || len(st.SkPRF) != hbs.SeedSize || len(st.PubSeed) != hbs.SeedSize {
		return nil, fmt.Errorf("%w: malformed seeds", ErrState)
	}
	if st.Index > p.MaxSignatures() {
		return nil, fmt.Errorf("%w: index %d beyond 2^%d", ErrState, st.Index, p.Height)
	}
	sk := &PrivateKey{
		Params:  p,
		skSeed:  append([]byte(nil), st.SkSeed...),
		skPRF:   append([]byte(nil), st.SkPRF...),
		pubSeed: append([]byte(nil), st.PubSeed...),
		index:   st.Index,
		store:   store,
	}
	if err := sk.rebuild(); err != nil {
		return nil, err
	}
	if store != nil {
		if err := store.Advance(st.Index); err != nil {
			return nil, fmt.Errorf("persist restored index %d: %w", st.Index, err)
		}
	}
	return sk, nil
}

// Zeroize wipes the secret seeds. The key is unusable afterwards.
func (sk *PrivateKey) Zeroize() {
	sk.mu.Lock()
	defer sk.mu.Unlock()
	hbs.Zero(sk.skSeed)
	hbs.Zero(sk.skPRF)
	sk.index = sk.Params.MaxSignatures()
}

func signCtx(root []byte, idx uint32) []byte {
	ctx := make([]byte, 0, len(root)+4)
	ctx = append(ctx, root...)
	ctx = append(ctx, byte(idx>>24), byte(idx>>16), byte(idx>>8), byte(idx))
	return ctx
}
