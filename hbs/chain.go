package hbs

import "encoding/binary"

// Domain-separation tags. Every hash call is prefixed by exactly one.
const (
	tagChain byte = 0x00
	tagNode  byte = 0x01
	tagLeaf  byte = 0x02
	tagMsg   byte = 0x03
)

// be32 returns x big-endian.
func be32(x uint32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], x)
	return b[:]
}

// chainAddr packs the chain-step address: key id, chain index, position.
func chainAddr(keyID, chain, pos uint32) []byte {
	var b [12]byte
	binary.BigEndian.PutUint32(b[0:4], keyID)
	binary.BigEndian.PutUint32(b[4:8], chain)
	binary.BigEndian.PutUint32(b[8:12], pos)
	return b[:]
}

// ChainWalk advances a chain value `steps` positions starting at
// position `from`: each step hashes the tagged address and the current
// value, so no two (key, chain, position) triples share a hash input.
func ChainWalk(h Hasher, pubSeed []byte, keyID, chain uint32, from, steps int, in []byte) []byte {
	cur := in
	for j := 0; j < steps; j++ {
		cur = h.Digest([]byte{tagChain}, pubSeed, chainAddr(keyID, chain, uint32(from+j)), cur)
	}
	return cur
}

// LeafHash compresses the chain ends of one WOTS+ key into its leaf
// value: H(0x02 || pubSeed || keyID || end_0 || ... || end_{k-1}).
func LeafHash(h Hasher, pubSeed []byte, keyID uint32, ends [][]byte) []byte {
	parts := make([][]byte, 0, 3+len(ends))
	parts = append(parts, []byte{tagLeaf}, pubSeed, be32(keyID))
	parts = append(parts, ends...)
	return h.Digest(parts...)
}

// NodeHash combines two sibling tree nodes:
// H(0x01 || pubSeed || height || index || left || right).
func NodeHash(h Hasher, pubSeed []byte, height, index uint32, left, right []byte) []byte {
	return h.Digest([]byte{tagNode}, pubSeed, be32(height), be32(index), left, right)
}

// Randomizer derives a per-signature randomizer bound to the message
// and leaf index: H(0x03 || prfSeed || index || msg). Two distinct
// (index, message) pairs never share a randomizer stream.
func Randomizer(h Hasher, prfSeed []byte, index uint32, msg []byte) []byte {
	return h.Digest([]byte{tagMsg}, prfSeed, be32(index), msg)
}

// MessageDigest compresses a message under the randomizer rho and a
// key-binding context (public seed for WOTS+, root||index for the
// Merkle layer): H(0x03 || rho || ctx || msg).
func MessageDigest(h Hasher, rho, ctx, msg []byte) []byte {
	return h.Digest([]byte{tagMsg}, rho, ctx, msg)
}
