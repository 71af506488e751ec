package hbs

import (
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/sha3"
)

// HashID identifies a hash provider on the wire (public-key tag byte).
type HashID uint8

const (
	// HashSHA256 selects crypto/sha256.
	HashSHA256 HashID = 1
	// HashSHA3 selects SHA3-256.
	HashSHA3 HashID = 2
	// HashPoseidon2 selects the ZK-friendly sponge provider.
	HashPoseidon2 HashID = 3
)

// HashSize is the output width of every registered provider, in bytes.
const HashSize = 32

// Hasher is the pluggable hash contract used by chains, trees and
// message compression. Digest concatenates its parts before hashing.
type Hasher interface {
	ID() HashID
	Size() int
	Digest(parts ...[]byte) []byte
}

// NewHasher returns the provider registered under id.
func NewHasher(id HashID) (Hasher, error) {
	switch id {
	case HashSHA256:
		return sha256Hasher{}, nil
	case HashSHA3:
		return sha3Hasher{}, nil
	case HashPoseidon2:
		return poseidon2Hasher{}, nil
	default:
		return nil, fmt.Errorf("%w: id=%d", ErrHashUnknown, id)
	}
}

type sha256Hasher struct{}

func (sha256Hasher) ID() HashID { return HashSHA256 }
func (sha256Hasher) Size() int  { return HashSize }

func (sha256Hasher) Digest(parts ...[]byte) []byte {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil)
}

type sha3Hasher struct{}

func (sha3Hasher) ID() HashID { return HashSHA3 }
func (sha3Hasher) Size() int  { return HashSize }

func (sha3Hasher) Digest(parts ...[]byte) []byte {
	h := sha3.New256()
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil)
}
