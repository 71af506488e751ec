package xmss

// Package xmss layers a Merkle tree over the one-time hypercube keys:
// 2^h leaves derived from one master seed, a root public key, and a
// monotone leaf-index counter that is persisted before any signature
// leaves Sign.

import (
	"errors"
	"fmt"

	"hypercube-Signature/hbs"
)

var (
	// ErrExhausted reports that every leaf of the tree has signed.
	ErrExhausted = errors.New("xmss: key exhausted")
	// ErrState reports a restore bundle inconsistent with the parameters.
	ErrState = errors.New("xmss: invalid key state")
)

// MasterSeedSize is the width of the generation seed: secret seed,
// PRF seed and public seed.
const MasterSeedSize = 3 * hbs.SeedSize

// MaxHeight bounds the tree height so leaf indices fit uint32.
const MaxHeight = 31

// Params couples a one-time parameter set with a tree height.
type Params struct {
	Ots    *hbs.Params
	Height int
}

// NewParams validates the height and wraps the one-time parameters.
func NewParams(ots *hbs.Params, height int) (*Params, error) {
	if ots == nil {
		return nil, fmt.Errorf("%w: nil one-time params", hbs.ErrParams)
	}
	if height < 1 || height > MaxHeight {
		return nil, fmt.Errorf("%w: height=%d", hbs.ErrParams, height)
	}
	return &Params{Ots: ots, Height: height}, nil
}

// MaxSignatures returns the leaf count 2^h.
func (p *Params) MaxSignatures() uint32 {
	return uint32(1) << uint(p.Height)
}

// StateStore persists the lowest unused leaf index. Advance must be
// durable before it returns: a signature is only released after its
// index is recorded, so a crash can never lead to index reuse.
type StateStore interface {
	Advance(next uint32) error
}
