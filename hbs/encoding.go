package hbs

import (
	"fmt"
	"io"
	"math/big"

	"hypercube-Signature/hypercube"
)

// MaxEncodeTries bounds the rejection-sampling loop of one encode call.
// Each draw is accepted with probability > 1/2, so a failure means a
// broken randomizer stream, not bad luck worth retrying further.
const MaxEncodeTries = 32

// Encode maps (digest, rho) to the digit vector signed by the chains:
// v vertex digits followed by the scheme's checksum digits. The mapping
// is deterministic, so the verifier recomputes it from the signature's
// randomizer; it is uniform over the scheme's encode domain.
func (p *Params) Encode(digest, rho []byte) ([]uint8, error) {
	key := make([]byte, 0, len(rho)+len(digest))
	key = append(key, rho...)
	key = append(key, digest...)
	prng, err := keyedStream(key)
	if err != nil {
		return nil, err
	}
	idx, err := drawUniform(prng, p.total)
	if err != nil {
		return nil, err
	}
	switch p.Scheme {
	case SchemeTSL:
		return p.encodeTSL(idx)
	case SchemeTL1C:
		return p.encodeTL1C(idx)
	case SchemeTLFC:
		return p.encodeTLFC(idx)
	}
	return nil, fmt.Errorf("%w: scheme=%d", ErrParams, p.Scheme)
}

// drawUniform rejection-samples an exactly uniform integer in [0, m)
// from the stream: it reads just enough bytes to cover m and accepts a
// candidate only below the largest multiple of m in range.
func drawUniform(r io.Reader, m *big.Int) (*big.Int, error) {
	nBytes := (m.BitLen() + 7) / 8
	span := new(big.Int).Lsh(big.NewInt(1), uint(8*nBytes))
	limit := new(big.Int).Div(span, m)
	limit.Mul(limit, m)

	buf := make([]byte, nBytes)
	cand := new(big.Int)
	for try := 0; try < MaxEncodeTries; try++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("read encode stream: %w", err)
		}
		cand.SetBytes(buf)
		if cand.Cmp(limit) < 0 {
			return cand.Mod(cand, m), nil
		}
	}
	return nil, ErrEncodingFailed
}

// splitLayers locates the layer holding a cumulative index over the top
// layers [0, d0] and returns the layer plus the index within it.
func (p *Params) splitLayers(idx *big.Int) (int, *big.Int) {
	for d := 0; d <= p.D0; d++ {
		if idx.Cmp(p.cum[d]) < 0 {
			within := new(big.Int).Set(idx)
			if d > 0 {
				within.Sub(within, p.cum[d-1])
			}
			return d, within
		}
	}
	// Unreachable: idx was drawn below p.total == p.cum[p.D0].
	return p.D0, new(big.Int)
}

func (p *Params) encodeTSL(idx *big.Int) ([]uint8, error) {
	x, err := hypercube.Unrank(p.V, p.W, p.D0, idx)
	if err != nil {
		return nil, err
	}
	return x, nil
}

func (p *Params) encodeTL1C(idx *big.Int) ([]uint8, error) {
	d, within := p.splitLayers(idx)
	x, err := hypercube.Unrank(p.V, p.W, d, within)
	if err != nil {
		return nil, err
	}
	// One checksum digit carrying d+1. A forgery can only advance
	// chains, which lowers the layer, and the chain value for a lower
	// layer sits strictly before the revealed position.
	return append(x, uint8(d+1)), nil
}

func (p *Params) encodeTLFC(idx *big.Int) ([]uint8, error) {
	d, within := p.splitLayers(idx)
	x, err := hypercube.Unrank(p.V, p.W, d, within)
	if err != nil {
		return nil, err
	}
	return append(x, p.checksumDigits(x)...), nil
}

// checksumDigits spreads a weighted sum of the reflected digits over
// the c checksum chains: chain i accumulates 2^i * (w-1-x_j) for the
// positions j with j mod c == i, reduced to one digit each.
func (p *Params) checksumDigits(x []uint8) []uint8 {
	sums := make([]int, p.C)
	for j, xj := range x {
		i := j % p.C
		sums[i] += (1 << uint(i)) * (p.W - 1 - int(xj))
	}
	out := make([]uint8, p.C)
	for i, s := range sums {
		out[i] = uint8(s % p.W)
	}
	return out
}
