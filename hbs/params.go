package hbs

import (
	"fmt"
	"math/big"

	"hypercube-Signature/hypercube"
)

// Scheme tags the message encoding variant.
type Scheme uint8

const (
	// SchemeTSL encodes into the single layer d0, no checksum chains.
	SchemeTSL Scheme = 1
	// SchemeTL1C encodes into layers [0,d0] plus one checksum chain
	// carrying the layer index.
	SchemeTL1C Scheme = 2
	// SchemeTLFC encodes into layers [0,d0] plus c weighted checksum
	// chains over the reflected digits.
	SchemeTLFC Scheme = 3
)

func (s Scheme) String() string {
	switch s {
	case SchemeTSL:
		return "TSL"
	case SchemeTL1C:
		return "TL1C"
	case SchemeTLFC:
		return "TLFC"
	}
	return fmt.Sprintf("scheme(%d)", uint8(s))
}

// Params fixes one scheme instance: hypercube shape, target layers,
// checksum chains, security level and hash provider. Construct through
// NewParams or a Preset; zero values are not usable.
type Params struct {
	Scheme Scheme
	W      int // alphabet size, digits in [0, w-1]
	V      int // hypercube dimension
	C      int // checksum chains (TLFC), 0 or 1 otherwise
	D0     int // deepest encoded layer, counted from the top corner
	Level  int // security level in bits
	Hash   HashID

	hasher Hasher
	cum    []*big.Int // cum[d] = Σ_{t<=d} L(V,W,t) for d in [0,D0]
	total  *big.Int   // encode domain size
}

// NewParams validates the shape and derives the smallest d0 whose
// encode domain reaches 2^level: the single layer size for TSL, the
// cumulative size of layers [0,d0] for TL1C and TLFC. TL1C additionally
// requires d0+1 <= w-1 so the checksum digit d+1 fits the alphabet.
func NewParams(scheme Scheme, w, v, c, level int, hash HashID) (*Params, error) {
	if w < 2 || w > 256 {
		return nil, fmt.Errorf("%w: w=%d", ErrParams, w)
	}
	if v < 1 {
		return nil, fmt.Errorf("%w: v=%d", ErrParams, v)
	}
	if level < 1 {
		return nil, fmt.Errorf("%w: level=%d", ErrParams, level)
	}
	switch scheme {
	case SchemeTSL:
		c = 0
	case SchemeTL1C:
		c = 1
	case SchemeTLFC:
		if c < 1 || c > v {
			return nil, fmt.Errorf("%w: c=%d, v=%d", ErrParams, c, v)
		}
	default:
		return nil, fmt.Errorf("%w: scheme=%d", ErrParams, scheme)
	}
	h, err := NewHasher(hash)
	if err != nil {
		return nil, err
	}

	threshold := new(big.Int).Lsh(big.NewInt(1), uint(level))
	p := &Params{Scheme: scheme, W: w, V: v, C: c, Level: level, Hash: hash, hasher: h}

	maxD := hypercube.MaxLayer(v, w)
	if scheme == SchemeTSL {
		for d := 0; d <= maxD; d++ {
			if s := hypercube.LayerSize(v, w, d); s.Cmp(threshold) >= 0 {
				p.D0 = d
				p.total = s
				return p, nil
			}
		}
		return nil, fmt.Errorf("%w: no layer of [%d]^%d reaches 2^%d", ErrParams, w, v, level)
	}

	sum := new(big.Int)
	for d := 0; d <= maxD; d++ {
		sum.Add(sum, hypercube.LayerSize(v, w, d))
		p.cum = append(p.cum, new(big.Int).Set(sum))
		if sum.Cmp(threshold) >= 0 {
			if scheme == SchemeTL1C && d+1 > w-1 {
				return nil, fmt.Errorf("%w: checksum digit d0+1=%d exceeds w-1=%d", ErrParams, d+1, w-1)
			}
			p.D0 = d
			p.total = new(big.Int).Set(sum)
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: layers of [%d]^%d never reach 2^%d", ErrParams, w, v, level)
}

// Chains returns the total chain count of one signature, v plus the
// scheme's checksum chains.
func (p *Params) Chains() int {
	return p.V + p.C
}

// Hasher returns the parameter set's hash provider.
func (p *Params) Hasher() Hasher {
	return p.hasher
}

// DomainSize returns a copy of the encode domain size.
func (p *Params) DomainSize() *big.Int {
	return new(big.Int).Set(p.total)
}
