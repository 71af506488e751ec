package hypercube

import (
	"math/big"
	"sync"
)

// Layer sizes are binomial-coefficient sums that show up on every rank,
// unrank and encode call, so they are cached process-wide per (v,w,d).

type sizeKey struct {
	v, w, d int
}

var (
	sizeMu    sync.RWMutex
	sizeCache = make(map[sizeKey]*big.Int)
)

// LayerSize returns L(v,w,d), the number of vertices of [w]^v in layer d:
// the count of digit vectors (b_1..b_v), 0 <= b_i <= w-1, with Σb_i = d.
// Out-of-range d yields zero, not an error. The result is a fresh copy.
func LayerSize(v, w, d int) *big.Int {
	return new(big.Int).Set(layerSize(v, w, d))
}

// layerSize returns the cached L(v,w,d). Callers must treat it read-only.
func layerSize(v, w, d int) *big.Int {
	if d < 0 || w < 1 || v < 0 || d > v*(w-1) {
		return bigZero
	}
	if v == 0 {
		// d == 0 here because of the range check above.
		return bigOne
	}
	key := sizeKey{v, w, d}
	sizeMu.RLock()
	s, ok := sizeCache[key]
	sizeMu.RUnlock()
	if ok {
		return s
	}
	s = computeLayerSize(v, w, d)
	sizeMu.Lock()
	sizeCache[key] = s
	sizeMu.Unlock()
	return s
}

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
)

// computeLayerSize evaluates the inclusion-exclusion closed form
// L(v,w,d) = Σ_{k=0}^{⌊d/w⌋} (-1)^k C(v,k) C(d-kw+v-1, v-1).
func computeLayerSize(v, w, d int) *big.Int {
	sum := new(big.Int)
	term := new(big.Int)
	binom := new(big.Int)
	for k := 0; k <= d/w; k++ {
		n := int64(d - k*w + v - 1)
		if n < int64(v-1) {
			continue
		}
		term.Binomial(int64(v), int64(k))
		binom.Binomial(n, int64(v-1))
		term.Mul(term, binom)
		if k%2 == 0 {
			sum.Add(sum, term)
		} else {
			sum.Sub(sum, term)
		}
	}
	return sum
}

// CumulativeSize returns Σ_{t=0}^{d} L(v,w,t), the number of vertices in
// the top layers 0..d.
func CumulativeSize(v, w, d int) *big.Int {
	sum := new(big.Int)
	for t := 0; t <= d; t++ {
		sum.Add(sum, layerSize(v, w, t))
	}
	return sum
}
