package hypercube

import (
	"fmt"
	"math/big"
)

// Rank and Unrank form an exact bijection between the vertices of one
// layer and the integers [0, L(v,w,d)). The order is lexicographic over
// the reflected digits b_i = w-1-x_i, processed left to right; at each
// position the number of completions with a smaller digit is a layer-size
// subcount for the remaining slots, exactly as in combinatorial-number-
// system ranking generalized to digits bounded by w-1.

// Rank maps a vertex of layer d to its index within the layer.
func Rank(x Vertex, w int) (*big.Int, error) {
	d, err := Layer(x, w)
	if err != nil {
		return nil, err
	}
	v := len(x)
	r := new(big.Int)
	rem := d
	for j := 0; j < v; j++ {
		bj := w - 1 - int(x[j])
		slots := v - j - 1
		for t := 0; t < bj; t++ {
			r.Add(r, layerSize(slots, w, rem-t))
		}
		rem -= bj
	}
	return r, nil
}

// Unrank maps an index in [0, L(v,w,d)) to the corresponding vertex of
// layer d in [w]^v. It is the exact inverse of Rank.
func Unrank(v, w, d int, index *big.Int) (Vertex, error) {
	if index.Sign() < 0 || index.Cmp(layerSize(v, w, d)) >= 0 {
		return nil, fmt.Errorf("%w: index=%s, L(%d,%d,%d)=%s",
			ErrIndexRange, index, v, w, d, layerSize(v, w, d))
	}
	x := make(Vertex, v)
	i := new(big.Int).Set(index)
	rem := d
	for j := 0; j < v; j++ {
		slots := v - j - 1
		placed := false
		for t := 0; t <= minInt(w-1, rem); t++ {
			c := layerSize(slots, w, rem-t)
			if i.Cmp(c) < 0 {
				x[j] = uint8(w - 1 - t)
				rem -= t
				placed = true
				break
			}
			i.Sub(i, c)
		}
		if !placed {
			// Unreachable: index was validated against the layer size.
			return nil, ErrIndexRange
		}
	}
	return x, nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
