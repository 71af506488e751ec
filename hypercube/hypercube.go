// Package hypercube implements the combinatorial core of the hypercube
// signature encodings: vertices of [w]^v, digit-sum layers, exact layer
// sizes and the rank/unrank bijection between a layer and [0, L(v,w,d)).
//
// A vertex carries v digits in [0, w-1]. Layers are counted from the top
// corner (w-1, ..., w-1): the layer of a vertex is the total number of
// hash-chain steps its digits leave unrevealed, d = Σ_i (w-1-x_i). Under
// the digit reflection x_i -> w-1-x_i this is the usual digit-sum layer,
// so the layer-size formula is identical in both conventions.
package hypercube

import (
	"errors"
	"fmt"
)

// Vertex is a point of the hypercube [w]^v: v digits, each in [0, w-1].
type Vertex []uint8

var (
	// ErrDigitRange reports a digit outside [0, w-1].
	ErrDigitRange = errors.New("hypercube: digit out of range")
	// ErrIndexRange reports a rank index outside [0, L(v,w,d)).
	ErrIndexRange = errors.New("hypercube: index out of layer range")
)

// Layer returns the top-counted layer of x: Σ_i (w-1 - x_i).
func Layer(x Vertex, w int) (int, error) {
	d := 0
	for i, xi := range x {
		if int(xi) >= w {
			return 0, fmt.Errorf("%w: digit %d at position %d, w=%d", ErrDigitRange, xi, i, w)
		}
		d += w - 1 - int(xi)
	}
	return d, nil
}

// MaxLayer returns the largest layer index v*(w-1), the all-zero vertex.
func MaxLayer(v, w int) int {
	return v * (w - 1)
}

// Sink returns the top corner vertex (w-1, ..., w-1), layer 0.
func Sink(v, w int) Vertex {
	x := make(Vertex, v)
	for i := range x {
		x[i] = uint8(w - 1)
	}
	return x
}
