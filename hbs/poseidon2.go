package hbs

import "golang.org/x/crypto/sha3"

// Poseidon2-style sponge over the 31-bit prime field q = 2^31 - 2^27 + 1
// (q-1 = 2^27 * 3 * 5, so the S-box exponent 7 is coprime to q-1).
// State width t = 8, rate 4, capacity 4; RF external and RP internal
// rounds. Round constants and the internal diagonal are derived once
// from a SHAKE128 domain string; the external matrix is J+I and the
// internal matrix J+diag(D), both invertible over F_q.

const (
	p2Q    uint64 = 2013265921
	p2D    uint64 = 7
	p2T           = 8
	p2Rate        = 4
	p2RF          = 8
	p2RP          = 13
)

var (
	p2CExt [p2RF][p2T]uint64
	p2CInt [p2RP]uint64
	p2Diag [p2T]uint64
)

func init() {
	x := sha3.NewShake128()
	x.Write([]byte("hbs-poseidon2-q2013265921-t8-v1"))
	draw := func() uint64 {
		var b [4]byte
		for {
			x.Read(b[:])
			v := uint64(b[0])<<24 | uint64(b[1])<<16 | uint64(b[2])<<8 | uint64(b[3])
			if v < p2Q {
				return v
			}
		}
	}
	for r := 0; r < p2RF; r++ {
		for i := 0; i < p2T; i++ {
			p2CExt[r][i] = draw()
		}
	}
	for r := 0; r < p2RP; r++ {
		p2CInt[r] = draw()
	}
	for i := 0; i < p2T; i++ {
		// diag entries in [2, q-1] keep J+diag(D) invertible
		p2Diag[i] = 2 + draw()%(p2Q-2)
	}
}

func p2Add(a, b uint64) uint64 {
	v := a + b
	if v >= p2Q {
		v -= p2Q
	}
	return v
}

func p2Mul(a, b uint64) uint64 {
	return a * b % p2Q
}

// p2Pow7 is the S-box x^7.
func p2Pow7(a uint64) uint64 {
	a2 := p2Mul(a, a)
	a4 := p2Mul(a2, a2)
	return p2Mul(p2Mul(a4, a2), a)
}

// p2External applies one external round: full S-box then (J+I)·state.
func p2External(state *[p2T]uint64, rc *[p2T]uint64) {
	var sum uint64
	for i := 0; i < p2T; i++ {
		state[i] = p2Pow7(p2Add(state[i], rc[i]))
		sum = p2Add(sum, state[i])
	}
	for i := 0; i < p2T; i++ {
		state[i] = p2Add(state[i], sum)
	}
}

// p2Internal applies one internal round: S-box on lane 0 then (J+diag(D))·state.
func p2Internal(state *[p2T]uint64, rc uint64) {
	state[0] = p2Pow7(p2Add(state[0], rc))
	var sum uint64
	for i := 0; i < p2T; i++ {
		sum = p2Add(sum, state[i])
	}
	for i := 0; i < p2T; i++ {
		state[i] = p2Add(sum, p2Mul(state[i], p2Diag[i]))
	}
}

func p2Permute(state *[p2T]uint64) {
	for r := 0; r < p2RF/2; r++ {
		p2External(state, &p2CExt[r])
	}
	for r := 0; r < p2RP; r++ {
		p2Internal(state, p2CInt[r])
	}
	for r := p2RF / 2; r < p2RF; r++ {
		p2External(state, &p2CExt[r])
	}
}

type poseidon2Hasher struct{}

func (poseidon2Hasher) ID() HashID { return HashPoseidon2 }
func (poseidon2Hasher) Size() int  { return HashSize }

// Digest absorbs the concatenated parts with 0x01 padding at rate 4
// elements per block and squeezes 32 bytes over two permutations.
func (poseidon2Hasher) Digest(parts ...[]byte) []byte {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	const blockBytes = p2Rate * 4
	padded := make([]byte, 0, n+blockBytes)
	for _, p := range parts {
		padded = append(padded, p...)
	}
	padded = append(padded, 0x01)
	for len(padded)%blockBytes != 0 {
		padded = append(padded, 0x00)
	}

	var state [p2T]uint64
	for off := 0; off < len(padded); off += blockBytes {
		for i := 0; i < p2Rate; i++ {
			b := padded[off+4*i : off+4*i+4]
			v := uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24
			state[i] = p2Add(state[i], v%p2Q)
		}
		p2Permute(&state)
	}

	out := make([]byte, 0, HashSize)
	for len(out) < HashSize {
		for i := 0; i < p2Rate && len(out) < HashSize; i++ {
			v := state[i]
			out = append(out, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
		}
		if len(out) < HashSize {
			p2Permute(&state)
		}
	}
	return out
}
