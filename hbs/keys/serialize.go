package keys

import (
	"encoding/binary"
	"errors"
	"fmt"

	"hypercube-Signature/hbs"
	"hypercube-Signature/hbs/xmss"
)

// ErrFormat reports a malformed or inconsistent encoding.
var ErrFormat = errors.New("keys: malformed encoding")

// Fixed byte layouts, no delimiters. With n the hash width, k the chain
// count and h the tree height:
//
//	one-time signature   rho(32) || k * n chain values
//	tree signature       leaf index (ceil(h/8), big-endian) || one-time
//	                     signature || h * n siblings
//	tree public key      root(n) || pubSeed(32) || tag
//	one-time public key  value(n) || pubSeed(32) || keyID(4) || tag
//
// The 4-byte tag is (scheme, hash, level, height), height 0 for a
// standalone one-time key. Decoders validate exact lengths and rebuild
// parameters from the tag before anything is interpreted; the tag
// identifies a preset shape, so only preset parameter sets round-trip.

func paramTag(scheme hbs.Scheme, hash hbs.HashID, level, height int) []byte {
	return []byte{byte(scheme), byte(hash), byte(level), byte(height)}
}

// indexBytes is the serialized width of a leaf index at height h.
func indexBytes(height int) int {
	return (height + 7) / 8
}

// MarshalWotsSignature encodes a one-time signature under p.
func MarshalWotsSignature(p *hbs.Params, sig *hbs.WotsSignature) ([]byte, error) {
	n := p.Hasher().Size()
	if sig == nil || len(sig.Rho) != hbs.RhoSize || len(sig.Chains) != p.Chains() {
		return nil, fmt.Errorf("%w: signature shape", ErrFormat)
	}
	out := make([]byte, 0, hbs.RhoSize+p.Chains()*n)
	out = append(out, sig.Rho...)
	for i, c := range sig.Chains {
		if len(c) != n {
			return nil, fmt.Errorf("%w: chain %d width %d", ErrFormat, i, len(c))
		}
		out = append(out, c...)
	}
	return out, nil
}

// UnmarshalWotsSignature decodes a one-time signature under p,
// rejecting any length other than rho plus k chain values.
func UnmarshalWotsSignature(p *hbs.Params, b []byte) (*hbs.WotsSignature, error) {
	n := p.Hasher().Size()
	k := p.Chains()
	if len(b) != hbs.RhoSize+k*n {
		return nil, fmt.Errorf("%w: %d bytes, want %d", ErrFormat, len(b), hbs.RhoSize+k*n)
	}
	sig := &hbs.WotsSignature{Rho: append([]byte(nil), b[:hbs.RhoSize]...)}
	off := hbs.RhoSize
	for i := 0; i < k; i++ {
		sig.Chains = append(sig.Chains, append([]byte(nil), b[off:off+n]...))
		off += n
	}
	return sig, nil
}

// MarshalSignature encodes a tree signature under p.
func MarshalSignature(p *xmss.Params, sig *xmss.Signature) ([]byte, error) {
	if sig == nil || len(sig.AuthPath) != p.Height {
		return nil, fmt.Errorf("%w: auth path length", ErrFormat)
	}
	if sig.LeafIndex >= p.MaxSignatures() {
		return nil, fmt.Errorf("%w: leaf index %d", ErrFormat, sig.LeafIndex)
	}
	wots, err := MarshalWotsSignature(p.Ots, sig.Wots)
	if err != nil {
		return nil, err
	}
	n := p.Ots.Hasher().Size()
	ib := indexBytes(p.Height)
	out := make([]byte, 0, ib+len(wots)+p.Height*n)
	for i := ib - 1; i >= 0; i-- {
		out = append(out, byte(sig.LeafIndex>>uint(8*i)))
	}
	out = append(out, wots...)
	for i, sib := range sig.AuthPath {
		if len(sib) != n {
			return nil, fmt.Errorf("%w: sibling %d width %d", ErrFormat, i, len(sib))
		}
		out = append(out, sib...)
	}
	return out, nil
}

// UnmarshalSignature decodes a tree signature under p with exact-length
// validation.
func UnmarshalSignature(p *xmss.Params, b []byte) (*xmss.Signature, error) {
	n := p.Ots.Hasher().Size()
	ib := indexBytes(p.Height)
	wotsLen := hbs.RhoSize + p.Ots.Chains()*n
	want := ib + wotsLen + p.Height*n
	if len(b) != want {
		return nil, fmt.Errorf("%w: %d bytes, want %d", ErrFormat, len(b), want)
	}
	var idx uint32
	for i := 0; i < ib; i++ {
		idx = idx<<8 | uint32(b[i])
	}
	if idx >= p.MaxSignatures() {
		return nil, fmt.Errorf("%w: leaf index %d at height %d", ErrFormat, idx, p.Height)
	}
	wots, err := UnmarshalWotsSignature(p.Ots, b[ib:ib+wotsLen])
	if err != nil {
		return nil, err
	}
	sig := &xmss.Signature{LeafIndex: idx, Wots: wots}
	off := ib + wotsLen
	for i := 0; i < p.Height; i++ {
		sig.AuthPath = append(sig.AuthPath, append([]byte(nil), b[off:off+n]...))
		off += n
	}
	return sig, nil
}

// MarshalPublicKey encodes a tree public key.
func MarshalPublicKey(pk *xmss.PublicKey) ([]byte, error) {
	if pk == nil || pk.Params == nil {
		return nil, fmt.Errorf("%w: nil public key", ErrFormat)
	}
	n := pk.Params.Ots.Hasher().Size()
	if len(pk.Root) != n || len(pk.PubSeed) != hbs.SeedSize {
		return nil, fmt.Errorf("%w: root/seed widths", ErrFormat)
	}
	out := make([]byte, 0, n+hbs.SeedSize+4)
	out = append(out, pk.Root...)
	out = append(out, pk.PubSeed...)
	return append(out, paramTag(pk.Params.Ots.Scheme, pk.Params.Ots.Hash, pk.Params.Ots.Level, pk.Params.Height)...), nil
}

// UnmarshalPublicKey rebuilds a tree public key, deriving the parameter
// set from the trailing tag.
func UnmarshalPublicKey(b []byte) (*xmss.PublicKey, error) {
	if len(b) < 4 {
		return nil, fmt.Errorf("%w: %d bytes", ErrFormat, len(b))
	}
	tag := b[len(b)-4:]
	ots, err := hbs.ParamsFor(hbs.Scheme(tag[0]), int(tag[2]), hbs.HashID(tag[1]))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	p, err := xmss.NewParams(ots, int(tag[3]))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	n := ots.Hasher().Size()
	if len(b) != n+hbs.SeedSize+4 {
		return nil, fmt.Errorf("%w: %d bytes, want %d", ErrFormat, len(b), n+hbs.SeedSize+4)
	}
	return &xmss.PublicKey{
		Params:  p,
		Root:    append([]byte(nil), b[:n]...),
		PubSeed: append([]byte(nil), b[n:n+hbs.SeedSize]...),
	}, nil
}

// MarshalWotsPublicKey encodes a standalone one-time public key,
// tagged with height 0.
func MarshalWotsPublicKey(pk *hbs.WotsPublicKey) ([]byte, error) {
	if pk == nil || pk.Params == nil {
		return nil, fmt.Errorf("%w: nil public key", ErrFormat)
	}
	n := pk.Params.Hasher().Size()
	if len(pk.Value) != n || len(pk.PubSeed) != hbs.SeedSize {
		return nil, fmt.Errorf("%w: value/seed widths", ErrFormat)
	}
	out := make([]byte, 0, n+hbs.SeedSize+8)
	out = append(out, pk.Value...)
	out = append(out, pk.PubSeed...)
	out = binary.BigEndian.AppendUint32(out, pk.KeyID)
	return append(out, paramTag(pk.Params.Scheme, pk.Params.Hash, pk.Params.Level, 0)...), nil
}

// UnmarshalWotsPublicKey rebuilds a standalone one-time public key.
func UnmarshalWotsPublicKey(b []byte) (*hbs.WotsPublicKey, error) {
	if len(b) < 4 {
		return nil, fmt.Errorf("%w: %d bytes", ErrFormat, len(b))
	}
	tag := b[len(b)-4:]
	if tag[3] != 0 {
		return nil, fmt.Errorf("%w: height %d in one-time key tag", ErrFormat, tag[3])
	}
	p, err := hbs.ParamsFor(hbs.Scheme(tag[0]), int(tag[2]), hbs.HashID(tag[1]))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	n := p.Hasher().Size()
	if len(b) != n+hbs.SeedSize+8 {
		return nil, fmt.Errorf("%w: %d bytes, want %d", ErrFormat, len(b), n+hbs.SeedSize+8)
	}
	return &hbs.WotsPublicKey{
		Params:  p,
		Value:   append([]byte(nil), b[:n]...),
		PubSeed: append([]byte(nil), b[n:n+hbs.SeedSize]...),
		KeyID:   binary.BigEndian.Uint32(b[n+hbs.SeedSize : n+hbs.SeedSize+4]),
	}, nil
}
