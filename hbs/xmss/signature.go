package xmss

import (
	"bytes"

	"hypercube-Signature/hbs"
)

// Signature binds one leaf index to a one-time signature and the auth
// path proving the leaf under the public root.
type Signature struct {
	LeafIndex uint32
	Wots      *hbs.WotsSignature
	AuthPath  [][]byte
}

// Verify reports whether sig is a valid signature on msg under pk. It
// recomputes the message digest from the signature's randomizer, walks
// the revealed chains to the implied leaf and folds the auth path back
// to the root. Any mismatch yields false; it never panics.
func Verify(pk *PublicKey, msg []byte, sig *Signature) bool {
	if pk == nil || pk.Params == nil || sig == nil || sig.Wots == nil {
		return false
	}
	p := pk.Params
	if sig.LeafIndex >= p.MaxSignatures() || len(sig.AuthPath) != p.Height {
		return false
	}
	h := p.Ots.Hasher()
	for _, sib := range sig.AuthPath {
		if len(sib) != h.Size() {
			return false
		}
	}
	digest := hbs.MessageDigest(h, sig.Wots.Rho, signCtx(pk.Root, sig.LeafIndex), msg)
	leaf, err := hbs.RecoverLeaf(p.Ots, pk.PubSeed, sig.LeafIndex, digest, sig.Wots)
	if err != nil {
		return false
	}
	root := ComputeRoot(h, pk.PubSeed, sig.LeafIndex, leaf, sig.AuthPath)
	return bytes.Equal(root, pk.Root)
}
