package hbs

import (
	"bytes"
	"errors"
	"testing"
)

func TestWotsSignVerify(t *testing.T) {
	p, err := PresetTSL128()
	if err != nil {
		t.Fatal(err)
	}
	kp, err := GenerateWots(p)
	if err != nil {
		t.Fatal(err)
	}
	msg := []byte("Hello, world!")
	sig, err := kp.Sign(msg)
	if err != nil {
		t.Fatal(err)
	}
	pk := kp.PublicKey()
	if !VerifyWots(pk, msg, sig) {
		t.Fatal("valid signature rejected")
	}
	if VerifyWots(pk, []byte("Hello, world?"), sig) {
		t.Fatal("modified message accepted")
	}
}

func TestWotsAllSchemes(t *testing.T) {
	builds := []func() (*Params, error){
		PresetTSL128, PresetTSL160,
		PresetTL1C128, PresetTL1C160,
		PresetTLFC128, PresetTLFC160,
	}
	for _, build := range builds {
		p, err := build()
		if err != nil {
			t.Fatal(err)
		}
		kp, err := GenerateWots(p)
		if err != nil {
			t.Fatalf("%s: %v", p.Scheme, err)
		}
		msg := []byte("scheme round trip")
		sig, err := kp.Sign(msg)
		if err != nil {
			t.Fatalf("%s: %v", p.Scheme, err)
		}
		if len(sig.Chains) != p.Chains() {
			t.Fatalf("%s: %d chains want %d", p.Scheme, len(sig.Chains), p.Chains())
		}
		if !VerifyWots(kp.PublicKey(), msg, sig) {
			t.Fatalf("%s: valid signature rejected", p.Scheme)
		}
	}
}

func TestWotsSecondSignFails(t *testing.T) {
	p, err := PresetTSL128()
	if err != nil {
		t.Fatal(err)
	}
	kp, err := GenerateWots(p)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := kp.Sign([]byte("one")); err != nil {
		t.Fatal(err)
	}
	if _, err := kp.Sign([]byte("two")); !errors.Is(err, ErrKeyReused) {
		t.Fatalf("second sign: %v", err)
	}
}

func TestWotsRejectsTamper(t *testing.T) {
	p, err := PresetTSL128()
	if err != nil {
		t.Fatal(err)
	}
	kp, err := GenerateWots(p)
	if err != nil {
		t.Fatal(err)
	}
	msg := []byte("tamper target")
	sig, err := kp.Sign(msg)
	if err != nil {
		t.Fatal(err)
	}
	pk := kp.PublicKey()

	bad := &WotsSignature{Rho: append([]byte(nil), sig.Rho...)}
	for _, c := range sig.Chains {
		bad.Chains = append(bad.Chains, append([]byte(nil), c...))
	}
	bad.Chains[3][0] ^= 0x01
	if VerifyWots(pk, msg, bad) {
		t.Fatal("flipped chain value accepted")
	}

	bad2 := &WotsSignature{Rho: append([]byte(nil), sig.Rho...), Chains: sig.Chains}
	bad2.Rho[0] ^= 0x01
	if VerifyWots(pk, msg, bad2) {
		t.Fatal("flipped randomizer accepted")
	}

	short := &WotsSignature{Rho: sig.Rho, Chains: sig.Chains[:len(sig.Chains)-1]}
	if VerifyWots(pk, msg, short) {
		t.Fatal("truncated signature accepted")
	}
	if VerifyWots(pk, msg, nil) {
		t.Fatal("nil signature accepted")
	}
}

func TestWotsFromSeedDeterministic(t *testing.T) {
	p, err := PresetTSL128()
	if err != nil {
		t.Fatal(err)
	}
	seed := testDigest(p.Hasher(), "secret seed")
	pubSeed := testDigest(p.Hasher(), "public seed")
	a, err := WotsFromSeed(p, seed, pubSeed, 7)
	if err != nil {
		t.Fatal(err)
	}
	b, err := WotsFromSeed(p, seed, pubSeed, 7)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Leaf(), b.Leaf()) {
		t.Fatal("same seed produced different keys")
	}
	c, err := WotsFromSeed(p, seed, pubSeed, 8)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(a.Leaf(), c.Leaf()) {
		t.Fatal("distinct key ids produced identical keys")
	}

	rho := testDigest(p.Hasher(), "fixed rho")
	digest := MessageDigest(p.Hasher(), rho, wotsCtx(pubSeed, 7), []byte("m"))
	s1, err := a.SignDigest(digest, rho)
	if err != nil {
		t.Fatal(err)
	}
	s2, err := b.SignDigest(digest, rho)
	if err != nil {
		t.Fatal(err)
	}
	for i := range s1.Chains {
		if !bytes.Equal(s1.Chains[i], s2.Chains[i]) {
			t.Fatalf("chain %d differs between restored keys", i)
		}
	}
	leaf, err := RecoverLeaf(p, pubSeed, 7, digest, s1)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(leaf, a.Leaf()) {
		t.Fatal("recovered leaf mismatch")
	}
}

func TestWotsZeroize(t *testing.T) {
	p, err := PresetTSL128()
	if err != nil {
		t.Fatal(err)
	}
	kp, err := GenerateWots(p)
	if err != nil {
		t.Fatal(err)
	}
	kp.Zeroize()
	for _, b := range kp.priv {
		for _, x := range b {
			if x != 0 {
				t.Fatal("chain base not wiped")
			}
		}
	}
	for _, x := range kp.seed {
		if x != 0 {
			t.Fatal("seed not wiped")
		}
	}
}
