package signverify

import (
	"errors"
	"fmt"
	"testing"

	"hypercube-Signature/hbs"
	"hypercube-Signature/hbs/xmss"
	"hypercube-Signature/measure"
)

func TestOneTimeHelloWorld(t *testing.T) {
	p, err := hbs.PresetTSL128()
	if err != nil {
		t.Fatal(err)
	}
	msg := []byte("Hello, world!")
	pkRaw, sigRaw, err := SignOnce(p, msg)
	if err != nil {
		t.Fatal(err)
	}
	if !VerifyOnce(pkRaw, msg, sigRaw) {
		t.Fatal("valid one-time signature rejected")
	}
	if VerifyOnce(pkRaw, []byte("Hello, world?"), sigRaw) {
		t.Fatal("modified message accepted")
	}
	sigRaw[40] ^= 0x01
	if VerifyOnce(pkRaw, msg, sigRaw) {
		t.Fatal("corrupted signature accepted")
	}
}

func TestSignerLifecycle(t *testing.T) {
	ots, err := hbs.PresetTSL128()
	if err != nil {
		t.Fatal(err)
	}
	p, err := xmss.NewParams(ots, 4)
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewSigner(p, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	pkRaw, err := s.PublicKeyBytes()
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 16; i++ {
		msg := []byte(fmt.Sprintf("msg %d", i))
		sigRaw, err := s.Sign(msg)
		if err != nil {
			t.Fatalf("sign %d: %v", i, err)
		}
		if !Verify(pkRaw, msg, sigRaw) {
			t.Fatalf("signature %d rejected", i)
		}
	}
	if s.Remaining() != 0 {
		t.Fatalf("remaining=%d", s.Remaining())
	}
	if _, err := s.Sign([]byte("too many")); !errors.Is(err, xmss.ErrExhausted) {
		t.Fatalf("17th sign: %v", err)
	}
}

func TestSignerExportRestore(t *testing.T) {
	ots, err := hbs.PresetTSL128()
	if err != nil {
		t.Fatal(err)
	}
	p, err := xmss.NewParams(ots, 3)
	if err != nil {
		t.Fatal(err)
	}
	seed := make([]byte, xmss.MasterSeedSize)
	for i := range seed {
		seed[i] = byte(i)
	}
	s, err := NewSignerFromSeed(p, seed, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	pkRaw, err := s.PublicKeyBytes()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Sign([]byte("first")); err != nil {
		t.Fatal(err)
	}

	st, err := s.Export().State()
	if err != nil {
		t.Fatal(err)
	}
	r, err := RestoreSigner(p, st, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	msg := []byte("second, after restore")
	sigRaw, err := r.Sign(msg)
	if err != nil {
		t.Fatal(err)
	}
	if !Verify(pkRaw, msg, sigRaw) {
		t.Fatal("restored signer's signature rejected under original key")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	if Verify(nil, []byte("m"), nil) {
		t.Fatal("nil inputs accepted")
	}
	if Verify([]byte{1, 2, 3}, []byte("m"), []byte{4, 5, 6}) {
		t.Fatal("garbage inputs accepted")
	}
}

func TestTelemetryCounters(t *testing.T) {
	was := measure.Enabled
	measure.Enabled = true
	defer func() { measure.Enabled = was }()
	measure.Global.SnapshotAndReset()

	ots, err := hbs.PresetTSL128()
	if err != nil {
		t.Fatal(err)
	}
	p, err := xmss.NewParams(ots, 2)
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewSigner(p, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Sign([]byte("counted")); err != nil {
		t.Fatal(err)
	}
	snap := measure.Global.SnapshotAndReset()
	if snap["hbs/signature/count"] != 1 {
		t.Fatalf("count=%d", snap["hbs/signature/count"])
	}
	if snap["hbs/signature/bytes"] == 0 {
		t.Fatal("signature bytes not recorded")
	}
}
