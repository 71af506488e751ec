package keystore

import (
	"errors"
	"path/filepath"
	"testing"

	"hypercube-Signature/hbs"
	"hypercube-Signature/hbs/xmss"
)

func TestMemoryMonotone(t *testing.T) {
	m := NewMemory()
	if _, ok := m.Index(); ok {
		t.Fatal("fresh store claims an index")
	}
	if err := m.Advance(1); err != nil {
		t.Fatal(err)
	}
	if err := m.Advance(1); err != nil {
		t.Fatalf("equal advance refused: %v", err)
	}
	if err := m.Advance(5); err != nil {
		t.Fatal(err)
	}
	if err := m.Advance(4); !errors.Is(err, ErrRollback) {
		t.Fatalf("rollback: %v", err)
	}
	if idx, ok := m.Index(); !ok || idx != 5 {
		t.Fatalf("index=%d ok=%v", idx, ok)
	}
}

func TestLevelDBPersists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")
	s, err := OpenLevelDB(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok, err := s.LoadIndex(); err != nil || ok {
		t.Fatalf("fresh store: ok=%v err=%v", ok, err)
	}
	if err := s.Advance(3); err != nil {
		t.Fatal(err)
	}
	if err := s.Advance(2); !errors.Is(err, ErrRollback) {
		t.Fatalf("rollback: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s2, err := OpenLevelDB(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	idx, ok, err := s2.LoadIndex()
	if err != nil {
		t.Fatal(err)
	}
	if !ok || idx != 3 {
		t.Fatalf("reopened: idx=%d ok=%v", idx, ok)
	}
	if err := s2.Advance(1); !errors.Is(err, ErrRollback) {
		t.Fatalf("rollback after reopen: %v", err)
	}
}

func TestLevelDBBacksSigningKey(t *testing.T) {
	ots, err := hbs.PresetTSL128()
	if err != nil {
		t.Fatal(err)
	}
	p, err := xmss.NewParams(ots, 2)
	if err != nil {
		t.Fatal(err)
	}
	dir := filepath.Join(t.TempDir(), "state")
	s, err := OpenLevelDB(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	sk, err := xmss.Generate(p, s)
	if err != nil {
		t.Fatal(err)
	}
	st := sk.ExportState()
	for i := 0; i < 2; i++ {
		if _, err := sk.Sign([]byte{byte(i)}); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	// Reopen the store, resume from the persisted index and keep the
	// exported seeds: the restored key must pick up at leaf 2.
	s2, err := OpenLevelDB(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	idx, ok, err := s2.LoadIndex()
	if err != nil || !ok {
		t.Fatalf("load: idx=%d ok=%v err=%v", idx, ok, err)
	}
	st.Index = idx
	restored, err := xmss.Restore(p, st, s2)
	if err != nil {
		t.Fatal(err)
	}
	sig, err := restored.Sign([]byte("resumed"))
	if err != nil {
		t.Fatal(err)
	}
	if sig.LeafIndex != 2 {
		t.Fatalf("resumed at leaf %d", sig.LeafIndex)
	}
	if !xmss.Verify(restored.PublicKey(), []byte("resumed"), sig) {
		t.Fatal("resumed signature rejected")
	}
}
