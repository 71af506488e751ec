package signverify

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"hypercube-Signature/hbs"
	"hypercube-Signature/hbs/keys"
	"hypercube-Signature/hbs/xmss"
	"hypercube-Signature/measure"
	"hypercube-Signature/prof"
)

// Signer wraps a stateful signing key behind a byte-oriented API:
// serialized signatures out, lifecycle events logged, sizes recorded
// through the telemetry counters.
type Signer struct {
	params *xmss.Params
	sk     *xmss.PrivateKey
	log    *zap.Logger
}

// NewSigner generates a fresh key under p. A nil store keeps the leaf
// index in memory only; a nil logger disables logging.
func NewSigner(p *xmss.Params, store xmss.StateStore, log *zap.Logger) (*Signer, error) {
	defer prof.Track(time.Now(), "signverify/keygen")
	sk, err := xmss.Generate(p, store)
	if err != nil {
		return nil, err
	}
	return newSigner(p, sk, log, "generated"), nil
}

// NewSignerFromSeed derives the key deterministically from a master seed.
func NewSignerFromSeed(p *xmss.Params, seed []byte, store xmss.StateStore, log *zap.Logger) (*Signer, error) {
	defer prof.Track(time.Now(), "signverify/keygen")
	sk, err := xmss.GenerateFromSeed(p, seed, store)
	if err != nil {
		return nil, err
	}
	return newSigner(p, sk, log, "derived"), nil
}

// RestoreSigner rebuilds a signer from an exported key state.
func RestoreSigner(p *xmss.Params, st *xmss.State, store xmss.StateStore, log *zap.Logger) (*Signer, error) {
	sk, err := xmss.Restore(p, st, store)
	if err != nil {
		return nil, err
	}
	return newSigner(p, sk, log, "restored"), nil
}

func newSigner(p *xmss.Params, sk *xmss.PrivateKey, log *zap.Logger, how string) *Signer {
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("signing key ready",
		zap.String("origin", how),
		zap.String("scheme", p.Ots.Scheme.String()),
		zap.Int("height", p.Height),
		zap.Uint32("remaining", sk.Remaining()))
	return &Signer{params: p, sk: sk, log: log}
}

// PublicKeyBytes returns the serialized verification key.
func (s *Signer) PublicKeyBytes() ([]byte, error) {
	raw, err := keys.MarshalPublicKey(s.sk.PublicKey())
	if err != nil {
		return nil, err
	}
	if measure.Enabled {
		measure.Global.Add("hbs/publickey/bytes", int64(len(raw)))
	}
	return raw, nil
}

// Sign signs msg with the next leaf and returns the serialized
// signature. Exhaustion surfaces as xmss.ErrExhausted.
func (s *Signer) Sign(msg []byte) ([]byte, error) {
	defer prof.Track(time.Now(), "signverify/sign")
	sig, err := s.sk.Sign(msg)
	if err != nil {
		if errors.Is(err, xmss.ErrExhausted) {
			s.log.Warn("signing key exhausted", zap.Int("height", s.params.Height))
		}
		return nil, err
	}
	raw, err := keys.MarshalSignature(s.params, sig)
	if err != nil {
		return nil, fmt.Errorf("serialize signature: %w", err)
	}
	if measure.Enabled {
		measure.Global.Add("hbs/signature/bytes", int64(len(raw)))
		measure.Global.Add("hbs/signature/count", 1)
	}
	s.log.Debug("signed", zap.Uint32("leaf", sig.LeafIndex), zap.Int("bytes", len(raw)))
	return raw, nil
}

// Remaining returns how many signatures the key can still produce.
func (s *Signer) Remaining() uint32 {
	return s.sk.Remaining()
}

// Export returns the private-key state as a persistable bundle.
func (s *Signer) Export() *keys.Bundle {
	return keys.NewBundle(s.sk.ExportState())
}

// Zeroize wipes the key's secret seeds.
func (s *Signer) Zeroize() {
	s.sk.Zeroize()
}

// Verify checks a serialized signature against a serialized public
// key. Every decode or mismatch failure reports false.
func Verify(pkRaw, msg, sigRaw []byte) bool {
	pk, err := keys.UnmarshalPublicKey(pkRaw)
	if err != nil {
		return false
	}
	sig, err := keys.UnmarshalSignature(pk.Params, sigRaw)
	if err != nil {
		return false
	}
	return xmss.Verify(pk, msg, sig)
}

// SignOnce generates a fresh one-time key under p, signs msg and
// returns the serialized public key and signature.
func SignOnce(p *hbs.Params, msg []byte) (pkRaw, sigRaw []byte, err error) {
	kp, err := hbs.GenerateWots(p)
	if err != nil {
		return nil, nil, err
	}
	defer kp.Zeroize()
	sig, err := kp.Sign(msg)
	if err != nil {
		return nil, nil, err
	}
	pkRaw, err = keys.MarshalWotsPublicKey(kp.PublicKey())
	if err != nil {
		return nil, nil, err
	}
	sigRaw, err = keys.MarshalWotsSignature(p, sig)
	if err != nil {
		return nil, nil, err
	}
	if measure.Enabled {
		measure.Global.Add("hbs/wots/signature/bytes", int64(len(sigRaw)))
	}
	return pkRaw, sigRaw, nil
}

// VerifyOnce checks a serialized one-time signature against a
// serialized one-time public key.
func VerifyOnce(pkRaw, msg, sigRaw []byte) bool {
	pk, err := keys.UnmarshalWotsPublicKey(pkRaw)
	if err != nil {
		return false
	}
	sig, err := keys.UnmarshalWotsSignature(pk.Params, sigRaw)
	if err != nil {
		return false
	}
	return hbs.VerifyWots(pk, msg, sig)
}
