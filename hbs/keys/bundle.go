package keys

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"hypercube-Signature/hbs"
	"hypercube-Signature/hbs/xmss"
	"hypercube-Signature/measure"
)

// Bundle is the private-key state persisted to JSON: parameters in the
// clear, seeds base64-encoded, plus the next leaf index. Treat the file
// like the private key it contains.
type Bundle struct {
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
	Params    struct {
		Scheme string `json:"scheme"`
		Hash   uint8  `json:"hash"`
		Level  int    `json:"level"`
		Height int    `json:"height"`
	} `json:"params"`
	Seeds struct {
		Secret string `json:"secret"`
		PRF    string `json:"prf"`
		Public string `json:"public"`
	} `json:"seeds"`
	Index uint32 `json:"index"`
}

// NewBundle wraps an exported key state with version and timestamp.
func NewBundle(st *xmss.State) *Bundle {
	b := &Bundle{Version: "hbs-key-v1"}
	b.Timestamp = time.Now().UTC().Format(time.RFC3339)
	b.Params.Scheme = st.Scheme.String()
	b.Params.Hash = uint8(st.Hash)
	b.Params.Level = st.Level
	b.Params.Height = st.Height
	b.Seeds.Secret = EncodeSeed(st.SkSeed)
	b.Seeds.PRF = EncodeSeed(st.SkPRF)
	b.Seeds.Public = EncodeSeed(st.PubSeed)
	b.Index = st.Index
	return b
}

// State decodes the bundle back into a restorable key state.
func (b *Bundle) State() (*xmss.State, error) {
	scheme, err := parseScheme(b.Params.Scheme)
	if err != nil {
		return nil, err
	}
	st := &xmss.State{
		Scheme: scheme,
		Hash:   hbs.HashID(b.Params.Hash),
		Level:  b.Params.Level,
		Height: b.Params.Height,
		Index:  b.Index,
	}
	if st.SkSeed, err = DecodeSeed(b.Seeds.Secret); err != nil {
		return nil, fmt.Errorf("%w: secret seed: %v", ErrFormat, err)
	}
	if st.SkPRF, err = DecodeSeed(b.Seeds.PRF); err != nil {
		return nil, fmt.Errorf("%w: prf seed: %v", ErrFormat, err)
	}
	if st.PubSeed, err = DecodeSeed(b.Seeds.Public); err != nil {
		return nil, fmt.Errorf("%w: public seed: %v", ErrFormat, err)
	}
	return st, nil
}

// SaveBundle writes the bundle as indented JSON, owner-readable only.
func SaveBundle(path string, b *Bundle) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return err
	}
	if measure.Enabled {
		if info, err := os.Stat(path); err == nil {
			measure.Global.Add("keys/bundle/json_file", info.Size())
		}
	}
	return nil
}

// LoadBundle reads a bundle written by SaveBundle.
func LoadBundle(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return &b, nil
}

// DecodeSeed converts a base64 seed string to bytes.
func DecodeSeed(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}

// EncodeSeed returns the base64 representation of seed bytes.
func EncodeSeed(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

func parseScheme(s string) (hbs.Scheme, error) {
	switch s {
	case "TSL":
		return hbs.SchemeTSL, nil
	case "TL1C":
		return hbs.SchemeTL1C, nil
	case "TLFC":
		return hbs.SchemeTLFC, nil
	}
	return 0, fmt.Errorf("%w: scheme %q", ErrFormat, s)
}
