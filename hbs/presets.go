package hbs

import "fmt"

// ParamsFor returns the preset hypercube shape for (scheme, level)
// under the given hash provider. Decoders use it to rebuild parameter
// sets from a serialized tag.
func ParamsFor(scheme Scheme, level int, hash HashID) (*Params, error) {
	type shape struct{ w, v, c int }
	shapes := map[Scheme]map[int]shape{
		SchemeTSL:  {128: {16, 64, 0}, 160: {16, 80, 0}},
		SchemeTL1C: {128: {64, 72, 0}, 160: {64, 120, 0}},
		SchemeTLFC: {128: {16, 64, 4}, 160: {16, 80, 4}},
	}
	s, ok := shapes[scheme][level]
	if !ok {
		return nil, fmt.Errorf("%w: no preset for %s at level %d", ErrParams, scheme, level)
	}
	return NewParams(scheme, s.w, s.v, s.c, level, hash)
}

// PresetTSL128 returns the single-layer encoding over [16]^64 at the
// 128-bit level (64 chains, no checksum).
func PresetTSL128() (*Params, error) {
	return NewParams(SchemeTSL, 16, 64, 0, 128, HashSHA256)
}

// PresetTSL160 returns the single-layer encoding over [16]^80 at the
// 160-bit level.
func PresetTSL160() (*Params, error) {
	return NewParams(SchemeTSL, 16, 80, 0, 160, HashSHA256)
}

// PresetTL1C128 returns the top-layers encoding over [64]^72 with one
// checksum chain at the 128-bit level. w=64 leaves room for the layer
// index in a single digit.
func PresetTL1C128() (*Params, error) {
	return NewParams(SchemeTL1C, 64, 72, 0, 128, HashSHA256)
}

// PresetTL1C160 returns the one-checksum encoding over [64]^120 at the
// 160-bit level.
func PresetTL1C160() (*Params, error) {
	return NewParams(SchemeTL1C, 64, 120, 0, 160, HashSHA256)
}

// PresetTLFC128 returns the full-checksum encoding over [16]^64 with
// four checksum chains at the 128-bit level.
func PresetTLFC128() (*Params, error) {
	return NewParams(SchemeTLFC, 16, 64, 4, 128, HashSHA256)
}

// PresetTLFC160 returns the full-checksum encoding over [16]^80 with
// four checksum chains at the 160-bit level.
func PresetTLFC160() (*Params, error) {
	return NewParams(SchemeTLFC, 16, 80, 4, 160, HashSHA256)
}
