package hbs

// Package hbs implements hypercube hash-based one-time signatures in
// pure Go: pluggable hash providers, the TSL/TL1C/TLFC message
// encodings over hypercube layers, address-separated hash chains and
// the WOTS+ keygen/sign/verify cycle built on them.
//
// The code keeps the combinatorial mapping exact (arbitrary-precision
// layer indices, rejection-sampled uniform draws) while exposing a Go
// friendly API for parameter presets, one-time keys and the leaf
// primitives consumed by the stateful Merkle layer.
