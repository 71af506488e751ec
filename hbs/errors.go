package hbs

import "errors"

var (
	// ErrParams reports an invalid or unsatisfiable parameter set.
	ErrParams = errors.New("hbs: invalid parameters")
	// ErrEncodingFailed reports that rejection sampling exhausted its
	// retry budget for one (message, randomizer) pair.
	ErrEncodingFailed = errors.New("hbs: encoding failed after max retries")
	// ErrKeyReused reports a second Sign call on a one-time key.
	ErrKeyReused = errors.New("hbs: one-time key already used")
	// ErrHashUnknown reports an unregistered hash identifier.
	ErrHashUnknown = errors.New("hbs: unknown hash function")
)
