package hbs

// Zero overwrites b with zero bytes.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ZeroAll overwrites every slice in bs.
func ZeroAll(bs [][]byte) {
	for _, b := range bs {
		Zero(b)
	}
}
