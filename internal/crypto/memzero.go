package crypto

import "runtime"

// Wipe zeroes b. Key material is wiped once it has been written out.
//
//go:noinline
func Wipe(b []byte) {
	clear(b)
	runtime.KeepAlive(b)
}
