// Package memzero clears secret material held in byte slices and big
// integers. Clearing is best-effort: the runtime or math/big may already
// hold copies elsewhere.
package memzero

import (
	"crypto/subtle"
	"math/big"
	"runtime"
)

// Zero overwrites b with zeros.
func Zero(b []byte) {
	if len(b) == 0 {
		return
	}
	zero := make([]byte, len(b))
	subtle.ConstantTimeCopy(1, b, zero)
	runtime.KeepAlive(b)
}

// ZeroAll zeroes every buffer.
func ZeroAll(bufs ...[]byte) {
	for _, b := range bufs {
		Zero(b)
	}
}

// ZeroInt overwrites the limbs backing v and sets it to zero.
//
//go:noinline
func ZeroInt(v *big.Int) {
	if v == nil {
		return
	}
	words := v.Bits()
	for i := range words {
		words[i] = 0
	}
	v.SetInt64(0)
	runtime.KeepAlive(&words)
}
