package crypto

import (
	"math/big"

	"hybridchat/internal/util/memzero"
)

// Wipe zeroes the provided buffer.
func Wipe(b []byte) { memzero.Zero(b) }

// WipeInt zeroes a secret exponent or encoded session key in place.
func WipeInt(v *big.Int) { memzero.ZeroInt(v) }
