package modmath

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// DefaultIterations is the number of Miller-Rabin rounds used when
// validating domain parameters.
const DefaultIterations = 50

// Reader is the randomness source for RandomInt. It is safe for concurrent use.
var Reader io.Reader = rand.Reader

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// ModPow returns base^exponent mod modulus using left-to-right square and
// multiply. A zero exponent yields 1 mod modulus.
//
// It panics if modulus <= 1 or exponent < 0.
func ModPow(base, exponent, modulus *big.Int) *big.Int {
	if modulus.Cmp(one) <= 0 {
		panic("modmath: modulus must be greater than 1")
	}
	if exponent.Sign() < 0 {
		panic("modmath: negative exponent")
	}

	b := new(big.Int).Mod(base, modulus)
	result := big.NewInt(1)
	for i := exponent.BitLen() - 1; i >= 0; i-- {
		result.Mul(result, result)
		result.Mod(result, modulus)
		if exponent.Bit(i) == 1 {
			result.Mul(result, b)
			result.Mod(result, modulus)
		}
	}
	return result
}

// RandomInt returns an integer drawn uniformly from [min, max].
//
// It reads just enough random bits to cover the range and rejects draws that
// fall outside it.
func RandomInt(min, max *big.Int) (*big.Int, error) {
	if min.Cmp(max) > 0 {
		return nil, fmt.Errorf("%w: [%s, %s]", ErrInvalidRange, min, max)
	}
	span := new(big.Int).Sub(max, min)
	span.Add(span, one)

	bits := span.BitLen()
	buf := make([]byte, (bits+7)/8)
	excess := uint(len(buf)*8 - bits)
	v := new(big.Int)
	for {
		if _, err := io.ReadFull(Reader, buf); err != nil {
			return nil, fmt.Errorf("read random: %w", err)
		}
		buf[0] &= byte(0xff >> excess)
		v.SetBytes(buf)
		if v.Cmp(span) < 0 {
			return v.Add(v, min), nil
		}
	}
}
