package modmath

import "math/big"

var smallPrimes = []int64{
	2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47,
	53, 59, 61, 67, 71, 73, 79, 83, 89, 97,
}

// IsPrime reports whether n is probably prime. Trial division by the primes
// below 100 runs first, followed by iterations rounds of Miller-Rabin with
// independently drawn bases in [2, n-2].
//
// A failure to read randomness is treated as "not prime".
func IsPrime(n *big.Int, iterations int) bool {
	if n.Cmp(two) < 0 {
		return false
	}
	r := new(big.Int)
	for _, sp := range smallPrimes {
		p := big.NewInt(sp)
		if n.Cmp(p) == 0 {
			return true
		}
		if r.Mod(n, p).Sign() == 0 {
			return false
		}
	}

	upper := new(big.Int).Sub(n, two)
	for i := 0; i < iterations; i++ {
		a, err := RandomInt(two, upper)
		if err != nil {
			return false
		}
		if !MillerRabinTest(n, a) {
			return false
		}
	}
	return true
}

// MillerRabinTest runs one Miller-Rabin round with witness a. It returns
// false when a proves n composite. n below 2 and even n above 2 are
// composite outright, 2 and 3 are prime, and a witness congruent to 0 or
// ±1 mod n proves nothing.
func MillerRabinTest(n, a *big.Int) bool {
	if n.Cmp(two) < 0 {
		return false
	}
	if n.Cmp(big.NewInt(4)) < 0 {
		return true
	}
	if n.Bit(0) == 0 {
		return false
	}
	nMinusOne := new(big.Int).Sub(n, one)
	a = new(big.Int).Mod(a, n)
	if a.Cmp(two) < 0 || a.Cmp(nMinusOne) == 0 {
		return true
	}

	// n-1 = d * 2^s with d odd
	s := nMinusOne.TrailingZeroBits()
	d := new(big.Int).Rsh(nMinusOne, s)

	x := ModPow(a, d, n)
	if x.Cmp(one) == 0 || x.Cmp(nMinusOne) == 0 {
		return true
	}
	for i := uint(1); i < s; i++ {
		x.Mul(x, x)
		x.Mod(x, n)
		if x.Cmp(nMinusOne) == 0 {
			return true
		}
		if x.Cmp(one) == 0 {
			return false
		}
	}
	return false
}
