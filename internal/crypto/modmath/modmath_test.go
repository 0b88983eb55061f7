package modmath_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hybridchat/internal/crypto/modmath"
)

func bi(v int64) *big.Int { return big.NewInt(v) }

func TestModPow_KnownValue(t *testing.T) {
	assert.Equal(t, 0, modmath.ModPow(bi(4), bi(13), bi(497)).Cmp(bi(445)))
}

func TestModPow_ZeroExponent(t *testing.T) {
	assert.Equal(t, int64(1), modmath.ModPow(bi(12345), bi(0), bi(7)).Int64())
}

func TestModPow_MatchesStdlib(t *testing.T) {
	base, _ := new(big.Int).SetString("123456789abcdef0123456789abcdef", 16)
	exp, _ := new(big.Int).SetString("fedcba9876543210fedcba98765", 16)
	mod, _ := new(big.Int).SetString("b7e151628aed2a6abf7158809cf4f3c762e7160f", 16)

	want := new(big.Int).Exp(base, exp, mod)
	assert.Equal(t, 0, modmath.ModPow(base, exp, mod).Cmp(want))
}

func TestModPow_NegativeBaseIsReduced(t *testing.T) {
	// (-2)^3 mod 7 = -8 mod 7 = 6
	assert.Equal(t, int64(6), modmath.ModPow(bi(-2), bi(3), bi(7)).Int64())
}

func TestModPow_PanicsOnBadModulus(t *testing.T) {
	assert.Panics(t, func() { modmath.ModPow(bi(2), bi(3), bi(1)) })
	assert.Panics(t, func() { modmath.ModPow(bi(2), bi(-1), bi(7)) })
}

func TestRandomInt_StaysInRange(t *testing.T) {
	lo, hi := bi(10), bi(17)
	seen := map[int64]bool{}
	for i := 0; i < 2000; i++ {
		v, err := modmath.RandomInt(lo, hi)
		require.NoError(t, err)
		require.True(t, v.Cmp(lo) >= 0 && v.Cmp(hi) <= 0, "value %s out of range", v)
		seen[v.Int64()] = true
	}
	assert.Len(t, seen, 8, "every value in [10,17] should eventually be drawn")
}

func TestRandomInt_SingleValueRange(t *testing.T) {
	v, err := modmath.RandomInt(bi(42), bi(42))
	require.NoError(t, err)
	assert.Equal(t, int64(42), v.Int64())
}

func TestRandomInt_InvalidRange(t *testing.T) {
	_, err := modmath.RandomInt(bi(5), bi(4))
	assert.ErrorIs(t, err, modmath.ErrInvalidRange)
}

func TestIsPrime_SmallValues(t *testing.T) {
	cases := map[int64]bool{
		0: false, 1: false, 2: true, 3: true, 4: false,
		97: true, 101: true, 561: false, 7919: true, 7921: false,
	}
	for n, want := range cases {
		assert.Equal(t, want, modmath.IsPrime(bi(n), modmath.DefaultIterations), "IsPrime(%d)", n)
	}
}

func TestIsPrime_LargeComposite(t *testing.T) {
	// product of two primes above the trial-division bound
	n := new(big.Int).Mul(bi(1000003), bi(1000033))
	assert.False(t, modmath.IsPrime(n, modmath.DefaultIterations))
}

func TestIsPrime_MersennePrime(t *testing.T) {
	m127 := new(big.Int).Sub(new(big.Int).Lsh(bi(1), 127), bi(1))
	assert.True(t, modmath.IsPrime(m127, modmath.DefaultIterations))
}

func TestMillerRabin_CarmichaelNeedsSeveralWitnesses(t *testing.T) {
	n := bi(561)

	// 50 and 101 are strong liars for 561.
	assert.True(t, modmath.MillerRabinTest(n, bi(50)))
	assert.True(t, modmath.MillerRabinTest(n, bi(101)))

	composite := false
	for _, a := range []int64{50, 101, 2, 3, 5} {
		if !modmath.MillerRabinTest(n, bi(a)) {
			composite = true
		}
	}
	assert.True(t, composite, "at least one witness must expose 561")
}

func TestMillerRabin_PrimePassesEveryWitness(t *testing.T) {
	for a := int64(2); a < 100; a++ {
		require.True(t, modmath.MillerRabinTest(bi(7919), bi(a)), "witness %d", a)
	}
}

func TestFindGenerator_SafePrime(t *testing.T) {
	g, err := modmath.FindGenerator(bi(467))
	require.NoError(t, err)
	assert.Equal(t, int64(2), g.Int64())

	g, err = modmath.FindValidGenerator(bi(467), modmath.DefaultIterations)
	require.NoError(t, err)
	assert.Equal(t, int64(2), g.Int64())
}

func TestMillerRabin_SmallAndEvenModuli(t *testing.T) {
	for _, tc := range []struct {
		n, a int64
		want bool
	}{
		{0, 2, false},
		{1, 2, false},
		{2, 2, true},
		{3, 2, true},
		{4, 3, false},
		{100, 3, false},
		{5, 2, true},
		{9, 2, false},
	} {
		assert.Equal(t, tc.want, modmath.MillerRabinTest(bi(tc.n), bi(tc.a)), "n=%d a=%d", tc.n, tc.a)
	}
}

func TestMillerRabin_TrivialWitnessProvesNothing(t *testing.T) {
	// 0, 1 and n-1 (mod n) never witness compositeness, even for n = 91.
	for _, a := range []int64{0, 1, 90, 91, 92, 181} {
		assert.True(t, modmath.MillerRabinTest(bi(91), bi(a)), "witness %d", a)
	}
	assert.False(t, modmath.MillerRabinTest(bi(91), bi(2)))
}

func TestFindGenerator_NoCandidate(t *testing.T) {
	_, err := modmath.FindGenerator(bi(3))
	assert.ErrorIs(t, err, modmath.ErrNoGeneratorFound)
}

func TestFindGenerator_EveryCandidateIsAResidue(t *testing.T) {
	// p = 1 + 5*8*3*5*...*97 is prime and p ≡ 1 (mod 8q) for every odd
	// prime q < 100, so every candidate is a quadratic residue and fails the
	// g^((p-1)/2) check.
	p, ok := new(big.Int).SetString("46111359278910368495062042946635121401", 10)
	require.True(t, ok)
	require.True(t, modmath.IsPrime(p, modmath.DefaultIterations))

	_, err := modmath.FindGenerator(p)
	assert.ErrorIs(t, err, modmath.ErrNoGeneratorFound)

	_, err = modmath.FindValidGenerator(p, modmath.DefaultIterations)
	assert.ErrorIs(t, err, modmath.ErrNoGeneratorFound)
}

func TestFindValidGenerator_RejectsComposite(t *testing.T) {
	_, err := modmath.FindValidGenerator(bi(561), modmath.DefaultIterations)
	assert.ErrorIs(t, err, modmath.ErrInvalidParameter)
}

func TestValidateParameters(t *testing.T) {
	require.NoError(t, modmath.ValidateParameters(bi(467), bi(2), modmath.DefaultIterations))

	for _, tc := range []struct {
		name string
		p, g int64
	}{
		{"composite p", 468, 2},
		{"g too small", 467, 1},
		{"g is p-1", 467, 466},
		{"g above p", 467, 500},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := modmath.ValidateParameters(bi(tc.p), bi(tc.g), modmath.DefaultIterations)
			assert.ErrorIs(t, err, modmath.ErrInvalidParameter)
		})
	}
}

func TestValidateDSAParameters(t *testing.T) {
	// p = 23, q = 11, g = 4 has order 11.
	require.NoError(t, modmath.ValidateDSAParameters(bi(23), bi(11), bi(4), modmath.DefaultIterations))

	for _, tc := range []struct {
		name    string
		p, q, g int64
	}{
		{"q does not divide p-1", 23, 7, 4},
		{"composite p", 25, 11, 4},
		{"composite q", 23, 22, 4},
		{"g out of range", 23, 11, 23},
		{"g of wrong order", 23, 11, 5},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := modmath.ValidateDSAParameters(bi(tc.p), bi(tc.q), bi(tc.g), modmath.DefaultIterations)
			assert.ErrorIs(t, err, modmath.ErrInvalidParameter)
		})
	}
}
