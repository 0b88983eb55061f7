package dsa_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hybridchat/internal/crypto/dsa"
	"hybridchat/internal/crypto/modmath"
	"hybridchat/internal/crypto/params"
	"hybridchat/internal/crypto/sha256"
)

func deploymentParams(t *testing.T) dsa.Parameters {
	t.Helper()
	p, err := params.DSA()
	require.NoError(t, err)
	return p
}

func digestInt(t *testing.T, msg string) *big.Int {
	t.Helper()
	h, ok := new(big.Int).SetString(sha256.Sum([]byte(msg)), 16)
	require.True(t, ok)
	return h
}

func TestSignVerify_RoundTrip(t *testing.T) {
	p := deploymentParams(t)
	key, err := dsa.GenerateKey(p)
	require.NoError(t, err)

	h := digestInt(t, "wrapped session key")
	sig, err := dsa.Sign(p, key.X, h)
	require.NoError(t, err)

	assert.True(t, sig.R.Sign() > 0 && sig.R.Cmp(p.Q) < 0)
	assert.True(t, sig.S.Sign() > 0 && sig.S.Cmp(p.Q) < 0)
	assert.True(t, dsa.Verify(p, h, sig, key.Y))
}

func TestVerify_DifferentDigestFails(t *testing.T) {
	p := deploymentParams(t)
	key, err := dsa.GenerateKey(p)
	require.NoError(t, err)

	sig, err := dsa.Sign(p, key.X, digestInt(t, "h1"))
	require.NoError(t, err)
	assert.False(t, dsa.Verify(p, digestInt(t, "h2"), sig, key.Y))
}

func TestVerify_OtherPublicKeyFails(t *testing.T) {
	p := deploymentParams(t)
	alice, err := dsa.GenerateKey(p)
	require.NoError(t, err)
	mallory, err := dsa.GenerateKey(p)
	require.NoError(t, err)

	h := digestInt(t, "hello")
	sig, err := dsa.Sign(p, alice.X, h)
	require.NoError(t, err)
	assert.False(t, dsa.Verify(p, h, sig, mallory.Y))
}

func TestVerify_ComponentsOutOfRange(t *testing.T) {
	p := deploymentParams(t)
	key, err := dsa.GenerateKey(p)
	require.NoError(t, err)
	h := digestInt(t, "range")

	sig, err := dsa.Sign(p, key.X, h)
	require.NoError(t, err)

	for name, bad := range map[string]*dsa.Signature{
		"r zero":     {R: big.NewInt(0), S: sig.S},
		"s zero":     {R: sig.R, S: big.NewInt(0)},
		"r equals q": {R: new(big.Int).Set(p.Q), S: sig.S},
		"s above q":  {R: sig.R, S: new(big.Int).Add(p.Q, big.NewInt(1))},
		"nil s":      {R: sig.R},
	} {
		assert.False(t, dsa.Verify(p, h, bad, key.Y), name)
	}
	assert.False(t, dsa.Verify(p, h, nil, key.Y))
}

func TestSign_IsRandomized(t *testing.T) {
	p := deploymentParams(t)
	d := dsa.FromKeyPair(p, mustKey(t, p))

	h := digestInt(t, "same digest")
	a, err := d.Sign(h)
	require.NoError(t, err)
	b, err := d.Sign(h)
	require.NoError(t, err)

	assert.NotEqual(t, 0, a.R.Cmp(b.R))
	assert.True(t, d.Verify(h, a, d.PublicKey()))
	assert.True(t, d.Verify(h, b, d.PublicKey()))
}

func TestSignVerify_SmallGroup(t *testing.T) {
	// p = 23, q = 11, g = 4: every digest below q signs and verifies.
	p := dsa.Parameters{P: big.NewInt(23), Q: big.NewInt(11), G: big.NewInt(4)}
	d, err := dsa.New(p, modmath.DefaultIterations)
	require.NoError(t, err)

	for h := int64(0); h < 11; h++ {
		sig, err := d.Sign(big.NewInt(h))
		require.NoError(t, err)
		require.True(t, d.Verify(big.NewInt(h), sig, d.PublicKey()), "digest %d", h)
	}
}

func TestNew_InvalidParameters(t *testing.T) {
	_, err := dsa.New(dsa.Parameters{P: big.NewInt(23), Q: big.NewInt(7), G: big.NewInt(4)}, modmath.DefaultIterations)
	assert.ErrorIs(t, err, modmath.ErrInvalidParameter)
}

func TestNewWithKey_RestoresPublicValue(t *testing.T) {
	p := dsa.Parameters{P: big.NewInt(23), Q: big.NewInt(11), G: big.NewInt(4)}
	d, err := dsa.NewWithKey(p, big.NewInt(3), modmath.DefaultIterations)
	require.NoError(t, err)
	// 4^3 mod 23 = 64 mod 23 = 18
	assert.Equal(t, int64(18), d.PublicKey().Int64())

	_, err = dsa.NewKeyPair(p, big.NewInt(11))
	assert.ErrorIs(t, err, dsa.ErrInvalidKey)
}

func mustKey(t *testing.T, p dsa.Parameters) *dsa.KeyPair {
	t.Helper()
	k, err := dsa.GenerateKey(p)
	require.NoError(t, err)
	return k
}
