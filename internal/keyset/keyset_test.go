package keyset_test

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hybridchat/internal/crypto/aes256"
	"hybridchat/internal/keyset"
)

func TestNewUserCryptoKeys_Unset(t *testing.T) {
	k := keyset.NewUserCryptoKeys()
	assert.Equal(t, int64(-1), k.DSAPublicKey.Int64())
	assert.Equal(t, int64(-1), k.ElGamalPublicKey.Int64())
	assert.Equal(t, int64(-1), k.AESSessionKey.Int64())
	assert.False(t, k.HasDSAPublicKey())
	assert.False(t, k.HasElGamalPublicKey())
	assert.False(t, k.HasSessionKey())

	_, err := k.SessionKey()
	assert.ErrorIs(t, err, keyset.ErrNoSessionKey)
}

func TestSessionKey_RoundTripKeepsLeadingZeros(t *testing.T) {
	k := keyset.NewPeerKeys(big.NewInt(5), big.NewInt(7))
	key := bytes.Repeat([]byte{0}, aes256.KeySize)
	key[31] = 0x2a

	require.NoError(t, k.SetSessionKey(key))
	got, err := k.SessionKey()
	require.NoError(t, err)
	assert.Equal(t, key, got)

	assert.ErrorIs(t, k.SetSessionKey([]byte{1, 2, 3}), aes256.ErrInvalidKeySize)
}

func TestKeySet_Operations(t *testing.T) {
	s := keyset.New()
	assert.Equal(t, 0, s.Size())
	assert.False(t, s.Has("bob"))

	_, ok := s.Get("bob")
	assert.False(t, ok)

	s.Add("bob", keyset.NewPeerKeys(big.NewInt(11), big.NewInt(13)))
	s.Add("carol", keyset.NewUserCryptoKeys())
	assert.Equal(t, 2, s.Size())
	assert.True(t, s.Has("bob"))
	assert.ElementsMatch(t, []string{"bob", "carol"}, s.Peers())

	bob, ok := s.Get("bob")
	require.True(t, ok)
	assert.Equal(t, int64(11), bob.DSAPublicKey.Int64())
	assert.Equal(t, int64(13), bob.ElGamalPublicKey.Int64())
	assert.False(t, bob.HasSessionKey())

	// upsert
	key, err := aes256.GenerateKey()
	require.NoError(t, err)
	require.NoError(t, bob.SetSessionKey(key))
	s.Add("bob", bob)
	assert.Equal(t, 2, s.Size())

	bob, _ = s.Get("bob")
	got, err := bob.SessionKey()
	require.NoError(t, err)
	assert.Equal(t, key, got)

	assert.True(t, s.Remove("carol"))
	assert.False(t, s.Remove("carol"))
	assert.Equal(t, 1, s.Size())

	s.Clear()
	assert.Equal(t, 0, s.Size())
	assert.False(t, s.Has("bob"))
}

func TestKeySet_GetReturnsCopy(t *testing.T) {
	s := keyset.New()
	s.Add("bob", keyset.NewPeerKeys(big.NewInt(11), big.NewInt(13)))

	bob, _ := s.Get("bob")
	bob.DSAPublicKey.SetInt64(99)

	again, _ := s.Get("bob")
	assert.Equal(t, int64(11), again.DSAPublicKey.Int64())
}

func TestNewUserCryptoKeys_FieldsAreIndependent(t *testing.T) {
	a := keyset.NewUserCryptoKeys()
	a.DSAPublicKey.SetInt64(7)
	a.AESSessionKey.SetInt64(9)

	b := keyset.NewUserCryptoKeys()
	assert.False(t, b.HasDSAPublicKey())
	assert.False(t, b.HasSessionKey())
	assert.False(t, b.HasElGamalPublicKey())
}

func TestSetSessionKey_RetiresPrevious(t *testing.T) {
	k := keyset.NewPeerKeys(big.NewInt(5), big.NewInt(7))
	var keys [][]byte
	for range keyset.MaxRetiredKeys + 2 {
		key, err := aes256.GenerateKey()
		require.NoError(t, err)
		require.NoError(t, k.SetSessionKey(key))
		keys = append(keys, key)
	}
	last := keys[len(keys)-1]
	require.Len(t, k.RetiredSessionKeys, keyset.MaxRetiredKeys)

	cur, err := k.SessionKey()
	require.NoError(t, err)
	assert.Equal(t, last, cur)

	got, err := k.SessionKeyByID("")
	require.NoError(t, err)
	assert.Equal(t, last, got)

	// The newest MaxRetiredKeys replaced keys are still reachable by id.
	for _, key := range keys[len(keys)-1-keyset.MaxRetiredKeys : len(keys)-1] {
		got, err := k.SessionKeyByID(keyset.KeyID(key))
		require.NoError(t, err)
		assert.Equal(t, key, got)
	}
	_, err = k.SessionKeyByID(keyset.KeyID(keys[0]))
	assert.ErrorIs(t, err, keyset.ErrNoSessionKey)
}

func TestSetSessionKey_SameKeyIsNotRetired(t *testing.T) {
	k := keyset.NewUserCryptoKeys()
	a, err := aes256.GenerateKey()
	require.NoError(t, err)
	b, err := aes256.GenerateKey()
	require.NoError(t, err)

	require.NoError(t, k.SetSessionKey(a))
	require.NoError(t, k.SetSessionKey(a))
	assert.Empty(t, k.RetiredSessionKeys)

	require.NoError(t, k.SetSessionKey(b))
	require.NoError(t, k.SetSessionKey(a))
	require.Len(t, k.RetiredSessionKeys, 1, "a is current again and leaves the history")
	got, err := k.SessionKeyByID(keyset.KeyID(b))
	require.NoError(t, err)
	assert.Equal(t, b, got)
}

func TestKeyID(t *testing.T) {
	a := bytes.Repeat([]byte{1}, aes256.KeySize)
	b := bytes.Repeat([]byte{2}, aes256.KeySize)
	assert.Len(t, keyset.KeyID(a), keyset.KeyIDSize)
	assert.Equal(t, keyset.KeyID(a), keyset.KeyID(a))
	assert.NotEqual(t, keyset.KeyID(a), keyset.KeyID(b))
}

func TestKeySet_GetCopiesRetiredKeys(t *testing.T) {
	k := keyset.NewUserCryptoKeys()
	for range 2 {
		key, err := aes256.GenerateKey()
		require.NoError(t, err)
		require.NoError(t, k.SetSessionKey(key))
	}
	s := keyset.New()
	s.Add("bob", k)

	bob, _ := s.Get("bob")
	bob.RetiredSessionKeys[0].SetInt64(1)

	again, _ := s.Get("bob")
	assert.Equal(t, k.RetiredSessionKeys[0], again.RetiredSessionKeys[0])
}
