// Package keyset caches what each peer has told this process about its
// public keys, together with the AES session key negotiated with it.
//
// KeySet has no internal locking. Callers sharing one across goroutines
// must serialise access themselves.
package keyset

import (
	"errors"
	"fmt"
	"math/big"

	"hybridchat/internal/crypto/aes256"
	"hybridchat/internal/crypto/sha256"
)

// ErrNoSessionKey is returned when no session key has been negotiated.
var ErrNoSessionKey = errors.New("keyset: no session key")

// unset marks a field the peer has not supplied yet.
const unset = -1

// MaxRetiredKeys bounds how many replaced session keys are kept for
// messages still in flight.
const MaxRetiredKeys = 4

// KeyIDSize is the length in hex characters of a session key id.
const KeyIDSize = 16

// UserCryptoKeys are one peer's public keys and session key. Unset fields
// hold -1.
//
// RetiredSessionKeys holds the keys AESSessionKey replaced, newest first.
// Both peers can offer a key at the same time; each then sends under the
// last key it saw while still able to open messages under the other.
type UserCryptoKeys struct {
	DSAPublicKey       *big.Int
	ElGamalPublicKey   *big.Int
	AESSessionKey      *big.Int
	RetiredSessionKeys []*big.Int
}

// NewUserCryptoKeys returns keys with every field unset.
func NewUserCryptoKeys() UserCryptoKeys {
	return UserCryptoKeys{
		DSAPublicKey:     big.NewInt(unset),
		ElGamalPublicKey: big.NewInt(unset),
		AESSessionKey:    big.NewInt(unset),
	}
}

// KeyID names a session key on the wire without revealing it.
func KeyID(key []byte) string {
	return sha256.Sum(key)[:KeyIDSize]
}

// NewPeerKeys returns keys carrying the peer's two public values and no
// session key.
func NewPeerKeys(dsaPub, elgamalPub *big.Int) UserCryptoKeys {
	k := NewUserCryptoKeys()
	if dsaPub != nil {
		k.DSAPublicKey.Set(dsaPub)
	}
	if elgamalPub != nil {
		k.ElGamalPublicKey.Set(elgamalPub)
	}
	return k
}

func isSet(v *big.Int) bool { return v != nil && v.Sign() >= 0 }

// HasDSAPublicKey reports whether the DSA public value is known.
func (k UserCryptoKeys) HasDSAPublicKey() bool { return isSet(k.DSAPublicKey) }

// HasElGamalPublicKey reports whether the ElGamal public value is known.
func (k UserCryptoKeys) HasElGamalPublicKey() bool { return isSet(k.ElGamalPublicKey) }

// HasSessionKey reports whether a session key has been negotiated.
func (k UserCryptoKeys) HasSessionKey() bool { return isSet(k.AESSessionKey) }

// SessionKey returns the negotiated key as 32 big-endian bytes.
func (k UserCryptoKeys) SessionKey() ([]byte, error) {
	if !k.HasSessionKey() {
		return nil, ErrNoSessionKey
	}
	return keyBytes(k.AESSessionKey)
}

// SessionKeyByID returns the current or retired session key whose KeyID is
// id. An empty id selects the current key.
func (k UserCryptoKeys) SessionKeyByID(id string) ([]byte, error) {
	if id == "" {
		return k.SessionKey()
	}
	candidates := append([]*big.Int{k.AESSessionKey}, k.RetiredSessionKeys...)
	for _, v := range candidates {
		if !isSet(v) {
			continue
		}
		key, err := keyBytes(v)
		if err != nil {
			return nil, err
		}
		if KeyID(key) == id {
			return key, nil
		}
	}
	return nil, fmt.Errorf("%w with id %s", ErrNoSessionKey, id)
}

func keyBytes(v *big.Int) ([]byte, error) {
	if v.BitLen() > aes256.KeySize*8 {
		return nil, fmt.Errorf("keyset: session key wider than %d bytes", aes256.KeySize)
	}
	return v.FillBytes(make([]byte, aes256.KeySize)), nil
}

// SetSessionKey stores key, which must be exactly 32 bytes. The key it
// replaces moves to RetiredSessionKeys.
func (k *UserCryptoKeys) SetSessionKey(key []byte) error {
	if len(key) != aes256.KeySize {
		return fmt.Errorf("%w: %d bytes", aes256.ErrInvalidKeySize, len(key))
	}
	next := new(big.Int).SetBytes(key)

	retired := make([]*big.Int, 0, MaxRetiredKeys)
	if k.HasSessionKey() && k.AESSessionKey.Cmp(next) != 0 {
		retired = append(retired, k.AESSessionKey)
	}
	for _, v := range k.RetiredSessionKeys {
		if len(retired) == MaxRetiredKeys {
			break
		}
		if isSet(v) && v.Cmp(next) != 0 {
			retired = append(retired, v)
		}
	}
	k.AESSessionKey = next
	k.RetiredSessionKeys = retired
	return nil
}

func (k UserCryptoKeys) clone() UserCryptoKeys {
	cp := func(v *big.Int) *big.Int {
		if v == nil {
			return big.NewInt(unset)
		}
		return new(big.Int).Set(v)
	}
	var retired []*big.Int
	for _, v := range k.RetiredSessionKeys {
		retired = append(retired, cp(v))
	}
	return UserCryptoKeys{
		DSAPublicKey:       cp(k.DSAPublicKey),
		ElGamalPublicKey:   cp(k.ElGamalPublicKey),
		AESSessionKey:      cp(k.AESSessionKey),
		RetiredSessionKeys: retired,
	}
}

// KeySet maps peer identifiers to their keys.
type KeySet struct {
	users map[string]UserCryptoKeys
}

// New returns an empty key set.
func New() *KeySet {
	return &KeySet{users: make(map[string]UserCryptoKeys)}
}

// Add inserts or replaces the keys stored for peer.
func (s *KeySet) Add(peer string, keys UserCryptoKeys) {
	s.users[peer] = keys.clone()
}

// Get returns a copy of the keys stored for peer.
func (s *KeySet) Get(peer string) (UserCryptoKeys, bool) {
	k, ok := s.users[peer]
	if !ok {
		return UserCryptoKeys{}, false
	}
	return k.clone(), true
}

// Remove deletes peer and reports whether it was present.
func (s *KeySet) Remove(peer string) bool {
	if _, ok := s.users[peer]; !ok {
		return false
	}
	delete(s.users, peer)
	return true
}

// Has reports whether peer is known.
func (s *KeySet) Has(peer string) bool {
	_, ok := s.users[peer]
	return ok
}

// Size returns the number of known peers.
func (s *KeySet) Size() int { return len(s.users) }

// Clear forgets every peer.
func (s *KeySet) Clear() { clear(s.users) }

// Peers returns the known peer identifiers in no particular order.
func (s *KeySet) Peers() []string {
	out := make([]string, 0, len(s.users))
	for p := range s.users {
		out = append(out, p)
	}
	return out
}
