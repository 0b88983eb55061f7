package elgamal

import (
	"errors"
	"fmt"
	"math/big"

	"hybridchat/internal/crypto/modmath"
)

var (
	// ErrMessageOutOfRange is returned when a message is not in [0, p).
	ErrMessageOutOfRange = errors.New("elgamal: message out of range")

	// ErrInvalidCiphertext is returned when c1 or c2 is not in [1, p).
	ErrInvalidCiphertext = errors.New("elgamal: invalid ciphertext")

	// ErrInvalidKey is returned for private exponents outside [2, p-2] or
	// public values outside (1, p).
	ErrInvalidKey = errors.New("elgamal: invalid key")
)

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// Parameters are the group modulus P and generator G.
type Parameters struct {
	P, G *big.Int
}

// Validate checks that P is prime and G lies in (1, P-1).
func (p Parameters) Validate(iterations int) error {
	if err := modmath.ValidateParameters(p.P, p.G, iterations); err != nil {
		return fmt.Errorf("elgamal parameters: %w", err)
	}
	return nil
}

// KeyPair holds the private exponent X and public value Y = G^X mod P.
type KeyPair struct {
	X *big.Int
	Y *big.Int
}

// Ciphertext is an ElGamal ciphertext (C1, C2).
type Ciphertext struct {
	C1, C2 *big.Int
}

// GenerateKey draws X uniformly from [2, P-2] and derives Y.
func GenerateKey(params Parameters) (*KeyPair, error) {
	x, err := modmath.RandomInt(two, new(big.Int).Sub(params.P, two))
	if err != nil {
		return nil, fmt.Errorf("elgamal keygen: %w", err)
	}
	return &KeyPair{X: x, Y: modmath.ModPow(params.G, x, params.P)}, nil
}

// NewKeyPair rebuilds a key pair from a stored private exponent.
func NewKeyPair(params Parameters, x *big.Int) (*KeyPair, error) {
	if x == nil || x.Cmp(two) < 0 || x.Cmp(new(big.Int).Sub(params.P, two)) > 0 {
		return nil, fmt.Errorf("%w: private exponent outside [2, p-2]", ErrInvalidKey)
	}
	return &KeyPair{X: new(big.Int).Set(x), Y: modmath.ModPow(params.G, x, params.P)}, nil
}

// Encrypt encrypts m for the holder of publicKey. A fresh k in [2, P-2] is
// drawn per call, so equal inputs give different ciphertexts.
func Encrypt(params Parameters, m, publicKey *big.Int) (*Ciphertext, error) {
	if m == nil || m.Sign() < 0 || m.Cmp(params.P) >= 0 {
		return nil, ErrMessageOutOfRange
	}
	if publicKey == nil || publicKey.Cmp(one) <= 0 || publicKey.Cmp(params.P) >= 0 {
		return nil, fmt.Errorf("%w: public value outside (1, p)", ErrInvalidKey)
	}
	k, err := modmath.RandomInt(two, new(big.Int).Sub(params.P, two))
	if err != nil {
		return nil, fmt.Errorf("elgamal encrypt: %w", err)
	}

	c1 := modmath.ModPow(params.G, k, params.P)
	c2 := modmath.ModPow(publicKey, k, params.P)
	c2.Mul(c2, m)
	c2.Mod(c2, params.P)
	return &Ciphertext{C1: c1, C2: c2}, nil
}

// Decrypt recovers m from ct with private exponent x. The shared secret is
// inverted as s^(P-2) mod P, which relies on P being prime.
func Decrypt(params Parameters, x *big.Int, ct *Ciphertext) (*big.Int, error) {
	if ct == nil || !inGroup(ct.C1, params.P) || ct.C2 == nil || ct.C2.Sign() < 0 || ct.C2.Cmp(params.P) >= 0 {
		return nil, ErrInvalidCiphertext
	}
	s := modmath.ModPow(ct.C1, x, params.P)
	sInv := modmath.ModPow(s, new(big.Int).Sub(params.P, two), params.P)

	m := new(big.Int).Mul(ct.C2, sInv)
	return m.Mod(m, params.P), nil
}

func inGroup(v, p *big.Int) bool {
	return v != nil && v.Sign() > 0 && v.Cmp(p) < 0
}

// ElGamal owns validated parameters and one key pair.
type ElGamal struct {
	params Parameters
	key    *KeyPair
}

// New validates params and generates a fresh key pair. Invalid parameters
// are an error; there is no fallback group.
func New(params Parameters, iterations int) (*ElGamal, error) {
	if err := params.Validate(iterations); err != nil {
		return nil, err
	}
	key, err := GenerateKey(params)
	if err != nil {
		return nil, err
	}
	return &ElGamal{params: params, key: key}, nil
}

// NewWithKey is New with a caller-supplied private exponent.
func NewWithKey(params Parameters, x *big.Int, iterations int) (*ElGamal, error) {
	if err := params.Validate(iterations); err != nil {
		return nil, err
	}
	key, err := NewKeyPair(params, x)
	if err != nil {
		return nil, err
	}
	return &ElGamal{params: params, key: key}, nil
}

// FromKeyPair wraps an existing key pair. params must already have passed
// Validate; use it with the process-wide validated groups.
func FromKeyPair(params Parameters, key *KeyPair) *ElGamal {
	return &ElGamal{params: params, key: key}
}

// Parameters returns the group this instance works in.
func (e *ElGamal) Parameters() Parameters { return e.params }

// PublicKey returns a copy of the public value Y.
func (e *ElGamal) PublicKey() *big.Int { return new(big.Int).Set(e.key.Y) }

// PrivateKey returns a copy of the private exponent X, for sealed local
// storage only.
func (e *ElGamal) PrivateKey() *big.Int { return new(big.Int).Set(e.key.X) }

// Encrypt encrypts m for recipientPublicKey.
func (e *ElGamal) Encrypt(m, recipientPublicKey *big.Int) (*Ciphertext, error) {
	return Encrypt(e.params, m, recipientPublicKey)
}

// Decrypt decrypts ct with this instance's private exponent.
func (e *ElGamal) Decrypt(ct *Ciphertext) (*big.Int, error) {
	return Decrypt(e.params, e.key.X, ct)
}
