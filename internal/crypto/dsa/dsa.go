// Package dsa implements the Digital Signature Algorithm over a prime-order
// subgroup. It signs caller-supplied digests and is used to authenticate key
// exchange material and message ciphertexts.
package dsa

import (
	"errors"
	"fmt"
	"math/big"

	"hybridchat/internal/crypto/modmath"
)

// ErrInvalidKey is returned for private exponents outside [1, Q-1].
var ErrInvalidKey = errors.New("dsa: invalid key")

var one = big.NewInt(1)

// Parameters are the modulus P, subgroup order Q (dividing P-1) and
// generator G of the order-Q subgroup.
type Parameters struct {
	P, Q, G *big.Int
}

// Validate checks P and Q for primality, that Q divides P-1 and that G
// generates the order-Q subgroup.
func (p Parameters) Validate(iterations int) error {
	if err := modmath.ValidateDSAParameters(p.P, p.Q, p.G, iterations); err != nil {
		return fmt.Errorf("dsa parameters: %w", err)
	}
	return nil
}

// KeyPair holds the private exponent X and public value Y = G^X mod P.
type KeyPair struct {
	X *big.Int
	Y *big.Int
}

// Signature is a DSA signature (R, S) with both components in (0, Q).
type Signature struct {
	R, S *big.Int
}

// GenerateKey draws X uniformly from [1, Q-1] and derives Y.
func GenerateKey(params Parameters) (*KeyPair, error) {
	x, err := modmath.RandomInt(one, new(big.Int).Sub(params.Q, one))
	if err != nil {
		return nil, fmt.Errorf("dsa keygen: %w", err)
	}
	return &KeyPair{X: x, Y: modmath.ModPow(params.G, x, params.P)}, nil
}

// NewKeyPair rebuilds a key pair from a stored private exponent.
func NewKeyPair(params Parameters, x *big.Int) (*KeyPair, error) {
	if x == nil || x.Sign() <= 0 || x.Cmp(params.Q) >= 0 {
		return nil, fmt.Errorf("%w: private exponent outside [1, q-1]", ErrInvalidKey)
	}
	return &KeyPair{X: new(big.Int).Set(x), Y: modmath.ModPow(params.G, x, params.P)}, nil
}

// Sign signs hash with private exponent x. A fresh nonce k is drawn until
// both R and S are non-zero.
func Sign(params Parameters, x, hash *big.Int) (*Signature, error) {
	qMinusOne := new(big.Int).Sub(params.Q, one)
	qMinusTwo := new(big.Int).Sub(qMinusOne, one)
	h := new(big.Int).Mod(hash, params.Q)

	for {
		k, err := modmath.RandomInt(one, qMinusOne)
		if err != nil {
			return nil, fmt.Errorf("dsa sign: %w", err)
		}

		r := modmath.ModPow(params.G, k, params.P)
		r.Mod(r, params.Q)
		if r.Sign() == 0 {
			continue
		}

		kInv := modmath.ModPow(k, qMinusTwo, params.Q)
		s := new(big.Int).Mul(x, r)
		s.Add(s, h)
		s.Mul(s, kInv)
		s.Mod(s, params.Q)
		if s.Sign() == 0 {
			continue
		}
		return &Signature{R: r, S: s}, nil
	}
}

// Verify reports whether sig is a valid signature of hash under publicKey.
// Components outside (0, Q) are rejected without further work.
func Verify(params Parameters, hash *big.Int, sig *Signature, publicKey *big.Int) bool {
	if sig == nil || !inRange(sig.R, params.Q) || !inRange(sig.S, params.Q) {
		return false
	}
	if publicKey == nil || publicKey.Cmp(one) <= 0 || publicKey.Cmp(params.P) >= 0 {
		return false
	}

	qMinusTwo := new(big.Int).Sub(params.Q, big.NewInt(2))
	w := modmath.ModPow(sig.S, qMinusTwo, params.Q)

	u1 := new(big.Int).Mod(hash, params.Q)
	u1.Mul(u1, w)
	u1.Mod(u1, params.Q)

	u2 := new(big.Int).Mul(sig.R, w)
	u2.Mod(u2, params.Q)

	v := modmath.ModPow(params.G, u1, params.P)
	v.Mul(v, modmath.ModPow(publicKey, u2, params.P))
	v.Mod(v, params.P)
	v.Mod(v, params.Q)

	return v.Cmp(sig.R) == 0
}

func inRange(v, q *big.Int) bool {
	return v != nil && v.Sign() > 0 && v.Cmp(q) < 0
}

// DSA owns validated parameters and one signing key pair.
type DSA struct {
	params Parameters
	key    *KeyPair
}

// New validates params and generates a fresh key pair.
func New(params Parameters, iterations int) (*DSA, error) {
	if err := params.Validate(iterations); err != nil {
		return nil, err
	}
	key, err := GenerateKey(params)
	if err != nil {
		return nil, err
	}
	return &DSA{params: params, key: key}, nil
}

// NewWithKey is New with a caller-supplied private exponent.
func NewWithKey(params Parameters, x *big.Int, iterations int) (*DSA, error) {
	if err := params.Validate(iterations); err != nil {
		return nil, err
	}
	key, err := NewKeyPair(params, x)
	if err != nil {
		return nil, err
	}
	return &DSA{params: params, key: key}, nil
}

// FromKeyPair wraps an existing key pair. params must already have passed
// Validate.
func FromKeyPair(params Parameters, key *KeyPair) *DSA {
	return &DSA{params: params, key: key}
}

// Parameters returns the group this instance signs in.
func (d *DSA) Parameters() Parameters { return d.params }

// PublicKey returns a copy of the public value Y.
func (d *DSA) PublicKey() *big.Int { return new(big.Int).Set(d.key.Y) }

// PrivateKey returns a copy of the private exponent X.
func (d *DSA) PrivateKey() *big.Int { return new(big.Int).Set(d.key.X) }

// Sign signs hash with this instance's private exponent.
func (d *DSA) Sign(hash *big.Int) (*Signature, error) {
	return Sign(d.params, d.key.X, hash)
}

// Verify checks sig over hash against signerPublicKey.
func (d *DSA) Verify(hash *big.Int, sig *Signature, signerPublicKey *big.Int) bool {
	return Verify(d.params, hash, sig, signerPublicKey)
}
