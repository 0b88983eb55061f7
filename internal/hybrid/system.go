package hybrid

import (
	"fmt"
	"math/big"

	"github.com/rs/zerolog"

	"hybridchat/internal/crypto"
	"hybridchat/internal/crypto/aes256"
	"hybridchat/internal/crypto/dsa"
	"hybridchat/internal/crypto/elgamal"
	"hybridchat/internal/crypto/params"
	"hybridchat/internal/log"
)

// System owns this process's ElGamal and DSA key pairs and its current AES
// session key.
type System struct {
	elg        *elgamal.ElGamal
	sig        *dsa.DSA
	sessionKey []byte
	log        zerolog.Logger
}

// Option configures a System.
type Option func(*System)

// WithLogger routes System debug events to l.
func WithLogger(l zerolog.Logger) Option {
	return func(s *System) { s.log = l }
}

// New generates fresh ElGamal and DSA key pairs and a session key.
func New(opts ...Option) (*System, error) {
	ep, dp, err := loadParams()
	if err != nil {
		return nil, err
	}
	ek, err := elgamal.GenerateKey(ep)
	if err != nil {
		return nil, err
	}
	dk, err := dsa.GenerateKey(dp)
	if err != nil {
		return nil, err
	}
	return build(ep, dp, ek, dk, opts)
}

// FromKeys restores a System from stored private exponents. A fresh session
// key is generated; session keys are never persisted with the identity.
func FromKeys(elgamalX, dsaX *big.Int, opts ...Option) (*System, error) {
	ep, dp, err := loadParams()
	if err != nil {
		return nil, err
	}
	ek, err := elgamal.NewKeyPair(ep, elgamalX)
	if err != nil {
		return nil, err
	}
	dk, err := dsa.NewKeyPair(dp, dsaX)
	if err != nil {
		return nil, err
	}
	return build(ep, dp, ek, dk, opts)
}

func loadParams() (elgamal.Parameters, dsa.Parameters, error) {
	ep, err := params.ElGamal()
	if err != nil {
		return elgamal.Parameters{}, dsa.Parameters{}, fmt.Errorf("hybrid: %w", err)
	}
	dp, err := params.DSA()
	if err != nil {
		return elgamal.Parameters{}, dsa.Parameters{}, fmt.Errorf("hybrid: %w", err)
	}
	return ep, dp, nil
}

func build(ep elgamal.Parameters, dp dsa.Parameters, ek *elgamal.KeyPair, dk *dsa.KeyPair, opts []Option) (*System, error) {
	key, err := aes256.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("hybrid: session key: %w", err)
	}
	s := &System{
		elg:        elgamal.FromKeyPair(ep, ek),
		sig:        dsa.FromKeyPair(dp, dk),
		sessionKey: key,
		log:        log.G.Logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log.Debug().Str("fingerprint", s.Fingerprint()).Msg("hybrid system ready")
	return s, nil
}

// ElGamalPublicKey returns this process's ElGamal public value.
func (s *System) ElGamalPublicKey() *big.Int { return s.elg.PublicKey() }

// DSAPublicKey returns this process's DSA public value.
func (s *System) DSAPublicKey() *big.Int { return s.sig.PublicKey() }

// ElGamalPrivateKey returns the ElGamal private exponent for sealed storage.
func (s *System) ElGamalPrivateKey() *big.Int { return s.elg.PrivateKey() }

// DSAPrivateKey returns the DSA private exponent for sealed storage.
func (s *System) DSAPrivateKey() *big.Int { return s.sig.PrivateKey() }

// Fingerprint identifies this process's public keys.
func (s *System) Fingerprint() string {
	return crypto.Fingerprint(s.elg.PublicKey(), s.sig.PublicKey())
}

// SessionKey returns a copy of the current session key.
func (s *System) SessionKey() []byte {
	return append([]byte(nil), s.sessionKey...)
}

// NewSessionKey replaces the session key with a fresh one and returns a
// copy of it.
func (s *System) NewSessionKey() ([]byte, error) {
	key, err := aes256.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("hybrid: session key: %w", err)
	}
	crypto.Wipe(s.sessionKey)
	s.sessionKey = key
	return s.SessionKey(), nil
}

// EncryptAESKey encrypts the current session key for recipientPublicKey.
func (s *System) EncryptAESKey(recipientPublicKey *big.Int) (*elgamal.Ciphertext, error) {
	m := encodeSessionKey(s.sessionKey)
	defer crypto.WipeInt(m)
	ct, err := s.elg.Encrypt(m, recipientPublicKey)
	if err != nil {
		return nil, fmt.Errorf("hybrid: encrypt session key: %w", err)
	}
	return ct, nil
}

// DecryptAESKey recovers a session key encrypted for this process.
func (s *System) DecryptAESKey(ct *elgamal.Ciphertext) ([]byte, error) {
	m, err := s.elg.Decrypt(ct)
	if err != nil {
		return nil, fmt.Errorf("hybrid: decrypt session key: %w", err)
	}
	defer crypto.WipeInt(m)
	return decodeSessionKey(m)
}

// Sign signs hash with this process's DSA private exponent.
func (s *System) Sign(hash *big.Int) (*dsa.Signature, error) {
	return s.sig.Sign(hash)
}

// Verify checks sig over hash against signerPublicKey.
func (s *System) Verify(hash *big.Int, sig *dsa.Signature, signerPublicKey *big.Int) bool {
	return s.sig.Verify(hash, sig, signerPublicKey)
}

// Close wipes the session key. The System must not be used afterwards.
func (s *System) Close() {
	crypto.Wipe(s.sessionKey)
	s.sessionKey = nil
}

// encodeSessionKey reads key as a big-endian integer.
func encodeSessionKey(key []byte) *big.Int {
	return new(big.Int).SetBytes(key)
}

// decodeSessionKey left-pads m back to a 32-byte key.
func decodeSessionKey(m *big.Int) ([]byte, error) {
	if m.Sign() < 0 || m.BitLen() > aes256.KeySize*8 {
		return nil, ErrInvalidSessionKey
	}
	return m.FillBytes(make([]byte, aes256.KeySize)), nil
}
