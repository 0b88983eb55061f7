package hybrid

import (
	"fmt"
	"math/big"

	"hybridchat/internal/crypto"
	"hybridchat/internal/crypto/aes256"
	"hybridchat/internal/crypto/dsa"
	"hybridchat/internal/crypto/elgamal"
	"hybridchat/internal/crypto/sha256"
)

// KeyExchange is the {c1, c2, r, s} message that hands a session key to a
// peer.
type KeyExchange struct {
	Key       *elgamal.Ciphertext
	Signature *dsa.Signature
}

// SealedMessage is an AES ciphertext and the sender's signature over its
// digest.
type SealedMessage struct {
	Cipher    []byte
	Signature *dsa.Signature
}

// KeyExchangeDigest returns SHA256(hex(c1) ++ hex(c2)) as an integer.
func KeyExchangeDigest(ct *elgamal.Ciphertext) (*big.Int, error) {
	if ct == nil || ct.C1 == nil || ct.C2 == nil {
		return nil, ErrMalformed
	}
	h := sha256.New()
	h.Update([]byte(crypto.FormatInt(ct.C1)))
	h.Update([]byte(crypto.FormatInt(ct.C2)))
	return crypto.DigestInt(h.Digest())
}

// MessageDigest returns SHA256(cipher) as an integer.
func MessageDigest(cipher []byte) (*big.Int, error) {
	return crypto.DigestInt(sha256.Sum(cipher))
}

// OfferSessionKey generates a fresh session key, encrypts it for
// recipientPublicKey and signs the ciphertext digest. It returns the
// message to send and a copy of the key.
func (s *System) OfferSessionKey(recipientPublicKey *big.Int) (*KeyExchange, []byte, error) {
	key, err := s.NewSessionKey()
	if err != nil {
		return nil, nil, err
	}
	ct, err := s.EncryptAESKey(recipientPublicKey)
	if err != nil {
		return nil, nil, err
	}
	h, err := KeyExchangeDigest(ct)
	if err != nil {
		return nil, nil, err
	}
	sig, err := s.Sign(h)
	if err != nil {
		return nil, nil, fmt.Errorf("hybrid: sign key exchange: %w", err)
	}
	s.log.Debug().Int("c1_bits", ct.C1.BitLen()).Msg("session key offered")
	return &KeyExchange{Key: ct, Signature: sig}, key, nil
}

// AcceptSessionKey verifies kx against senderDSAPublicKey and, only if the
// signature holds, decrypts and returns the session key.
func (s *System) AcceptSessionKey(kx *KeyExchange, senderDSAPublicKey *big.Int) ([]byte, error) {
	if kx == nil {
		return nil, ErrMalformed
	}
	h, err := KeyExchangeDigest(kx.Key)
	if err != nil {
		return nil, err
	}
	if !s.Verify(h, kx.Signature, senderDSAPublicKey) {
		s.log.Debug().Msg("key exchange rejected")
		return nil, ErrBadSignature
	}
	key, err := s.DecryptAESKey(kx.Key)
	if err != nil {
		return nil, err
	}
	s.log.Debug().Msg("session key accepted")
	return key, nil
}

// SealMessage encrypts plaintext under key and signs the ciphertext digest.
func (s *System) SealMessage(key, plaintext []byte) (*SealedMessage, error) {
	cipher, err := aes256.Encrypt(plaintext, key)
	if err != nil {
		return nil, fmt.Errorf("hybrid: seal: %w", err)
	}
	h, err := MessageDigest(cipher)
	if err != nil {
		return nil, err
	}
	sig, err := s.Sign(h)
	if err != nil {
		return nil, fmt.Errorf("hybrid: sign message: %w", err)
	}
	return &SealedMessage{Cipher: cipher, Signature: sig}, nil
}

// OpenMessage verifies msg against senderDSAPublicKey and decrypts it with
// key. A padding failure after a valid signature means the wrong session
// key was used.
func (s *System) OpenMessage(key []byte, msg *SealedMessage, senderDSAPublicKey *big.Int) ([]byte, error) {
	if msg == nil {
		return nil, ErrMalformed
	}
	h, err := MessageDigest(msg.Cipher)
	if err != nil {
		return nil, err
	}
	if !s.Verify(h, msg.Signature, senderDSAPublicKey) {
		return nil, ErrBadSignature
	}
	pt, err := aes256.Decrypt(msg.Cipher, key)
	if err != nil {
		return nil, fmt.Errorf("hybrid: open: %w", err)
	}
	return pt, nil
}
