package store

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
)

// sealedFormatVersion is the newest on-disk format this build can open.
const sealedFormatVersion = 1

// ErrWrongPassphrase is returned when the passphrase is incorrect or the
// sealed file has been modified.
var ErrWrongPassphrase = errors.New("wrong passphrase or corrupted file")

// kdfParams are the scrypt cost parameters recorded alongside each blob.
type kdfParams struct {
	N, R, P int
}

var defaultKDF = kdfParams{N: 1 << 15, R: 8, P: 1}

// sealedBlob is the on-disk JSON structure holding the ciphertext and KDF
// parameters. Purpose is bound as associated data so an identity blob cannot
// be swapped in for a peer blob.
type sealedBlob struct {
	V       int    `json:"v"`
	Purpose string `json:"purpose"`
	Salt    []byte `json:"salt"`
	N       int    `json:"scrypt_N"`
	R       int    `json:"scrypt_r"`
	P       int    `json:"scrypt_p"`
	Cipher  []byte `json:"cipher"`
}

func associatedData(purpose string, salt []byte) []byte {
	return append([]byte(purpose+"\x00"), salt...)
}

// seal derives a key from passphrase and encrypts raw into a JSON blob.
func seal(passphrase, purpose string, raw []byte, kdf kdfParams) ([]byte, error) {
	var salt [16]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return nil, err
	}
	key, err := scrypt.Key([]byte(passphrase), salt[:], kdf.N, kdf.R, kdf.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte // zero nonce; the key is fresh per salt
	ct := aead.Seal(nil, nonce[:], raw, associatedData(purpose, salt[:]))

	return json.Marshal(sealedBlob{
		V:       sealedFormatVersion,
		Purpose: purpose,
		Salt:    salt[:],
		N:       kdf.N,
		R:       kdf.R,
		P:       kdf.P,
		Cipher:  ct,
	})
}

// open decrypts a blob produced by seal.
func open(passphrase, purpose string, b []byte) ([]byte, error) {
	var bl sealedBlob
	if err := json.Unmarshal(b, &bl); err != nil {
		return nil, fmt.Errorf("sealed file: %w", err)
	}
	if bl.V > sealedFormatVersion {
		return nil, fmt.Errorf("unsupported sealed file version %d", bl.V)
	}
	if bl.Purpose != purpose {
		return nil, fmt.Errorf("sealed file holds %q, want %q", bl.Purpose, purpose)
	}

	key, err := scrypt.Key([]byte(passphrase), bl.Salt, bl.N, bl.R, bl.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte
	pt, err := aead.Open(nil, nonce[:], bl.Cipher, associatedData(purpose, bl.Salt))
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return pt, nil
}
