package aes256

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
)

// GenerateKey returns a fresh random 32-byte key.
func GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate aes key: %w", err)
	}
	return key, nil
}

// Encrypt pads plaintext with PKCS#7 and encrypts every block independently
// under key. The result is always a non-empty multiple of BlockSize.
func Encrypt(plaintext, key []byte) ([]byte, error) {
	if len(plaintext) == 0 {
		return nil, ErrEmptyInput
	}
	b, err := NewCipher(key)
	if err != nil {
		return nil, err
	}
	padded := Pad(plaintext)
	out := make([]byte, len(padded))
	for i := 0; i < len(padded); i += BlockSize {
		b.Encrypt(out[i:i+BlockSize], padded[i:i+BlockSize])
	}
	return out, nil
}

// Decrypt reverses Encrypt. It fails with ErrInvalidPadding when the key is
// wrong or the ciphertext was altered.
func Decrypt(ciphertext, key []byte) ([]byte, error) {
	if len(ciphertext) == 0 {
		return nil, ErrEmptyInput
	}
	if len(ciphertext)%BlockSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidCiphertextLength, len(ciphertext))
	}
	b, err := NewCipher(key)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(ciphertext))
	for i := 0; i < len(ciphertext); i += BlockSize {
		b.Decrypt(out[i:i+BlockSize], ciphertext[i:i+BlockSize])
	}
	return Unpad(out)
}

// Pad appends PKCS#7 padding. Block-aligned input gains a full block of 16s.
func Pad(data []byte) []byte {
	n := BlockSize - len(data)%BlockSize
	out := make([]byte, len(data)+n)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = byte(n)
	}
	return out
}

// Unpad strips PKCS#7 padding. The trailing byte must be in [1, 16] and every
// padding byte must equal it.
func Unpad(data []byte) ([]byte, error) {
	if len(data) == 0 || len(data)%BlockSize != 0 {
		return nil, ErrInvalidPadding
	}
	n := int(data[len(data)-1])
	if n == 0 || n > BlockSize {
		return nil, ErrInvalidPadding
	}
	good := 1
	for _, v := range data[len(data)-n:] {
		good &= subtle.ConstantTimeByteEq(v, byte(n))
	}
	if good != 1 {
		return nil, ErrInvalidPadding
	}
	return data[:len(data)-n], nil
}
