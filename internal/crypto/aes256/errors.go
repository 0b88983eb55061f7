package aes256

import "errors"

var (
	// ErrEmptyInput is returned when Encrypt or Decrypt receives no data.
	ErrEmptyInput = errors.New("aes256: empty input")

	// ErrInvalidKeySize is returned for keys that are not exactly 32 bytes.
	ErrInvalidKeySize = errors.New("aes256: key must be 32 bytes")

	// ErrInvalidCiphertextLength is returned when the ciphertext is not a
	// multiple of the block size.
	ErrInvalidCiphertextLength = errors.New("aes256: ciphertext is not a multiple of the block size")

	// ErrInvalidPadding is returned when PKCS#7 padding does not verify. Treat
	// it as an authentication failure: the ciphertext is corrupt or the key is
	// wrong.
	ErrInvalidPadding = errors.New("aes256: invalid padding")
)
