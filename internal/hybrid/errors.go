package hybrid

import "errors"

var (
	// ErrBadSignature is returned when a key exchange or message signature
	// does not verify against the claimed sender.
	ErrBadSignature = errors.New("hybrid: signature verification failed")

	// ErrInvalidSessionKey is returned when a decrypted key does not fit in
	// 32 bytes.
	ErrInvalidSessionKey = errors.New("hybrid: invalid session key")

	// ErrMalformed is returned for nil or incomplete protocol values.
	ErrMalformed = errors.New("hybrid: malformed input")
)
