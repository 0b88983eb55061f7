package crypto

import (
	"errors"
	"fmt"
	"math/big"
)

// ErrInvalidHex is returned when a wire integer is not plain hexadecimal.
var ErrInvalidHex = errors.New("crypto: invalid hex integer")

// FormatInt returns v as lowercase hex without a prefix. A nil value
// encodes as the empty string.
func FormatInt(v *big.Int) string {
	if v == nil {
		return ""
	}
	return v.Text(16)
}

// ParseInt decodes a hex integer produced by FormatInt. Mixed case is
// accepted.
func ParseInt(s string) (*big.Int, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidHex)
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return nil, fmt.Errorf("%w: %q", ErrInvalidHex, s)
		}
	}
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	return v, nil
}

// DigestInt interprets a hex digest as a big-endian integer.
func DigestInt(digest string) (*big.Int, error) {
	return ParseInt(digest)
}
