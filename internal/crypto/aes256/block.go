package aes256

import (
	"crypto/cipher"
	"fmt"
)

const (
	// BlockSize is the AES block size in bytes.
	BlockSize = 16
	// KeySize is the AES-256 key size in bytes.
	KeySize = 32

	rounds   = 14
	keyWords = KeySize / 4
)

type block struct {
	enc [rounds + 1][BlockSize]byte
}

// NewCipher expands a 32-byte key into its round keys and returns a
// cipher.Block that encrypts or decrypts one 16-byte block at a time.
func NewCipher(key []byte) (cipher.Block, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidKeySize, len(key))
	}
	b := &block{}
	b.expandKey(key)
	return b, nil
}

func (b *block) BlockSize() int { return BlockSize }

// expandKey runs the Rijndael schedule: 60 words from the 8-word key, with
// every 8th word rotated, substituted and mixed with a round constant, and
// every word 4 past that substituted only.
func (b *block) expandKey(key []byte) {
	var w [4 * (rounds + 1)][4]byte
	for i := 0; i < keyWords; i++ {
		copy(w[i][:], key[4*i:4*i+4])
	}
	for i := keyWords; i < len(w); i++ {
		t := w[i-1]
		switch i % keyWords {
		case 0:
			t = [4]byte{t[1], t[2], t[3], t[0]}
			subWord(&t)
			t[0] ^= rcon[i/keyWords]
		case 4:
			subWord(&t)
		}
		for j := 0; j < 4; j++ {
			w[i][j] = w[i-keyWords][j] ^ t[j]
		}
	}
	for r := 0; r <= rounds; r++ {
		for c := 0; c < 4; c++ {
			copy(b.enc[r][4*c:], w[4*r+c][:])
		}
	}
}

func subWord(t *[4]byte) {
	for j := range t {
		t[j] = sbox[t[j]]
	}
}

// Encrypt encrypts the first block of src into dst.
func (b *block) Encrypt(dst, src []byte) {
	if len(src) < BlockSize || len(dst) < BlockSize {
		panic("aes256: input not full block")
	}
	var s [BlockSize]byte
	copy(s[:], src)

	addRoundKey(&s, &b.enc[0])
	for r := 1; r < rounds; r++ {
		subBytes(&s)
		shiftRows(&s)
		mixColumns(&s)
		addRoundKey(&s, &b.enc[r])
	}
	subBytes(&s)
	shiftRows(&s)
	addRoundKey(&s, &b.enc[rounds])

	copy(dst, s[:])
}

// Decrypt decrypts the first block of src into dst.
func (b *block) Decrypt(dst, src []byte) {
	if len(src) < BlockSize || len(dst) < BlockSize {
		panic("aes256: input not full block")
	}
	var s [BlockSize]byte
	copy(s[:], src)

	addRoundKey(&s, &b.enc[rounds])
	for r := rounds - 1; r > 0; r-- {
		invShiftRows(&s)
		invSubBytes(&s)
		addRoundKey(&s, &b.enc[r])
		invMixColumns(&s)
	}
	invShiftRows(&s)
	invSubBytes(&s)
	addRoundKey(&s, &b.enc[0])

	copy(dst, s[:])
}

// The state is column-major: s[r+4*c] is row r, column c.

func addRoundKey(s, k *[BlockSize]byte) {
	for i := range s {
		s[i] ^= k[i]
	}
}

func subBytes(s *[BlockSize]byte) {
	for i := range s {
		s[i] = sbox[s[i]]
	}
}

func invSubBytes(s *[BlockSize]byte) {
	for i := range s {
		s[i] = invSbox[s[i]]
	}
}

// shiftRows rotates row r left by r positions.
func shiftRows(s *[BlockSize]byte) {
	t := *s
	for r := 1; r < 4; r++ {
		for c := 0; c < 4; c++ {
			s[r+4*c] = t[r+4*((c+r)%4)]
		}
	}
}

func invShiftRows(s *[BlockSize]byte) {
	t := *s
	for r := 1; r < 4; r++ {
		for c := 0; c < 4; c++ {
			s[r+4*((c+r)%4)] = t[r+4*c]
		}
	}
}

// xtime multiplies by x in GF(2^8) modulo x^8+x^4+x^3+x+1.
func xtime(a byte) byte {
	if a&0x80 != 0 {
		return a<<1 ^ 0x1b
	}
	return a << 1
}

func gmul(a, b byte) byte {
	var p byte
	for b != 0 {
		if b&1 != 0 {
			p ^= a
		}
		a = xtime(a)
		b >>= 1
	}
	return p
}

func mixColumns(s *[BlockSize]byte) {
	for c := 0; c < 4; c++ {
		a0, a1, a2, a3 := s[4*c], s[4*c+1], s[4*c+2], s[4*c+3]
		s[4*c] = xtime(a0) ^ (xtime(a1) ^ a1) ^ a2 ^ a3
		s[4*c+1] = a0 ^ xtime(a1) ^ (xtime(a2) ^ a2) ^ a3
		s[4*c+2] = a0 ^ a1 ^ xtime(a2) ^ (xtime(a3) ^ a3)
		s[4*c+3] = (xtime(a0) ^ a0) ^ a1 ^ a2 ^ xtime(a3)
	}
}

func invMixColumns(s *[BlockSize]byte) {
	for c := 0; c < 4; c++ {
		a0, a1, a2, a3 := s[4*c], s[4*c+1], s[4*c+2], s[4*c+3]
		s[4*c] = gmul(a0, 0x0e) ^ gmul(a1, 0x0b) ^ gmul(a2, 0x0d) ^ gmul(a3, 0x09)
		s[4*c+1] = gmul(a0, 0x09) ^ gmul(a1, 0x0e) ^ gmul(a2, 0x0b) ^ gmul(a3, 0x0d)
		s[4*c+2] = gmul(a0, 0x0d) ^ gmul(a1, 0x09) ^ gmul(a2, 0x0e) ^ gmul(a3, 0x0b)
		s[4*c+3] = gmul(a0, 0x0b) ^ gmul(a1, 0x0d) ^ gmul(a2, 0x09) ^ gmul(a3, 0x0e)
	}
}
