package sha256_test

import (
	stdsha256 "crypto/sha256"
	"encoding/hex"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hybridchat/internal/crypto/sha256"
)

func TestSum_KnownVectors(t *testing.T) {
	cases := map[string]string{
		"":    "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		"abc": "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		"The quick brown fox jumps over the lazy dog": "d7a8fbb307d7809469ca9abcb0082e4f8d5651e46d3cdb762d02d0bf37c9e592",
	}
	for in, want := range cases {
		assert.Equal(t, want, sha256.Sum([]byte(in)), "input %q", in)
	}
}

func TestSum_MatchesStdlibAcrossBlockBoundaries(t *testing.T) {
	for n := 0; n <= 200; n++ {
		msg := []byte(strings.Repeat("x", n))
		want := stdsha256.Sum256(msg)
		require.Equal(t, hex.EncodeToString(want[:]), sha256.Sum(msg), "length %d", n)
	}
}

func TestUpdate_StreamingEqualsOneShot(t *testing.T) {
	msg := []byte(strings.Repeat("streamed input ", 37))

	h := sha256.New()
	for i := 0; i < len(msg); i += 7 {
		end := min(i+7, len(msg))
		h.Update(msg[i:end])
	}
	assert.Equal(t, sha256.Sum(msg), h.Digest())
}

func TestDigest_ResetsState(t *testing.T) {
	h := sha256.New()
	h.Update([]byte("first message"))
	first := h.Digest()

	h.Update([]byte("abc"))
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", h.Digest())

	h.Update([]byte("first message"))
	assert.Equal(t, first, h.Digest())
}

func TestDigest_Format(t *testing.T) {
	d := sha256.Sum([]byte("format"))
	assert.Len(t, d, 64)
	assert.Equal(t, strings.ToLower(d), d)
}

func TestWrite_WorksWithIOCopy(t *testing.T) {
	src := strings.NewReader(strings.Repeat("0123456789", 1000))
	h := sha256.New()
	_, err := io.Copy(h, src)
	require.NoError(t, err)

	want := stdsha256.Sum256([]byte(strings.Repeat("0123456789", 1000)))
	assert.Equal(t, hex.EncodeToString(want[:]), h.Digest())
}
