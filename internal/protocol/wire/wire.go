package wire

import (
	"errors"
	"fmt"
	"math/big"

	"hybridchat/internal/crypto"
	"hybridchat/internal/crypto/aes256"
	"hybridchat/internal/crypto/dsa"
	"hybridchat/internal/crypto/elgamal"
	domaintypes "hybridchat/internal/domain/types"
	"hybridchat/internal/hybrid"
	"hybridchat/internal/keyset"
)

// ErrMalformed is returned when a wire value cannot be decoded.
var ErrMalformed = errors.New("wire: malformed value")

func parse(field, s string) (*big.Int, error) {
	v, err := crypto.ParseInt(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformed, field, err)
	}
	return v, nil
}

// EncodeSignature returns the wire form of sig.
func EncodeSignature(sig *dsa.Signature) domaintypes.Signature {
	return domaintypes.Signature{R: crypto.FormatInt(sig.R), S: crypto.FormatInt(sig.S)}
}

// DecodeSignature parses a wire signature. Range checks are left to
// dsa.Verify.
func DecodeSignature(s domaintypes.Signature) (*dsa.Signature, error) {
	r, err := parse("r", s.R)
	if err != nil {
		return nil, err
	}
	sv, err := parse("s", s.S)
	if err != nil {
		return nil, err
	}
	return &dsa.Signature{R: r, S: sv}, nil
}

// EncodeCiphertext returns the wire form of ct.
func EncodeCiphertext(ct *elgamal.Ciphertext) *domaintypes.EncryptedKey {
	return &domaintypes.EncryptedKey{C1: crypto.FormatInt(ct.C1), C2: crypto.FormatInt(ct.C2)}
}

// DecodeCiphertext parses a wire ElGamal ciphertext.
func DecodeCiphertext(k *domaintypes.EncryptedKey) (*elgamal.Ciphertext, error) {
	if k == nil {
		return nil, fmt.Errorf("%w: missing key", ErrMalformed)
	}
	c1, err := parse("c1", k.C1)
	if err != nil {
		return nil, err
	}
	c2, err := parse("c2", k.C2)
	if err != nil {
		return nil, err
	}
	return &elgamal.Ciphertext{C1: c1, C2: c2}, nil
}

// KeyExchangeEnvelope builds a key_exchange envelope from kx.
func KeyExchangeEnvelope(from, to domaintypes.Username, kx *hybrid.KeyExchange) domaintypes.Envelope {
	return domaintypes.Envelope{
		Kind:      domaintypes.KindKeyExchange,
		From:      from,
		To:        to,
		Key:       EncodeCiphertext(kx.Key),
		Signature: EncodeSignature(kx.Signature),
	}
}

// DecodeKeyExchange extracts the key exchange carried by env.
func DecodeKeyExchange(env domaintypes.Envelope) (*hybrid.KeyExchange, error) {
	if env.Kind != domaintypes.KindKeyExchange {
		return nil, fmt.Errorf("%w: kind %q is not a key exchange", ErrMalformed, env.Kind)
	}
	ct, err := DecodeCiphertext(env.Key)
	if err != nil {
		return nil, err
	}
	sig, err := DecodeSignature(env.Signature)
	if err != nil {
		return nil, err
	}
	return &hybrid.KeyExchange{Key: ct, Signature: sig}, nil
}

// MessageEnvelope builds a message envelope from m, sealed under the
// session key named keyID.
func MessageEnvelope(from, to domaintypes.Username, m *hybrid.SealedMessage, keyID string) domaintypes.Envelope {
	return domaintypes.Envelope{
		Kind:      domaintypes.KindMessage,
		From:      from,
		To:        to,
		Cipher:    m.Cipher,
		KeyID:     keyID,
		Signature: EncodeSignature(m.Signature),
	}
}

// DecodeMessage extracts the sealed message carried by env.
func DecodeMessage(env domaintypes.Envelope) (*hybrid.SealedMessage, error) {
	if env.Kind != domaintypes.KindMessage {
		return nil, fmt.Errorf("%w: kind %q is not a message", ErrMalformed, env.Kind)
	}
	if len(env.Cipher) == 0 {
		return nil, fmt.Errorf("%w: empty cipher", ErrMalformed)
	}
	sig, err := DecodeSignature(env.Signature)
	if err != nil {
		return nil, err
	}
	return &hybrid.SealedMessage{Cipher: env.Cipher, Signature: sig}, nil
}

// EncodePublicKeys returns what username publishes for sys.
func EncodePublicKeys(username domaintypes.Username, sys *hybrid.System) domaintypes.PublicKeys {
	return domaintypes.PublicKeys{
		Username: username,
		ElGamal:  crypto.FormatInt(sys.ElGamalPublicKey()),
		DSA:      crypto.FormatInt(sys.DSAPublicKey()),
	}
}

// DecodePublicKeys parses published keys into a key set entry with no
// session key.
func DecodePublicKeys(pk domaintypes.PublicKeys) (keyset.UserCryptoKeys, error) {
	elg, err := parse("elgamal", pk.ElGamal)
	if err != nil {
		return keyset.UserCryptoKeys{}, err
	}
	d, err := parse("dsa", pk.DSA)
	if err != nil {
		return keyset.UserCryptoKeys{}, err
	}
	return keyset.NewPeerKeys(d, elg), nil
}

// PeerRecord returns the persisted form of keys. Unset fields encode as the
// empty string.
func PeerRecord(username domaintypes.Username, keys keyset.UserCryptoKeys, updatedUTC int64) domaintypes.PeerRecord {
	rec := domaintypes.PeerRecord{Username: username, UpdatedUTC: updatedUTC}
	if keys.HasElGamalPublicKey() {
		rec.ElGamal = crypto.FormatInt(keys.ElGamalPublicKey)
	}
	if keys.HasDSAPublicKey() {
		rec.DSA = crypto.FormatInt(keys.DSAPublicKey)
	}
	if keys.HasSessionKey() {
		rec.SessionKey = crypto.FormatInt(keys.AESSessionKey)
	}
	for _, v := range keys.RetiredSessionKeys {
		rec.RetiredSessionKeys = append(rec.RetiredSessionKeys, crypto.FormatInt(v))
	}
	return rec
}

// DecodePeerRecord restores a key set entry from its persisted form.
func DecodePeerRecord(rec domaintypes.PeerRecord) (keyset.UserCryptoKeys, error) {
	keys := keyset.NewUserCryptoKeys()
	for _, f := range []struct {
		name string
		src  string
		dst  **big.Int
	}{
		{"elgamal", rec.ElGamal, &keys.ElGamalPublicKey},
		{"dsa", rec.DSA, &keys.DSAPublicKey},
		{"session_key", rec.SessionKey, &keys.AESSessionKey},
	} {
		if f.src == "" {
			continue
		}
		v, err := parse(f.name, f.src)
		if err != nil {
			return keyset.UserCryptoKeys{}, err
		}
		*f.dst = v
	}
	if _, err := keys.SessionKey(); err != nil && keys.HasSessionKey() {
		return keyset.UserCryptoKeys{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	for i, src := range rec.RetiredSessionKeys {
		v, err := parse(fmt.Sprintf("retired_session_keys[%d]", i), src)
		if err != nil {
			return keyset.UserCryptoKeys{}, err
		}
		if v.BitLen() > aes256.KeySize*8 {
			return keyset.UserCryptoKeys{}, fmt.Errorf("%w: retired session key %d too wide", ErrMalformed, i)
		}
		keys.RetiredSessionKeys = append(keys.RetiredSessionKeys, v)
	}
	return keys, nil
}
