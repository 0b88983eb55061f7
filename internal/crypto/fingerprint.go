package crypto

import (
	"math/big"

	"hybridchat/internal/crypto/sha256"
)

// Fingerprint returns a short hex fingerprint of a public identity.
//
// It hashes the hex forms of the ElGamal and DSA public values, joined by
// ':', and truncates to 20 hex chars.
func Fingerprint(elgamalPub, dsaPub *big.Int) string {
	h := sha256.New()
	h.Update([]byte(FormatInt(elgamalPub)))
	h.Update([]byte{':'})
	h.Update([]byte(FormatInt(dsaPub)))
	return h.Digest()[:20]
}
