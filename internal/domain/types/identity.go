package types

// Identity holds the long-term private exponents, hex-encoded. It is only
// ever written to disk sealed under the user's passphrase.
type Identity struct {
	ElGamalPrivate string `json:"elgamal_x"`
	DSAPrivate     string `json:"dsa_x"`
	CreatedUTC     int64  `json:"created_utc"`
}
