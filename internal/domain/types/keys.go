package types

// PublicKeys is what a user publishes to the relay. Values are lowercase hex.
type PublicKeys struct {
	Username Username `json:"username"`
	ElGamal  string   `json:"elgamal"`
	DSA      string   `json:"dsa"`
}

// EncryptedKey is the wire form of an ElGamal ciphertext.
type EncryptedKey struct {
	C1 string `json:"c1"`
	C2 string `json:"c2"`
}

// Signature is the wire form of a DSA signature.
type Signature struct {
	R string `json:"r"`
	S string `json:"s"`
}
