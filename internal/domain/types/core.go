package types

// Username represents a relay-registered identity.
type Username string

// String returns the string form of the username.
func (u Username) String() string { return string(u) }

// Fingerprint is a short identifier for public keys presented to users.
type Fingerprint string

// String returns the string form of the fingerprint.
func (f Fingerprint) String() string { return string(f) }

// EnvelopeID is assigned by the relay when an envelope is queued.
type EnvelopeID string

// String returns the string form of the identifier.
func (id EnvelopeID) String() string { return string(id) }

// EnvelopeKind distinguishes key exchanges from message bodies.
type EnvelopeKind string

const (
	// KindKeyExchange carries a wrapped session key.
	KindKeyExchange EnvelopeKind = "key_exchange"
	// KindMessage carries an AES-encrypted message body.
	KindMessage EnvelopeKind = "message"
)

// Valid reports whether k is a known kind.
func (k EnvelopeKind) Valid() bool {
	return k == KindKeyExchange || k == KindMessage
}
