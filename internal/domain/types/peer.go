package types

// PeerRecord is the persisted form of one peer's keys. SessionKey is empty
// until a key exchange with the peer has completed. RetiredSessionKeys
// keeps the keys it replaced, newest first.
type PeerRecord struct {
	Username           Username `json:"username"`
	ElGamal            string   `json:"elgamal"`
	DSA                string   `json:"dsa"`
	SessionKey         string   `json:"session_key,omitempty"`
	RetiredSessionKeys []string `json:"retired_session_keys,omitempty"`
	UpdatedUTC         int64    `json:"updated_utc"`
}
