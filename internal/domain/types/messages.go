package types

// Envelope is the wire-format message you post/get from the relay.
//
// A key_exchange envelope carries Key and a Signature over
// SHA256(hex(c1) ++ hex(c2)). A message envelope carries Cipher, a
// Signature over SHA256(Cipher) and the KeyID of the session key it was
// sealed under.
type Envelope struct {
	ID        EnvelopeID    `json:"id,omitempty"`
	Kind      EnvelopeKind  `json:"kind"`
	From      Username      `json:"from"`
	To        Username      `json:"to"`
	Key       *EncryptedKey `json:"key,omitempty"`
	Cipher    []byte        `json:"cipher,omitempty"`
	KeyID     string        `json:"key_id,omitempty"`
	Signature Signature     `json:"signature"`
	Timestamp int64         `json:"timestamp"`
}

// DecryptedMessage is what MessageService.ReceiveMessages returns.
type DecryptedMessage struct {
	ID        EnvelopeID `json:"id"`
	From      Username   `json:"from"`
	To        Username   `json:"to"`
	Plaintext []byte     `json:"plaintext"`
	Timestamp int64      `json:"timestamp"`
}
