// Package hybrid composes the engine primitives into the chat protocol's
// key-exchange and signing workflow.
//
// A System owns exactly one ElGamal key pair and one DSA key pair, both in
// the fixed deployment groups from internal/crypto/params, plus the AES
// session key this process most recently offered.
//
// Workflow
//
//   - Peers first exchange their ElGamal and DSA public values.
//   - The sender calls OfferSessionKey: a fresh 32-byte key is encrypted for
//     the recipient, SHA256(hex(c1) ++ hex(c2)) is signed, and {c1, c2, r, s}
//     is sent.
//   - The receiver calls AcceptSessionKey with the sender's DSA public value.
//     The signature is checked before the key is returned.
//   - Message bodies are sealed with SealMessage (AES-256-ECB, then a DSA
//     signature over the ciphertext digest) and opened with OpenMessage.
//
// # Notes
//
// System is safe for concurrent use once constructed, except for
// NewSessionKey and OfferSessionKey which replace the process session key
// and must not race with EncryptAESKey.
package hybrid
