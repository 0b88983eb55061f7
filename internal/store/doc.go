// Package store provides file-based persistence for the chat client.
//
// It contains concrete implementations of the domain storage interfaces,
// serialising data as JSON on disk. All methods are concurrency-safe via
// internal locking. Stored files live under the user's configured home
// directory and are written atomically (temp file, then rename).
//
// The package includes stores for:
//   - Identity private exponents (IdentityFileStore), sealed
//   - Peer public keys and session keys (PeerFileStore), sealed
//   - Relay account profiles (AccountFileStore), plain JSON
//
// Sealed files use scrypt to derive a key from the passphrase and
// ChaCha20-Poly1305 to encrypt; a wrong passphrase and a corrupted file are
// indistinguishable and both return ErrWrongPassphrase.
package store
