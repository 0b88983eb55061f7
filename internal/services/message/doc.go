// Package message sends and receives signed, AES-encrypted messages.
//
// Sending seals the plaintext under the peer's session key and signs the
// ciphertext digest. Receiving applies key exchanges in queue order and
// verifies then decrypts the messages between them concurrently.
package message
