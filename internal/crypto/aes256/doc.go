// Package aes256 implements the AES-256 block cipher and the byte-string
// encryption used for chat messages and file payloads.
//
// Contents
//
//   - Rijndael key schedule for 256-bit keys (15 round keys, 14 rounds)
//   - Single-block encryption and decryption via NewCipher, which returns a
//     crypto/cipher.Block
//   - PKCS#7 padding to the 16-byte block size (Pad, Unpad)
//   - Whole-message Encrypt and Decrypt
//
// # Mode
//
// Encrypt and Decrypt process every block independently with no IV or
// chaining (ECB). Equal plaintext blocks under one key produce equal
// ciphertext blocks, and nothing authenticates the ciphertext; a corrupt
// ciphertext or wrong key usually surfaces as ErrInvalidPadding. Callers that
// need integrity must sign or MAC the ciphertext themselves.
package aes256
