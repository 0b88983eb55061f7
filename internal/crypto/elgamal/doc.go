// Package elgamal implements ElGamal public-key encryption over the
// multiplicative group modulo a prime.
//
// It is used to transport AES session keys: the key is read as an integer,
// encrypted for the recipient's public value, and recovered with the
// recipient's private exponent.
//
// The stateless Encrypt and Decrypt functions take every key explicitly. The
// ElGamal type bundles validated parameters with one owned key pair for
// callers that want the object form.
package elgamal
