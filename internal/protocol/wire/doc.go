// Package wire converts between engine values and their hex-encoded JSON
// forms carried in relay envelopes and local peer records.
//
// # Encoding
//
// Every integer is lowercase hex without a prefix (crypto.FormatInt);
// decoding accepts mixed case. Session keys are stored as the hex form of
// their 32-byte big-endian value.
//
// # Errors
//
// ErrMalformed wraps every decoding failure, so callers can reject a bad
// envelope with one errors.Is check and move on.
package wire
