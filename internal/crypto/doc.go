// Package crypto holds the boundary helpers shared by the engine packages
// under internal/crypto/.
//
// Contents
//
//   - Hex encoding of arbitrary-precision integers for the wire
//     (FormatInt, ParseInt)
//   - Short public-key fingerprints for display and logging (Fingerprint)
//   - Best-effort wiping of secret integers and byte slices (WipeInt, Wipe)
//
// # Notes
//
// Integers leave the process as lowercase hexadecimal without a prefix.
// Parsing accepts either case but rejects signs, prefixes and empty input,
// so a value that round-trips through the wire is always non-negative.
package crypto
