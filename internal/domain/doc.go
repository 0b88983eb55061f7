// Package domain defines the data models and interfaces shared across the
// client: wire types exchanged through the relay and the contracts between
// stores, services and the relay client.
//
// Engine types (ciphertexts, signatures, key pairs) live in internal/crypto
// and internal/hybrid. The types here carry their hex-encoded wire form.
package domain
