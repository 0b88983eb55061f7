// Package session tracks peers' public keys and session keys.
//
// It fetches keys from the relay on first contact, offers fresh AES session
// keys wrapped with ElGamal and signed with DSA, accepts incoming key
// exchanges after verifying them, and persists the key set sealed.
package session
