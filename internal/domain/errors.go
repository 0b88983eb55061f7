package domain

import "errors"

var (
	// ErrUnknownPeer is returned when no public keys are known for a peer.
	ErrUnknownPeer = errors.New("unknown peer")

	// ErrNoIdentity is returned when no local identity has been created.
	ErrNoIdentity = errors.New("no identity; run init first")

	// ErrNotRegistered is returned when no account profile exists for the
	// configured relay.
	ErrNotRegistered = errors.New("not registered with this relay; run register first")
)
