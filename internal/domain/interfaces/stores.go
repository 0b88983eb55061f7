package interfaces

import domaintypes "hybridchat/internal/domain/types"

// IdentityStore persists your long-term private exponents.
type IdentityStore interface {
	SaveIdentity(passphrase string, id domaintypes.Identity) error
	LoadIdentity(passphrase string) (domaintypes.Identity, error)
}

// PeerStore persists what peers have told us, including negotiated session
// keys, sealed under the passphrase.
type PeerStore interface {
	SavePeers(passphrase string, peers []domaintypes.PeerRecord) error
	LoadPeers(passphrase string) ([]domaintypes.PeerRecord, error)
}
