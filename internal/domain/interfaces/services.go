package interfaces

import (
	"context"

	domaintypes "hybridchat/internal/domain/types"
	"hybridchat/internal/hybrid"
	"hybridchat/internal/keyset"
)

// IdentityService creates and unlocks your long-term key pairs.
type IdentityService interface {
	GenerateIdentity(passphrase string) (*hybrid.System, domaintypes.Fingerprint, error)
	LoadSystem(passphrase string) (*hybrid.System, error)
	FingerprintIdentity(passphrase string) (domaintypes.Fingerprint, error)
	PublicKeys(passphrase string, username domaintypes.Username) (domaintypes.PublicKeys, error)
}

// SessionService negotiates and tracks per-peer session keys.
type SessionService interface {
	StartSession(
		ctx context.Context,
		passphrase string,
		me domaintypes.Username,
		peer domaintypes.Username,
	) (domaintypes.Fingerprint, error)
	AcceptKeyExchange(
		ctx context.Context,
		passphrase string,
		envelope domaintypes.Envelope,
	) error
	PeerKeys(
		ctx context.Context,
		passphrase string,
		peer domaintypes.Username,
	) (keyset.UserCryptoKeys, error)
	ForgetPeer(passphrase string, peer domaintypes.Username) (bool, error)
}

// MessageService encrypts, sends, fetches and decrypts messages.
type MessageService interface {
	SendMessage(
		ctx context.Context,
		passphrase string,
		from domaintypes.Username,
		to domaintypes.Username,
		plaintext []byte,
	) error
	ReceiveMessages(
		ctx context.Context,
		passphrase string,
		me domaintypes.Username,
		limit int,
	) ([]domaintypes.DecryptedMessage, error)
}
