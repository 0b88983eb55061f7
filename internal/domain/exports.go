package domain

import (
	interfaces "hybridchat/internal/domain/interfaces"
	types "hybridchat/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Username         = types.Username
	Fingerprint      = types.Fingerprint
	EnvelopeID       = types.EnvelopeID
	EnvelopeKind     = types.EnvelopeKind
	Identity         = types.Identity
	PublicKeys       = types.PublicKeys
	EncryptedKey     = types.EncryptedKey
	Signature        = types.Signature
	Envelope         = types.Envelope
	DecryptedMessage = types.DecryptedMessage
	PeerRecord       = types.PeerRecord
	AccountProfile   = types.AccountProfile
)

// Envelope kinds.
const (
	KindKeyExchange = types.KindKeyExchange
	KindMessage     = types.KindMessage
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	IdentityService = interfaces.IdentityService
	SessionService  = interfaces.SessionService
	MessageService  = interfaces.MessageService
	RelayClient     = interfaces.RelayClient
	IdentityStore   = interfaces.IdentityStore
	PeerStore       = interfaces.PeerStore
	AccountStore    = interfaces.AccountStore
)
