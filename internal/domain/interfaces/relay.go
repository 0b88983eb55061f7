package interfaces

import (
	"context"

	domaintypes "hybridchat/internal/domain/types"
)

// RelayClient is how we talk to the central relay server, all with context.
type RelayClient interface {
	RegisterKeys(ctx context.Context, keys domaintypes.PublicKeys) error
	FetchKeys(ctx context.Context, username domaintypes.Username) (domaintypes.PublicKeys, error)

	SendEnvelope(ctx context.Context, envelope domaintypes.Envelope) (domaintypes.EnvelopeID, error)
	FetchEnvelopes(
		ctx context.Context,
		username domaintypes.Username,
		limit int,
	) ([]domaintypes.Envelope, error)
	AckEnvelopes(ctx context.Context, username domaintypes.Username, count int) error
}
