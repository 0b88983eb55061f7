package message

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"hybridchat/internal/crypto/aes256"
	"hybridchat/internal/crypto/elgamal"
	"hybridchat/internal/domain"
	"hybridchat/internal/hybrid"
	"hybridchat/internal/keyset"
	"hybridchat/internal/protocol/wire"
)

// ErrNoSession indicates there is no negotiated session key with the peer.
var ErrNoSession = errors.New("no session with peer; run start-session first")

// Service sends and receives messages over the relay.
//
// High-level flow:
//   - Send: look up the peer's session key, AES-encrypt the body, sign
//     SHA256(ciphertext) and post a message envelope tagged with the key id.
//   - Receive: fetch envelopes and walk them in order. Key exchanges are
//     accepted as they appear; runs of messages between them are verified
//     and decrypted concurrently under the key their id names, so messages
//     sealed before a rekey, or under a key the peer offered while ours was
//     in flight, still open. Processed envelopes are acked.
type Service struct {
	ids      domain.IdentityService
	sessions domain.SessionService
	relay    domain.RelayClient
	log      zerolog.Logger
	workers  int
}

// New constructs a Message Service.
func New(
	ids domain.IdentityService,
	sessions domain.SessionService,
	relayClient domain.RelayClient,
	logger zerolog.Logger,
) *Service {
	return &Service{
		ids:      ids,
		sessions: sessions,
		relay:    relayClient,
		log:      logger,
		workers:  runtime.GOMAXPROCS(0),
	}
}

// SendMessage seals plaintext under the session key shared with to and
// posts it.
func (s *Service) SendMessage(
	ctx context.Context,
	passphrase string,
	from domain.Username,
	to domain.Username,
	plaintext []byte,
) error {
	keys, err := s.sessions.PeerKeys(ctx, passphrase, to)
	if err != nil {
		return err
	}
	key, err := keys.SessionKey()
	if errors.Is(err, keyset.ErrNoSessionKey) {
		return fmt.Errorf("%w (%s)", ErrNoSession, to)
	}
	if err != nil {
		return err
	}

	sys, err := s.ids.LoadSystem(passphrase)
	if err != nil {
		return err
	}
	defer sys.Close()

	sealed, err := sys.SealMessage(key, plaintext)
	if err != nil {
		return err
	}
	id, err := s.relay.SendEnvelope(ctx, wire.MessageEnvelope(from, to, sealed, keyset.KeyID(key)))
	if err != nil {
		return err
	}
	s.log.Debug().Str("peer", to.String()).Str("id", id.String()).Int("bytes", len(sealed.Cipher)).Msg("message sent")
	return nil
}

// ReceiveMessages fetches up to limit envelopes and returns the messages
// that verified and decrypted.
//
// Envelopes that fail authentication (bad signature, malformed, wrong
// session key, unknown sender) are logged, skipped and still acked: the
// relay is untrusted and retrying them cannot succeed. Any other error
// stops processing; only the envelopes handled before it are acked.
func (s *Service) ReceiveMessages(
	ctx context.Context,
	passphrase string,
	me domain.Username,
	limit int,
) ([]domain.DecryptedMessage, error) {
	envs, err := s.relay.FetchEnvelopes(ctx, me, limit)
	if err != nil {
		return nil, err
	}
	if len(envs) == 0 {
		return nil, nil
	}

	sys, err := s.ids.LoadSystem(passphrase)
	if err != nil {
		return nil, err
	}
	defer sys.Close()

	var (
		out       []domain.DecryptedMessage
		processed int
		runErr    error
	)
	for start := 0; start < len(envs); {
		env := envs[start]
		if env.Kind == domain.KindKeyExchange {
			if err := s.sessions.AcceptKeyExchange(ctx, passphrase, env); err != nil {
				if !rejectable(err) {
					runErr = err
					break
				}
				s.log.Warn().Err(err).Str("id", env.ID.String()).Str("from", env.From.String()).Msg("key exchange rejected")
			}
			start++
			processed = start
			continue
		}

		end := start
		for end < len(envs) && envs[end].Kind != domain.KindKeyExchange {
			end++
		}
		msgs, err := s.openBatch(ctx, passphrase, sys, envs[start:end])
		if err != nil {
			runErr = err
			break
		}
		out = append(out, msgs...)
		start = end
		processed = end
	}

	// Ack only what we processed. If zero, do nothing.
	if processed > 0 {
		if err := s.relay.AckEnvelopes(ctx, me, processed); err != nil {
			return out, errors.Join(runErr, fmt.Errorf("ack %d envelopes: %w", processed, err))
		}
	}
	return out, runErr
}

// openBatch verifies and decrypts a run of message envelopes concurrently,
// preserving their order in the result.
func (s *Service) openBatch(
	ctx context.Context,
	passphrase string,
	sys *hybrid.System,
	envs []domain.Envelope,
) ([]domain.DecryptedMessage, error) {
	// Resolve senders first; this may hit the relay and takes the session
	// service lock, so it stays sequential.
	senders := make(map[domain.Username]keyset.UserCryptoKeys)
	for _, env := range envs {
		if _, ok := senders[env.From]; ok {
			continue
		}
		keys, err := s.sessions.PeerKeys(ctx, passphrase, env.From)
		if err != nil && !rejectable(err) {
			return nil, err
		}
		senders[env.From] = keys
	}

	results := make([]*domain.DecryptedMessage, len(envs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, env := range envs {
		keys := senders[env.From]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			msg, err := open(sys, env, keys)
			if err != nil {
				if rejectable(err) {
					s.log.Warn().Err(err).Str("id", env.ID.String()).Str("from", env.From.String()).Msg("message rejected")
					return nil
				}
				return err
			}
			results[i] = msg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]domain.DecryptedMessage, 0, len(envs))
	for _, m := range results {
		if m != nil {
			out = append(out, *m)
		}
	}
	return out, nil
}

func open(sys *hybrid.System, env domain.Envelope, keys keyset.UserCryptoKeys) (*domain.DecryptedMessage, error) {
	if !keys.HasDSAPublicKey() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownPeer, env.From)
	}
	sealed, err := wire.DecodeMessage(env)
	if err != nil {
		return nil, err
	}
	key, err := keys.SessionKeyByID(env.KeyID)
	if err != nil {
		return nil, err
	}
	pt, err := sys.OpenMessage(key, sealed, keys.DSAPublicKey)
	if err != nil {
		return nil, err
	}
	return &domain.DecryptedMessage{
		ID:        env.ID,
		From:      env.From,
		To:        env.To,
		Plaintext: pt,
		Timestamp: env.Timestamp,
	}, nil
}

// rejectable reports whether err condemns a single envelope rather than the
// whole receive.
func rejectable(err error) bool {
	for _, target := range []error{
		hybrid.ErrBadSignature,
		hybrid.ErrMalformed,
		hybrid.ErrInvalidSessionKey,
		wire.ErrMalformed,
		elgamal.ErrInvalidCiphertext,
		aes256.ErrInvalidPadding,
		aes256.ErrInvalidCiphertextLength,
		keyset.ErrNoSessionKey,
		domain.ErrUnknownPeer,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Compile-time assertion that Service implements domain.MessageService.
var _ domain.MessageService = (*Service)(nil)
