package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"hybridchat/internal/crypto"
	"hybridchat/internal/domain"
	"hybridchat/internal/keyset"
	"hybridchat/internal/protocol/wire"
	"hybridchat/internal/relay"
)

// Service negotiates session keys with peers and owns the in-memory key set.
//
// The key set itself is unsynchronised; every access here happens under mu.
// It is loaded from the peer store on first use and written back after each
// change. No lock is held across relay calls.
//
// Peer lifecycle:
//   - A peer is added the first time its public keys are fetched.
//   - Its session key is replaced on every accepted or offered key exchange;
//     the replaced key is kept in a short history for in-flight messages.
//   - It is removed only by ForgetPeer. Nothing expires.
type Service struct {
	ids   domain.IdentityService
	peers domain.PeerStore
	relay domain.RelayClient
	log   zerolog.Logger
	now   func() time.Time

	mu     sync.Mutex
	keys   *keyset.KeySet
	loaded bool
}

// New constructs a Session Service.
func New(
	ids domain.IdentityService,
	peers domain.PeerStore,
	relayClient domain.RelayClient,
	logger zerolog.Logger,
) *Service {
	return &Service{
		ids:   ids,
		peers: peers,
		relay: relayClient,
		log:   logger,
		now:   time.Now,
		keys:  keyset.New(),
	}
}

// StartSession offers a fresh session key to peer and records it locally.
//
// Steps:
//  1. Resolve the peer's public keys (key set, else relay).
//  2. Wrap a new session key for the peer's ElGamal key and sign
//     SHA256(hex(c1) ++ hex(c2)).
//  3. Post the key_exchange envelope to the relay.
//  4. Store the session key against the peer.
//
// It returns the peer's fingerprint so the user can compare it out of band.
func (s *Service) StartSession(
	ctx context.Context,
	passphrase string,
	me domain.Username,
	peer domain.Username,
) (domain.Fingerprint, error) {
	keys, err := s.PeerKeys(ctx, passphrase, peer)
	if err != nil {
		return "", err
	}

	sys, err := s.ids.LoadSystem(passphrase)
	if err != nil {
		return "", err
	}
	defer sys.Close()

	kx, key, err := sys.OfferSessionKey(keys.ElGamalPublicKey)
	if err != nil {
		return "", err
	}
	defer crypto.Wipe(key)

	if _, err := s.relay.SendEnvelope(ctx, wire.KeyExchangeEnvelope(me, peer, kx)); err != nil {
		return "", fmt.Errorf("send key exchange to %q: %w", peer, err)
	}
	if err := s.setSessionKey(passphrase, peer, key); err != nil {
		return "", err
	}

	s.log.Info().Str("peer", peer.String()).Msg("session key offered")
	return domain.Fingerprint(crypto.Fingerprint(keys.ElGamalPublicKey, keys.DSAPublicKey)), nil
}

// AcceptKeyExchange verifies a key_exchange envelope against the sender's
// DSA key and, if it holds, stores the session key.
func (s *Service) AcceptKeyExchange(
	ctx context.Context,
	passphrase string,
	env domain.Envelope,
) error {
	kx, err := wire.DecodeKeyExchange(env)
	if err != nil {
		return err
	}
	keys, err := s.PeerKeys(ctx, passphrase, env.From)
	if err != nil {
		return err
	}

	sys, err := s.ids.LoadSystem(passphrase)
	if err != nil {
		return err
	}
	defer sys.Close()

	key, err := sys.AcceptSessionKey(kx, keys.DSAPublicKey)
	if err != nil {
		return fmt.Errorf("key exchange from %q: %w", env.From, err)
	}
	defer crypto.Wipe(key)

	if err := s.setSessionKey(passphrase, env.From, key); err != nil {
		return err
	}
	s.log.Info().Str("peer", env.From.String()).Msg("session key accepted")
	return nil
}

// PeerKeys returns the keys known for peer, fetching and recording the
// peer's published keys on first contact.
func (s *Service) PeerKeys(
	ctx context.Context,
	passphrase string,
	peer domain.Username,
) (keyset.UserCryptoKeys, error) {
	s.mu.Lock()
	if err := s.loadLocked(passphrase); err != nil {
		s.mu.Unlock()
		return keyset.UserCryptoKeys{}, err
	}
	keys, ok := s.keys.Get(peer.String())
	s.mu.Unlock()
	if ok {
		return keys, nil
	}

	pk, err := s.relay.FetchKeys(ctx, peer)
	if errors.Is(err, relay.ErrNotFound) {
		return keyset.UserCryptoKeys{}, fmt.Errorf("%w: %q", domain.ErrUnknownPeer, peer)
	}
	if err != nil {
		return keyset.UserCryptoKeys{}, err
	}
	if pk.Username != peer {
		return keyset.UserCryptoKeys{}, fmt.Errorf("relay returned keys for %q, want %q", pk.Username, peer)
	}
	fetched, err := wire.DecodePublicKeys(pk)
	if err != nil {
		return keyset.UserCryptoKeys{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if keys, ok := s.keys.Get(peer.String()); ok {
		return keys, nil
	}
	s.keys.Add(peer.String(), fetched)
	if err := s.persistLocked(passphrase); err != nil {
		return keyset.UserCryptoKeys{}, err
	}
	s.log.Debug().
		Str("peer", peer.String()).
		Str("fingerprint", crypto.Fingerprint(fetched.ElGamalPublicKey, fetched.DSAPublicKey)).
		Msg("peer keys learned")
	return fetched, nil
}

// ForgetPeer removes peer and its session key. It reports whether the peer
// was known.
func (s *Service) ForgetPeer(passphrase string, peer domain.Username) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(passphrase); err != nil {
		return false, err
	}
	if !s.keys.Remove(peer.String()) {
		return false, nil
	}
	return true, s.persistLocked(passphrase)
}

func (s *Service) setSessionKey(passphrase string, peer domain.Username, key []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys, ok := s.keys.Get(peer.String())
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownPeer, peer)
	}
	if err := keys.SetSessionKey(key); err != nil {
		return err
	}
	s.keys.Add(peer.String(), keys)
	return s.persistLocked(passphrase)
}

func (s *Service) loadLocked(passphrase string) error {
	if s.loaded {
		return nil
	}
	recs, err := s.peers.LoadPeers(passphrase)
	if err != nil {
		return fmt.Errorf("load peers: %w", err)
	}
	s.keys.Clear()
	for _, rec := range recs {
		keys, err := wire.DecodePeerRecord(rec)
		if err != nil {
			return fmt.Errorf("load peer %q: %w", rec.Username, err)
		}
		s.keys.Add(rec.Username.String(), keys)
	}
	s.loaded = true
	return nil
}

func (s *Service) persistLocked(passphrase string) error {
	now := s.now().Unix()
	recs := make([]domain.PeerRecord, 0, s.keys.Size())
	for _, peer := range s.keys.Peers() {
		keys, _ := s.keys.Get(peer)
		recs = append(recs, wire.PeerRecord(domain.Username(peer), keys, now))
	}
	if err := s.peers.SavePeers(passphrase, recs); err != nil {
		return fmt.Errorf("save peers: %w", err)
	}
	return nil
}

// Compile-time assertion that Service implements domain.SessionService.
var _ domain.SessionService = (*Service)(nil)
