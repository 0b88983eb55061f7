package session_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hybridchat/internal/domain"
	"hybridchat/internal/hybrid"
	"hybridchat/internal/relay"
	"hybridchat/internal/services/identity"
	"hybridchat/internal/services/session"
	"hybridchat/internal/store"
)

const pass = "Correct-Horse-9!"

type party struct {
	name     domain.Username
	home     string
	ids      *identity.Service
	sessions *session.Service
	relay    *relay.HTTP
}

func newRelay(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(relay.NewServer(zerolog.Nop()))
	t.Cleanup(srv.Close)
	return srv
}

func newParty(t *testing.T, srv *httptest.Server, name domain.Username) *party {
	t.Helper()
	home := t.TempDir()
	rc := relay.NewHTTP(srv.URL, srv.Client(), zerolog.Nop())
	ids := identity.New(store.NewIdentityFileStore(home), hybrid.WithLogger(zerolog.Nop()))

	sys, _, err := ids.GenerateIdentity(pass)
	require.NoError(t, err)
	sys.Close()

	pk, err := ids.PublicKeys(pass, name)
	require.NoError(t, err)
	require.NoError(t, rc.RegisterKeys(context.Background(), pk))

	return &party{
		name:     name,
		home:     home,
		ids:      ids,
		sessions: session.New(ids, store.NewPeerFileStore(home), rc, zerolog.Nop()),
		relay:    rc,
	}
}

func TestStartAndAcceptSession(t *testing.T) {
	srv := newRelay(t)
	alice := newParty(t, srv, "alice")
	bob := newParty(t, srv, "bob")
	ctx := context.Background()

	bobFP, err := bob.ids.FingerprintIdentity(pass)
	require.NoError(t, err)

	fp, err := alice.sessions.StartSession(ctx, pass, alice.name, bob.name)
	require.NoError(t, err)
	assert.Equal(t, bobFP, fp)

	envs, err := bob.relay.FetchEnvelopes(ctx, bob.name, 0)
	require.NoError(t, err)
	require.Len(t, envs, 1)
	assert.Equal(t, domain.KindKeyExchange, envs[0].Kind)

	require.NoError(t, bob.sessions.AcceptKeyExchange(ctx, pass, envs[0]))

	aliceSide, err := alice.sessions.PeerKeys(ctx, pass, bob.name)
	require.NoError(t, err)
	bobSide, err := bob.sessions.PeerKeys(ctx, pass, alice.name)
	require.NoError(t, err)

	ka, err := aliceSide.SessionKey()
	require.NoError(t, err)
	kb, err := bobSide.SessionKey()
	require.NoError(t, err)
	assert.Equal(t, ka, kb)
}

func TestAccept_RejectsImpersonation(t *testing.T) {
	srv := newRelay(t)
	alice := newParty(t, srv, "alice")
	bob := newParty(t, srv, "bob")
	mallory := newParty(t, srv, "mallory")
	ctx := context.Background()

	_, err := mallory.sessions.StartSession(ctx, pass, mallory.name, bob.name)
	require.NoError(t, err)
	envs, err := bob.relay.FetchEnvelopes(ctx, bob.name, 0)
	require.NoError(t, err)
	require.Len(t, envs, 1)

	forged := envs[0]
	forged.From = alice.name
	err = bob.sessions.AcceptKeyExchange(ctx, pass, forged)
	assert.ErrorIs(t, err, hybrid.ErrBadSignature)

	keys, err := bob.sessions.PeerKeys(ctx, pass, alice.name)
	require.NoError(t, err)
	assert.False(t, keys.HasSessionKey())
}

func TestStartSession_UnknownPeer(t *testing.T) {
	srv := newRelay(t)
	alice := newParty(t, srv, "alice")

	_, err := alice.sessions.StartSession(context.Background(), pass, alice.name, "nobody")
	assert.ErrorIs(t, err, domain.ErrUnknownPeer)
}

func TestPeers_PersistAndForget(t *testing.T) {
	srv := newRelay(t)
	alice := newParty(t, srv, "alice")
	newParty(t, srv, "bob")
	ctx := context.Background()

	_, err := alice.sessions.StartSession(ctx, pass, alice.name, "bob")
	require.NoError(t, err)

	// A fresh service over the same home sees bob without asking the relay.
	offline := relay.NewHTTP("http://127.0.0.1:1", nil, zerolog.Nop())
	reopened := session.New(alice.ids, store.NewPeerFileStore(alice.home), offline, zerolog.Nop())
	keys, err := reopened.PeerKeys(ctx, pass, "bob")
	require.NoError(t, err)
	assert.True(t, keys.HasSessionKey())

	removed, err := reopened.ForgetPeer(pass, "bob")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = reopened.ForgetPeer(pass, "bob")
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = reopened.PeerKeys(ctx, pass, "bob")
	assert.Error(t, err)
}
