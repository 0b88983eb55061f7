package message_test

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hybridchat/internal/domain"
	"hybridchat/internal/hybrid"
	"hybridchat/internal/relay"
	"hybridchat/internal/services/identity"
	"hybridchat/internal/services/message"
	"hybridchat/internal/services/session"
	"hybridchat/internal/store"
)

const pass = "Correct-Horse-9!"

type party struct {
	name     domain.Username
	sessions *session.Service
	messages *message.Service
	relay    *relay.HTTP
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

	sessions := session.New(ids, store.NewPeerFileStore(home), rc, zerolog.Nop())
	return &party{
		name:     name,
		sessions: sessions,
		messages: message.New(ids, sessions, rc, zerolog.Nop()),
		relay:    rc,
	}
}

func setup(t *testing.T) (*party, *party, *party) {
	t.Helper()
	srv := httptest.NewServer(relay.NewServer(zerolog.Nop()))
	t.Cleanup(srv.Close)
	return newParty(t, srv, "alice"), newParty(t, srv, "bob"), newParty(t, srv, "mallory")
}

func TestSendReceive(t *testing.T) {
	alice, bob, _ := setup(t)
	ctx := context.Background()

	err := alice.messages.SendMessage(ctx, pass, alice.name, bob.name, []byte("too early"))
	assert.ErrorIs(t, err, message.ErrNoSession)

	_, err = alice.sessions.StartSession(ctx, pass, alice.name, bob.name)
	require.NoError(t, err)
	for i := range 5 {
		require.NoError(t, alice.messages.SendMessage(ctx, pass, alice.name, bob.name, []byte(fmt.Sprintf("msg %d", i))))
	}

	got, err := bob.messages.ReceiveMessages(ctx, pass, bob.name, 0)
	require.NoError(t, err)
	require.Len(t, got, 5)
	for i, m := range got {
		assert.Equal(t, alice.name, m.From)
		assert.Equal(t, fmt.Sprintf("msg %d", i), string(m.Plaintext))
		assert.NotEmpty(t, m.ID)
	}

	left, err := bob.relay.FetchEnvelopes(ctx, bob.name, 0)
	require.NoError(t, err)
	assert.Empty(t, left, "processed envelopes are acked")

	// Bob can reply on the same session key.
	require.NoError(t, bob.messages.SendMessage(ctx, pass, bob.name, alice.name, []byte("hi alice")))
	back, err := alice.messages.ReceiveMessages(ctx, pass, alice.name, 0)
	require.NoError(t, err)
	require.Len(t, back, 1)
	assert.Equal(t, "hi alice", string(back[0].Plaintext))
}

func TestReceive_RekeyMidStream(t *testing.T) {
	alice, bob, _ := setup(t)
	ctx := context.Background()

	_, err := alice.sessions.StartSession(ctx, pass, alice.name, bob.name)
	require.NoError(t, err)
	require.NoError(t, alice.messages.SendMessage(ctx, pass, alice.name, bob.name, []byte("under k1")))

	_, err = alice.sessions.StartSession(ctx, pass, alice.name, bob.name)
	require.NoError(t, err)
	require.NoError(t, alice.messages.SendMessage(ctx, pass, alice.name, bob.name, []byte("under k2")))

	got, err := bob.messages.ReceiveMessages(ctx, pass, bob.name, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "under k1", string(got[0].Plaintext))
	assert.Equal(t, "under k2", string(got[1].Plaintext))
}

func TestReceive_CrossedSessionStarts(t *testing.T) {
	alice, bob, _ := setup(t)
	ctx := context.Background()

	// Both offer a key before either has seen the other's offer.
	_, err := alice.sessions.StartSession(ctx, pass, alice.name, bob.name)
	require.NoError(t, err)
	_, err = bob.sessions.StartSession(ctx, pass, bob.name, alice.name)
	require.NoError(t, err)
	require.NoError(t, alice.messages.SendMessage(ctx, pass, alice.name, bob.name, []byte("a1")))
	require.NoError(t, bob.messages.SendMessage(ctx, pass, bob.name, alice.name, []byte("b1")))

	got, err := bob.messages.ReceiveMessages(ctx, pass, bob.name, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a1", string(got[0].Plaintext))

	got, err = alice.messages.ReceiveMessages(ctx, pass, alice.name, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b1", string(got[0].Plaintext))

	// Each side now sends under the key it accepted last; the other still
	// holds that key as the one it offered.
	for i := range 3 {
		require.NoError(t, alice.messages.SendMessage(ctx, pass, alice.name, bob.name, []byte(fmt.Sprintf("a%d", i+2))))
		require.NoError(t, bob.messages.SendMessage(ctx, pass, bob.name, alice.name, []byte(fmt.Sprintf("b%d", i+2))))

		got, err = bob.messages.ReceiveMessages(ctx, pass, bob.name, 0)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, fmt.Sprintf("a%d", i+2), string(got[0].Plaintext))

		got, err = alice.messages.ReceiveMessages(ctx, pass, alice.name, 0)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, fmt.Sprintf("b%d", i+2), string(got[0].Plaintext))
	}

	left, err := bob.relay.FetchEnvelopes(ctx, bob.name, 0)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestReceive_MessagesSealedBeforeRekeyArriveAfterIt(t *testing.T) {
	alice, bob, _ := setup(t)
	ctx := context.Background()

	_, err := alice.sessions.StartSession(ctx, pass, alice.name, bob.name)
	require.NoError(t, err)
	got, err := bob.messages.ReceiveMessages(ctx, pass, bob.name, 0)
	require.NoError(t, err)
	assert.Empty(t, got)

	// Bob replies under alice's key while alice rekeys.
	require.NoError(t, bob.messages.SendMessage(ctx, pass, bob.name, alice.name, []byte("old key")))
	_, err = alice.sessions.StartSession(ctx, pass, alice.name, bob.name)
	require.NoError(t, err)

	back, err := alice.messages.ReceiveMessages(ctx, pass, alice.name, 0)
	require.NoError(t, err)
	require.Len(t, back, 1)
	assert.Equal(t, "old key", string(back[0].Plaintext))
}

func TestReceive_SkipsForgedMessages(t *testing.T) {
	alice, bob, mallory := setup(t)
	ctx := context.Background()

	_, err := alice.sessions.StartSession(ctx, pass, alice.name, bob.name)
	require.NoError(t, err)
	_, err = mallory.sessions.StartSession(ctx, pass, mallory.name, bob.name)
	require.NoError(t, err)

	// Mallory sends a correctly sealed message but claims to be alice.
	require.NoError(t, mallory.messages.SendMessage(ctx, pass, mallory.name, bob.name, []byte("from mallory")))
	require.NoError(t, alice.messages.SendMessage(ctx, pass, alice.name, bob.name, []byte("from alice")))

	envs, err := bob.relay.FetchEnvelopes(ctx, bob.name, 0)
	require.NoError(t, err)
	require.Len(t, envs, 4)
	require.NoError(t, bob.relay.AckEnvelopes(ctx, bob.name, 4))

	for i := range envs {
		if string(envs[i].From) == "mallory" && envs[i].Kind == domain.KindMessage {
			envs[i].From = alice.name
		}
		_, err := bob.relay.SendEnvelope(ctx, envs[i])
		require.NoError(t, err)
	}

	got, err := bob.messages.ReceiveMessages(ctx, pass, bob.name, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "from alice", string(got[0].Plaintext))

	left, err := bob.relay.FetchEnvelopes(ctx, bob.name, 0)
	require.NoError(t, err)
	assert.Empty(t, left, "rejected envelopes are acked too")
}

func TestReceive_Empty(t *testing.T) {
	_, bob, _ := setup(t)
	got, err := bob.messages.ReceiveMessages(context.Background(), pass, bob.name, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}
