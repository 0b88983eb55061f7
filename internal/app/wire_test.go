package app_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hybridchat/internal/app"
	"hybridchat/internal/domain"
	"hybridchat/internal/log"
	"hybridchat/internal/relay"
)

const pass = "Correct-Horse-9!"

func newWire(t *testing.T, url string) *app.Wire {
	t.Helper()
	w, err := app.NewWire(app.Options{Home: t.TempDir(), RelayURL: url, Timeout: 5 * time.Second},
		log.New(log.WithLevel(zerolog.Disabled)))
	require.NoError(t, err)
	return w
}

func register(t *testing.T, w *app.Wire, name domain.Username) {
	t.Helper()
	_, _, err := w.IDs.GenerateIdentity(pass)
	require.NoError(t, err)
	keys, err := w.IDs.PublicKeys(pass, name)
	require.NoError(t, err)
	require.NoError(t, w.Relay.RegisterKeys(context.Background(), keys))
	require.NoError(t, w.Accounts.SaveAccountProfile(domain.AccountProfile{ServerURL: w.RelayURL, Username: name}))
}

func TestWire_EndToEnd(t *testing.T) {
	srv := httptest.NewServer(relay.NewServer(zerolog.Nop()))
	defer srv.Close()
	ctx := context.Background()

	alice := newWire(t, srv.URL)
	bob := newWire(t, srv.URL)
	register(t, alice, "alice")
	register(t, bob, "bob")

	me, err := alice.Me()
	require.NoError(t, err)
	assert.Equal(t, domain.Username("alice"), me)

	_, err = alice.Sessions.StartSession(ctx, pass, "alice", "bob")
	require.NoError(t, err)
	require.NoError(t, alice.Messages.SendMessage(ctx, pass, "alice", "bob", []byte("hi bob")))

	msgs, err := bob.Messages.ReceiveMessages(ctx, pass, "bob", 0)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "hi bob", string(msgs[0].Plaintext))
	assert.Equal(t, domain.Username("alice"), msgs[0].From)
}

func TestWire_MeUnregistered(t *testing.T) {
	w := newWire(t, "http://127.0.0.1:1")
	_, err := w.Me()
	assert.ErrorIs(t, err, domain.ErrNotRegistered)
}

func TestNewWire_RequiresHome(t *testing.T) {
	_, err := app.NewWire(app.Options{}, nil)
	assert.Error(t, err)
}
