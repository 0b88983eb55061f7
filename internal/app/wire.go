package app

import (
	"errors"
	"net/http"
	"os"

	"hybridchat/internal/domain"
	"hybridchat/internal/hybrid"
	"hybridchat/internal/log"
	"hybridchat/internal/relay"
	identitysvc "hybridchat/internal/services/identity"
	messagesvc "hybridchat/internal/services/message"
	sessionsvc "hybridchat/internal/services/session"
	"hybridchat/internal/store"
)

// Wire bundles all stores, services, and clients for the CLI.
type Wire struct {
	RelayURL string
	Accounts domain.AccountStore
	IDs      domain.IdentityService
	Sessions domain.SessionService
	Messages domain.MessageService
	Relay    domain.RelayClient
	HTTP     *http.Client
}

// NewWire constructs the dependency graph from opts.
func NewWire(opts Options, logger *log.Logger) (*Wire, error) {
	if opts.Home == "" {
		return nil, errors.New("app: home directory required")
	}
	if err := os.MkdirAll(opts.Home, 0o700); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.G
	}

	identityStore := store.NewIdentityFileStore(opts.Home)
	peerStore := store.NewPeerFileStore(opts.Home)
	accountStore := store.NewAccountFileStore(opts.Home)

	httpClient := opts.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	rc := relay.NewHTTP(opts.RelayURL, httpClient, logger.With().Str("component", "relay-client").Logger())

	idSvc := identitysvc.New(identityStore, hybrid.WithLogger(logger.With().Str("component", "hybrid").Logger()))
	sessionSvc := sessionsvc.New(idSvc, peerStore, rc, logger.With().Str("component", "session").Logger())
	messageSvc := messagesvc.New(idSvc, sessionSvc, rc, logger.With().Str("component", "message").Logger())

	return &Wire{
		RelayURL: opts.RelayURL,
		Accounts: accountStore,
		IDs:      idSvc,
		Sessions: sessionSvc,
		Messages: messageSvc,
		Relay:    rc,
		HTTP:     httpClient,
	}, nil
}

// Me returns the username registered on the configured relay.
func (w *Wire) Me() (domain.Username, error) {
	p, ok, err := w.Accounts.LoadAccountProfile(w.RelayURL)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", domain.ErrNotRegistered
	}
	return p.Username, nil
}
