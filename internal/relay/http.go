package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"hybridchat/internal/domain"
)

// ErrNotFound is returned when the relay answers 404.
var ErrNotFound = errors.New("relay: not found")

// HTTP is a RelayClient speaking JSON to a relay base URL.
type HTTP struct {
	base string
	http *http.Client
	log  zerolog.Logger
}

// NewHTTP returns a client for base. A nil httpClient uses
// http.DefaultClient.
func NewHTTP(base string, httpClient *http.Client, logger zerolog.Logger) *HTTP {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTP{base: strings.TrimRight(base, "/"), http: httpClient, log: logger}
}

// RegisterKeys publishes keys under keys.Username.
func (c *HTTP) RegisterKeys(ctx context.Context, keys domain.PublicKeys) error {
	return c.post(ctx, "/register", keys, nil)
}

// FetchKeys returns the keys published by username.
func (c *HTTP) FetchKeys(ctx context.Context, username domain.Username) (domain.PublicKeys, error) {
	var out domain.PublicKeys
	if err := c.getJSON(ctx, "/keys/"+url.PathEscape(username.String()), &out); err != nil {
		return domain.PublicKeys{}, err
	}
	return out, nil
}

// SendEnvelope queues env for env.To and returns the ID the relay assigned.
func (c *HTTP) SendEnvelope(ctx context.Context, env domain.Envelope) (domain.EnvelopeID, error) {
	var out struct {
		ID domain.EnvelopeID `json:"id"`
	}
	if err := c.post(ctx, "/msg/"+url.PathEscape(env.To.String()), env, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// FetchEnvelopes lists up to limit queued envelopes; limit <= 0 means all.
func (c *HTTP) FetchEnvelopes(ctx context.Context, username domain.Username, limit int) ([]domain.Envelope, error) {
	path := "/msg/" + url.PathEscape(username.String())
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var envs []domain.Envelope
	if err := c.getJSON(ctx, path, &envs); err != nil {
		return nil, err
	}
	return envs, nil
}

// AckEnvelopes drops the first count queued envelopes.
func (c *HTTP) AckEnvelopes(ctx context.Context, username domain.Username, count int) error {
	return c.post(ctx, "/msg/"+url.PathEscape(username.String())+"/ack", ackRequest{Count: count}, nil)
}

func (c *HTTP) post(ctx context.Context, path string, in any, out any) error {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, path, out)
}

func (c *HTTP) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, path, out)
}

func (c *HTTP) do(req *http.Request, path string, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	c.log.Debug().Str("method", req.Method).Str("path", path).Int("status", resp.StatusCode).Msg("relay request")

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("relay %s %s: %w", strings.ToLower(req.Method), path, ErrNotFound)
	}
	if resp.StatusCode/100 != 2 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("relay %s %s: %s: %s", strings.ToLower(req.Method), path, resp.Status, strings.TrimSpace(string(msg)))
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

type ackRequest struct {
	Count int `json:"count"`
}

// Compile-time assertion that HTTP implements domain.RelayClient.
var _ domain.RelayClient = (*HTTP)(nil)
