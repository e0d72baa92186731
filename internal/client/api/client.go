// Package api is the REST client for the blog backend's auth endpoints.
//
// It combines two of the session subsystem's layers:
//   - the auth client: login/register/refresh/logout/password/OAuth calls
//     that persist their results into the credential store (auth.go);
//   - the HTTP gateway: a RoundTripper that attaches the bearer token to
//     every request and transparently refreshes it once on 401
//     (transport.go).
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/johnbekele/yohans-blog/internal/client/credstore"
	"github.com/johnbekele/yohans-blog/internal/logging"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "blogctl/1.0"
)

// Client issues requests against the blog API. The zero value is not
// usable; construct with New.
type Client struct {
	baseURL   string
	store     credstore.Store
	log       logging.Logger
	transport *authTransport

	// httpc routes through the gateway transport; bare skips it and is
	// used for the refresh call itself so a 401 there cannot recurse.
	httpc *http.Client
	bare  *http.Client
}

// Option configures the Client.
type Option func(*Client)

// WithTimeout overrides the request timeout (default 30s).
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpc.Timeout = d
		c.bare.Timeout = d
	}
}

// New creates a Client for the API at baseURL, reading and writing session
// state through store.
func New(baseURL string, store credstore.Store, log logging.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		store:   store,
		log:     log.With("component", "api"),
	}

	c.transport = newAuthTransport(store, c.refreshSession, log)
	c.httpc = &http.Client{Timeout: defaultTimeout, Transport: c.transport}
	c.bare = &http.Client{Timeout: defaultTimeout}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnSessionExpired registers fn to run when an irrecoverable auth failure
// forces the session to be cleared. It fires at most once per expiry event;
// the session layer uses it to drop its in-memory user so the UI falls back
// to the login flow.
func (c *Client) OnSessionExpired(fn func()) {
	c.transport.setOnExpired(fn)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.send(ctx, c.httpc, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	return c.send(ctx, c.httpc, http.MethodPost, path, payload, out)
}

func (c *Client) send(ctx context.Context, client *http.Client, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshaling payload: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return unwrapDoErr(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return normalize(resp.StatusCode, respBody)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("parsing response: %w", err)
		}
	}
	return nil
}

// refreshSession exchanges the stored refresh token for a new token pair
// and persists both. It is invoked by the gateway transport (single-flight)
// and goes over the bare client.
func (c *Client) refreshSession(ctx context.Context) (string, error) {
	refreshToken, _ := c.store.Get(ctx, credstore.KeyRefreshToken)
	if refreshToken == "" {
		return "", &Error{Status: http.StatusUnauthorized, Detail: "no refresh token"}
	}

	var pair tokenPair
	if err := c.send(ctx, c.bare, http.MethodPost, "/auth/refresh", refreshRequest{RefreshToken: refreshToken}, &pair); err != nil {
		return "", err
	}

	_ = c.store.SetMany(ctx, map[string]string{
		credstore.KeyAccessToken:  pair.AccessToken,
		credstore.KeyRefreshToken: pair.RefreshToken,
	})
	c.log.Debug(ctx, "access token refreshed")
	return pair.AccessToken, nil
}
