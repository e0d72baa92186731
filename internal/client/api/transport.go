package api

import (
	"context"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/johnbekele/yohans-blog/internal/client/credstore"
	"github.com/johnbekele/yohans-blog/internal/logging"
)

const requestIDHeader = "X-Request-Id"

// authTransport is the HTTP gateway: every outgoing request gets the bearer
// token from the credential store, and a 401 response triggers exactly one
// transparent refresh-and-retry.
//
// Per-request state machine:
//  1. attach Authorization (if a token exists) and a request id; dispatch;
//  2. non-401 responses pass through unmodified;
//  3. first 401: refresh the token pair (shared across concurrent 401s via
//     singleflight) and re-issue the original request once with the new
//     token — whatever that retry returns goes to the caller;
//  4. refresh failed or impossible: clear the auth keys, notify the
//     session-expired hook at most once, and surface the failure.
//
// The retried request is sent directly on the base transport, so it can
// never trigger a second refresh.
type authTransport struct {
	base    http.RoundTripper
	store   credstore.Store
	refresh func(ctx context.Context) (string, error)
	group   singleflight.Group
	log     logging.Logger

	mu        sync.Mutex
	onExpired func()
	notified  bool
}

func newAuthTransport(store credstore.Store, refresh func(ctx context.Context) (string, error), log logging.Logger) *authTransport {
	return &authTransport{
		base:    http.DefaultTransport,
		store:   store,
		refresh: refresh,
		log:     log.With("component", "gateway"),
	}
}

func (t *authTransport) setOnExpired(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onExpired = fn
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	out := req.Clone(ctx)
	out.Header.Set(requestIDHeader, uuid.NewString())
	if token, _ := t.store.Get(ctx, credstore.KeyAccessToken); token != "" {
		out.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := t.base.RoundTrip(out)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		if resp.StatusCode >= 400 {
			t.log.Debug(ctx, "request failed", "method", req.Method, "path", req.URL.Path, "status", resp.StatusCode)
		}
		return resp, nil
	}

	refreshToken, _ := t.store.Get(ctx, credstore.KeyRefreshToken)
	if refreshToken == "" {
		// Nothing to refresh with. Drop whatever stale session state is
		// around and hand the 401 back so the caller sees the backend
		// detail (a failed login lands here).
		t.expireSession(ctx)
		return resp, nil
	}

	newToken, err := t.refreshShared(ctx)
	if err != nil {
		resp.Body.Close()
		t.expireSession(ctx)
		return nil, err
	}

	retry, ok := cloneForRetry(out, newToken)
	if !ok {
		// Body cannot be replayed; surface the original 401.
		return resp, nil
	}
	resp.Body.Close()

	t.log.Debug(ctx, "retrying after token refresh", "method", req.Method, "path", req.URL.Path)
	return t.base.RoundTrip(retry)
}

// refreshShared deduplicates concurrent refresh attempts: every request
// that hits 401 while a refresh is in flight waits for that one call and
// retries with the token it produced.
func (t *authTransport) refreshShared(ctx context.Context) (string, error) {
	v, err, _ := t.group.Do("refresh", func() (any, error) {
		return t.refresh(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// expireSession clears the persisted auth keys and fires the expiry hook.
// The hook runs at most once per expiry event; resetExpiry re-arms it after
// the next successful login.
func (t *authTransport) expireSession(ctx context.Context) {
	for _, key := range credstore.AuthKeys {
		_ = t.store.Remove(ctx, key)
	}

	t.mu.Lock()
	fn := t.onExpired
	already := t.notified
	t.notified = true
	t.mu.Unlock()

	if fn != nil && !already {
		t.log.Info(ctx, "session expired, credentials cleared")
		fn()
	}
}

func (t *authTransport) resetExpiry() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.notified = false
}

// cloneForRetry duplicates an already-sent request with a fresh body and
// the new access token. Requests whose body cannot be re-materialized
// report ok=false and are not retried.
func cloneForRetry(req *http.Request, token string) (*http.Request, bool) {
	retry := req.Clone(req.Context())
	if req.Body != nil {
		if req.GetBody == nil {
			return nil, false
		}
		body, err := req.GetBody()
		if err != nil {
			return nil, false
		}
		retry.Body = body
	}
	retry.Header.Set("Authorization", "Bearer "+token)
	return retry, true
}
