// Package session owns the in-memory projection of the persisted session:
// the current user, the startup loading flag, and the last auth error. It
// is the only writer of in-memory user state; everything else derives from
// the credential store through the api client.
package session

import (
	"context"
	"sync"

	"github.com/johnbekele/yohans-blog/internal/client/api"
	"github.com/johnbekele/yohans-blog/internal/client/credstore"
	"github.com/johnbekele/yohans-blog/internal/client/models"
	"github.com/johnbekele/yohans-blog/internal/logging"
)

// Manager is constructed once at startup and handed to the UI layer
// explicitly — no ambient global state. Call Init before first use.
type Manager struct {
	api   *api.Client
	store credstore.Store
	log   logging.Logger

	mu      sync.Mutex
	user    *models.User
	loading bool
	lastErr string
}

// NewManager wires a Manager to the api client and credential store and
// registers itself as the gateway's session-expired hook. The manager
// starts in the loading state.
func NewManager(client *api.Client, store credstore.Store, log logging.Logger) *Manager {
	m := &Manager{
		api:     client,
		store:   store,
		log:     log.With("component", "session"),
		loading: true,
	}
	client.OnSessionExpired(m.handleExpired)
	return m
}

// Init hydrates the session from the credential store. The session is
// restored only when both an access token and a parseable user record are
// present; any partial or corrupted state is cleared and the session
// starts unauthenticated. The loading flag drops exactly once, on every
// path.
func (m *Manager) Init(ctx context.Context) {
	defer func() {
		m.mu.Lock()
		m.loading = false
		m.mu.Unlock()
	}()

	token, _ := m.store.Get(ctx, credstore.KeyAccessToken)
	rawUser, _ := m.store.Get(ctx, credstore.KeyUser)
	user := models.UserFromJSON(rawUser)

	if token != "" && user != nil {
		m.mu.Lock()
		m.user = user
		m.mu.Unlock()
		m.log.Info(ctx, "session restored", "username", user.Username)
		return
	}

	if token != "" || rawUser != "" {
		// Partial write or tampered storage: reset rather than run with an
		// inconsistent session.
		m.log.Warn(ctx, "inconsistent stored session, clearing credentials")
		_ = m.api.Logout(ctx)
	}
}

// Login authenticates and, on success, publishes the user and clears any
// stored error. On failure the user-presentable message is recorded and
// the normalized error is returned so the calling UI can react too.
func (m *Manager) Login(ctx context.Context, email, password string) (*models.User, error) {
	resp, err := m.api.Login(ctx, email, password)
	return m.finishAuth(ctx, resp, err)
}

// Register creates an account with the same session semantics as Login.
func (m *Manager) Register(ctx context.Context, username, email, password, role string) (*models.User, error) {
	resp, err := m.api.Register(ctx, username, email, password, role)
	return m.finishAuth(ctx, resp, err)
}

// OAuthLogin exchanges an authorization code for a session, with the same
// session semantics as Login.
func (m *Manager) OAuthLogin(ctx context.Context, code string) (*models.User, error) {
	resp, err := m.api.OAuthCallback(ctx, code)
	return m.finishAuth(ctx, resp, err)
}

func (m *Manager) finishAuth(ctx context.Context, resp *api.TokenResponse, err error) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		m.lastErr = api.Message(err)
		return nil, err
	}

	user := resp.User
	m.user = &user
	m.lastErr = ""
	return &user, nil
}

// Logout clears the persisted credentials and always resets the in-memory
// user and error, even when storage removal fails underneath.
func (m *Manager) Logout(ctx context.Context) {
	_ = m.api.Logout(ctx)

	m.mu.Lock()
	m.user = nil
	m.lastErr = ""
	m.mu.Unlock()

	m.log.Info(ctx, "logged out")
}

// handleExpired runs when the gateway gives up on refreshing. Dropping the
// in-memory user makes the next guard check route to login; nothing fires
// when there was no session to lose.
func (m *Manager) handleExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user != nil {
		m.user = nil
	}
}

// CurrentUser returns the signed-in user, or nil.
func (m *Manager) CurrentUser() *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// Loading reports whether Init has not finished yet.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// Err returns the user-presentable message of the last failed auth action,
// or "".
func (m *Manager) Err() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// IsAuthenticated reports whether a user is signed in.
func (m *Manager) IsAuthenticated() bool {
	return m.CurrentUser() != nil
}

// IsAdmin reports whether the signed-in user carries the admin role. This
// gates UI only; the backend re-checks the role on every privileged
// request.
func (m *Manager) IsAdmin() bool {
	return m.CurrentUser().IsAdmin()
}
