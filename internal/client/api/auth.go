package api

import (
	"context"
	"net/url"

	"github.com/johnbekele/yohans-blog/internal/client/credstore"
	"github.com/johnbekele/yohans-blog/internal/client/models"
)

// Login authenticates with email and password. On success the access
// token, refresh token and user record are persisted together and the full
// payload is returned. Bad credentials surface the backend detail message.
func (c *Client) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	var out TokenResponse
	if err := c.post(ctx, "/auth/login", loginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}

	c.persistSession(ctx, &out)
	c.log.Info(ctx, "logged in", "username", out.User.Username)
	return &out, nil
}

// Register creates an account and starts a session with the same
// persistence contract as Login. An empty role defaults to the
// least-privileged one.
func (c *Client) Register(ctx context.Context, username, email, password, role string) (*TokenResponse, error) {
	if role == "" {
		role = models.RoleUser
	}

	var out TokenResponse
	req := registerRequest{Username: username, Email: email, Password: password, Role: role}
	if err := c.post(ctx, "/auth/register", req, &out); err != nil {
		return nil, err
	}

	c.persistSession(ctx, &out)
	c.log.Info(ctx, "registered", "username", out.User.Username)
	return &out, nil
}

// Logout removes the persisted auth keys. It is best-effort and never
// fails: the in-memory session must be clearable even when storage is not.
func (c *Client) Logout(ctx context.Context) error {
	for _, key := range credstore.AuthKeys {
		_ = c.store.Remove(ctx, key)
	}
	return nil
}

// Me fetches the current user through the gateway, exercising the bearer
// attachment and, when needed, the silent refresh.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.get(ctx, "/auth/me", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ForgotPassword requests a reset email. Stateless; the credential store
// is not touched. Returns the backend's confirmation message.
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	var out messageResponse
	if err := c.post(ctx, "/auth/forgot-password", forgotPasswordRequest{Email: email}, &out); err != nil {
		return "", err
	}
	if out.Message != "" {
		return out.Message, nil
	}
	return out.Detail, nil
}

// ResetPassword redeems a reset token. Stateless pass-through.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	return c.post(ctx, "/auth/reset-password", resetPasswordRequest{Token: token, NewPassword: newPassword}, nil)
}

// ChangePassword rotates the password of the authenticated user.
// Stateless pass-through; the session tokens remain valid.
func (c *Client) ChangePassword(ctx context.Context, current, newPassword string) error {
	return c.post(ctx, "/auth/change-password", changePasswordRequest{CurrentPassword: current, NewPassword: newPassword}, nil)
}

// OAuthURL returns the Google authorization URL to open in a browser.
func (c *Client) OAuthURL(ctx context.Context) (string, error) {
	var out oauthURLResponse
	if err := c.get(ctx, "/auth/oauth/google", &out); err != nil {
		return "", err
	}
	return out.AuthURL, nil
}

// OAuthCallback exchanges an authorization code for a session, with the
// same persistence contract as Login. Codes are single-use: a second call
// with the same code fails with the backend-reported error.
func (c *Client) OAuthCallback(ctx context.Context, code string) (*TokenResponse, error) {
	var out TokenResponse
	path := "/auth/oauth/google/callback?code=" + url.QueryEscape(code)
	if err := c.post(ctx, path, nil, &out); err != nil {
		return nil, err
	}

	c.persistSession(ctx, &out)
	c.log.Info(ctx, "logged in via oauth", "username", out.User.Username)
	return &out, nil
}

// AccessToken reads the stored access token; empty when absent.
func (c *Client) AccessToken(ctx context.Context) string {
	token, _ := c.store.Get(ctx, credstore.KeyAccessToken)
	return token
}

// RefreshToken reads the stored refresh token; empty when absent.
func (c *Client) RefreshToken(ctx context.Context) string {
	token, _ := c.store.Get(ctx, credstore.KeyRefreshToken)
	return token
}

// StoredUser reads the cached user record. Malformed data reads as nil.
func (c *Client) StoredUser(ctx context.Context) *models.User {
	raw, _ := c.store.Get(ctx, credstore.KeyUser)
	return models.UserFromJSON(raw)
}

// IsAuthenticated reports whether an access token is stored.
func (c *Client) IsAuthenticated(ctx context.Context) bool {
	return c.AccessToken(ctx) != ""
}

func (c *Client) persistSession(ctx context.Context, tok *TokenResponse) {
	_ = c.store.SetMany(ctx, map[string]string{
		credstore.KeyAccessToken:  tok.AccessToken,
		credstore.KeyRefreshToken: tok.RefreshToken,
		credstore.KeyUser:         tok.User.JSON(),
	})
	c.transport.resetExpiry()
}
