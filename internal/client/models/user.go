// Package models contains the client-side data model for the blog CLI:
// the authenticated user record as returned by the backend and cached in
// the credential store.
package models

import "encoding/json"

// Roles assigned by the backend. The role is server-owned; the client only
// reads it for UI gating and never treats it as a security boundary.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the account record returned by /auth/login, /auth/register and
// /auth/me. A JSON-serialized copy is persisted in the credential store so
// the session can be restored without a network round trip.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at,omitempty"`
}

// IsAdmin reports whether u carries the admin role. Safe on a nil receiver.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// UserFromJSON decodes a stored user record. It returns nil for empty or
// malformed input instead of an error: a corrupted cache entry is treated
// the same as an absent one.
func UserFromJSON(s string) *User {
	if s == "" {
		return nil
	}
	var u User
	if err := json.Unmarshal([]byte(s), &u); err != nil {
		return nil
	}
	return &u
}

// JSON encodes u for persistence in the credential store.
func (u *User) JSON() string {
	b, err := json.Marshal(u)
	if err != nil {
		return ""
	}
	return string(b)
}
