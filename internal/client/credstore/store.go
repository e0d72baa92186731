// Package credstore persists the client session: access token, refresh
// token, the cached user record, and the theme preference. It is the single
// source of truth for persisted session data; no other component reads or
// writes tokens directly.
//
// The store is deliberately small: a flat string-keyed map backed by a
// local sqlite database, with an in-memory fallback for environments where
// the database cannot be used (read-only filesystems, exhausted disk). See
// Failover.
package credstore

import "context"

// Keys used by the auth subsystem. The namespace is flat; KeyTheme is the
// only non-auth entry and survives logout.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUser         = "user"
	KeyTheme        = "theme"
)

// AuthKeys are the entries created on login and destroyed on logout or on
// irrecoverable refresh failure.
var AuthKeys = []string{KeyAccessToken, KeyRefreshToken, KeyUser}

// Store is a string key-value store for session data.
//
// Contract:
//   - Get returns ("", nil) for an absent key; a non-nil error means the
//     backend failed, not that the key is missing.
//   - SetMany writes all pairs atomically: entries that are mutated
//     together (the token pair, token+user on login) go through it so a
//     partial write cannot leave the session half-updated.
//   - Implementations must be safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	SetMany(ctx context.Context, values map[string]string) error
	Remove(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
