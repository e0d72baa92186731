// Package cli provides the interactive blogctl command-line client.
//
// It wires configuration, the local credential store, the API client and an
// interactive REPL around the session manager. Typical flow: restore the
// previous session from disk, then execute user commands until exit.
//
// Key features:
//   - Login / Logout with email and password, or via Google OAuth
//   - Password maintenance: forgot, reset, change
//   - Account registration (admins only)
//   - Session and storage status, theme preference
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// Commands that need a session are gated on its state: held while it is
// still hydrating, refused with a hint towards login when it is absent.
// See App and runREPL for details.
package cli
