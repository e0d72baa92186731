package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/johnbekele/yohans-blog/internal/client/api"
	"github.com/johnbekele/yohans-blog/internal/client/config"
	"github.com/johnbekele/yohans-blog/internal/client/credstore"
	"github.com/johnbekele/yohans-blog/internal/client/session"
	"github.com/johnbekele/yohans-blog/internal/logging"
)

func stubInputs(t *testing.T, text string, password []byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return text, nil }
	getPassword = func(_ io.Writer, _ string) ([]byte, error) { return append([]byte(nil), password...), nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

func silencePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(args ...any) (int, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i], _ = a.(string)
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

// newTestApp wires a real App against a stub backend with one admin
// account, using in-memory credential storage.
func newTestApp(t *testing.T) (*App, *credstore.Failover) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&req)

		w.Header().Set("Content-Type", "application/json")
		if req.Email != "admin@blog.com" || req.Password != "admin123" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid email or password"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "a1",
			"refresh_token": "r1",
			"token_type":    "bearer",
			"user": map[string]string{
				"id": "1", "username": "yohans", "email": "admin@blog.com", "role": "admin",
			},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	store := credstore.NewFailover(credstore.NewMemory(), log)
	apiClient := api.New(srv.URL, store, log)
	manager := session.NewManager(apiClient, store, log)
	manager.Init(context.Background())

	cfg := &config.Config{}
	cfg.LoadDefaults()

	return &App{
		config:  cfg,
		store:   store,
		api:     apiClient,
		session: manager,
		reader:  bufio.NewReader(strings.NewReader("")),
		log:     log,
	}, store
}

func TestAppLogin_Success(t *testing.T) {
	ctx := context.Background()
	a, store := newTestApp(t)
	stubInputs(t, "admin@blog.com", []byte("admin123"))
	silencePrintln(t)

	require.NoError(t, a.Login(ctx))
	require.True(t, a.session.IsAuthenticated())
	require.Equal(t, session.GuardAllow, a.guard(true))

	access, _ := store.Get(ctx, credstore.KeyAccessToken)
	require.Equal(t, "a1", access)
}

func TestAppLogin_BadPassword(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestApp(t)
	stubInputs(t, "admin@blog.com", []byte("wrong"))
	lines := silencePrintln(t)

	require.Error(t, a.Login(ctx))
	require.False(t, a.session.IsAuthenticated())
	require.Contains(t, strings.Join(*lines, "\n"), "Invalid email or password")
}

func TestAppLogout(t *testing.T) {
	ctx := context.Background()
	a, store := newTestApp(t)
	stubInputs(t, "admin@blog.com", []byte("admin123"))
	silencePrintln(t)

	require.NoError(t, a.Login(ctx))
	require.NoError(t, a.Logout(ctx))

	require.False(t, a.session.IsAuthenticated())
	for _, key := range credstore.AuthKeys {
		value, _ := store.Get(ctx, key)
		require.Empty(t, value, key)
	}
}

func TestAppTheme(t *testing.T) {
	ctx := context.Background()
	a, store := newTestApp(t)
	lines := silencePrintln(t)

	require.NoError(t, a.Theme(ctx, []string{"dark"}))

	theme, _ := store.Get(ctx, credstore.KeyTheme)
	require.Equal(t, "dark", theme)

	require.NoError(t, a.Theme(ctx, nil))
	require.Contains(t, strings.Join(*lines, "\n"), "Theme: dark")
}
