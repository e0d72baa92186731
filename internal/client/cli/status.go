package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/johnbekele/yohans-blog/internal/client/api"
	"github.com/johnbekele/yohans-blog/internal/client/credstore"
)

// getStatus renders the prompt decoration: the signed-in username and a
// marker when the credential store runs degraded.
func (a *App) getStatus() string {
	s := ""
	if user := a.session.CurrentUser(); user != nil {
		s = user.Username
	}
	if a.store.Degraded() {
		if s != "" {
			s += " "
		}
		s += "volatile"
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// WhoAmI fetches the account from the server through the gateway, so a
// stale access token is refreshed on the way.
func (a *App) WhoAmI(ctx context.Context) error {
	user, err := a.api.Me(ctx)
	if err != nil {
		printlnFn(api.Message(err))
		return err
	}

	printlnFn(fmt.Sprintf("%s <%s> role=%s id=%s", user.Username, user.Email, user.Role, user.ID))
	return nil
}

// Status prints the local view of the session: the cached user, token
// expiry, storage mode and theme. Nothing here talks to the server.
func (a *App) Status(ctx context.Context) error {
	user := a.session.CurrentUser()
	printlnFn(fmt.Sprintf("Logged in as %s (%s)", user.Username, user.Role))

	if token := a.api.AccessToken(ctx); token != "" {
		if exp, ok := api.TokenExpiry(token); ok {
			printlnFn(fmt.Sprintf("Access token expires %s (%s)",
				exp.Format(time.RFC3339), time.Until(exp).Round(time.Second)))
		}
	}

	if a.store.Degraded() {
		printlnFn("Credential storage: in-memory (session will not survive restart)")
	} else {
		printlnFn("Credential storage: " + a.config.DatabaseDSN)
	}

	theme, _ := a.store.Get(ctx, credstore.KeyTheme)
	if theme == "" {
		theme = "default"
	}
	printlnFn("Theme: " + theme)
	return nil
}

// Theme shows the stored color theme preference, or sets it when called
// with an argument. The preference survives logout.
func (a *App) Theme(ctx context.Context, args []string) error {
	if len(args) == 0 {
		theme, _ := a.store.Get(ctx, credstore.KeyTheme)
		if theme == "" {
			theme = "default"
		}
		printlnFn("Theme: " + theme)
		return nil
	}

	if err := a.store.Set(ctx, credstore.KeyTheme, args[0]); err != nil {
		return err
	}
	printlnFn("Theme set to " + args[0])
	return nil
}
