package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/johnbekele/yohans-blog/internal/client/api"
)

// OAuthLogin runs the Google sign-in flow: print the authorization URL for
// the user to open in a browser, then exchange the code they paste back for
// a session. Codes are single-use; a rejected code leaves the session
// untouched.
func (a *App) OAuthLogin(ctx context.Context) error {
	authURL, err := a.api.OAuthURL(ctx)
	if err != nil {
		printlnFn(api.Message(err))
		return err
	}

	printlnFn("Open this URL in your browser and authorize the application:")
	printlnFn("  " + authURL)

	code, err := getSimpleText(a.reader, "Paste the authorization code", os.Stdout)
	if err != nil {
		return err
	}

	user, err := a.session.OAuthLogin(ctx, code)
	if err != nil {
		printlnFn("Login failed:", a.session.Err())
		return err
	}

	printlnFn(fmt.Sprintf("Logged in as %s (%s)", user.Username, user.Role))
	return nil
}
