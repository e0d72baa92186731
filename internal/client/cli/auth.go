package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/johnbekele/yohans-blog/internal/client/models"
	"github.com/johnbekele/yohans-blog/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts the user for email and password and authenticates through
// the session manager. On failure the user-presentable message is printed;
// the error is also returned for callers that want it. The password byte
// slice is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.session.Login(ctx, email, string(password))
	if err != nil {
		printlnFn("Login failed:", a.session.Err())
		return err
	}

	printlnFn(fmt.Sprintf("Logged in as %s (%s)", user.Username, user.Role))
	return nil
}

// Register prompts for the new account's details and creates it. The
// session switches to the new account on success, matching the login
// persistence contract.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	role, err := getSimpleText(a.reader, "Enter role (user/admin, empty for user)", os.Stdout)
	if err != nil {
		return err
	}
	if role == "" {
		role = models.RoleUser
	}

	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.session.Register(ctx, username, email, string(password), role)
	if err != nil {
		printlnFn("Registration failed:", a.session.Err())
		return err
	}

	printlnFn(fmt.Sprintf("Registered %s (%s)", user.Username, user.Role))
	return nil
}

// Logout drops the session. It never fails: the persisted credentials are
// removed best-effort and the in-memory session is always cleared.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	printlnFn("Logged out")
	return nil
}
