package cli

import (
	"context"
	"os"

	"github.com/johnbekele/yohans-blog/internal/client/api"
	"github.com/johnbekele/yohans-blog/internal/common"
)

// ForgotPassword asks the backend to send a reset email. Stateless; works
// without a session.
func (a *App) ForgotPassword(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	msg, err := a.api.ForgotPassword(ctx, email)
	if err != nil {
		printlnFn(api.Message(err))
		return err
	}

	printlnFn(msg)
	return nil
}

// ResetPassword redeems a reset token from the email for a new password.
func (a *App) ResetPassword(ctx context.Context) error {
	token, err := getSimpleText(a.reader, "Enter reset token", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter new password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.api.ResetPassword(ctx, token, string(password)); err != nil {
		printlnFn(api.Message(err))
		return err
	}

	printlnFn("Password updated, you can login now")
	return nil
}

// ChangePassword rotates the password of the signed-in account. The session
// tokens stay valid, so no re-login is needed.
func (a *App) ChangePassword(ctx context.Context) error {
	current, err := getPassword(os.Stdout, "Enter current password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(current)

	next, err := getPassword(os.Stdout, "Enter new password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(next)

	if err := a.api.ChangePassword(ctx, string(current), string(next)); err != nil {
		printlnFn(api.Message(err))
		return err
	}

	printlnFn("Password updated")
	return nil
}
