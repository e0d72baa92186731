package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/johnbekele/yohans-blog/internal/client/session"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	guard(adminOnly bool) session.GuardDecision
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Logout(ctx context.Context) error
	OAuthLogin(ctx context.Context) error
	ForgotPassword(ctx context.Context) error
	ResetPassword(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Status(ctx context.Context) error
	Theme(ctx context.Context, args []string) error
}

// runREPL starts a simple read–eval–print loop for the blogctl CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - login          — authenticate with email and password
//	  - oauth          — authenticate via Google
//	  - forgot         — request a password reset email
//	  - reset          — redeem a reset token
//	  - theme          — show or set the color theme
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - whoami         — fetch the current account from the server
//	  - status         — show session and storage state
//	  - passwd         — change the password
//	  - register       — create an account (admins only)
//	  - logout         — log out
//	  - theme          — show or set the color theme
//	  - exit | quit    — leave the program
//
// Commands that need a session are gated through guard: while the session
// is still hydrating they are held rather than rejected, and without a
// session the user is pointed at login. Any errors returned by command
// handlers are ignored here; handlers print their own errors. This keeps
// the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("blog> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.guard(false) == session.GuardAllow {
				printlnFn("Available commands: whoami, status, passwd, register, theme, logout, exit")
			} else {
				printlnFn("Available commands: login, oauth, forgot, reset, theme, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "oauth":
			_ = a.OAuthLogin(ctx)

		case "forgot":
			_ = a.ForgotPassword(ctx)

		case "reset":
			_ = a.ResetPassword(ctx)

		case "register":
			runGuarded(a, true, func() error { return a.Register(ctx) })

		case "whoami":
			runGuarded(a, false, func() error { return a.WhoAmI(ctx) })

		case "status":
			runGuarded(a, false, func() error { return a.Status(ctx) })

		case "passwd":
			runGuarded(a, false, func() error { return a.ChangePassword(ctx) })

		case "theme":
			_ = a.Theme(ctx, args)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

// runGuarded executes run only when the session satisfies the guard,
// explaining to the user why the command was held back otherwise.
func runGuarded(a execIface, adminOnly bool, run func() error) {
	switch a.guard(adminOnly) {
	case session.GuardPending:
		printlnFn("Session is still loading, try again in a moment")
	case session.GuardRedirect:
		if adminOnly && a.guard(false) == session.GuardAllow {
			printlnFn("This command requires admin privileges")
		} else {
			printlnFn("Please login first")
		}
	case session.GuardAllow:
		_ = run()
	}
}
