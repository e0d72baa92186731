package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/johnbekele/yohans-blog/internal/client/session"
)

type fakeExec struct {
	loading  bool
	loggedIn bool
	admin    bool

	calls []string
}

func (f *fakeExec) guard(adminOnly bool) session.GuardDecision {
	if f.loading {
		return session.GuardPending
	}
	if !f.loggedIn {
		return session.GuardRedirect
	}
	if adminOnly && !f.admin {
		return session.GuardRedirect
	}
	return session.GuardAllow
}

func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Register(ctx context.Context) error {
	f.calls = append(f.calls, "register")
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) OAuthLogin(ctx context.Context) error {
	f.calls = append(f.calls, "oauth")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) ForgotPassword(ctx context.Context) error {
	f.calls = append(f.calls, "forgot")
	return nil
}
func (f *fakeExec) ResetPassword(ctx context.Context) error {
	f.calls = append(f.calls, "reset")
	return nil
}
func (f *fakeExec) ChangePassword(ctx context.Context) error {
	f.calls = append(f.calls, "passwd")
	return nil
}
func (f *fakeExec) WhoAmI(ctx context.Context) error {
	f.calls = append(f.calls, "whoami")
	return nil
}
func (f *fakeExec) Status(ctx context.Context) error {
	f.calls = append(f.calls, "status")
	return nil
}
func (f *fakeExec) Theme(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "theme")
	return nil
}

func runLines(t *testing.T, exec *fakeExec, lines ...string) {
	t.Helper()

	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	sc := bufio.NewScanner(strings.NewReader(strings.Join(lines, "\n")))
	runREPL(context.Background(), exec, func() string { return "status" }, sc)
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	exec := &fakeExec{admin: true}

	runLines(t, exec,
		"help",
		"login",
		"help",
		"whoami",
		"status",
		"passwd",
		"theme dark",
		"foobar",
		"logout",
		"exit",
	)

	want := []string{"login", "whoami", "status", "passwd", "theme", "logout"}
	if len(exec.calls) != len(want) {
		t.Fatalf("calls mismatch: got %v, want %v", exec.calls, want)
	}
	for i, c := range want {
		if exec.calls[i] != c {
			t.Fatalf("calls order mismatch: got %v, want %v", exec.calls, want)
		}
	}
}

func TestRunREPL_GuardsProtectedCommands(t *testing.T) {
	exec := &fakeExec{}

	// Not logged in: protected commands never reach the handlers.
	runLines(t, exec, "whoami", "status", "passwd", "register", "quit")

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}

func TestRunREPL_HoldsCommandsWhileLoading(t *testing.T) {
	exec := &fakeExec{loading: true, loggedIn: true, admin: true}

	runLines(t, exec, "whoami", "register", "exit")

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls while loading: %v", exec.calls)
	}
}

func TestRunREPL_RegisterIsAdminOnly(t *testing.T) {
	exec := &fakeExec{loggedIn: true}

	runLines(t, exec, "register", "exit")
	if len(exec.calls) != 0 {
		t.Fatalf("register ran for non-admin: %v", exec.calls)
	}

	exec = &fakeExec{loggedIn: true, admin: true}
	runLines(t, exec, "register", "exit")
	if len(exec.calls) != 1 || exec.calls[0] != "register" {
		t.Fatalf("register did not run for admin: %v", exec.calls)
	}
}

func TestRunREPL_PublicCommandsAlwaysAvailable(t *testing.T) {
	exec := &fakeExec{}

	runLines(t, exec, "oauth", "logout", "forgot", "reset", "theme", "exit")

	want := []string{"oauth", "logout", "forgot", "reset", "theme"}
	if len(exec.calls) != len(want) {
		t.Fatalf("calls mismatch: got %v, want %v", exec.calls, want)
	}
}
