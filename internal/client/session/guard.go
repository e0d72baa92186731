package session

// GuardDecision tells the UI what to do with a protected action.
type GuardDecision int

const (
	// GuardPending means session hydration is still running; hold the
	// action instead of deciding.
	GuardPending GuardDecision = iota
	// GuardRedirect means the session does not satisfy the requirement;
	// send the user to login.
	GuardRedirect
	// GuardAllow means the action may proceed.
	GuardAllow
)

func (d GuardDecision) String() string {
	switch d {
	case GuardPending:
		return "pending"
	case GuardRedirect:
		return "redirect"
	case GuardAllow:
		return "allow"
	default:
		return "unknown"
	}
}

// Guard decides whether a protected action may run right now. While the
// manager is loading the answer is always pending, never a premature
// redirect. adminOnly additionally requires the admin role.
func (m *Manager) Guard(adminOnly bool) GuardDecision {
	if m.Loading() {
		return GuardPending
	}
	if !m.IsAuthenticated() {
		return GuardRedirect
	}
	if adminOnly && !m.IsAdmin() {
		return GuardRedirect
	}
	return GuardAllow
}
