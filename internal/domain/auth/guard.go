package auth

// Decision is the access guard's verdict for a navigation to a protected view.
type Decision string

const (
	// DecisionAllow lets the navigation proceed.
	DecisionAllow Decision = "allow"
	// DecisionPending means the session is still resolving; render a neutral
	// loading state and do not redirect.
	DecisionPending Decision = "pending"
	// DecisionRedirectToLogin sends an unauthenticated caller to the login view.
	DecisionRedirectToLogin Decision = "redirect_to_login"
	// DecisionRedirectToForbidden sends an authenticated caller without the
	// required role to the forbidden view.
	DecisionRedirectToForbidden Decision = "redirect_to_forbidden"
)

// Authorize decides whether a navigation guarded by requiredRoles may proceed
// given the current session snapshot. It is a pure function: no I/O, no state.
//
// A loading session always yields Pending, regardless of other fields, so the
// caller never sees a redirect flash while initialization is in flight.
// An empty requiredRoles list only requires authentication.
func Authorize(snap Snapshot, requiredRoles ...Role) Decision {
	if snap.Loading {
		return DecisionPending
	}
	if !snap.IsAuthenticated() {
		return DecisionRedirectToLogin
	}
	if len(requiredRoles) > 0 && !roleIn(snap.User.Role, requiredRoles) {
		return DecisionRedirectToForbidden
	}
	return DecisionAllow
}

func roleIn(role Role, roles []Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
