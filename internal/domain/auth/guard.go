package auth

import "strings"

// Paths consumed by the route guard. All gated paths that are not under the
// admin prefix are treated identically (authenticated-only).
const (
	LoginPath     = "/login"
	RegisterPath  = "/register"
	DashboardPath = "/dashboard"
	AdminPath     = "/admin"
)

// DecisionKind enumerates the three possible guard outcomes.
type DecisionKind int

const (
	// Permit admits the navigation.
	Permit DecisionKind = iota
	// RedirectToLogin bounces an unauthenticated request to the login page.
	RedirectToLogin
	// RedirectToDashboard downgrades an authenticated but under-privileged
	// request to the dashboard.
	RedirectToDashboard
)

func (k DecisionKind) String() string {
	switch k {
	case Permit:
		return "permit"
	case RedirectToLogin:
		return "redirect_to_login"
	case RedirectToDashboard:
		return "redirect_to_dashboard"
	default:
		return "unknown"
	}
}

// Decision is the guard's verdict for one navigation attempt.
type Decision struct {
	Kind DecisionKind
	// ReturnTo carries the originally requested path when Kind is
	// RedirectToLogin, so the login flow can send the user back after
	// success. Empty otherwise.
	ReturnTo string
}

// DecideInput groups the inputs the guard evaluates. It is a snapshot; the
// guard never reaches back into session state.
type DecideInput struct {
	Authenticated bool
	Role          Role
	Path          string
}

// Decide evaluates route authorization for one navigation attempt. It is
// pure: identical inputs always yield identical decisions and nothing is
// mutated.
//
// Rules, in order:
//   - not authenticated: RedirectToLogin carrying the requested path;
//   - authenticated, admin path, role below admin: RedirectToDashboard;
//   - otherwise: Permit.
func Decide(in DecideInput) Decision {
	if !in.Authenticated {
		return Decision{Kind: RedirectToLogin, ReturnTo: in.Path}
	}
	if isAdminPath(in.Path) && in.Role != RoleAdmin {
		return Decision{Kind: RedirectToDashboard}
	}
	return Decision{Kind: Permit}
}

// isAdminPath matches the admin page and everything nested under it.
func isAdminPath(path string) bool {
	return path == AdminPath || strings.HasPrefix(path, AdminPath+"/")
}
