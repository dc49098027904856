package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import "time"

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleHOD   Role = "hod"
	RoleStaff Role = "staff"
	// RoleUnknown is the zero value, used when no profile has been loaded.
	// Callers must treat it as least privilege, never as admin.
	RoleUnknown Role = ""
)

// roleRank orders roles for privilege comparisons. Unknown ranks below staff.
func roleRank(r Role) int {
	switch r {
	case RoleStaff:
		return 1
	case RoleHOD:
		return 2
	case RoleAdmin:
		return 3
	default:
		return 0
	}
}

// AtLeast reports whether r carries at least the privilege of required.
func (r Role) AtLeast(required Role) bool {
	return roleRank(r) >= roleRank(required)
}

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleHOD || r == RoleStaff
}

// SessionKind distinguishes provider-backed sessions from the locally
// fabricated admin session. Exactly one kind holds per session.
type SessionKind string

const (
	// SessionKindProvider marks a session established through the external
	// identity provider.
	SessionKindProvider SessionKind = "provider"
	// SessionKindSynthetic marks the locally constructed admin session that
	// bypasses the provider.
	SessionKindSynthetic SessionKind = "synthetic"
)

// Identity represents the authenticated principal issued by login or signup.
// Adapters map provider-specific payloads into this shape.
type Identity struct {
	// ID is the opaque stable identifier for the principal.
	ID string `json:"id"`
	// Username is the display name the principal logged in with.
	Username string `json:"username"`
	// Email is the provider-facing address derived from the username.
	Email string `json:"email"`
	// ProviderToken is the provider's opaque session token. Empty for
	// synthetic identities.
	ProviderToken string `json:"provider_token,omitempty"`
	// ExpiresAt is the absolute expiry reported by the provider; zero when
	// the provider manages expiry itself.
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Profile is the role/department record associated with an Identity.
// It exists only while its Identity exists.
type Profile struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Role       Role   `json:"role"`
	Department string `json:"department,omitempty"`
}

// Session is the persisted snapshot for an authenticated principal:
// identity, optional profile, and expiry in a single record so that
// clearing it is atomic relative to any reader.
type Session struct {
	ID        string      `json:"id"`
	Kind      SessionKind `json:"kind"`
	Identity  Identity    `json:"identity"`
	Profile   *Profile    `json:"profile,omitempty"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// Role returns the session's effective role: the profile role when a profile
// is present, RoleUnknown (least privilege) otherwise.
func (s Session) Role() Role {
	if s.Profile == nil {
		return RoleUnknown
	}
	return s.Profile.Role
}

// Expired reports whether the session's expiry has passed at the given instant.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// IsSynthetic reports whether this is the fabricated admin session.
func (s Session) IsSynthetic() bool { return s.Kind == SessionKindSynthetic }
