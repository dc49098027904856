package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/edutools/mark-register/internal/domain/auth"
)

// CredentialStore resolves a (username, password) pair to an identity.
// Two policies implement it: the external identity provider and a static
// in-memory table for environments without a provider.
type CredentialStore interface {
	// Authenticate verifies the pair and returns the identity on success.
	// Failures carry the backing store's message verbatim.
	Authenticate(ctx context.Context, username, password string) (domainauth.Identity, error)

	// Register creates a new principal with the username embedded as
	// metadata on the created record. A call that raises no transport error
	// but produces no user record is still a failure.
	Register(ctx context.Context, username, password string) (domainauth.Identity, error)

	// SignOut invalidates the backing store's session for the given
	// provider token. A no-op for stores without server-side sessions.
	SignOut(ctx context.Context, providerToken string) error
}

// SessionStore persists and retrieves session snapshots. At most one snapshot
// per session ID exists; reads of an expired snapshot discard it and report
// not-found.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// ProfileStore looks up the role/department profile for an identity id.
type ProfileStore interface {
	GetByIdentity(ctx context.Context, identityID string) (domainauth.Profile, error)
}
