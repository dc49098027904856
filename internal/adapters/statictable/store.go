package statictable

// Package statictable provides a fixed in-memory credential table for
// environments without an identity provider. Matching is exact: no partial
// matches, no case folding.

import (
	"context"
	"time"

	domainauth "github.com/edutools/mark-register/internal/domain/auth"
	apperrors "github.com/edutools/mark-register/internal/errors"
)

const defaultSessionTTL = 8 * time.Hour

// invalidCredentialsMessage mirrors what the login screen shows users.
const invalidCredentialsMessage = "Invalid username or password"

// Entry is one (username, password, role) triple in the table.
type Entry struct {
	Username string
	Password string
	Role     domainauth.Role
}

// Store implements ports.CredentialStore and ports.ProfileStore over a fixed
// set of entries.
type Store struct {
	entries    []Entry
	sessionTTL time.Duration
	now        func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithSessionTTL overrides the default 8h identity expiry.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Store) { s.sessionTTL = ttl }
}

// WithNow overrides the clock, for tests.
func WithNow(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New constructs a Store from the given entries.
func New(entries []Entry, opts ...Option) *Store {
	s := &Store{
		entries:    append([]Entry(nil), entries...),
		sessionTTL: defaultSessionTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultEntries returns the canonical three-role table used when no entries
// are configured: one account per role, password equal to the username.
func DefaultEntries() []Entry {
	return []Entry{
		{Username: "admin", Password: "admin", Role: domainauth.RoleAdmin},
		{Username: "hod", Password: "hod", Role: domainauth.RoleHOD},
		{Username: "user", Password: "user", Role: domainauth.RoleStaff},
	}
}

// Authenticate resolves the pair against the table.
func (s *Store) Authenticate(_ context.Context, username, password string) (domainauth.Identity, error) {
	for _, e := range s.entries {
		if e.Username == username && e.Password == password {
			return domainauth.Identity{
				ID:        identityID(e.Username),
				Username:  e.Username,
				ExpiresAt: s.now().Add(s.sessionTTL),
			}, nil
		}
	}
	return domainauth.Identity{}, apperrors.InvalidCredentials(invalidCredentialsMessage)
}

// Register is not supported: the table is fixed at construction.
func (s *Store) Register(context.Context, string, string) (domainauth.Identity, error) {
	return domainauth.Identity{}, apperrors.Validation("sign-up requires the identity provider")
}

// SignOut is a no-op; the table keeps no server-side session.
func (s *Store) SignOut(context.Context, string) error { return nil }

// GetByIdentity returns the profile for a table-issued identity id, letting
// the Store double as the profile source in provider-less environments.
func (s *Store) GetByIdentity(_ context.Context, id string) (domainauth.Profile, error) {
	for _, e := range s.entries {
		if identityID(e.Username) == id {
			return domainauth.Profile{
				ID:       id,
				Username: e.Username,
				Role:     e.Role,
			}, nil
		}
	}
	return domainauth.Profile{}, apperrors.NotFoundf("no profile for identity %s", id)
}

func identityID(username string) string { return "static:" + username }
