// Package mockauth provides hand-written fakes for the auth ports. The
// repository interfaces use generated gomock mocks; these stay hand-written
// because the auth tests want stateful stores and call counters rather than
// expectation scripts.
package mockauth

import (
	"context"
	"sync"

	domainauth "github.com/edutools/mark-register/internal/domain/auth"
	apperrors "github.com/edutools/mark-register/internal/errors"
)

// MockCredentialStore is a fake credential store with overridable behavior
// and call counters.
type MockCredentialStore struct {
	mu                sync.Mutex
	authenticateCalls int
	registerCalls     int
	signOutCalls      int

	// AuthenticateFunc overrides the default behavior when set.
	AuthenticateFunc func(ctx context.Context, username, password string) (domainauth.Identity, error)
	// RegisterFunc overrides the default behavior when set.
	RegisterFunc func(ctx context.Context, username, password string) (domainauth.Identity, error)
	// SignOutFunc overrides the default behavior when set.
	SignOutFunc func(ctx context.Context, providerToken string) error
}

// NewMockCredentialStore returns a store whose defaults accept any pair and
// issue the identity "mock-user-1".
func NewMockCredentialStore() *MockCredentialStore {
	return &MockCredentialStore{}
}

func (m *MockCredentialStore) Authenticate(ctx context.Context, username, password string) (domainauth.Identity, error) {
	m.mu.Lock()
	m.authenticateCalls++
	m.mu.Unlock()

	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, username, password)
	}
	return domainauth.Identity{
		ID:            "mock-user-1",
		Username:      username,
		Email:         username + "@example.edu",
		ProviderToken: "mock-provider-token",
	}, nil
}

func (m *MockCredentialStore) Register(ctx context.Context, username, password string) (domainauth.Identity, error) {
	m.mu.Lock()
	m.registerCalls++
	m.mu.Unlock()

	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, username, password)
	}
	return domainauth.Identity{
		ID:       "mock-user-1",
		Username: username,
		Email:    username + "@example.edu",
	}, nil
}

func (m *MockCredentialStore) SignOut(ctx context.Context, providerToken string) error {
	m.mu.Lock()
	m.signOutCalls++
	m.mu.Unlock()

	if m.SignOutFunc != nil {
		return m.SignOutFunc(ctx, providerToken)
	}
	return nil
}

// AuthenticateCalls reports how many times Authenticate was invoked.
func (m *MockCredentialStore) AuthenticateCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.authenticateCalls
}

// RegisterCalls reports how many times Register was invoked.
func (m *MockCredentialStore) RegisterCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.registerCalls
}

// SignOutCalls reports how many times SignOut was invoked.
func (m *MockCredentialStore) SignOutCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.signOutCalls
}

// MemorySessionStore is an in-memory session store keyed by session ID.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session
}

// NewMemorySessionStore returns an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]domainauth.Session)}
}

func (s *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return nil
}

func (s *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return domainauth.Session{}, apperrors.NotFound("session not found")
	}
	return sess, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Len reports the number of stored sessions.
func (s *MemorySessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// MemoryProfileStore is an in-memory profile store keyed by identity ID.
type MemoryProfileStore struct {
	mu         sync.Mutex
	byIdentity map[string]domainauth.Profile

	// GetFunc overrides the default lookup when set.
	GetFunc func(ctx context.Context, identityID string) (domainauth.Profile, error)
}

// NewMemoryProfileStore returns a store seeded with the given profiles.
func NewMemoryProfileStore(profiles ...domainauth.Profile) *MemoryProfileStore {
	byIdentity := make(map[string]domainauth.Profile, len(profiles))
	for _, p := range profiles {
		byIdentity[p.ID] = p
	}
	return &MemoryProfileStore{byIdentity: byIdentity}
}

func (s *MemoryProfileStore) GetByIdentity(ctx context.Context, identityID string) (domainauth.Profile, error) {
	if s.GetFunc != nil {
		return s.GetFunc(ctx, identityID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.byIdentity[identityID]
	if !ok {
		return domainauth.Profile{}, apperrors.NotFound("profile not found")
	}
	return profile, nil
}
