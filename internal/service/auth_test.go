package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/edutools/mark-register/internal/domain/auth"
	apperrors "github.com/edutools/mark-register/internal/errors"
	mockauth "github.com/edutools/mark-register/internal/mocks/auth"
)

func newTestAuthService(creds *mockauth.MockCredentialStore, sessions *mockauth.MemorySessionStore, profiles *mockauth.MemoryProfileStore, config AuthConfig) *AuthService {
	return NewAuthService(AuthServiceOptions{
		Stores: AuthStores{
			Credentials: creds,
			Sessions:    sessions,
			Profiles:    profiles,
		},
		Config: config,
	})
}

func TestLogin_ProviderPath_AttachesProfile(t *testing.T) {
	creds := mockauth.NewMockCredentialStore()
	sessions := mockauth.NewMemorySessionStore()
	profiles := mockauth.NewMemoryProfileStore(domainauth.Profile{
		ID:       "mock-user-1",
		Username: "alice",
		Role:     domainauth.RoleStaff,
	})

	svc := newTestAuthService(creds, sessions, profiles, AuthConfig{})

	session, err := svc.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)
	require.NotNil(t, session)

	assert.Equal(t, domainauth.SessionKindProvider, session.Kind)
	assert.Equal(t, "alice", session.Identity.Username)
	require.NotNil(t, session.Profile)
	assert.Equal(t, domainauth.RoleStaff, session.Role())
	assert.Equal(t, 1, creds.AuthenticateCalls())

	stored, err := sessions.Get(context.Background(), session.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Profile)
	assert.Equal(t, domainauth.RoleStaff, stored.Profile.Role)
}

func TestLogin_ProfileFetchFailure_DegradesToLeastPrivilege(t *testing.T) {
	creds := mockauth.NewMockCredentialStore()
	sessions := mockauth.NewMemorySessionStore()
	profiles := mockauth.NewMemoryProfileStore() // no profile for the identity

	svc := newTestAuthService(creds, sessions, profiles, AuthConfig{})

	session, err := svc.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Nil(t, session.Profile)
	assert.Equal(t, domainauth.RoleUnknown, session.Role())

	// The snapshot survives for the rest of the session.
	assert.Equal(t, 1, sessions.Len())
}

func TestLogin_EmptyCredentials_NeverReachStore(t *testing.T) {
	creds := mockauth.NewMockCredentialStore()
	sessions := mockauth.NewMemorySessionStore()
	svc := newTestAuthService(creds, sessions, mockauth.NewMemoryProfileStore(), AuthConfig{})

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "empty username", username: "", password: "pw"},
		{name: "empty password", username: "alice", password: ""},
		{name: "both empty", username: "", password: ""},
		{name: "whitespace username", username: "   ", password: "pw"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tt.username, tt.password)
			require.Error(t, err)
			assert.True(t, apperrors.IsInvalidCredentials(err))
		})
	}
	assert.Equal(t, 0, creds.AuthenticateCalls())
	assert.Equal(t, 0, sessions.Len())
}

func TestLogin_AdminBypass_SkipsCredentialStore(t *testing.T) {
	creds := mockauth.NewMockCredentialStore()
	sessions := mockauth.NewMemorySessionStore()
	svc := newTestAuthService(creds, sessions, mockauth.NewMemoryProfileStore(), AuthConfig{
		AdminBypassEnabled: true,
	})

	fixed := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	session, err := svc.Login(context.Background(), "admin", "admin")
	require.NoError(t, err)
	require.NotNil(t, session)

	assert.Equal(t, 0, creds.AuthenticateCalls())
	assert.True(t, session.IsSynthetic())
	assert.Equal(t, syntheticSessionID, session.ID)
	assert.Equal(t, domainauth.RoleAdmin, session.Role())
	assert.Equal(t, fixed.Add(24*time.Hour), session.ExpiresAt)
}

func TestLogin_AdminBypass_SecondLoginReplacesSnapshot(t *testing.T) {
	creds := mockauth.NewMockCredentialStore()
	sessions := mockauth.NewMemorySessionStore()
	svc := newTestAuthService(creds, sessions, mockauth.NewMemoryProfileStore(), AuthConfig{
		AdminBypassEnabled: true,
	})

	_, err := svc.Login(context.Background(), "admin", "admin")
	require.NoError(t, err)
	_, err = svc.Login(context.Background(), "admin", "admin")
	require.NoError(t, err)

	// The fixed snapshot key keeps this to a single session.
	assert.Equal(t, 1, sessions.Len())
}

func TestLogin_AdminBypassDisabled_ConsultsStore(t *testing.T) {
	creds := mockauth.NewMockCredentialStore()
	creds.AuthenticateFunc = func(_ context.Context, _, _ string) (domainauth.Identity, error) {
		return domainauth.Identity{}, apperrors.InvalidCredentials("Invalid username or password")
	}
	sessions := mockauth.NewMemorySessionStore()
	svc := newTestAuthService(creds, sessions, mockauth.NewMemoryProfileStore(), AuthConfig{})

	_, err := svc.Login(context.Background(), "admin", "admin")
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidCredentials(err))
	assert.Equal(t, 1, creds.AuthenticateCalls())
}

func TestLogin_AdminBypass_WrongPasswordFallsThrough(t *testing.T) {
	creds := mockauth.NewMockCredentialStore()
	creds.AuthenticateFunc = func(_ context.Context, _, _ string) (domainauth.Identity, error) {
		return domainauth.Identity{}, apperrors.InvalidCredentials("Invalid username or password")
	}
	sessions := mockauth.NewMemorySessionStore()
	svc := newTestAuthService(creds, sessions, mockauth.NewMemoryProfileStore(), AuthConfig{
		AdminBypassEnabled: true,
	})

	_, err := svc.Login(context.Background(), "admin", "not-the-password")
	require.Error(t, err)
	assert.Equal(t, 1, creds.AuthenticateCalls())
}

func TestSignup_ReservedUsername_RejectedBeforeStore(t *testing.T) {
	creds := mockauth.NewMockCredentialStore()
	svc := newTestAuthService(creds, mockauth.NewMemorySessionStore(), mockauth.NewMemoryProfileStore(), AuthConfig{})

	_, err := svc.Signup(context.Background(), "admin", "password123")
	require.Error(t, err)
	assert.True(t, apperrors.IsReservedUsername(err))
	assert.Equal(t, 0, creds.RegisterCalls())
}

func TestSignup_ShortPassword(t *testing.T) {
	creds := mockauth.NewMockCredentialStore()
	svc := newTestAuthService(creds, mockauth.NewMemorySessionStore(), mockauth.NewMemoryProfileStore(), AuthConfig{})

	_, err := svc.Signup(context.Background(), "bob", "pw")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "password", apperrors.GetField(err))
	assert.Equal(t, 0, creds.RegisterCalls())
}

type captureProfileWriter struct {
	created []domainauth.Profile
	err     error
}

func (w *captureProfileWriter) Create(_ context.Context, profile domainauth.Profile) (*domainauth.Profile, error) {
	if w.err != nil {
		return nil, w.err
	}
	w.created = append(w.created, profile)
	return &profile, nil
}

func TestSignup_CreatesStaffProfile(t *testing.T) {
	creds := mockauth.NewMockCredentialStore()
	writer := &captureProfileWriter{}

	svc := NewAuthService(AuthServiceOptions{
		Stores: AuthStores{
			Credentials:   creds,
			Sessions:      mockauth.NewMemorySessionStore(),
			Profiles:      mockauth.NewMemoryProfileStore(),
			ProfileWriter: writer,
		},
	})

	identity, err := svc.Signup(context.Background(), "bob", "password123")
	require.NoError(t, err)
	require.NotNil(t, identity)
	assert.Equal(t, "bob", identity.Username)

	require.Len(t, writer.created, 1)
	assert.Equal(t, domainauth.RoleStaff, writer.created[0].Role)
	assert.Equal(t, identity.ID, writer.created[0].ID)
}

func TestSignup_RegistrationIncompletePropagates(t *testing.T) {
	creds := mockauth.NewMockCredentialStore()
	creds.RegisterFunc = func(_ context.Context, _, _ string) (domainauth.Identity, error) {
		return domainauth.Identity{}, apperrors.RegistrationIncomplete()
	}
	svc := newTestAuthService(creds, mockauth.NewMemorySessionStore(), mockauth.NewMemoryProfileStore(), AuthConfig{})

	_, err := svc.Signup(context.Background(), "bob", "password123")
	require.Error(t, err)
	assert.True(t, apperrors.IsRegistrationIncomplete(err))
}

func TestGetSession_ExpiredSnapshotIsCleared(t *testing.T) {
	sessions := mockauth.NewMemorySessionStore()
	svc := newTestAuthService(mockauth.NewMockCredentialStore(), sessions, mockauth.NewMemoryProfileStore(), AuthConfig{})

	require.NoError(t, sessions.Save(context.Background(), domainauth.Session{
		ID:        "stale",
		Kind:      domainauth.SessionKindProvider,
		Identity:  domainauth.Identity{ID: "u1"},
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	_, err := svc.GetSession(context.Background(), "stale")
	require.Error(t, err)
	assert.True(t, apperrors.IsExpiredSession(err))
	assert.Equal(t, 0, sessions.Len())
}

func TestGetSession_LiveSnapshot(t *testing.T) {
	sessions := mockauth.NewMemorySessionStore()
	svc := newTestAuthService(mockauth.NewMockCredentialStore(), sessions, mockauth.NewMemoryProfileStore(), AuthConfig{})

	require.NoError(t, sessions.Save(context.Background(), domainauth.Session{
		ID:        "live",
		Kind:      domainauth.SessionKindProvider,
		Identity:  domainauth.Identity{ID: "u1"},
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	session, err := svc.GetSession(context.Background(), "live")
	require.NoError(t, err)
	assert.Equal(t, "live", session.ID)
}

func TestLogout_ProviderSession_SignsOutAndClears(t *testing.T) {
	creds := mockauth.NewMockCredentialStore()
	sessions := mockauth.NewMemorySessionStore()
	profiles := mockauth.NewMemoryProfileStore(domainauth.Profile{ID: "mock-user-1", Username: "alice", Role: domainauth.RoleStaff})
	svc := newTestAuthService(creds, sessions, profiles, AuthConfig{})

	session, err := svc.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), session.ID))
	assert.Equal(t, 1, creds.SignOutCalls())
	assert.Equal(t, 0, sessions.Len())
}

func TestLogout_ProviderSignOutFailure_StillClearsLocally(t *testing.T) {
	creds := mockauth.NewMockCredentialStore()
	creds.SignOutFunc = func(_ context.Context, _ string) error {
		return apperrors.ProviderUnavailable(assert.AnError)
	}
	sessions := mockauth.NewMemorySessionStore()
	profiles := mockauth.NewMemoryProfileStore(domainauth.Profile{ID: "mock-user-1", Username: "alice", Role: domainauth.RoleStaff})
	svc := newTestAuthService(creds, sessions, profiles, AuthConfig{})

	session, err := svc.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), session.ID))
	assert.Equal(t, 0, sessions.Len())
}

func TestLogout_SyntheticSession_NoProviderCall(t *testing.T) {
	creds := mockauth.NewMockCredentialStore()
	sessions := mockauth.NewMemorySessionStore()
	svc := newTestAuthService(creds, sessions, mockauth.NewMemoryProfileStore(), AuthConfig{AdminBypassEnabled: true})

	session, err := svc.Login(context.Background(), "admin", "admin")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), session.ID))
	assert.Equal(t, 0, creds.SignOutCalls())
	assert.Equal(t, 0, sessions.Len())
}

func TestRefreshProfile_DiscardsResultAfterSignOut(t *testing.T) {
	sessions := mockauth.NewMemorySessionStore()
	profiles := mockauth.NewMemoryProfileStore()
	svc := newTestAuthService(mockauth.NewMockCredentialStore(), sessions, profiles, AuthConfig{})

	require.NoError(t, sessions.Save(context.Background(), domainauth.Session{
		ID:        "s1",
		Kind:      domainauth.SessionKindProvider,
		Identity:  domainauth.Identity{ID: "u1"},
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	// The session is cleared while the profile fetch is in flight.
	profiles.GetFunc = func(_ context.Context, identityID string) (domainauth.Profile, error) {
		require.NoError(t, sessions.Delete(context.Background(), "s1"))
		return domainauth.Profile{ID: identityID, Role: domainauth.RoleAdmin}, nil
	}

	refreshed, err := svc.RefreshProfile(context.Background(), "s1")
	require.NoError(t, err)
	assert.Nil(t, refreshed)
	assert.Equal(t, 0, sessions.Len())
}

func TestRefreshProfile_DiscardsResultAfterReLogin(t *testing.T) {
	sessions := mockauth.NewMemorySessionStore()
	profiles := mockauth.NewMemoryProfileStore()
	svc := newTestAuthService(mockauth.NewMockCredentialStore(), sessions, profiles, AuthConfig{})

	require.NoError(t, sessions.Save(context.Background(), domainauth.Session{
		ID:        "s1",
		Kind:      domainauth.SessionKindProvider,
		Identity:  domainauth.Identity{ID: "u1"},
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	// A different identity takes over the session ID mid-fetch.
	profiles.GetFunc = func(_ context.Context, identityID string) (domainauth.Profile, error) {
		require.NoError(t, sessions.Save(context.Background(), domainauth.Session{
			ID:        "s1",
			Kind:      domainauth.SessionKindProvider,
			Identity:  domainauth.Identity{ID: "u2"},
			ExpiresAt: time.Now().Add(time.Hour),
		}))
		return domainauth.Profile{ID: identityID, Role: domainauth.RoleAdmin}, nil
	}

	refreshed, err := svc.RefreshProfile(context.Background(), "s1")
	require.NoError(t, err)
	assert.Nil(t, refreshed)

	// The replacement session must not carry the stale profile.
	current, err := sessions.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Nil(t, current.Profile)
}

func TestRefreshProfile_SyntheticSessionUntouched(t *testing.T) {
	sessions := mockauth.NewMemorySessionStore()
	profiles := mockauth.NewMemoryProfileStore()
	calls := 0
	profiles.GetFunc = func(_ context.Context, _ string) (domainauth.Profile, error) {
		calls++
		return domainauth.Profile{}, apperrors.NotFound("no profile")
	}
	svc := newTestAuthService(mockauth.NewMockCredentialStore(), sessions, profiles, AuthConfig{AdminBypassEnabled: true})

	session, err := svc.Login(context.Background(), "admin", "admin")
	require.NoError(t, err)

	refreshed, err := svc.RefreshProfile(context.Background(), session.ID)
	require.NoError(t, err)
	require.NotNil(t, refreshed)
	assert.Equal(t, domainauth.RoleAdmin, refreshed.Role())
	assert.Equal(t, 0, calls)
}

func TestEvents_LoginAndLogoutPublish(t *testing.T) {
	creds := mockauth.NewMockCredentialStore()
	sessions := mockauth.NewMemorySessionStore()
	profiles := mockauth.NewMemoryProfileStore(domainauth.Profile{ID: "mock-user-1", Username: "alice", Role: domainauth.RoleStaff})
	svc := newTestAuthService(creds, sessions, profiles, AuthConfig{})

	events, cancel := svc.Events().Subscribe(8)
	defer cancel()

	session, err := svc.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)
	require.NoError(t, svc.Logout(context.Background(), session.ID))

	var types []SessionEventType
	for len(events) > 0 {
		types = append(types, (<-events).Type)
	}
	assert.Equal(t, []SessionEventType{SessionSignedIn, SessionProfileUpdated, SessionSignedOut}, types)
}
