package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/edutools/mark-register/internal/domain/auth"
	apperrors "github.com/edutools/mark-register/internal/errors"
	"github.com/edutools/mark-register/internal/ports"
)

const (
	// syntheticSessionID is the fixed snapshot key for the bypass session, so
	// at most one bypass snapshot ever exists.
	syntheticSessionID  = "admin-session"
	syntheticIdentityID = "synthetic:admin"
	reservedUsername    = "admin"

	defaultSyntheticTTL = 24 * time.Hour
	minPasswordLength   = 6
)

// ProfileWriter creates profile rows for newly registered users. Optional:
// without it, signup leaves profile creation to the backing store.
type ProfileWriter interface {
	Create(ctx context.Context, profile domainauth.Profile) (*domainauth.Profile, error)
}

// AuthStores groups the persistence ports AuthService coordinates.
type AuthStores struct {
	Credentials ports.CredentialStore
	Sessions    ports.SessionStore
	Profiles    ports.ProfileStore
	// ProfileWriter is optional.
	ProfileWriter ProfileWriter
}

// AuthConfig carries authentication policy knobs.
type AuthConfig struct {
	// AdminBypassEnabled short-circuits the credential store for the reserved
	// admin pair. Development convenience; off by default.
	AdminBypassEnabled  bool
	AdminBypassPassword string
	SyntheticSessionTTL time.Duration
}

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Stores AuthStores
	Config AuthConfig
	Logger *slog.Logger
}

// AuthService orchestrates login, signup, logout, and session resolution by
// coordinating the credential store, session store, and profile store.
type AuthService struct {
	creds    ports.CredentialStore
	sessions ports.SessionStore
	profiles ports.ProfileStore
	writer   ProfileWriter
	config   AuthConfig
	logger   *slog.Logger
	events   *SessionEvents
	now      func() time.Time
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.Stores.Credentials == nil {
		panic("CredentialStore is required")
	}
	if opts.Stores.Sessions == nil {
		panic("SessionStore is required")
	}
	if opts.Stores.Profiles == nil {
		panic("ProfileStore is required")
	}

	config := opts.Config
	if config.AdminBypassPassword == "" {
		config.AdminBypassPassword = reservedUsername
	}
	if config.SyntheticSessionTTL <= 0 {
		config.SyntheticSessionTTL = defaultSyntheticTTL
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &AuthService{
		creds:    opts.Stores.Credentials,
		sessions: opts.Stores.Sessions,
		profiles: opts.Stores.Profiles,
		writer:   opts.Stores.ProfileWriter,
		config:   config,
		logger:   logger,
		events:   NewSessionEvents(),
		now:      time.Now,
	}
}

// Events exposes the session lifecycle stream for subscribers.
func (s *AuthService) Events() *SessionEvents { return s.events }

// Login authenticates the pair and persists a session snapshot. The profile
// is fetched after the snapshot exists; a failed fetch degrades the session
// to least privilege instead of failing the login.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domainauth.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperrors.InvalidCredentials("Invalid username or password")
	}

	if s.config.AdminBypassEnabled && username == reservedUsername && password == s.config.AdminBypassPassword {
		return s.loginSynthetic(ctx)
	}

	identity, err := s.creds.Authenticate(ctx, username, password)
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	session := domainauth.Session{
		ID:        generateSessionID(),
		Kind:      domainauth.SessionKindProvider,
		Identity:  identity,
		ExpiresAt: identity.ExpiresAt,
	}
	if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
		return nil, fmt.Errorf("save session: %w", saveErr)
	}
	s.events.Publish(SessionEvent{Type: SessionSignedIn, SessionID: session.ID, Session: &session})

	refreshed, refreshErr := s.RefreshProfile(ctx, session.ID)
	if refreshErr != nil {
		s.logger.Warn("profile fetch failed, session continues with least privilege",
			"session_id", session.ID, "error", refreshErr)
		return &session, nil
	}
	if refreshed != nil {
		return refreshed, nil
	}
	return &session, nil
}

// loginSynthetic builds the bypass session locally, without any provider call.
func (s *AuthService) loginSynthetic(ctx context.Context) (*domainauth.Session, error) {
	now := s.now()
	session := domainauth.Session{
		ID:   syntheticSessionID,
		Kind: domainauth.SessionKindSynthetic,
		Identity: domainauth.Identity{
			ID:        syntheticIdentityID,
			Username:  reservedUsername,
			ExpiresAt: now.Add(s.config.SyntheticSessionTTL),
		},
		Profile: &domainauth.Profile{
			ID:       syntheticIdentityID,
			Username: reservedUsername,
			Role:     domainauth.RoleAdmin,
		},
		ExpiresAt: now.Add(s.config.SyntheticSessionTTL),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	s.events.Publish(SessionEvent{Type: SessionSignedIn, SessionID: session.ID, Session: &session})
	return &session, nil
}

// Signup registers a new account. The reserved admin name is rejected before
// the credential store is consulted.
func (s *AuthService) Signup(ctx context.Context, username, password string) (*domainauth.Identity, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperrors.ValidationField("username", "Username is required")
	}
	if username == reservedUsername {
		return nil, apperrors.ReservedUsername(username)
	}
	if len(password) < minPasswordLength {
		return nil, apperrors.ValidationField("password",
			fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	}

	identity, err := s.creds.Register(ctx, username, password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	if s.writer != nil {
		profile := domainauth.Profile{
			ID:       identity.ID,
			Username: username,
			Role:     domainauth.RoleStaff,
		}
		if _, writeErr := s.writer.Create(ctx, profile); writeErr != nil {
			// The account exists; the profile row can be backfilled later.
			s.logger.Warn("profile creation failed after signup",
				"identity_id", identity.ID, "error", writeErr)
		}
	}

	return &identity, nil
}

// GetSession resolves a session snapshot by ID. Reading an expired snapshot
// clears it and reports the expiry.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if session.Expired(s.now()) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(apperrors.ExpiredSession(), fmt.Errorf("delete session: %w", deleteErr))
		}
		s.events.Publish(SessionEvent{Type: SessionSignedOut, SessionID: sessionID})
		return nil, apperrors.ExpiredSession()
	}

	return &session, nil
}

// Logout clears the session snapshot. The local clear always happens; a
// failed provider sign-out is logged and swallowed so the user is never
// stuck signed in.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil // Nothing to logout
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err == nil && !session.IsSynthetic() && session.Identity.ProviderToken != "" {
		if signOutErr := s.creds.SignOut(ctx, session.Identity.ProviderToken); signOutErr != nil {
			s.logger.Warn("provider sign-out failed, clearing local session anyway",
				"session_id", sessionID, "error", signOutErr)
		}
	}

	if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
		return fmt.Errorf("delete session: %w", deleteErr)
	}
	s.events.Publish(SessionEvent{Type: SessionSignedOut, SessionID: sessionID})
	return nil
}

// RefreshProfile fetches the profile for the session's identity and attaches
// it to the snapshot. The session is re-read after the fetch: if it was
// cleared or now belongs to a different identity, the stale result is
// discarded and a nil session is returned.
func (s *AuthService) RefreshProfile(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session.IsSynthetic() {
		// Synthetic sessions carry their profile from birth.
		return &session, nil
	}

	profile, err := s.profiles.GetByIdentity(ctx, session.Identity.ID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	current, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		// Session was cleared while the fetch was in flight.
		return nil, nil
	}
	if current.Identity.ID != session.Identity.ID {
		// Session was replaced by a different login.
		return nil, nil
	}

	current.Profile = &profile
	if saveErr := s.sessions.Save(ctx, current); saveErr != nil {
		return nil, fmt.Errorf("save session: %w", saveErr)
	}
	s.events.Publish(SessionEvent{Type: SessionProfileUpdated, SessionID: current.ID, Session: &current})
	return &current, nil
}

// generateSessionID creates a cryptographically secure random session ID.
func generateSessionID() string {
	// UUID is URL-safe and has good entropy
	return uuid.New().String()
}
