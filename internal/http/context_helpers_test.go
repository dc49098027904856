package httpx

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/edutools/mark-register/internal/domain/auth"
)

func TestGetUserSessionFromContext(t *testing.T) {
	// No session
	if s, ok := GetUserSessionFromContext(context.Background()); assert.False(t, ok) {
		assert.Nil(t, s)
	}

	// With session
	sess := &domainauth.Session{
		ID:   "abc",
		Kind: domainauth.SessionKindProvider,
		Identity: domainauth.Identity{
			ID:       "idp:abc",
			Username: "jdoe",
		},
		Profile: &domainauth.Profile{
			ID:       "idp:abc",
			Username: "jdoe",
			Role:     domainauth.RoleStaff,
		},
		ExpiresAt: time.Now().Add(time.Hour),
	}
	ctx := SetSessionInContext(context.Background(), sess)
	s, ok := GetUserSessionFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, sess, s)
	assert.Equal(t, sess, GetSessionFromContext(ctx))
}

func TestSetSessionInContext_NilSession(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, ctx, SetSessionInContext(ctx, nil))
	assert.Nil(t, GetSessionFromContext(ctx))
}

func TestRoleFromContext(t *testing.T) {
	// No session => least privilege.
	assert.Equal(t, domainauth.RoleUnknown, RoleFromContext(context.Background()))

	// A session without a profile stays at least privilege.
	bare := &domainauth.Session{ID: "p", Kind: domainauth.SessionKindProvider}
	assert.Equal(t, domainauth.RoleUnknown, RoleFromContext(SetSessionInContext(context.Background(), bare)))

	// The profile role flows through.
	admin := &domainauth.Session{
		ID:      "a",
		Kind:    domainauth.SessionKindSynthetic,
		Profile: &domainauth.Profile{Role: domainauth.RoleAdmin},
	}
	assert.Equal(t, domainauth.RoleAdmin, RoleFromContext(SetSessionInContext(context.Background(), admin)))
}
