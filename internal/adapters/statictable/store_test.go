package statictable

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/edutools/mark-register/internal/domain/auth"
	apperrors "github.com/edutools/mark-register/internal/errors"
)

func TestAuthenticate_ExactMatch(t *testing.T) {
	fixed := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	store := New(DefaultEntries(), WithNow(func() time.Time { return fixed }))

	identity, err := store.Authenticate(context.Background(), "hod", "hod")
	require.NoError(t, err)
	assert.Equal(t, "static:hod", identity.ID)
	assert.Equal(t, "hod", identity.Username)
	assert.Equal(t, fixed.Add(defaultSessionTTL), identity.ExpiresAt)
}

func TestAuthenticate_Rejections(t *testing.T) {
	store := New(DefaultEntries())

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "unknown username", username: "nobody", password: "nobody"},
		{name: "wrong password", username: "admin", password: "wrong"},
		{name: "case sensitive username", username: "Admin", password: "admin"},
		{name: "case sensitive password", username: "admin", password: "Admin"},
		{name: "partial match", username: "adm", password: "adm"},
		{name: "empty pair", username: "", password: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Authenticate(context.Background(), tt.username, tt.password)
			require.Error(t, err)
			assert.True(t, apperrors.IsInvalidCredentials(err))
			assert.Equal(t, "Invalid username or password", err.Error())
		})
	}
}

func TestAuthenticate_SameRejectionForUnknownAndWrongPassword(t *testing.T) {
	// The caller must not be able to distinguish a bad username from a bad
	// password.
	store := New(DefaultEntries())

	_, errUnknown := store.Authenticate(context.Background(), "ghost", "x")
	_, errWrongPw := store.Authenticate(context.Background(), "admin", "x")

	require.Error(t, errUnknown)
	require.Error(t, errWrongPw)
	assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
	assert.Equal(t, apperrors.GetCode(errUnknown), apperrors.GetCode(errWrongPw))
}

func TestGetByIdentity(t *testing.T) {
	store := New(DefaultEntries())

	profile, err := store.GetByIdentity(context.Background(), "static:user")
	require.NoError(t, err)
	assert.Equal(t, "user", profile.Username)
	assert.Equal(t, domainauth.RoleStaff, profile.Role)

	_, err = store.GetByIdentity(context.Background(), "static:ghost")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestRegister_Unsupported(t *testing.T) {
	store := New(DefaultEntries())

	_, err := store.Register(context.Background(), "newuser", "secret")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestDefaultEntries_Roles(t *testing.T) {
	byName := map[string]domainauth.Role{}
	for _, e := range DefaultEntries() {
		byName[e.Username] = e.Role
	}
	assert.Equal(t, domainauth.RoleAdmin, byName["admin"])
	assert.Equal(t, domainauth.RoleHOD, byName["hod"])
	assert.Equal(t, domainauth.RoleStaff, byName["user"])
}
