package auth

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_Role_NilProfileIsLeastPrivilege(t *testing.T) {
	s := Session{Kind: SessionKindProvider, Identity: Identity{ID: "u1"}}
	assert.Equal(t, RoleUnknown, s.Role())
	assert.False(t, s.Role().AtLeast(RoleStaff))
}

func TestSession_Role_FromProfile(t *testing.T) {
	s := Session{Profile: &Profile{ID: "u1", Username: "jo", Role: RoleHOD}}
	assert.Equal(t, RoleHOD, s.Role())
}

func TestSession_Expired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	s := Session{ExpiresAt: now.Add(time.Minute)}
	assert.False(t, s.Expired(now))
	assert.True(t, s.Expired(now.Add(time.Minute)))
	assert.True(t, s.Expired(now.Add(time.Hour)))

	// Zero expiry means provider-managed; never considered expired locally.
	assert.False(t, Session{}.Expired(now))
}

func TestSession_SnapshotRoundTrip(t *testing.T) {
	expires := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	s := Session{
		ID:   "sess-1",
		Kind: SessionKindSynthetic,
		Identity: Identity{
			ID:       "admin-user-id",
			Username: "admin",
			Email:    "admin@mark-register.internal",
		},
		Profile:   &Profile{ID: "admin-user-id", Username: "admin", Role: RoleAdmin},
		ExpiresAt: expires,
	}

	raw, err := json.Marshal(s)
	require.NoError(t, err)

	var got Session
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, s, got)
	assert.True(t, got.IsSynthetic())
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleHOD.Valid())
	assert.True(t, RoleStaff.Valid())
	assert.False(t, RoleUnknown.Valid())
	assert.False(t, Role("root").Valid())
}
