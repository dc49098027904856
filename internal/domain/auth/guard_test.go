package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecide_Unauthenticated_RedirectsToLogin(t *testing.T) {
	paths := []string{"/dashboard", "/mark-entry", "/create-pattern", "/admin", "/admin/users"}
	for _, path := range paths {
		d := Decide(DecideInput{Authenticated: false, Role: RoleUnknown, Path: path})
		assert.Equal(t, RedirectToLogin, d.Kind, "path %s", path)
		assert.Equal(t, path, d.ReturnTo, "requested path must not be lost")
	}
}

func TestDecide_Unauthenticated_NeverPermits(t *testing.T) {
	for _, role := range []Role{RoleUnknown, RoleStaff, RoleHOD, RoleAdmin} {
		d := Decide(DecideInput{Authenticated: false, Role: role, Path: "/dashboard"})
		assert.NotEqual(t, Permit, d.Kind, "role %q", role)
	}
}

func TestDecide_AdminPath_RoleDowngrade(t *testing.T) {
	tests := []struct {
		name string
		role Role
		want DecisionKind
	}{
		{name: "admin permitted", role: RoleAdmin, want: Permit},
		{name: "hod downgraded", role: RoleHOD, want: RedirectToDashboard},
		{name: "staff downgraded", role: RoleStaff, want: RedirectToDashboard},
		{name: "unknown role downgraded", role: RoleUnknown, want: RedirectToDashboard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(DecideInput{Authenticated: true, Role: tt.role, Path: AdminPath})
			assert.Equal(t, tt.want, d.Kind)
		})
	}
}

func TestDecide_AdminSubPath_GatedLikeAdmin(t *testing.T) {
	d := Decide(DecideInput{Authenticated: true, Role: RoleStaff, Path: "/admin/departments"})
	assert.Equal(t, RedirectToDashboard, d.Kind)

	// A path that merely shares the prefix string is not an admin path.
	d = Decide(DecideInput{Authenticated: true, Role: RoleStaff, Path: "/administration"})
	assert.Equal(t, Permit, d.Kind)
}

func TestDecide_AuthenticatedNonAdminPaths_Permit(t *testing.T) {
	for _, role := range []Role{RoleStaff, RoleHOD, RoleAdmin} {
		d := Decide(DecideInput{Authenticated: true, Role: role, Path: "/mark-entry"})
		assert.Equal(t, Permit, d.Kind, "role %q", role)
	}
}

func TestDecide_Idempotent(t *testing.T) {
	inputs := []DecideInput{
		{Authenticated: false, Role: RoleUnknown, Path: "/dashboard"},
		{Authenticated: true, Role: RoleStaff, Path: "/admin"},
		{Authenticated: true, Role: RoleAdmin, Path: "/admin"},
		{Authenticated: true, Role: RoleHOD, Path: "/create-pattern"},
	}
	for _, in := range inputs {
		first := Decide(in)
		second := Decide(in)
		assert.Equal(t, first, second, "input %+v", in)
	}
}

func TestRole_AtLeast(t *testing.T) {
	assert.True(t, RoleAdmin.AtLeast(RoleHOD))
	assert.True(t, RoleHOD.AtLeast(RoleStaff))
	assert.True(t, RoleStaff.AtLeast(RoleStaff))
	assert.False(t, RoleStaff.AtLeast(RoleHOD))
	assert.False(t, RoleUnknown.AtLeast(RoleStaff))
	// An unrecognized role never satisfies a requirement.
	assert.False(t, Role("superuser").AtLeast(RoleStaff))
}
