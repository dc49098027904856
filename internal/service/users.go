package service

import (
	"context"
	"fmt"

	"github.com/edutools/mark-register/internal/core"
	domainauth "github.com/edutools/mark-register/internal/domain/auth"
	apperrors "github.com/edutools/mark-register/internal/errors"
)

// UsersServiceOptions groups dependencies for UsersService.
type UsersServiceOptions struct {
	Repo core.ProfileRepository
}

// UsersService backs the admin users panel: listing profiles and changing
// their roles.
type UsersService struct {
	repo core.ProfileRepository
}

// NewUsersService constructs a new UsersService.
func NewUsersService(opts UsersServiceOptions) *UsersService {
	if opts.Repo == nil {
		panic("ProfileRepository is required")
	}
	return &UsersService{repo: opts.Repo}
}

// List returns a page of profiles.
func (s *UsersService) List(ctx context.Context, limit, offset int) ([]*domainauth.Profile, error) {
	limit, offset = normalizePage(limit, offset)
	return s.repo.List(ctx, limit, offset)
}

// GetByUsername retrieves a profile by username.
func (s *UsersService) GetByUsername(ctx context.Context, username string) (*domainauth.Profile, error) {
	return s.repo.GetByUsername(ctx, username)
}

// SetRole changes a profile's role. Only named roles are accepted; a profile
// cannot be demoted to the unknown role.
func (s *UsersService) SetRole(ctx context.Context, identityID string, role domainauth.Role) (*domainauth.Profile, error) {
	if !role.Valid() {
		return nil, apperrors.ValidationField("role", fmt.Sprintf("unknown role %q", role))
	}
	profile, err := s.repo.UpdateRole(ctx, identityID, role)
	if err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}
	return profile, nil
}

// Delete removes a profile.
func (s *UsersService) Delete(ctx context.Context, identityID string) (bool, error) {
	ok, err := s.repo.Delete(ctx, identityID)
	if err != nil {
		return false, fmt.Errorf("delete profile: %w", err)
	}
	return ok, nil
}
