package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/edutools/mark-register/internal/domain/auth"
	apperrors "github.com/edutools/mark-register/internal/errors"
	"github.com/edutools/mark-register/internal/mocks"
)

func TestUsersService_SetRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockProfileRepository(ctrl)
	svc := NewUsersService(UsersServiceOptions{Repo: mockRepo})

	mockRepo.EXPECT().UpdateRole(ctx, "user-1", domainauth.RoleHOD).Return(&domainauth.Profile{
		ID:       "user-1",
		Username: "jdoe",
		Role:     domainauth.RoleHOD,
	}, nil)

	profile, err := svc.SetRole(ctx, "user-1", domainauth.RoleHOD)
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleHOD, profile.Role)
}

func TestUsersService_SetRole_RejectsUnknownRoles(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockProfileRepository(ctrl)
	svc := NewUsersService(UsersServiceOptions{Repo: mockRepo})

	// Neither the unknown zero role nor arbitrary strings reach the repository.
	_, err := svc.SetRole(context.Background(), "user-1", domainauth.RoleUnknown)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "role", apperrors.GetField(err))

	_, err = svc.SetRole(context.Background(), "user-1", domainauth.Role("superuser"))
	require.Error(t, err)
}

func TestUsersService_GetByUsername(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockProfileRepository(ctrl)
	svc := NewUsersService(UsersServiceOptions{Repo: mockRepo})

	mockRepo.EXPECT().GetByUsername(ctx, "jdoe").Return(&domainauth.Profile{ID: "user-1", Username: "jdoe"}, nil)

	profile, err := svc.GetByUsername(ctx, "jdoe")
	require.NoError(t, err)
	assert.Equal(t, "user-1", profile.ID)
}

func TestUsersService_List_NormalizesPaging(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockProfileRepository(ctrl)
	svc := NewUsersService(UsersServiceOptions{Repo: mockRepo})

	mockRepo.EXPECT().List(ctx, 50, 0).Return([]*domainauth.Profile{}, nil)
	_, err := svc.List(ctx, -1, -1)
	require.NoError(t, err)
}
