package service

import (
	"context"
	"fmt"

	"github.com/edutools/mark-register/internal/core"
	"github.com/edutools/mark-register/internal/domain/model"
)

// AssignmentServiceOptions groups dependencies for AssignmentService.
type AssignmentServiceOptions struct {
	Repo core.StaffAssignmentRepository
}

// AssignmentService manages which subjects a staff member enters marks for.
type AssignmentService struct {
	repo core.StaffAssignmentRepository
}

// NewAssignmentService constructs a new AssignmentService.
func NewAssignmentService(opts AssignmentServiceOptions) *AssignmentService {
	if opts.Repo == nil {
		panic("StaffAssignmentRepository is required")
	}
	return &AssignmentService{repo: opts.Repo}
}

// Assign creates or replaces a staff member's subject set for a department.
func (s *AssignmentService) Assign(ctx context.Context, req *model.CreateStaffAssignmentRequest) (*model.StaffAssignment, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validate request: %w", err)
	}
	assignment, err := s.repo.Upsert(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("upsert assignment: %w", err)
	}
	return assignment, nil
}

// ForProfile returns a staff member's assignments across departments.
func (s *AssignmentService) ForProfile(ctx context.Context, profileID string) ([]*model.StaffAssignment, error) {
	return s.repo.GetByProfile(ctx, profileID)
}

// List returns a page of assignments.
func (s *AssignmentService) List(ctx context.Context, limit, offset int) ([]*model.StaffAssignment, error) {
	limit, offset = normalizePage(limit, offset)
	return s.repo.List(ctx, limit, offset)
}

// Delete removes an assignment.
func (s *AssignmentService) Delete(ctx context.Context, id string) (bool, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete assignment: %w", err)
	}
	return ok, nil
}
