package service

import (
	"context"
	"fmt"

	"github.com/edutools/mark-register/internal/core"
	"github.com/edutools/mark-register/internal/domain/model"
)

// DepartmentServiceOptions groups dependencies for DepartmentService.
type DepartmentServiceOptions struct {
	Repo core.DepartmentRepository
}

// DepartmentService provides business logic for department operations.
type DepartmentService struct {
	repo core.DepartmentRepository
}

// NewDepartmentService constructs a new DepartmentService.
func NewDepartmentService(opts DepartmentServiceOptions) *DepartmentService {
	if opts.Repo == nil {
		panic("DepartmentRepository is required")
	}
	return &DepartmentService{repo: opts.Repo}
}

// Create creates a department.
func (s *DepartmentService) Create(ctx context.Context, req *model.CreateDepartmentRequest) (*model.Department, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validate request: %w", err)
	}
	dept, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create department: %w", err)
	}
	return dept, nil
}

// GetByID retrieves a department by ID.
func (s *DepartmentService) GetByID(ctx context.Context, id string) (*model.Department, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns a page of departments.
func (s *DepartmentService) List(ctx context.Context, limit, offset int) ([]*model.Department, error) {
	limit, offset = normalizePage(limit, offset)
	return s.repo.List(ctx, limit, offset)
}

// Update updates a department.
func (s *DepartmentService) Update(ctx context.Context, id string, req model.UpdateDepartmentRequest) (*model.Department, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validate request: %w", err)
	}
	dept, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("update department: %w", err)
	}
	return dept, nil
}

// Delete deletes a department.
func (s *DepartmentService) Delete(ctx context.Context, id string) (bool, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete department: %w", err)
	}
	return ok, nil
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 1000 {
		limit = 1000
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
