package service

import (
	"context"
	"fmt"

	"github.com/edutools/mark-register/internal/core"
	"github.com/edutools/mark-register/internal/domain/model"
)

// SubjectServiceOptions groups dependencies for SubjectService.
type SubjectServiceOptions struct {
	Repo core.SubjectRepository
}

// SubjectService provides business logic for subject operations.
type SubjectService struct {
	repo core.SubjectRepository
}

// NewSubjectService constructs a new SubjectService.
func NewSubjectService(opts SubjectServiceOptions) *SubjectService {
	if opts.Repo == nil {
		panic("SubjectRepository is required")
	}
	return &SubjectService{repo: opts.Repo}
}

// Create creates a subject with its question paper codes normalized.
func (s *SubjectService) Create(ctx context.Context, req *model.CreateSubjectRequest) (*model.Subject, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validate request: %w", err)
	}
	req.QuestionPaperCodes = req.NormalizedQuestionPaperCodes()

	subject, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create subject: %w", err)
	}
	return subject, nil
}

// GetByID retrieves a subject by ID.
func (s *SubjectService) GetByID(ctx context.Context, id string) (*model.Subject, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns subjects using the given filters.
func (s *SubjectService) List(ctx context.Context, opts model.SubjectsListOptions) ([]*model.Subject, error) {
	opts.Limit, opts.Offset = normalizePage(opts.Limit, opts.Offset)
	return s.repo.List(ctx, opts)
}

// Delete deletes a subject.
func (s *SubjectService) Delete(ctx context.Context, id string) (bool, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete subject: %w", err)
	}
	return ok, nil
}
