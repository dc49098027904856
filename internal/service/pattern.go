package service

import (
	"context"
	"fmt"

	"github.com/edutools/mark-register/internal/core"
	"github.com/edutools/mark-register/internal/domain/model"
	apperrors "github.com/edutools/mark-register/internal/errors"
)

// PatternServiceOptions groups dependencies for PatternService.
type PatternServiceOptions struct {
	Repo     core.QuestionPatternRepository
	Subjects core.SubjectRepository
}

// PatternService provides business logic for question pattern operations.
// A pattern binds a subject's question paper code to its question-to-outcome
// mapping; one pattern per (subject, code) pair.
type PatternService struct {
	repo     core.QuestionPatternRepository
	subjects core.SubjectRepository
}

// NewPatternService constructs a new PatternService.
func NewPatternService(opts PatternServiceOptions) *PatternService {
	if opts.Repo == nil {
		panic("QuestionPatternRepository is required")
	}
	if opts.Subjects == nil {
		panic("SubjectRepository is required")
	}
	return &PatternService{repo: opts.Repo, subjects: opts.Subjects}
}

// Create creates a pattern after checking the paper code belongs to the
// subject and no pattern exists for the pair yet.
func (s *PatternService) Create(ctx context.Context, req *model.CreateQuestionPatternRequest) (*model.QuestionPattern, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validate request: %w", err)
	}

	subject, err := s.subjects.GetByID(ctx, req.SubjectID)
	if err != nil {
		return nil, fmt.Errorf("get subject: %w", err)
	}
	if !subject.HasQuestionPaperCode(req.QuestionPaperCode) {
		return nil, apperrors.ValidationField("question_paper_code",
			fmt.Sprintf("subject %s has no question paper code %q", subject.Code, req.QuestionPaperCode))
	}

	existing, err := s.repo.GetBySubjectAndCode(ctx, req.SubjectID, req.QuestionPaperCode)
	if err != nil && !apperrors.IsNotFound(err) {
		return nil, fmt.Errorf("check existing pattern: %w", err)
	}
	if existing != nil {
		return nil, apperrors.Conflict(
			fmt.Sprintf("a pattern already exists for paper code %q", req.QuestionPaperCode))
	}

	pattern, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create pattern: %w", err)
	}
	return pattern, nil
}

// GetByID retrieves a pattern by ID.
func (s *PatternService) GetByID(ctx context.Context, id string) (*model.QuestionPattern, error) {
	return s.repo.GetByID(ctx, id)
}

// GetBySubjectAndCode retrieves the pattern for a (subject, paper code) pair.
func (s *PatternService) GetBySubjectAndCode(ctx context.Context, subjectID, code string) (*model.QuestionPattern, error) {
	return s.repo.GetBySubjectAndCode(ctx, subjectID, code)
}

// List returns a page of patterns.
func (s *PatternService) List(ctx context.Context, limit, offset int) ([]*model.QuestionPattern, error) {
	limit, offset = normalizePage(limit, offset)
	return s.repo.List(ctx, limit, offset)
}

// Delete deletes a pattern.
func (s *PatternService) Delete(ctx context.Context, id string) (bool, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete pattern: %w", err)
	}
	return ok, nil
}
