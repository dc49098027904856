package core

import (
	"context"

	domainauth "github.com/edutools/mark-register/internal/domain/auth"
	"github.com/edutools/mark-register/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// ProfileRepository defines the interface for user profile data operations.
type ProfileRepository interface {
	Create(ctx context.Context, profile domainauth.Profile) (*domainauth.Profile, error)
	GetByIdentity(ctx context.Context, identityID string) (domainauth.Profile, error)
	GetByUsername(ctx context.Context, username string) (*domainauth.Profile, error)
	List(ctx context.Context, limit, offset int) ([]*domainauth.Profile, error)
	UpdateRole(ctx context.Context, identityID string, role domainauth.Role) (*domainauth.Profile, error)
	Delete(ctx context.Context, identityID string) (bool, error)
}

// DepartmentRepository defines the interface for department data operations.
type DepartmentRepository interface {
	Create(ctx context.Context, req *model.CreateDepartmentRequest) (*model.Department, error)
	GetByID(ctx context.Context, id string) (*model.Department, error)
	List(ctx context.Context, limit, offset int) ([]*model.Department, error)
	Update(ctx context.Context, id string, req model.UpdateDepartmentRequest) (*model.Department, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// SubjectRepository defines the interface for subject data operations.
type SubjectRepository interface {
	Create(ctx context.Context, req *model.CreateSubjectRequest) (*model.Subject, error)
	GetByID(ctx context.Context, id string) (*model.Subject, error)
	List(ctx context.Context, opts model.SubjectsListOptions) ([]*model.Subject, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// QuestionPatternRepository defines the interface for question pattern data operations.
type QuestionPatternRepository interface {
	Create(ctx context.Context, req *model.CreateQuestionPatternRequest) (*model.QuestionPattern, error)
	GetByID(ctx context.Context, id string) (*model.QuestionPattern, error)
	// GetBySubjectAndCode returns the pattern published for a subject under a
	// question paper code, if any.
	GetBySubjectAndCode(ctx context.Context, subjectID, questionPaperCode string) (*model.QuestionPattern, error)
	List(ctx context.Context, limit, offset int) ([]*model.QuestionPattern, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// MarkRepository defines the interface for mark entry data operations.
type MarkRepository interface {
	// UpsertBatch inserts or replaces the given entries, keyed by
	// (pattern, student, question). Returns the number of rows written.
	UpsertBatch(ctx context.Context, entries []model.MarkEntry) (int, error)
	ListByPattern(ctx context.Context, patternID string) ([]*model.MarkEntry, error)
	ListByPatternAndStudent(ctx context.Context, patternID, studentID string) ([]*model.MarkEntry, error)
	DeleteByPattern(ctx context.Context, patternID string) (int, error)
}

// StaffAssignmentRepository defines the interface for staff assignment data operations.
type StaffAssignmentRepository interface {
	// Upsert creates the assignment, or replaces the subject set when the
	// (profile, department) pair already exists.
	Upsert(ctx context.Context, req *model.CreateStaffAssignmentRequest) (*model.StaffAssignment, error)
	GetByProfile(ctx context.Context, profileID string) ([]*model.StaffAssignment, error)
	List(ctx context.Context, limit, offset int) ([]*model.StaffAssignment, error)
	Delete(ctx context.Context, id string) (bool, error)
}
