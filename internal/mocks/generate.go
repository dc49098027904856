// Package mocks provides mock implementations for testing the mark register services.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our repository interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockDepartmentRepository(ctrl)
//	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dept, nil)
package mocks

// Generate mock for DepartmentRepository interface from internal/core package.
// This creates MockDepartmentRepository with methods for all DepartmentRepository interface methods:
// Create, GetByID, List, Update, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=department_repository_mock.go github.com/edutools/mark-register/internal/core DepartmentRepository

// Generate mock for SubjectRepository interface from internal/core package.
// This creates MockSubjectRepository with methods for all SubjectRepository interface methods:
// Create, GetByID, List, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=subject_repository_mock.go github.com/edutools/mark-register/internal/core SubjectRepository

// Generate mock for QuestionPatternRepository interface from internal/core package.
// This creates MockQuestionPatternRepository with methods for all QuestionPatternRepository interface methods:
// Create, GetByID, GetBySubjectAndCode, List, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=question_pattern_repository_mock.go github.com/edutools/mark-register/internal/core QuestionPatternRepository

// Generate mock for MarkRepository interface from internal/core package.
// This creates MockMarkRepository with methods for all MarkRepository interface methods:
// UpsertBatch, ListByPattern, ListByPatternAndStudent, DeleteByPattern
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=mark_repository_mock.go github.com/edutools/mark-register/internal/core MarkRepository

// Generate mock for StaffAssignmentRepository interface from internal/core package.
// This creates MockStaffAssignmentRepository with methods for all StaffAssignmentRepository interface methods:
// Upsert, GetByProfile, List, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=staff_assignment_repository_mock.go github.com/edutools/mark-register/internal/core StaffAssignmentRepository

// Generate mock for ProfileRepository interface from internal/core package.
// This creates MockProfileRepository with methods for all ProfileRepository interface methods:
// Create, GetByIdentity, GetByUsername, List, UpdateRole, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=profile_repository_mock.go github.com/edutools/mark-register/internal/core ProfileRepository
