// Package testutil provides testing utilities and helpers for the mark register.
package testutil

import (
	"github.com/edutools/mark-register/internal/domain/model"
)

// DepartmentRequestBuilder provides a fluent interface for building CreateDepartmentRequest objects for testing.
type DepartmentRequestBuilder struct {
	req *model.CreateDepartmentRequest
}

// NewDepartmentRequest creates a new DepartmentRequestBuilder with sensible defaults.
func NewDepartmentRequest() *DepartmentRequestBuilder {
	return &DepartmentRequestBuilder{
		req: &model.CreateDepartmentRequest{
			Name: "Computer Science",
			Code: "CSE",
		},
	}
}

// WithName sets the department name.
func (b *DepartmentRequestBuilder) WithName(name string) *DepartmentRequestBuilder {
	b.req.Name = name
	return b
}

// WithCode sets the department code.
func (b *DepartmentRequestBuilder) WithCode(code string) *DepartmentRequestBuilder {
	b.req.Code = code
	return b
}

// Build returns the constructed request.
func (b *DepartmentRequestBuilder) Build() *model.CreateDepartmentRequest {
	return b.req
}

// SubjectRequestBuilder provides a fluent interface for building CreateSubjectRequest objects for testing.
type SubjectRequestBuilder struct {
	req *model.CreateSubjectRequest
}

// NewSubjectRequest creates a new SubjectRequestBuilder with sensible defaults.
// The department ID must be supplied since subjects cannot exist without one.
func NewSubjectRequest(departmentID string) *SubjectRequestBuilder {
	return &SubjectRequestBuilder{
		req: &model.CreateSubjectRequest{
			DepartmentID:       departmentID,
			Code:               "CS101",
			Name:               "Data Structures",
			QuestionPaperCodes: []string{"QP-A"},
		},
	}
}

// WithCode sets the subject code.
func (b *SubjectRequestBuilder) WithCode(code string) *SubjectRequestBuilder {
	b.req.Code = code
	return b
}

// WithName sets the subject name.
func (b *SubjectRequestBuilder) WithName(name string) *SubjectRequestBuilder {
	b.req.Name = name
	return b
}

// WithQuestionPaperCodes sets the question paper codes.
func (b *SubjectRequestBuilder) WithQuestionPaperCodes(codes ...string) *SubjectRequestBuilder {
	b.req.QuestionPaperCodes = codes
	return b
}

// Build returns the constructed request.
func (b *SubjectRequestBuilder) Build() *model.CreateSubjectRequest {
	return b.req
}

// PatternRequestBuilder provides a fluent interface for building CreateQuestionPatternRequest objects for testing.
type PatternRequestBuilder struct {
	req *model.CreateQuestionPatternRequest
}

// NewPatternRequest creates a new PatternRequestBuilder with sensible defaults.
func NewPatternRequest(subjectID string) *PatternRequestBuilder {
	return &PatternRequestBuilder{
		req: &model.CreateQuestionPatternRequest{
			SubjectID:         subjectID,
			QuestionPaperCode: "QP-A",
			Questions: []model.Question{
				{Number: 1, CourseOutcome: 1, MaxMarks: 10},
				{Number: 2, CourseOutcome: 2, MaxMarks: 10},
			},
		},
	}
}

// WithQuestionPaperCode sets the question paper code.
func (b *PatternRequestBuilder) WithQuestionPaperCode(code string) *PatternRequestBuilder {
	b.req.QuestionPaperCode = code
	return b
}

// WithQuestions replaces the question rows.
func (b *PatternRequestBuilder) WithQuestions(questions ...model.Question) *PatternRequestBuilder {
	b.req.Questions = questions
	return b
}

// Build returns the constructed request.
func (b *PatternRequestBuilder) Build() *model.CreateQuestionPatternRequest {
	return b.req
}

// AssignmentRequestBuilder provides a fluent interface for building CreateStaffAssignmentRequest objects for testing.
type AssignmentRequestBuilder struct {
	req *model.CreateStaffAssignmentRequest
}

// NewAssignmentRequest creates a new AssignmentRequestBuilder with sensible defaults.
func NewAssignmentRequest(profileID, departmentID string) *AssignmentRequestBuilder {
	return &AssignmentRequestBuilder{
		req: &model.CreateStaffAssignmentRequest{
			ProfileID:    profileID,
			DepartmentID: departmentID,
			SubjectIDs:   []string{},
		},
	}
}

// WithSubjectIDs sets the subject set.
func (b *AssignmentRequestBuilder) WithSubjectIDs(ids ...string) *AssignmentRequestBuilder {
	b.req.SubjectIDs = ids
	return b
}

// Build returns the constructed request.
func (b *AssignmentRequestBuilder) Build() *model.CreateStaffAssignmentRequest {
	return b.req
}
