package model

import (
	"errors"
	"strings"
	"time"
)

// Subject is a course taught inside a department. A subject owns the set of
// question paper codes its exams are published under.
type Subject struct {
	ID                 string    `json:"id"                   db:"id"`
	DepartmentID       string    `json:"department_id"        db:"department_id"`
	Code               string    `json:"code"                 db:"code"`
	Name               string    `json:"name"                 db:"name"`
	QuestionPaperCodes []string  `json:"question_paper_codes" db:"question_paper_codes"`
	CreatedAt          time.Time `json:"created_at"           db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"           db:"updated_at"`
}

// CreateSubjectRequest carries input for creating a subject.
type CreateSubjectRequest struct {
	DepartmentID       string   `json:"department_id"`
	Code               string   `json:"code"`
	Name               string   `json:"name"`
	QuestionPaperCodes []string `json:"question_paper_codes"`
}

// Validate checks the request fields.
func (r *CreateSubjectRequest) Validate() error {
	if strings.TrimSpace(r.DepartmentID) == "" {
		return errors.New("department id is required")
	}
	if strings.TrimSpace(r.Code) == "" {
		return errors.New("subject code is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("subject name is required")
	}
	for _, qpc := range r.QuestionPaperCodes {
		if strings.TrimSpace(qpc) == "" {
			return errors.New("question paper codes cannot be blank")
		}
	}
	return nil
}

// NormalizedQuestionPaperCodes returns the request's codes trimmed with
// blanks and duplicates removed, preserving order.
func (r *CreateSubjectRequest) NormalizedQuestionPaperCodes() []string {
	seen := make(map[string]bool, len(r.QuestionPaperCodes))
	out := make([]string, 0, len(r.QuestionPaperCodes))
	for _, qpc := range r.QuestionPaperCodes {
		qpc = strings.TrimSpace(qpc)
		if qpc == "" || seen[qpc] {
			continue
		}
		seen[qpc] = true
		out = append(out, qpc)
	}
	return out
}

// HasQuestionPaperCode reports whether the subject carries the given code.
func (s *Subject) HasQuestionPaperCode(code string) bool {
	for _, qpc := range s.QuestionPaperCodes {
		if qpc == code {
			return true
		}
	}
	return false
}

// SubjectsListOptions controls filtering for listing subjects.
type SubjectsListOptions struct {
	Limit        int
	Offset       int
	DepartmentID *string // exact match
	Search       *string // case-insensitive substring match on name
}
