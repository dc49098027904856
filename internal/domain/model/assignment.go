package model

import (
	"errors"
	"strings"
	"time"
)

// StaffAssignment maps a staff profile to a department and the subjects the
// member teaches there.
type StaffAssignment struct {
	ID           string    `json:"id"            db:"id"`
	ProfileID    string    `json:"profile_id"    db:"profile_id"`
	DepartmentID string    `json:"department_id" db:"department_id"`
	SubjectIDs   []string  `json:"subject_ids"   db:"subject_ids"`
	CreatedAt    time.Time `json:"created_at"    db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"    db:"updated_at"`
}

// CreateStaffAssignmentRequest carries input for assigning a staff member.
type CreateStaffAssignmentRequest struct {
	ProfileID    string   `json:"profile_id"`
	DepartmentID string   `json:"department_id"`
	SubjectIDs   []string `json:"subject_ids"`
}

// Validate checks the request fields.
func (r *CreateStaffAssignmentRequest) Validate() error {
	if strings.TrimSpace(r.ProfileID) == "" {
		return errors.New("profile id is required")
	}
	if strings.TrimSpace(r.DepartmentID) == "" {
		return errors.New("department id is required")
	}
	if len(r.SubjectIDs) == 0 {
		return errors.New("at least one subject is required")
	}
	for _, id := range r.SubjectIDs {
		if strings.TrimSpace(id) == "" {
			return errors.New("subject ids cannot be blank")
		}
	}
	return nil
}
