//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxDepartmentNameLen = 255
	maxDepartmentCodeLen = 16
)

// Department is an academic department subjects and staff belong to.
type Department struct {
	ID        string    `json:"id"         db:"id"`
	Name      string    `json:"name"       db:"name"`
	Code      string    `json:"code"       db:"code"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreateDepartmentRequest carries input for creating a department.
type CreateDepartmentRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// Validate checks the request fields.
func (r *CreateDepartmentRequest) Validate() error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return errors.New("department name is required")
	}
	if utf8.RuneCountInString(name) > maxDepartmentNameLen {
		return errors.New("department name is too long")
	}
	code := strings.TrimSpace(r.Code)
	if code == "" {
		return errors.New("department code is required")
	}
	if utf8.RuneCountInString(code) > maxDepartmentCodeLen {
		return errors.New("department code is too long")
	}
	return nil
}

// UpdateDepartmentRequest carries partial updates; nil fields are unchanged.
type UpdateDepartmentRequest struct {
	Name *string `json:"name,omitempty"`
	Code *string `json:"code,omitempty"`
}

// Validate checks the provided fields.
func (r UpdateDepartmentRequest) Validate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return errors.New("department name cannot be empty")
	}
	if r.Code != nil && strings.TrimSpace(*r.Code) == "" {
		return errors.New("department code cannot be empty")
	}
	return nil
}
