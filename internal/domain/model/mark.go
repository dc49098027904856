package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// MarkEntry is one student's mark for one question of a pattern.
type MarkEntry struct {
	ID             string    `json:"id"              db:"id"`
	PatternID      string    `json:"pattern_id"      db:"pattern_id"`
	StudentID      string    `json:"student_id"      db:"student_id"`
	QuestionNumber int       `json:"question_number" db:"question_number"`
	Marks          int       `json:"marks"           db:"marks"`
	EnteredBy      string    `json:"entered_by"      db:"entered_by"`
	CreatedAt      time.Time `json:"created_at"      db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"      db:"updated_at"`
}

// StudentMarks groups one student's marks for a whole pattern, keyed by
// question number. This is the shape mark-entry submissions arrive in.
type StudentMarks struct {
	StudentID string      `json:"student_id"`
	Marks     map[int]int `json:"marks"`
}

// SubmitMarksRequest carries a batch of per-student marks for one pattern.
type SubmitMarksRequest struct {
	PatternID string         `json:"pattern_id"`
	Students  []StudentMarks `json:"students"`
}

// Validate checks shape only; range checks against the pattern's question
// maxima happen in the service, which knows the pattern.
func (r *SubmitMarksRequest) Validate() error {
	if strings.TrimSpace(r.PatternID) == "" {
		return errors.New("pattern id is required")
	}
	if len(r.Students) == 0 {
		return errors.New("at least one student is required")
	}
	seen := make(map[string]bool, len(r.Students))
	for _, s := range r.Students {
		if strings.TrimSpace(s.StudentID) == "" {
			return errors.New("student id is required")
		}
		if seen[s.StudentID] {
			return fmt.Errorf("duplicate student %s", s.StudentID)
		}
		seen[s.StudentID] = true
		for number, marks := range s.Marks {
			if number <= 0 {
				return fmt.Errorf("student %s: question numbers must be positive", s.StudentID)
			}
			if marks < 0 {
				return fmt.Errorf("student %s: marks cannot be negative", s.StudentID)
			}
		}
	}
	return nil
}

// MarkReportRow is one student's aggregated line in a mark report: total per
// course outcome plus the overall total.
type MarkReportRow struct {
	StudentID     string      `json:"student_id"`
	OutcomeTotals map[int]int `json:"outcome_totals"`
	Total         int         `json:"total"`
}
