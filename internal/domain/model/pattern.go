package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Course outcomes are numbered 1..6 across the register.
const (
	MinCourseOutcome = 1
	MaxCourseOutcome = 6
)

// Question maps one exam question to a course outcome and a maximum mark.
type Question struct {
	Number        int `json:"number"         db:"number"`
	CourseOutcome int `json:"course_outcome" db:"course_outcome"`
	MaxMarks      int `json:"max_marks"      db:"max_marks"`
}

// QuestionPattern defines the question-to-outcome mapping for one exam paper
// of a subject, identified by (subject, question paper code).
type QuestionPattern struct {
	ID                string     `json:"id"                  db:"id"`
	SubjectID         string     `json:"subject_id"          db:"subject_id"`
	QuestionPaperCode string     `json:"question_paper_code" db:"question_paper_code"`
	Questions         []Question `json:"questions"           db:"-"`
	CreatedAt         time.Time  `json:"created_at"          db:"created_at"`
}

// TotalMarks returns the sum of all question maxima.
func (p *QuestionPattern) TotalMarks() int {
	total := 0
	for _, q := range p.Questions {
		total += q.MaxMarks
	}
	return total
}

// OutcomeTotals aggregates question maxima per course outcome. Outcomes with
// no questions are present with a zero total so tables render every column.
func (p *QuestionPattern) OutcomeTotals() map[int]int {
	totals := make(map[int]int, MaxCourseOutcome)
	for co := MinCourseOutcome; co <= MaxCourseOutcome; co++ {
		totals[co] = 0
	}
	for _, q := range p.Questions {
		totals[q.CourseOutcome] += q.MaxMarks
	}
	return totals
}

// QuestionByNumber returns the question with the given number, if present.
func (p *QuestionPattern) QuestionByNumber(number int) (Question, bool) {
	for _, q := range p.Questions {
		if q.Number == number {
			return q, true
		}
	}
	return Question{}, false
}

// CreateQuestionPatternRequest carries input for creating a pattern.
type CreateQuestionPatternRequest struct {
	SubjectID         string     `json:"subject_id"`
	QuestionPaperCode string     `json:"question_paper_code"`
	Questions         []Question `json:"questions"`
}

// Validate checks the request fields and every question row.
func (r *CreateQuestionPatternRequest) Validate() error {
	if strings.TrimSpace(r.SubjectID) == "" {
		return errors.New("subject id is required")
	}
	if strings.TrimSpace(r.QuestionPaperCode) == "" {
		return errors.New("question paper code is required")
	}
	if len(r.Questions) == 0 {
		return errors.New("at least one question is required")
	}
	seen := make(map[int]bool, len(r.Questions))
	for _, q := range r.Questions {
		if q.Number <= 0 {
			return errors.New("question numbers must be positive")
		}
		if seen[q.Number] {
			return fmt.Errorf("duplicate question number %d", q.Number)
		}
		seen[q.Number] = true
		if q.CourseOutcome < MinCourseOutcome || q.CourseOutcome > MaxCourseOutcome {
			return fmt.Errorf("question %d: course outcome must be between %d and %d",
				q.Number, MinCourseOutcome, MaxCourseOutcome)
		}
		if q.MaxMarks <= 0 {
			return fmt.Errorf("question %d: max marks must be positive", q.Number)
		}
	}
	return nil
}
