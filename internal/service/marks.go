package service

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/edutools/mark-register/internal/core"
	"github.com/edutools/mark-register/internal/domain/model"
	apperrors "github.com/edutools/mark-register/internal/errors"
)

// MarksServiceOptions groups dependencies for MarksService.
type MarksServiceOptions struct {
	Marks    core.MarkRepository
	Patterns core.QuestionPatternRepository
}

// MarksService provides business logic for mark entry and reporting.
type MarksService struct {
	marks    core.MarkRepository
	patterns core.QuestionPatternRepository
}

// NewMarksService constructs a new MarksService.
func NewMarksService(opts MarksServiceOptions) *MarksService {
	if opts.Marks == nil {
		panic("MarkRepository is required")
	}
	if opts.Patterns == nil {
		panic("QuestionPatternRepository is required")
	}
	return &MarksService{marks: opts.Marks, patterns: opts.Patterns}
}

// Submit validates a batch of marks against the pattern's question maxima and
// upserts them. Resubmitting a (student, question) pair replaces the mark.
// enteredBy records the submitting profile on every row.
func (s *MarksService) Submit(ctx context.Context, req *model.SubmitMarksRequest, enteredBy string) (int, error) {
	if err := req.Validate(); err != nil {
		return 0, fmt.Errorf("validate request: %w", err)
	}

	pattern, err := s.patterns.GetByID(ctx, req.PatternID)
	if err != nil {
		return 0, fmt.Errorf("get pattern: %w", err)
	}

	var entries []model.MarkEntry
	for _, student := range req.Students {
		for number, marks := range student.Marks {
			question, ok := pattern.QuestionByNumber(number)
			if !ok {
				return 0, apperrors.Validationf("question %d is not part of this pattern", number)
			}
			if marks > question.MaxMarks {
				return 0, apperrors.Validationf("student %s: question %d allows at most %d marks, got %d",
					student.StudentID, number, question.MaxMarks, marks)
			}
			entries = append(entries, model.MarkEntry{
				PatternID:      pattern.ID,
				StudentID:      student.StudentID,
				QuestionNumber: number,
				Marks:          marks,
				EnteredBy:      enteredBy,
			})
		}
	}
	if len(entries) == 0 {
		return 0, apperrors.Validation("no marks to submit")
	}

	written, err := s.marks.UpsertBatch(ctx, entries)
	if err != nil {
		return 0, fmt.Errorf("upsert marks: %w", err)
	}
	return written, nil
}

// Report aggregates a pattern's marks per student: one row per student with
// a total per course outcome and the overall total. Rows are ordered by
// student ID for stable output.
func (s *MarksService) Report(ctx context.Context, patternID string) ([]model.MarkReportRow, error) {
	// The pattern and its mark rows are independent reads, so fetch them
	// concurrently.
	var (
		pattern *model.QuestionPattern
		entries []*model.MarkEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.patterns.GetByID(gctx, patternID)
		if err != nil {
			return fmt.Errorf("get pattern: %w", err)
		}
		pattern = p
		return nil
	})
	g.Go(func() error {
		rows, err := s.marks.ListByPattern(gctx, patternID)
		if err != nil {
			return fmt.Errorf("list marks: %w", err)
		}
		entries = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byStudent := make(map[string][]*model.MarkEntry)
	for _, e := range entries {
		byStudent[e.StudentID] = append(byStudent[e.StudentID], e)
	}

	rows := make([]model.MarkReportRow, 0, len(byStudent))
	for studentID, studentEntries := range byStudent {
		row := model.MarkReportRow{
			StudentID:     studentID,
			OutcomeTotals: make(map[int]int, model.MaxCourseOutcome),
		}
		for co := model.MinCourseOutcome; co <= model.MaxCourseOutcome; co++ {
			row.OutcomeTotals[co] = 0
		}
		for _, e := range studentEntries {
			question, ok := pattern.QuestionByNumber(e.QuestionNumber)
			if !ok {
				// Mark rows for questions removed from the pattern don't count.
				continue
			}
			row.OutcomeTotals[question.CourseOutcome] += e.Marks
			row.Total += e.Marks
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].StudentID < rows[j].StudentID })
	return rows, nil
}

// StudentMarks returns one student's raw entries for a pattern, keyed by
// question number, for pre-filling the entry form.
func (s *MarksService) StudentMarks(ctx context.Context, patternID, studentID string) (map[int]int, error) {
	entries, err := s.marks.ListByPatternAndStudent(ctx, patternID, studentID)
	if err != nil {
		return nil, fmt.Errorf("list marks: %w", err)
	}
	out := make(map[int]int, len(entries))
	for _, e := range entries {
		out[e.QuestionNumber] = e.Marks
	}
	return out, nil
}

// ClearPattern removes every mark recorded against a pattern.
func (s *MarksService) ClearPattern(ctx context.Context, patternID string) (int, error) {
	deleted, err := s.marks.DeleteByPattern(ctx, patternID)
	if err != nil {
		return 0, fmt.Errorf("delete marks: %w", err)
	}
	return deleted, nil
}
