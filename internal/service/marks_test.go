package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/edutools/mark-register/internal/domain/model"
	apperrors "github.com/edutools/mark-register/internal/errors"
	"github.com/edutools/mark-register/internal/mocks"
)

const testPatternID = "pattern-1"

func reportTestPattern() *model.QuestionPattern {
	return &model.QuestionPattern{
		ID:                testPatternID,
		SubjectID:         "subject-1",
		QuestionPaperCode: "QP-A",
		Questions: []model.Question{
			{Number: 1, CourseOutcome: 1, MaxMarks: 10},
			{Number: 2, CourseOutcome: 1, MaxMarks: 5},
			{Number: 3, CourseOutcome: 3, MaxMarks: 15},
		},
	}
}

func TestMarksService_Submit_UpsertsValidatedEntries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockMarks := mocks.NewMockMarkRepository(ctrl)
	mockPatterns := mocks.NewMockQuestionPatternRepository(ctrl)
	svc := NewMarksService(MarksServiceOptions{Marks: mockMarks, Patterns: mockPatterns})

	mockPatterns.EXPECT().GetByID(ctx, testPatternID).Return(reportTestPattern(), nil)
	mockMarks.EXPECT().UpsertBatch(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, entries []model.MarkEntry) (int, error) {
			require.Len(t, entries, 3)
			for _, e := range entries {
				assert.Equal(t, testPatternID, e.PatternID)
				assert.Equal(t, "staff-1", e.EnteredBy)
			}
			return len(entries), nil
		},
	)

	req := &model.SubmitMarksRequest{
		PatternID: testPatternID,
		Students: []model.StudentMarks{
			{StudentID: "R-001", Marks: map[int]int{1: 8, 2: 5, 3: 12}},
		},
	}

	written, err := svc.Submit(ctx, req, "staff-1")
	require.NoError(t, err)
	assert.Equal(t, 3, written)
}

func TestMarksService_Submit_RejectsMarksAboveQuestionMax(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockMarks := mocks.NewMockMarkRepository(ctrl)
	mockPatterns := mocks.NewMockQuestionPatternRepository(ctrl)
	svc := NewMarksService(MarksServiceOptions{Marks: mockMarks, Patterns: mockPatterns})

	mockPatterns.EXPECT().GetByID(ctx, testPatternID).Return(reportTestPattern(), nil)
	// no upsert expected

	req := &model.SubmitMarksRequest{
		PatternID: testPatternID,
		Students: []model.StudentMarks{
			{StudentID: "R-001", Marks: map[int]int{1: 11}},
		},
	}

	_, err := svc.Submit(ctx, req, "staff-1")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestMarksService_Submit_RejectsUnknownQuestion(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockMarks := mocks.NewMockMarkRepository(ctrl)
	mockPatterns := mocks.NewMockQuestionPatternRepository(ctrl)
	svc := NewMarksService(MarksServiceOptions{Marks: mockMarks, Patterns: mockPatterns})

	mockPatterns.EXPECT().GetByID(ctx, testPatternID).Return(reportTestPattern(), nil)

	req := &model.SubmitMarksRequest{
		PatternID: testPatternID,
		Students: []model.StudentMarks{
			{StudentID: "R-001", Marks: map[int]int{9: 1}},
		},
	}

	_, err := svc.Submit(ctx, req, "staff-1")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestMarksService_Report_AggregatesPerOutcome(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockMarks := mocks.NewMockMarkRepository(ctrl)
	mockPatterns := mocks.NewMockQuestionPatternRepository(ctrl)
	svc := NewMarksService(MarksServiceOptions{Marks: mockMarks, Patterns: mockPatterns})

	mockPatterns.EXPECT().GetByID(gomock.Any(), testPatternID).Return(reportTestPattern(), nil)
	mockMarks.EXPECT().ListByPattern(gomock.Any(), testPatternID).Return([]*model.MarkEntry{
		{PatternID: testPatternID, StudentID: "R-002", QuestionNumber: 1, Marks: 7},
		{PatternID: testPatternID, StudentID: "R-002", QuestionNumber: 3, Marks: 10},
		{PatternID: testPatternID, StudentID: "R-001", QuestionNumber: 1, Marks: 9},
		{PatternID: testPatternID, StudentID: "R-001", QuestionNumber: 2, Marks: 4},
	}, nil)

	rows, err := svc.Report(ctx, testPatternID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Sorted by student ID.
	assert.Equal(t, "R-001", rows[0].StudentID)
	assert.Equal(t, 13, rows[0].OutcomeTotals[1])
	assert.Equal(t, 0, rows[0].OutcomeTotals[3])
	assert.Equal(t, 13, rows[0].Total)

	assert.Equal(t, "R-002", rows[1].StudentID)
	assert.Equal(t, 7, rows[1].OutcomeTotals[1])
	assert.Equal(t, 10, rows[1].OutcomeTotals[3])
	assert.Equal(t, 17, rows[1].Total)

	// Every outcome column is present even when empty.
	for co := model.MinCourseOutcome; co <= model.MaxCourseOutcome; co++ {
		_, ok := rows[0].OutcomeTotals[co]
		assert.True(t, ok, "outcome %d missing", co)
	}
}

func TestMarksService_StudentMarks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockMarks := mocks.NewMockMarkRepository(ctrl)
	mockPatterns := mocks.NewMockQuestionPatternRepository(ctrl)
	svc := NewMarksService(MarksServiceOptions{Marks: mockMarks, Patterns: mockPatterns})

	mockMarks.EXPECT().ListByPatternAndStudent(ctx, testPatternID, "R-001").Return([]*model.MarkEntry{
		{QuestionNumber: 1, Marks: 9},
		{QuestionNumber: 2, Marks: 4},
	}, nil)

	marks, err := svc.StudentMarks(ctx, testPatternID, "R-001")
	require.NoError(t, err)
	assert.Equal(t, map[int]int{1: 9, 2: 4}, marks)
}
