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

func patternTestSubject() *model.Subject {
	return &model.Subject{
		ID:                 "subject-1",
		DepartmentID:       "dept-1",
		Code:               "CS101",
		Name:               "Data Structures",
		QuestionPaperCodes: []string{"QP-A", "QP-B"},
	}
}

func patternCreateRequest() *model.CreateQuestionPatternRequest {
	return &model.CreateQuestionPatternRequest{
		SubjectID:         "subject-1",
		QuestionPaperCode: "QP-A",
		Questions: []model.Question{
			{Number: 1, CourseOutcome: 1, MaxMarks: 10},
		},
	}
}

func TestPatternService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockPatterns := mocks.NewMockQuestionPatternRepository(ctrl)
	mockSubjects := mocks.NewMockSubjectRepository(ctrl)
	svc := NewPatternService(PatternServiceOptions{Repo: mockPatterns, Subjects: mockSubjects})

	req := patternCreateRequest()
	created := &model.QuestionPattern{ID: "pattern-1", SubjectID: req.SubjectID, QuestionPaperCode: req.QuestionPaperCode, Questions: req.Questions}

	mockSubjects.EXPECT().GetByID(ctx, "subject-1").Return(patternTestSubject(), nil)
	mockPatterns.EXPECT().GetBySubjectAndCode(ctx, "subject-1", "QP-A").
		Return(nil, apperrors.NotFound("no pattern"))
	mockPatterns.EXPECT().Create(ctx, req).Return(created, nil)

	got, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestPatternService_Create_RejectsForeignPaperCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockPatterns := mocks.NewMockQuestionPatternRepository(ctrl)
	mockSubjects := mocks.NewMockSubjectRepository(ctrl)
	svc := NewPatternService(PatternServiceOptions{Repo: mockPatterns, Subjects: mockSubjects})

	req := patternCreateRequest()
	req.QuestionPaperCode = "QP-Z"

	mockSubjects.EXPECT().GetByID(ctx, "subject-1").Return(patternTestSubject(), nil)
	// no pattern lookup or create expected

	_, err := svc.Create(ctx, req)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "question_paper_code", apperrors.GetField(err))
}

func TestPatternService_Create_RejectsDuplicatePattern(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockPatterns := mocks.NewMockQuestionPatternRepository(ctrl)
	mockSubjects := mocks.NewMockSubjectRepository(ctrl)
	svc := NewPatternService(PatternServiceOptions{Repo: mockPatterns, Subjects: mockSubjects})

	req := patternCreateRequest()
	existing := &model.QuestionPattern{ID: "pattern-0", SubjectID: "subject-1", QuestionPaperCode: "QP-A"}

	mockSubjects.EXPECT().GetByID(ctx, "subject-1").Return(patternTestSubject(), nil)
	mockPatterns.EXPECT().GetBySubjectAndCode(ctx, "subject-1", "QP-A").Return(existing, nil)

	_, err := svc.Create(ctx, req)
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestPatternService_Create_InvalidRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockPatterns := mocks.NewMockQuestionPatternRepository(ctrl)
	mockSubjects := mocks.NewMockSubjectRepository(ctrl)
	svc := NewPatternService(PatternServiceOptions{Repo: mockPatterns, Subjects: mockSubjects})

	req := patternCreateRequest()
	req.Questions = nil

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
}
