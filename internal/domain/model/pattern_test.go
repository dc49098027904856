package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePattern() *QuestionPattern {
	return &QuestionPattern{
		ID:                "p1",
		SubjectID:         "s1",
		QuestionPaperCode: "QPC001",
		Questions: []Question{
			{Number: 1, CourseOutcome: 1, MaxMarks: 10},
			{Number: 2, CourseOutcome: 2, MaxMarks: 15},
			{Number: 3, CourseOutcome: 1, MaxMarks: 5},
			{Number: 4, CourseOutcome: 4, MaxMarks: 15},
		},
	}
}

func TestQuestionPattern_TotalMarks(t *testing.T) {
	assert.Equal(t, 45, samplePattern().TotalMarks())
	assert.Equal(t, 0, (&QuestionPattern{}).TotalMarks())
}

func TestQuestionPattern_OutcomeTotals(t *testing.T) {
	totals := samplePattern().OutcomeTotals()

	assert.Equal(t, 15, totals[1])
	assert.Equal(t, 15, totals[2])
	assert.Equal(t, 15, totals[4])
	// Outcomes without questions are present with zero totals.
	assert.Equal(t, 0, totals[3])
	assert.Equal(t, 0, totals[5])
	assert.Equal(t, 0, totals[6])
	assert.Len(t, totals, MaxCourseOutcome)
}

func TestCreateQuestionPatternRequest_Validate(t *testing.T) {
	valid := func() *CreateQuestionPatternRequest {
		return &CreateQuestionPatternRequest{
			SubjectID:         "s1",
			QuestionPaperCode: "QPC001",
			Questions: []Question{
				{Number: 1, CourseOutcome: 1, MaxMarks: 10},
			},
		}
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*CreateQuestionPatternRequest)
	}{
		{"missing subject", func(r *CreateQuestionPatternRequest) { r.SubjectID = " " }},
		{"missing paper code", func(r *CreateQuestionPatternRequest) { r.QuestionPaperCode = "" }},
		{"no questions", func(r *CreateQuestionPatternRequest) { r.Questions = nil }},
		{"zero question number", func(r *CreateQuestionPatternRequest) { r.Questions[0].Number = 0 }},
		{"outcome out of range", func(r *CreateQuestionPatternRequest) { r.Questions[0].CourseOutcome = 7 }},
		{"zero max marks", func(r *CreateQuestionPatternRequest) { r.Questions[0].MaxMarks = 0 }},
		{"duplicate question number", func(r *CreateQuestionPatternRequest) {
			r.Questions = append(r.Questions, Question{Number: 1, CourseOutcome: 2, MaxMarks: 5})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(req)
			assert.Error(t, req.Validate())
		})
	}
}

func TestSubmitMarksRequest_Validate(t *testing.T) {
	valid := func() *SubmitMarksRequest {
		return &SubmitMarksRequest{
			PatternID: "p1",
			Students: []StudentMarks{
				{StudentID: "RND-1001", Marks: map[int]int{1: 8, 2: 12}},
			},
		}
	}

	require.NoError(t, valid().Validate())

	t.Run("missing pattern", func(t *testing.T) {
		req := valid()
		req.PatternID = ""
		assert.Error(t, req.Validate())
	})
	t.Run("duplicate student", func(t *testing.T) {
		req := valid()
		req.Students = append(req.Students, req.Students[0])
		assert.Error(t, req.Validate())
	})
	t.Run("negative marks", func(t *testing.T) {
		req := valid()
		req.Students[0].Marks[1] = -1
		assert.Error(t, req.Validate())
	})
}

func TestCreateSubjectRequest_NormalizedQuestionPaperCodes(t *testing.T) {
	req := &CreateSubjectRequest{
		QuestionPaperCodes: []string{" QPC001 ", "QPC002", "QPC001", "  "},
	}
	assert.Equal(t, []string{"QPC001", "QPC002"}, req.NormalizedQuestionPaperCodes())
}
