package data

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edutools/mark-register/internal/domain/model"
	apperrors "github.com/edutools/mark-register/internal/errors"
	"github.com/edutools/mark-register/internal/testutil"
)

func createTestPattern(t *testing.T, db *sql.DB, subjectID, qpCode string) *model.QuestionPattern {
	t.Helper()
	repo := NewPatternRepo(db)
	p, err := repo.Create(context.Background(), testutil.NewPatternRequest(subjectID).
		WithQuestionPaperCode(qpCode).
		WithQuestions(
			model.Question{Number: 1, CourseOutcome: 1, MaxMarks: 10},
			model.Question{Number: 2, CourseOutcome: 3, MaxMarks: 15},
		).
		Build())
	require.NoError(t, err)
	return p
}

func TestPatternRepo_Create_Get(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewPatternRepo(db)

		dept := createTestDepartment(t, db, uniqueCode("CSE"))
		subject := createTestSubject(t, db, dept.ID, "CS301")

		p := createTestPattern(t, db, subject.ID, "QP-A")
		require.NotEmpty(t, p.ID)
		require.Len(t, p.Questions, 2)

		got, err := repo.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.SubjectID, got.SubjectID)
		require.Len(t, got.Questions, 2)
		// questions come back ordered by number
		assert.Equal(t, 1, got.Questions[0].Number)
		assert.Equal(t, 2, got.Questions[1].Number)
		assert.Equal(t, 15, got.Questions[1].MaxMarks)

		byCode, err := repo.GetBySubjectAndCode(ctx, subject.ID, "QP-A")
		require.NoError(t, err)
		assert.Equal(t, p.ID, byCode.ID)
		assert.Len(t, byCode.Questions, 2)

		_, err = repo.GetBySubjectAndCode(ctx, subject.ID, "QP-B")
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestPatternRepo_Create_DuplicateSubjectAndCode(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		dept := createTestDepartment(t, db, uniqueCode("CSE"))
		subject := createTestSubject(t, db, dept.ID, "CS302")

		createTestPattern(t, db, subject.ID, "QP-A")

		repo := NewPatternRepo(db)
		_, err := repo.Create(context.Background(), testutil.NewPatternRequest(subject.ID).
			WithQuestionPaperCode("QP-A").
			Build())
		require.Error(t, err)
		assert.True(t, apperrors.IsConflict(err))
	})
}

func TestPatternRepo_List_IncludesQuestions(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewPatternRepo(db)

		dept := createTestDepartment(t, db, uniqueCode("CSE"))
		subject := createTestSubject(t, db, dept.ID, "CS303")
		createTestPattern(t, db, subject.ID, "QP-A")
		createTestPattern(t, db, subject.ID, "QP-B")

		lst, err := repo.List(ctx, 50, 0)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(lst), 2)
		for _, p := range lst {
			assert.NotEmpty(t, p.Questions, "pattern %s has no questions", p.ID)
		}
	})
}

func TestPatternRepo_Delete_RemovesQuestions(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewPatternRepo(db)

		dept := createTestDepartment(t, db, uniqueCode("CSE"))
		subject := createTestSubject(t, db, dept.ID, "CS304")
		p := createTestPattern(t, db, subject.ID, "QP-A")

		ok, err := repo.Delete(ctx, p.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		var count int
		err = db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM pattern_questions WHERE pattern_id = $1", p.ID).Scan(&count)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}
