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

func createTestSubject(t *testing.T, db *sql.DB, departmentID, code string) *model.Subject {
	t.Helper()
	repo := NewSubjectRepo(db)
	s, err := repo.Create(context.Background(), testutil.NewSubjectRequest(departmentID).
		WithCode(code).
		WithQuestionPaperCodes("QP-A", "QP-B").
		Build())
	require.NoError(t, err)
	return s
}

func TestSubjectRepo_Create_Get_Delete(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewSubjectRepo(db)
		dept := createTestDepartment(t, db, uniqueCode("CSE"))

		s, err := repo.Create(ctx, testutil.NewSubjectRequest(dept.ID).
			WithCode("CS204").
			WithName("Operating Systems").
			WithQuestionPaperCodes("QP-A", " QP-B ", "QP-A").
			Build())
		require.NoError(t, err)
		require.NotEmpty(t, s.ID)
		assert.Equal(t, dept.ID, s.DepartmentID)
		// codes come back trimmed and deduplicated
		assert.Equal(t, []string{"QP-A", "QP-B"}, s.QuestionPaperCodes)

		got, err := repo.GetByID(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, s.Code, got.Code)
		assert.Equal(t, s.QuestionPaperCodes, got.QuestionPaperCodes)

		ok, err := repo.Delete(ctx, s.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		_, err = repo.GetByID(ctx, s.ID)
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestSubjectRepo_Create_MissingDepartment(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewSubjectRepo(db)
		_, err := repo.Create(context.Background(), testutil.NewSubjectRequest("no-such-dept").Build())
		require.Error(t, err)
		assert.True(t, apperrors.IsForeignKey(err))
	})
}

func TestSubjectRepo_List_FiltersByDepartment(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewSubjectRepo(db)

		deptA := createTestDepartment(t, db, uniqueCode("A"))
		deptB := createTestDepartment(t, db, uniqueCode("B"))
		createTestSubject(t, db, deptA.ID, "A101")
		createTestSubject(t, db, deptA.ID, "A102")
		createTestSubject(t, db, deptB.ID, "B101")

		all, err := repo.List(ctx, model.SubjectsListOptions{Limit: 50})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(all), 3)

		onlyA, err := repo.List(ctx, model.SubjectsListOptions{
			Limit:        50,
			DepartmentID: &deptA.ID,
		})
		require.NoError(t, err)
		require.Len(t, onlyA, 2)
		// ordered by code
		assert.Equal(t, "A101", onlyA[0].Code)
		assert.Equal(t, "A102", onlyA[1].Code)
	})
}

func TestSubjectRepo_List_SearchesByName(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewSubjectRepo(db)

		dept := createTestDepartment(t, db, uniqueCode("S"))
		_, err := repo.Create(ctx, testutil.NewSubjectRequest(dept.ID).
			WithCode("CS301").
			WithName("Operating Systems").
			Build())
		require.NoError(t, err)
		_, err = repo.Create(ctx, testutil.NewSubjectRequest(dept.ID).
			WithCode("CS302").
			WithName("Compiler Design").
			Build())
		require.NoError(t, err)

		// Case-insensitive substring match, combined with the department filter.
		search := "operating"
		found, err := repo.List(ctx, model.SubjectsListOptions{
			Limit:        50,
			DepartmentID: &dept.ID,
			Search:       &search,
		})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "CS301", found[0].Code)

		none := "quantum"
		empty, err := repo.List(ctx, model.SubjectsListOptions{
			Limit:        50,
			DepartmentID: &dept.ID,
			Search:       &none,
		})
		require.NoError(t, err)
		assert.Empty(t, empty)
	})
}

func TestSubjectRepo_DeleteDepartment_Cascades(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		subjects := NewSubjectRepo(db)
		departments := NewDepartmentRepo(db)

		dept := createTestDepartment(t, db, uniqueCode("TMP"))
		s := createTestSubject(t, db, dept.ID, "T101")

		ok, err := departments.Delete(ctx, dept.ID)
		require.NoError(t, err)
		require.True(t, ok)

		_, err = subjects.GetByID(ctx, s.ID)
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})
}
