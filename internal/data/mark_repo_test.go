package data

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edutools/mark-register/internal/domain/model"
	"github.com/edutools/mark-register/internal/testutil"
)

func markEntry(patternID, studentID string, number, marks int) model.MarkEntry {
	return model.MarkEntry{
		PatternID:      patternID,
		StudentID:      studentID,
		QuestionNumber: number,
		Marks:          marks,
		EnteredBy:      "staff-1",
	}
}

func TestMarkRepo_UpsertBatch_InsertAndReplace(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewMarkRepo(db)

		dept := createTestDepartment(t, db, uniqueCode("CSE"))
		subject := createTestSubject(t, db, dept.ID, "CS401")
		pattern := createTestPattern(t, db, subject.ID, "QP-A")

		written, err := repo.UpsertBatch(ctx, []model.MarkEntry{
			markEntry(pattern.ID, "R-001", 1, 8),
			markEntry(pattern.ID, "R-001", 2, 12),
			markEntry(pattern.ID, "R-002", 1, 5),
		})
		require.NoError(t, err)
		assert.Equal(t, 3, written)

		entries, err := repo.ListByPattern(ctx, pattern.ID)
		require.NoError(t, err)
		require.Len(t, entries, 3)

		// Resubmitting the same key replaces the mark instead of duplicating it.
		written, err = repo.UpsertBatch(ctx, []model.MarkEntry{
			markEntry(pattern.ID, "R-001", 1, 9),
		})
		require.NoError(t, err)
		assert.Equal(t, 1, written)

		byStudent, err := repo.ListByPatternAndStudent(ctx, pattern.ID, "R-001")
		require.NoError(t, err)
		require.Len(t, byStudent, 2)
		assert.Equal(t, 1, byStudent[0].QuestionNumber)
		assert.Equal(t, 9, byStudent[0].Marks)
	})
}

func TestMarkRepo_UpsertBatch_Empty(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewMarkRepo(db)
		written, err := repo.UpsertBatch(context.Background(), nil)
		require.NoError(t, err)
		assert.Zero(t, written)
	})
}

func TestMarkRepo_DeleteByPattern(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewMarkRepo(db)

		dept := createTestDepartment(t, db, uniqueCode("CSE"))
		subject := createTestSubject(t, db, dept.ID, "CS402")
		pattern := createTestPattern(t, db, subject.ID, "QP-A")

		_, err := repo.UpsertBatch(ctx, []model.MarkEntry{
			markEntry(pattern.ID, "R-001", 1, 8),
			markEntry(pattern.ID, "R-002", 1, 6),
		})
		require.NoError(t, err)

		removed, err := repo.DeleteByPattern(ctx, pattern.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, removed)

		entries, err := repo.ListByPattern(ctx, pattern.ID)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
