package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/edutools/mark-register/internal/data/pgxutil"
	"github.com/edutools/mark-register/internal/domain/model"
	apperrors "github.com/edutools/mark-register/internal/errors"
)

// MarkRepo provides database operations for mark entries.
type MarkRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewMarkRepo creates a new MarkRepo with real time provider.
func NewMarkRepo(db *sql.DB) *MarkRepo {
	return &MarkRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewMarkRepoWithTimeProvider creates a new MarkRepo with a custom time provider (useful for tests).
func NewMarkRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *MarkRepo {
	return &MarkRepo{DB: db, timeProvider: tp}
}

const (
	markListByPatternQuery = `
		SELECT id, pattern_id, student_id, question_number, marks, entered_by, created_at, updated_at
		FROM marks
		WHERE pattern_id = $1
		ORDER BY student_id, question_number ASC`

	markListByPatternAndStudentQuery = `
		SELECT id, pattern_id, student_id, question_number, marks, entered_by, created_at, updated_at
		FROM marks
		WHERE pattern_id = $1 AND student_id = $2
		ORDER BY question_number ASC`

	markUpsertQuery = `
		INSERT INTO marks (pattern_id, student_id, question_number, marks, entered_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (pattern_id, student_id, question_number)
		DO UPDATE SET marks = EXCLUDED.marks, entered_by = EXCLUDED.entered_by, updated_at = EXCLUDED.updated_at`
)

// UpsertBatch inserts or replaces mark entries keyed by
// (pattern, student, question). All rows are written in one transaction so a
// partially applied submission never becomes visible. Returns the number of
// rows written.
func (r *MarkRepo) UpsertBatch(ctx context.Context, entries []model.MarkEntry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	now := r.timeProvider.Now().UTC()
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{Fn: func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, e := range entries {
			batch.Queue(markUpsertQuery,
				e.PatternID,
				e.StudentID,
				e.QuestionNumber,
				e.Marks,
				e.EnteredBy,
				now,
			)
		}
		return tx.SendBatch(ctx, batch).Close()
	}})
	if err != nil {
		return 0, apperrors.MapDBError(err)
	}
	return len(entries), nil
}

// ListByPattern retrieves every mark entry recorded against a pattern.
func (r *MarkRepo) ListByPattern(ctx context.Context, patternID string) ([]*model.MarkEntry, error) {
	return r.listByQuery(ctx, markListByPatternQuery, patternID)
}

// ListByPatternAndStudent retrieves one student's mark entries for a pattern.
func (r *MarkRepo) ListByPatternAndStudent(ctx context.Context, patternID, studentID string) ([]*model.MarkEntry, error) {
	return r.listByQuery(ctx, markListByPatternAndStudentQuery, patternID, studentID)
}

// DeleteByPattern removes every mark entry for a pattern. Returns the number
// of rows removed.
func (r *MarkRepo) DeleteByPattern(ctx context.Context, patternID string) (int, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM marks WHERE pattern_id = $1`, patternID)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, apperrors.MapDBError(err)
	}
	return int(rows), nil
}

// listByQuery executes a mark-entry list query with variadic args.
func (r *MarkRepo) listByQuery(ctx context.Context, q string, args ...any) ([]*model.MarkEntry, error) {
	var rowsOut []model.MarkEntry
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.MarkEntry])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list marks: %w", err)
	}

	res := make([]*model.MarkEntry, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}
