package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/edutools/mark-register/internal/data/pgxutil"
	"github.com/edutools/mark-register/internal/domain/model"
	apperrors "github.com/edutools/mark-register/internal/errors"
)

// PatternRepo provides database operations for question patterns. A pattern
// is stored as a header row in question_patterns plus one row per question in
// pattern_questions, written together in a transaction.
type PatternRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewPatternRepo creates a new PatternRepo with real time provider.
func NewPatternRepo(db *sql.DB) *PatternRepo {
	return &PatternRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewPatternRepoWithTimeProvider creates a new PatternRepo with a custom time provider (useful for tests).
func NewPatternRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *PatternRepo {
	return &PatternRepo{DB: db, timeProvider: tp}
}

const (
	patternGetByIDQuery = `
		SELECT id, subject_id, question_paper_code, created_at
		FROM question_patterns
		WHERE id = $1`

	patternGetBySubjectAndCodeQuery = `
		SELECT id, subject_id, question_paper_code, created_at
		FROM question_patterns
		WHERE subject_id = $1 AND question_paper_code = $2`

	patternListQuery = `
		SELECT id, subject_id, question_paper_code, created_at
		FROM question_patterns
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	patternQuestionsQuery = `
		SELECT number, course_outcome, max_marks
		FROM pattern_questions
		WHERE pattern_id = $1
		ORDER BY number ASC`
)

// Create inserts a new pattern and its question rows.
func (r *PatternRepo) Create(ctx context.Context, req *model.CreateQuestionPatternRequest) (*model.QuestionPattern, error) {
	if req == nil {
		return nil, errors.New("create pattern request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := r.timeProvider.Now().UTC()
	var out model.QuestionPattern
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{Fn: func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			INSERT INTO question_patterns (subject_id, question_paper_code, created_at)
			VALUES ($1, $2, $3)
			RETURNING id, subject_id, question_paper_code, created_at
		`, req.SubjectID, req.QuestionPaperCode, now)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.QuestionPattern])
		if err != nil {
			return err
		}

		batch := &pgx.Batch{}
		for _, q := range req.Questions {
			batch.Queue(`
				INSERT INTO pattern_questions (pattern_id, number, course_outcome, max_marks)
				VALUES ($1, $2, $3, $4)
			`, out.ID, q.Number, q.CourseOutcome, q.MaxMarks)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return err
		}
		out.Questions = append([]model.Question(nil), req.Questions...)
		return nil
	}})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves a pattern by ID, questions included.
func (r *PatternRepo) GetByID(ctx context.Context, id string) (*model.QuestionPattern, error) {
	return r.getByQuery(ctx, patternGetByIDQuery, id)
}

// GetBySubjectAndCode retrieves the pattern published for a subject under a
// question paper code.
func (r *PatternRepo) GetBySubjectAndCode(ctx context.Context, subjectID, questionPaperCode string) (*model.QuestionPattern, error) {
	return r.getByQuery(ctx, patternGetBySubjectAndCodeQuery, subjectID, questionPaperCode)
}

// List retrieves patterns with pagination, questions included.
func (r *PatternRepo) List(ctx context.Context, limit, offset int) ([]*model.QuestionPattern, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var rowsOut []model.QuestionPattern
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, patternListQuery, limit, offset)
		if err != nil {
			return err
		}
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.QuestionPattern])
		if err != nil {
			return err
		}
		return r.attachQuestions(ctx, conn, rowsOut)
	}); err != nil {
		return nil, fmt.Errorf("failed to list patterns: %w", err)
	}

	res := make([]*model.QuestionPattern, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Delete deletes a pattern by ID. Question rows go with it via cascade.
func (r *PatternRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM question_patterns WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, apperrors.MapDBError(err)
	}
	return rows > 0, nil
}

// getByQuery executes a single-pattern query and loads its questions.
func (r *PatternRepo) getByQuery(ctx context.Context, q string, args ...any) (*model.QuestionPattern, error) {
	var out model.QuestionPattern
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.QuestionPattern])
		if err != nil {
			return err
		}
		out.Questions, err = r.loadQuestions(ctx, conn, out.ID)
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// loadQuestions fetches a pattern's question rows ordered by number.
func (r *PatternRepo) loadQuestions(ctx context.Context, conn *pgx.Conn, patternID string) ([]model.Question, error) {
	rows, err := conn.Query(ctx, patternQuestionsQuery, patternID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[model.Question])
}

// attachQuestions loads question rows for every pattern in the slice with a
// single query.
func (r *PatternRepo) attachQuestions(ctx context.Context, conn *pgx.Conn, patterns []model.QuestionPattern) error {
	if len(patterns) == 0 {
		return nil
	}

	ids := make([]string, len(patterns))
	byID := make(map[string]*model.QuestionPattern, len(patterns))
	for i := range patterns {
		ids[i] = patterns[i].ID
		byID[patterns[i].ID] = &patterns[i]
	}

	rows, err := conn.Query(ctx, `
		SELECT pattern_id, number, course_outcome, max_marks
		FROM pattern_questions
		WHERE pattern_id = ANY($1)
		ORDER BY pattern_id, number ASC
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var patternID string
		var q model.Question
		if err := rows.Scan(&patternID, &q.Number, &q.CourseOutcome, &q.MaxMarks); err != nil {
			return err
		}
		if p, ok := byID[patternID]; ok {
			p.Questions = append(p.Questions, q)
		}
	}
	return rows.Err()
}
