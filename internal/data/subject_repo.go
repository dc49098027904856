package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/edutools/mark-register/internal/data/database"
	"github.com/edutools/mark-register/internal/data/pgxutil"
	"github.com/edutools/mark-register/internal/domain/model"
	apperrors "github.com/edutools/mark-register/internal/errors"
)

const (
	sortDirAsc  = "ASC"
	sortDirDesc = "DESC"
)

// SubjectRepo provides database operations for subjects.
type SubjectRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewSubjectRepo creates a new SubjectRepo with real time provider.
func NewSubjectRepo(db *sql.DB) *SubjectRepo {
	return &SubjectRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewSubjectRepoWithTimeProvider creates a new SubjectRepo with a custom time provider (useful for tests).
func NewSubjectRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *SubjectRepo {
	return &SubjectRepo{DB: db, timeProvider: tp}
}

const subjectGetByIDQuery = `
	SELECT id, department_id, code, name, question_paper_codes, created_at, updated_at
	FROM subjects
	WHERE id = $1`

// subjectColumns returns the standard column list for subject queries.
func subjectColumns() []string {
	return []string{
		"id",
		"department_id",
		"code",
		"name",
		"question_paper_codes",
		"created_at",
		"updated_at",
	}
}

// Create inserts a new subject.
func (r *SubjectRepo) Create(ctx context.Context, req *model.CreateSubjectRequest) (*model.Subject, error) {
	if req == nil {
		return nil, errors.New("create subject request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := r.timeProvider.Now().UTC()
	var out model.Subject
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO subjects (department_id, code, name, question_paper_codes, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $5)
			RETURNING id, department_id, code, name, question_paper_codes, created_at, updated_at
		`,
			req.DepartmentID,
			strings.TrimSpace(req.Code),
			strings.TrimSpace(req.Name),
			req.NormalizedQuestionPaperCodes(),
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Subject])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves a subject by ID.
func (r *SubjectRepo) GetByID(ctx context.Context, id string) (*model.Subject, error) {
	var out model.Subject
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, subjectGetByIDQuery, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Subject])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// List retrieves subjects with optional department filtering.
func (r *SubjectRepo) List(ctx context.Context, opts model.SubjectsListOptions) ([]*model.Subject, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	query, args := database.BuildListQuery(r.buildSubjectQueryOptions(opts, limit, offset))

	var rowsOut []model.Subject
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Subject])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}

	res := make([]*model.Subject, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// buildSubjectQueryOptions builds query options for subject listing.
func (r *SubjectRepo) buildSubjectQueryOptions(
	opts model.SubjectsListOptions,
	limit, offset int,
) *database.ListQueryOptions {
	queryOpts := []database.ListQueryOption{
		database.WithColumns(subjectColumns()...),
		database.WithLimit(limit),
		database.WithOffset(offset),
		database.WithOrderBy("code", sortDirAsc),
	}

	if opts.DepartmentID != nil && strings.TrimSpace(*opts.DepartmentID) != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("department_id", database.Equal, strings.TrimSpace(*opts.DepartmentID)),
		))
	}
	if opts.Search != nil && strings.TrimSpace(*opts.Search) != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("name", database.ILike, "%"+strings.TrimSpace(*opts.Search)+"%"),
		))
	}

	return database.NewListQueryOptions("subjects", queryOpts...)
}

// Delete deletes a subject by ID.
func (r *SubjectRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM subjects WHERE id = $1`, id)
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
