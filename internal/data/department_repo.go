package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/edutools/mark-register/internal/data/pgxutil"
	"github.com/edutools/mark-register/internal/domain/model"
	apperrors "github.com/edutools/mark-register/internal/errors"
)

// DepartmentRepo provides database operations for departments.
type DepartmentRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewDepartmentRepo creates a new DepartmentRepo with real time provider.
func NewDepartmentRepo(db *sql.DB) *DepartmentRepo {
	return &DepartmentRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewDepartmentRepoWithTimeProvider creates a new DepartmentRepo with a custom time provider (useful for tests).
func NewDepartmentRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *DepartmentRepo {
	return &DepartmentRepo{DB: db, timeProvider: tp}
}

// SQL query constants for static queries (no dynamic WHERE/ORDER BY).
const (
	departmentGetByIDQuery = `
		SELECT id, name, code, created_at, updated_at
		FROM departments
		WHERE id = $1`

	departmentListQuery = `
		SELECT id, name, code, created_at, updated_at
		FROM departments
		ORDER BY name ASC
		LIMIT $1 OFFSET $2`
)

// Create inserts a new department.
func (r *DepartmentRepo) Create(ctx context.Context, req *model.CreateDepartmentRequest) (*model.Department, error) {
	if req == nil {
		return nil, errors.New("create department request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := r.timeProvider.Now().UTC()
	var out model.Department
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO departments (name, code, created_at, updated_at)
			VALUES ($1, $2, $3, $3)
			RETURNING id, name, code, created_at, updated_at
		`,
			strings.TrimSpace(req.Name),
			strings.TrimSpace(req.Code),
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Department])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves a department by ID.
func (r *DepartmentRepo) GetByID(ctx context.Context, id string) (*model.Department, error) {
	var out model.Department
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, departmentGetByIDQuery, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Department])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// List retrieves departments with pagination, ordered by name.
func (r *DepartmentRepo) List(ctx context.Context, limit, offset int) ([]*model.Department, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var rowsOut []model.Department
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, departmentListQuery, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Department])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}

	res := make([]*model.Department, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update updates fields of a department.
func (r *DepartmentRepo) Update(ctx context.Context, id string, req model.UpdateDepartmentRequest) (*model.Department, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out model.Department
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		setClause, args := r.buildUpdateClause(req)
		if setClause == "" {
			rows, err := conn.Query(ctx, departmentGetByIDQuery, id)
			if err != nil {
				return err
			}
			defer rows.Close()
			var e error
			out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Department])
			return e
		}
		args = append(args, id)
		query := "UPDATE departments SET " + setClause + " WHERE id = $" + strconv.Itoa(len(args)) +
			" RETURNING id, name, code, created_at, updated_at"
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Department])
		return e
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// buildUpdateClause builds the SQL SET clause and args for updating a department.
func (r *DepartmentRepo) buildUpdateClause(req model.UpdateDepartmentRequest) (string, []any) {
	setParts := make([]string, 0, 3)
	args := make([]any, 0, 4)
	nextIdx := func() int { return len(args) + 1 }

	if req.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Name))
	}
	if req.Code != nil {
		setParts = append(setParts, fmt.Sprintf("code = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Code))
	}

	if len(setParts) == 0 {
		return "", nil
	}
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())
	return strings.Join(setParts, ", "), args
}

// Delete deletes a department by ID.
func (r *DepartmentRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
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
