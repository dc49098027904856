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

// AssignmentRepo provides database operations for staff assignments.
type AssignmentRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewAssignmentRepo creates a new AssignmentRepo with real time provider.
func NewAssignmentRepo(db *sql.DB) *AssignmentRepo {
	return &AssignmentRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewAssignmentRepoWithTimeProvider creates a new AssignmentRepo with a custom time provider (useful for tests).
func NewAssignmentRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *AssignmentRepo {
	return &AssignmentRepo{DB: db, timeProvider: tp}
}

const (
	assignmentGetByProfileQuery = `
		SELECT id, profile_id, department_id, subject_ids, created_at, updated_at
		FROM staff_assignments
		WHERE profile_id = $1
		ORDER BY created_at ASC`

	assignmentListQuery = `
		SELECT id, profile_id, department_id, subject_ids, created_at, updated_at
		FROM staff_assignments
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
)

// Upsert creates the assignment, or replaces the subject set when the
// (profile, department) pair already exists.
func (r *AssignmentRepo) Upsert(ctx context.Context, req *model.CreateStaffAssignmentRequest) (*model.StaffAssignment, error) {
	if req == nil {
		return nil, errors.New("create assignment request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := r.timeProvider.Now().UTC()
	var out model.StaffAssignment
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO staff_assignments (profile_id, department_id, subject_ids, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $4)
			ON CONFLICT (profile_id, department_id)
			DO UPDATE SET subject_ids = EXCLUDED.subject_ids, updated_at = EXCLUDED.updated_at
			RETURNING id, profile_id, department_id, subject_ids, created_at, updated_at
		`,
			req.ProfileID,
			req.DepartmentID,
			req.SubjectIDs,
			now,
		)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.StaffAssignment])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByProfile retrieves a staff member's assignments across departments.
func (r *AssignmentRepo) GetByProfile(ctx context.Context, profileID string) ([]*model.StaffAssignment, error) {
	return r.listByQuery(ctx, assignmentGetByProfileQuery, profileID)
}

// List retrieves assignments with pagination.
func (r *AssignmentRepo) List(ctx context.Context, limit, offset int) ([]*model.StaffAssignment, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return r.listByQuery(ctx, assignmentListQuery, limit, offset)
}

// Delete deletes an assignment by ID.
func (r *AssignmentRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM staff_assignments WHERE id = $1`, id)
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

// listByQuery executes an assignment list query with variadic args.
func (r *AssignmentRepo) listByQuery(ctx context.Context, q string, args ...any) ([]*model.StaffAssignment, error) {
	var rowsOut []model.StaffAssignment
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.StaffAssignment])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	res := make([]*model.StaffAssignment, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}
