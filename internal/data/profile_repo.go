package data

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/edutools/mark-register/internal/data/pgxutil"
	domainauth "github.com/edutools/mark-register/internal/domain/auth"
	apperrors "github.com/edutools/mark-register/internal/errors"
)

// ProfileRepo provides database operations for user profiles. Profiles are
// keyed by the identity provider's stable ID, so the repo also serves as the
// profile store consulted after login.
type ProfileRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewProfileRepo creates a new ProfileRepo with real time provider.
func NewProfileRepo(db *sql.DB) *ProfileRepo {
	return &ProfileRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewProfileRepoWithTimeProvider creates a new ProfileRepo with a custom time provider (useful for tests).
func NewProfileRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ProfileRepo {
	return &ProfileRepo{DB: db, timeProvider: tp}
}

const (
	profileGetByIdentityQuery = `
		SELECT id, username, role, department
		FROM profiles
		WHERE id = $1`

	profileGetByUsernameQuery = `
		SELECT id, username, role, department
		FROM profiles
		WHERE username = $1`

	profileListQuery = `
		SELECT id, username, role, department
		FROM profiles
		ORDER BY username ASC
		LIMIT $1 OFFSET $2`
)

// Create inserts a new profile.
func (r *ProfileRepo) Create(ctx context.Context, profile domainauth.Profile) (*domainauth.Profile, error) {
	if strings.TrimSpace(profile.ID) == "" {
		return nil, apperrors.ValidationField("id", "identity id is required")
	}
	if strings.TrimSpace(profile.Username) == "" {
		return nil, apperrors.ValidationField("username", "username is required")
	}
	role := profile.Role
	if role == domainauth.RoleUnknown {
		role = domainauth.RoleStaff
	}

	now := r.timeProvider.Now().UTC()
	var out domainauth.Profile
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO profiles (id, username, role, department, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $5)
			RETURNING id, username, role, department
		`,
			profile.ID,
			strings.TrimSpace(profile.Username),
			role,
			profile.Department,
			now,
		)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[domainauth.Profile])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByIdentity retrieves a profile by its identity ID. Returned by value so
// callers holding a session snapshot never share the stored struct.
func (r *ProfileRepo) GetByIdentity(ctx context.Context, identityID string) (domainauth.Profile, error) {
	var out domainauth.Profile
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, profileGetByIdentityQuery, identityID)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[domainauth.Profile])
		return err
	})
	if err != nil {
		return domainauth.Profile{}, apperrors.MapDBError(err)
	}
	return out, nil
}

// GetByUsername retrieves a profile by username.
func (r *ProfileRepo) GetByUsername(ctx context.Context, username string) (*domainauth.Profile, error) {
	var out domainauth.Profile
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, profileGetByUsernameQuery, username)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[domainauth.Profile])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// List retrieves profiles with pagination, ordered by username.
func (r *ProfileRepo) List(ctx context.Context, limit, offset int) ([]*domainauth.Profile, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var rowsOut []domainauth.Profile
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, profileListQuery, limit, offset)
		if err != nil {
			return err
		}
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[domainauth.Profile])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	res := make([]*domainauth.Profile, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// UpdateRole changes a profile's role.
func (r *ProfileRepo) UpdateRole(ctx context.Context, identityID string, role domainauth.Role) (*domainauth.Profile, error) {
	if !role.Valid() {
		return nil, apperrors.ValidationField("role", fmt.Sprintf("unknown role %q", role))
	}

	var out domainauth.Profile
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE profiles SET role = $1, updated_at = $2
			WHERE id = $3
			RETURNING id, username, role, department
		`, role, r.timeProvider.Now().UTC(), identityID)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[domainauth.Profile])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Delete deletes a profile by identity ID.
func (r *ProfileRepo) Delete(ctx context.Context, identityID string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, identityID)
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
