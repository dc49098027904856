package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/edutools/mark-register/internal/data"
	domainauth "github.com/edutools/mark-register/internal/domain/auth"
	"github.com/edutools/mark-register/internal/service"
)

type setRoleOptions struct {
	Username string
	Role     domainauth.Role
}

func parseSetRoleFlags(args []string) (setRoleOptions, error) {
	fs := flag.NewFlagSet("set-role", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts setRoleOptions
	var role string
	fs.StringVar(&opts.Username, "username", "", "Username of the profile to update (required)")
	fs.StringVar(&role, "role", "", "New role: admin, hod, or staff (required)")

	if err := fs.Parse(args); err != nil {
		return setRoleOptions{}, err
	}

	opts.Username = strings.TrimSpace(opts.Username)
	if opts.Username == "" {
		return setRoleOptions{}, errors.New("--username is required")
	}

	opts.Role = domainauth.Role(strings.ToLower(strings.TrimSpace(role)))
	if !opts.Role.Valid() {
		return setRoleOptions{}, fmt.Errorf("--role must be admin, hod, or staff; got %q", role)
	}

	return opts, nil
}

func runSetRole(cmdCtx *commandContext, args []string) error {
	opts, err := parseSetRoleFlags(args)
	if err != nil {
		return err
	}

	return withDatabase(cmdCtx, time.Minute, func(ctx context.Context, db *sql.DB) error {
		users := service.NewUsersService(service.UsersServiceOptions{Repo: data.NewProfileRepo(db)})

		profile, err := users.GetByUsername(ctx, opts.Username)
		if err != nil {
			return fmt.Errorf("look up profile %q: %w", opts.Username, err)
		}

		updated, err := users.SetRole(ctx, profile.ID, opts.Role)
		if err != nil {
			return fmt.Errorf("set role: %w", err)
		}

		cmdCtx.Logger.InfoContext(ctx, "role updated",
			"username", updated.Username,
			"previous_role", string(profile.Role),
			"role", string(updated.Role))
		return nil
	})
}
