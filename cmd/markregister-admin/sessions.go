package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/edutools/mark-register/internal/domain/auth"
)

const sessionKeyPattern = "session:*"

type sessionListOptions struct {
	Username string
	Limit    int
}

type sessionClearOptions struct {
	Username string
	All      bool
	DryRun   bool
	Yes      bool
}

func parseSessionListFlags(args []string) (sessionListOptions, error) {
	fs := flag.NewFlagSet("list-sessions", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts sessionListOptions
	fs.StringVar(&opts.Username, "username", "", "Filter by username")
	fs.IntVar(&opts.Limit, "limit", 50, "Maximum sessions to display (0 for unlimited)")

	if err := fs.Parse(args); err != nil {
		return sessionListOptions{}, err
	}

	opts.Username = strings.TrimSpace(opts.Username)
	if opts.Limit < 0 {
		return sessionListOptions{}, errors.New("--limit must not be negative")
	}
	return opts, nil
}

func parseSessionClearFlags(args []string) (sessionClearOptions, error) {
	fs := flag.NewFlagSet("clear-sessions", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts sessionClearOptions
	fs.StringVar(&opts.Username, "username", "", "Clear sessions for this username (required unless --all)")
	fs.BoolVar(&opts.All, "all", false, "Clear every session")
	fs.BoolVar(&opts.DryRun, "dry-run", false, "Print actions without executing")
	fs.BoolVar(&opts.Yes, "yes", false, "Skip confirmation prompt")

	if err := fs.Parse(args); err != nil {
		return sessionClearOptions{}, err
	}

	opts.Username = strings.TrimSpace(opts.Username)
	if opts.Username == "" && !opts.All {
		return sessionClearOptions{}, errors.New("either --username or --all is required")
	}
	if opts.Username != "" && opts.All {
		return sessionClearOptions{}, errors.New("--username and --all are mutually exclusive")
	}
	return opts, nil
}

func runListSessions(cmdCtx *commandContext, args []string) error {
	opts, err := parseSessionListFlags(args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, 2*time.Minute)
	defer cancel()

	client, err := connectRedisOnly(cmdCtx.Logger, &cmdCtx.Config.Redis)
	if err != nil {
		if errors.Is(err, errRedisNotConfigured) {
			return writeln(os.Stderr, "Redis is not configured")
		}
		return err
	}
	defer func() {
		if cerr := closeInfra(nil, client); cerr != nil {
			cmdCtx.Logger.Warn("close redis failed", "error", cerr)
		}
	}()

	entries, err := scanSessions(ctx, client, opts.Username, opts.Limit)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		return writeln(os.Stdout, "(no sessions found)")
	}
	return printSessionEntries(entries)
}

func runClearSessions(cmdCtx *commandContext, args []string) error {
	opts, err := parseSessionClearFlags(args)
	if err != nil {
		return err
	}

	target := "all sessions"
	if opts.Username != "" {
		target = fmt.Sprintf("sessions for user %q", opts.Username)
	}
	if confirmErr := confirmAction(opts.DryRun || opts.Yes, "clear sessions", target); confirmErr != nil {
		return confirmErr
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, 2*time.Minute)
	defer cancel()

	client, err := connectRedisOnly(cmdCtx.Logger, &cmdCtx.Config.Redis)
	if err != nil {
		if errors.Is(err, errRedisNotConfigured) {
			return writeln(os.Stderr, "Redis is not configured")
		}
		return err
	}
	defer func() {
		if cerr := closeInfra(nil, client); cerr != nil {
			cmdCtx.Logger.Warn("close redis failed", "error", cerr)
		}
	}()

	entries, err := scanSessions(ctx, client, opts.Username, 0)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return writeln(os.Stdout, "No matching sessions found in Redis")
	}

	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		keys = append(keys, entry.Key)
	}

	if opts.DryRun {
		return writef(os.Stdout, "Dry-run: would delete %d sessions\n", len(keys))
	}

	deleted, err := client.Del(ctx, keys...).Result()
	if err != nil {
		return fmt.Errorf("delete sessions: %w", err)
	}
	return writef(os.Stdout, "Deleted %d/%d sessions\n", deleted, len(keys))
}

type sessionEntry struct {
	Key      string
	Username string
	Role     string
	Kind     string
	TTL      time.Duration
}

func scanSessions(
	ctx context.Context,
	client redis.UniversalClient,
	username string,
	limit int,
) ([]sessionEntry, error) {
	var entries []sessionEntry

	iter := client.Scan(ctx, 0, sessionKeyPattern, 100).Iterator()
	for iter.Next(ctx) {
		if limit > 0 && len(entries) >= limit {
			break
		}
		key := iter.Val()

		entry, ok, err := loadSessionEntry(ctx, client, key)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if username != "" && entry.Username != username {
			continue
		}
		entries = append(entries, entry)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan: %w", err)
	}

	return entries, nil
}

func loadSessionEntry(
	ctx context.Context,
	client redis.UniversalClient,
	key string,
) (sessionEntry, bool, error) {
	raw, err := client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		// Key expired between scan and get.
		return sessionEntry{}, false, nil
	}
	if err != nil {
		return sessionEntry{}, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	var session domainauth.Session
	if unmarshalErr := json.Unmarshal(raw, &session); unmarshalErr != nil {
		return sessionEntry{Key: key, Username: "(undecodable)"}, true, nil
	}

	ttl, err := client.TTL(ctx, key).Result()
	if err != nil {
		ttl = 0
	}

	return sessionEntry{
		Key:      key,
		Username: session.Identity.Username,
		Role:     string(session.Role()),
		Kind:     string(session.Kind),
		TTL:      ttl,
	}, true, nil
}

func printSessionEntries(entries []sessionEntry) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writeln(w, "Key\tUsername\tRole\tKind\tTTL"); err != nil {
		return fmt.Errorf("write session header: %w", err)
	}
	for _, entry := range entries {
		if err := writef(w, "%s\t%s\t%s\t%s\t%s\n",
			entry.Key, entry.Username, entry.Role, entry.Kind, renderTTL(entry.TTL)); err != nil {
			return fmt.Errorf("write session row: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush session table: %w", err)
	}
	return writef(os.Stdout, "\nTotal sessions: %d\n", len(entries))
}

func renderTTL(d time.Duration) string {
	switch {
	case d == -1*time.Second:
		return "no expiry"
	case d == -2*time.Second:
		return "key missing"
	default:
		return d.String()
	}
}
