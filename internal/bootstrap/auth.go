package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/edutools/mark-register/config"
	"github.com/edutools/mark-register/internal/adapters/idp"
	redisadapter "github.com/edutools/mark-register/internal/adapters/redis"
	"github.com/edutools/mark-register/internal/adapters/statictable"
	"github.com/edutools/mark-register/internal/data"
	domainauth "github.com/edutools/mark-register/internal/domain/auth"
	"github.com/edutools/mark-register/internal/service"
)

// AuthDeps contains dependencies for building the auth service.
type AuthDeps struct {
	Auth        config.AuthConfig
	RedisClient redis.UniversalClient
	// Profiles backs role lookups in provider mode. Unused in static mode,
	// where the credential table doubles as the profile source.
	Profiles *data.ProfileRepo
	Logger   *slog.Logger
}

// BuildAuthService creates an auth service based on the configured auth mode.
func BuildAuthService(ctx context.Context, deps AuthDeps) (*service.AuthService, error) {
	if deps.RedisClient == nil {
		return nil, fmt.Errorf("auth service requires a redis client for session storage")
	}

	sessionStore := redisadapter.NewSessionStoreWithPrefix(deps.RedisClient, "session:")

	stores := service.AuthStores{Sessions: sessionStore}

	switch deps.Auth.Mode {
	case config.AuthModeStatic:
		entries, err := parseStaticEntries(deps.Auth.Static.Entries)
		if err != nil {
			return nil, err
		}
		if len(entries) == 0 {
			entries = statictable.DefaultEntries()
		}
		table := statictable.New(entries, statictable.WithSessionTTL(deps.Auth.Static.SessionTTL))
		stores.Credentials = table
		stores.Profiles = table

	case config.AuthModeProvider:
		provCfg := deps.Auth.Provider
		if provCfg.BaseURL == "" {
			return nil, fmt.Errorf("AUTH_PROVIDER_BASE_URL is required when AUTH_MODE=provider")
		}
		if deps.Profiles == nil {
			return nil, fmt.Errorf("provider auth mode requires the profile repository")
		}
		provider, err := idp.NewProvider(ctx, idp.ProviderConfig{
			BaseURL:      provCfg.BaseURL,
			ClientID:     provCfg.ClientID,
			ClientSecret: provCfg.ClientSecret,
			EmailDomain:  provCfg.EmailDomain,
			DiscoveryURL: provCfg.DiscoveryURL,
		})
		if err != nil {
			return nil, fmt.Errorf("build identity provider: %w", err)
		}
		stores.Credentials = provider
		stores.Profiles = deps.Profiles
		stores.ProfileWriter = deps.Profiles

	default:
		return nil, fmt.Errorf("unsupported auth mode %q", deps.Auth.Mode)
	}

	return service.NewAuthService(service.AuthServiceOptions{
		Stores: stores,
		Config: service.AuthConfig{
			AdminBypassEnabled:  deps.Auth.AdminBypass.Enabled,
			AdminBypassPassword: deps.Auth.AdminBypass.Password,
			SyntheticSessionTTL: deps.Auth.AdminBypass.TTL,
		},
		Logger: deps.Logger,
	}), nil
}

// parseStaticEntries parses "username:password:role" triples.
func parseStaticEntries(raw []string) ([]statictable.Entry, error) {
	entries := make([]statictable.Entry, 0, len(raw))
	for _, item := range raw {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		parts := strings.Split(item, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("static auth entry %q: want username:password:role", item)
		}
		role := domainauth.Role(strings.ToLower(strings.TrimSpace(parts[2])))
		if !role.Valid() {
			return nil, fmt.Errorf("static auth entry %q: invalid role %q", item, parts[2])
		}
		entries = append(entries, statictable.Entry{
			Username: strings.TrimSpace(parts[0]),
			Password: parts[1],
			Role:     role,
		})
	}
	return entries, nil
}
