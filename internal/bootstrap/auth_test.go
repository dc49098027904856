package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/redis/go-redis/v9"

	"github.com/edutools/mark-register/config"
	domainauth "github.com/edutools/mark-register/internal/domain/auth"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testRedisClient returns a client that is never dialed. Construction does not
// connect, which is all these wiring tests need.
func testRedisClient() redis.UniversalClient {
	return redis.NewClient(&redis.Options{Addr: "localhost:0"})
}

func TestBuildAuthService_RequiresRedis(t *testing.T) {
	_, err := BuildAuthService(context.Background(), AuthDeps{
		Auth:   config.AuthConfig{Mode: config.AuthModeStatic},
		Logger: testLogger(),
	})
	if err == nil {
		t.Fatal("expected error without redis client, got none")
	}
}

func TestBuildAuthService_StaticMode(t *testing.T) {
	svc, err := BuildAuthService(context.Background(), AuthDeps{
		Auth: config.AuthConfig{
			Mode:   config.AuthModeStatic,
			Static: config.StaticAuthConfig{Entries: []string{"alice:secret1:staff"}},
		},
		RedisClient: testRedisClient(),
		Logger:      testLogger(),
	})
	if err != nil {
		t.Fatalf("BuildAuthService: %v", err)
	}
	if svc == nil {
		t.Fatal("BuildAuthService returned nil service")
	}
}

func TestBuildAuthService_StaticMode_EmptyEntriesUseDefaults(t *testing.T) {
	svc, err := BuildAuthService(context.Background(), AuthDeps{
		Auth:        config.AuthConfig{Mode: config.AuthModeStatic},
		RedisClient: testRedisClient(),
		Logger:      testLogger(),
	})
	if err != nil {
		t.Fatalf("BuildAuthService: %v", err)
	}
	if svc == nil {
		t.Fatal("BuildAuthService returned nil service")
	}
}

func TestBuildAuthService_StaticMode_BadEntryFails(t *testing.T) {
	_, err := BuildAuthService(context.Background(), AuthDeps{
		Auth: config.AuthConfig{
			Mode:   config.AuthModeStatic,
			Static: config.StaticAuthConfig{Entries: []string{"alice:secret1:superuser"}},
		},
		RedisClient: testRedisClient(),
		Logger:      testLogger(),
	})
	if err == nil {
		t.Fatal("expected error for invalid role, got none")
	}
}

func TestBuildAuthService_ProviderMode_RequiresBaseURL(t *testing.T) {
	_, err := BuildAuthService(context.Background(), AuthDeps{
		Auth:        config.AuthConfig{Mode: config.AuthModeProvider},
		RedisClient: testRedisClient(),
		Logger:      testLogger(),
	})
	if err == nil {
		t.Fatal("expected error without provider base URL, got none")
	}
}

func TestBuildAuthService_ProviderMode_RequiresProfileRepo(t *testing.T) {
	_, err := BuildAuthService(context.Background(), AuthDeps{
		Auth: config.AuthConfig{
			Mode: config.AuthModeProvider,
			Provider: config.ProviderConfig{
				BaseURL: "https://idp.example.edu/auth/v1",
			},
		},
		RedisClient: testRedisClient(),
		Logger:      testLogger(),
	})
	if err == nil {
		t.Fatal("expected error without profile repository, got none")
	}
}

func TestParseStaticEntries(t *testing.T) {
	entries, err := parseStaticEntries([]string{
		"alice:secret1:staff",
		" bob : secret2 : HOD ",
		"",
		"root:toor:admin",
	})
	if err != nil {
		t.Fatalf("parseStaticEntries: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].Username != "alice" || entries[0].Role != domainauth.RoleStaff {
		t.Errorf("entries[0] = %+v", entries[0])
	}
	if entries[1].Username != "bob" || entries[1].Role != domainauth.RoleHOD {
		t.Errorf("entries[1] = %+v", entries[1])
	}
	if entries[2].Role != domainauth.RoleAdmin {
		t.Errorf("entries[2] = %+v", entries[2])
	}
}

func TestParseStaticEntries_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		entry string
	}{
		{"missing role", "alice:secret1"},
		{"too many parts", "alice:sec:ret:staff"},
		{"unknown role", "alice:secret1:root"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseStaticEntries([]string{tt.entry}); err == nil {
				t.Errorf("parseStaticEntries(%q) expected error, got none", tt.entry)
			}
		})
	}
}
