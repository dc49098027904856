package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModeProvider authenticates against the external identity provider.
	AuthModeProvider AuthMode = "provider"
	// AuthModeStatic uses the fixed in-memory credential table (for
	// development and small closed deployments).
	AuthModeStatic AuthMode = "static"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "provider", "static":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: provider, static)", v)
	}
}

// ProviderConfig contains identity provider configuration.
// Used when AUTH_MODE=provider.
type ProviderConfig struct {
	BaseURL      string `env:"BASE_URL"`
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	// EmailDomain synthesizes provider-side addresses from local usernames.
	EmailDomain string `env:"EMAIL_DOMAIN" envDefault:"markregister.local"`
	// DiscoveryURL enables local OIDC token verification when set.
	DiscoveryURL string `env:"DISCOVERY_URL"`
}

// StaticAuthConfig controls the fixed credential table.
// Used when AUTH_MODE=static. Entries are "username:password:role" triples;
// when empty, the default three-account table is used.
type StaticAuthConfig struct {
	Entries    []string      `env:"ENTRIES"     envSeparator:";"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"8h"`
}

// AdminBypassConfig controls the local admin/admin escape hatch that
// short-circuits the credential store. Off by default.
type AdminBypassConfig struct {
	Enabled  bool          `env:"ENABLED"  envDefault:"false"`
	Password string        `env:"PASSWORD" envDefault:"admin"`
	TTL      time.Duration `env:"TTL"      envDefault:"24h"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which credential store backs login.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"static"`

	// Provider configuration (used when Mode=provider).
	Provider ProviderConfig `envPrefix:"AUTH_PROVIDER_"`

	// Static table configuration (used when Mode=static).
	Static StaticAuthConfig `envPrefix:"AUTH_STATIC_"`

	// AdminBypass configuration.
	AdminBypass AdminBypassConfig `envPrefix:"AUTH_ADMIN_BYPASS_"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.Static.SessionTTL <= 0 {
		a.Static.SessionTTL = 8 * time.Hour
	}
	if a.AdminBypass.TTL <= 0 {
		a.AdminBypass.TTL = 24 * time.Hour
	}
}
