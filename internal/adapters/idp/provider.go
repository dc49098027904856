package idp

// Package idp adapts a hosted identity provider that issues tokens over the
// OAuth2 password grant and exposes signup/logout/user REST endpoints.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	domainauth "github.com/edutools/mark-register/internal/domain/auth"
	apperrors "github.com/edutools/mark-register/internal/errors"
)

const defaultIdentityTTL = time.Hour

// Provider implements ports.CredentialStore against a remote identity
// provider. Usernames are local; the provider only knows synthesized email
// addresses of the form <username>@<emailDomain>.
type Provider struct {
	config      *oauth2.Config
	baseURL     string
	emailDomain string
	httpClient  *http.Client

	// verifier is set only when a discovery URL is configured; without it
	// the /user endpoint is the source of identity claims.
	verifier *gooidc.IDTokenVerifier
}

// ProviderConfig holds configuration for the identity provider.
type ProviderConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	EmailDomain  string
	DiscoveryURL string       // Optional, enables local token verification
	HTTPClient   *http.Client // Optional, defaults to a 30s-timeout client
}

// NewProvider creates a new identity provider adapter.
func NewProvider(ctx context.Context, config ProviderConfig) (*Provider, error) {
	if config.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}
	if config.EmailDomain == "" {
		return nil, errors.New("email domain is required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	p := &Provider{
		baseURL:     strings.TrimSuffix(config.BaseURL, "/"),
		emailDomain: config.EmailDomain,
		httpClient:  httpClient,
	}

	p.config = &oauth2.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL:  p.baseURL + "/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	if config.DiscoveryURL != "" {
		octx := context.WithValue(ctx, oauth2.HTTPClient, httpClient)
		issuer := strings.TrimSuffix(config.DiscoveryURL, "/")
		issuer = strings.TrimSuffix(issuer, "/.well-known/openid-configuration")
		op, err := gooidc.NewProvider(octx, issuer)
		if err != nil {
			return nil, fmt.Errorf("oidc new provider: %w", err)
		}
		p.verifier = op.Verifier(&gooidc.Config{
			ClientID:          config.ClientID,
			SkipClientIDCheck: config.ClientID == "",
		})
	}

	return p, nil
}

// EmailFor synthesizes the provider-side address for a local username.
func (p *Provider) EmailFor(username string) string {
	return username + "@" + p.emailDomain
}

// Authenticate exchanges the pair for a token via the password grant, then
// resolves identity claims from the token itself or the /user endpoint.
func (p *Provider) Authenticate(ctx context.Context, username, password string) (domainauth.Identity, error) {
	octx := context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	token, err := p.config.PasswordCredentialsToken(octx, p.EmailFor(username), password)
	if err != nil {
		return domainauth.Identity{}, mapTokenError(err)
	}

	claims, err := p.resolveClaims(ctx, token)
	if err != nil {
		return domainauth.Identity{}, err
	}

	expiresAt := time.Now().Add(defaultIdentityTTL)
	if !token.Expiry.IsZero() {
		expiresAt = token.Expiry
	}

	return domainauth.Identity{
		ID:            claims.Subject,
		Username:      username,
		Email:         claims.Email,
		ProviderToken: token.AccessToken,
		ExpiresAt:     expiresAt,
	}, nil
}

// Register creates a provider account for the username. A 2xx response that
// carries no user record means the account needs out-of-band completion, and
// is reported as such rather than as success.
func (p *Provider) Register(ctx context.Context, username, password string) (domainauth.Identity, error) {
	body := map[string]any{
		"email":    p.EmailFor(username),
		"password": password,
		"data":     map[string]string{"username": username},
	}

	var resp signupResponse
	if err := p.postJSON(ctx, "/signup", "", body, &resp); err != nil {
		return domainauth.Identity{}, err
	}

	user := resp.user()
	if user.ID == "" {
		return domainauth.Identity{}, apperrors.RegistrationIncomplete()
	}

	return domainauth.Identity{
		ID:       user.ID,
		Username: username,
		Email:    user.Email,
	}, nil
}

// SignOut revokes the provider token. A missing token is a no-op: the
// session snapshot is the caller's to clear either way.
func (p *Provider) SignOut(ctx context.Context, providerToken string) error {
	if providerToken == "" {
		return nil
	}
	return p.postJSON(ctx, "/logout", providerToken, nil, nil)
}

// identityClaims is the subset of provider user fields the service needs.
type identityClaims struct {
	Subject  string
	Email    string
	Username string
}

func (p *Provider) resolveClaims(ctx context.Context, token *oauth2.Token) (identityClaims, error) {
	if p.verifier != nil {
		if claims, err := p.claimsFromToken(ctx, token.AccessToken); err == nil {
			return claims, nil
		}
		// Fall through to /user on verification failure: opaque tokens are
		// valid even when a verifier is configured.
	}
	return p.claimsFromUserEndpoint(ctx, token.AccessToken)
}

func (p *Provider) claimsFromToken(ctx context.Context, raw string) (identityClaims, error) {
	idTok, err := p.verifier.Verify(ctx, raw)
	if err != nil {
		return identityClaims{}, fmt.Errorf("verify token: %w", err)
	}
	var c struct {
		Email        string `json:"email"`
		UserMetadata struct {
			Username string `json:"username"`
		} `json:"user_metadata"`
	}
	if err := idTok.Claims(&c); err != nil {
		return identityClaims{}, fmt.Errorf("parse token claims: %w", err)
	}
	return identityClaims{
		Subject:  idTok.Subject,
		Email:    c.Email,
		Username: c.UserMetadata.Username,
	}, nil
}

func (p *Provider) claimsFromUserEndpoint(ctx context.Context, accessToken string) (identityClaims, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/user", nil)
	if err != nil {
		return identityClaims{}, fmt.Errorf("build user request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return identityClaims{}, apperrors.ProviderUnavailable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return identityClaims{}, providerHTTPError(resp)
	}

	var user providerUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return identityClaims{}, fmt.Errorf("decode user: %w", err)
	}
	return identityClaims{
		Subject:  user.ID,
		Email:    user.Email,
		Username: user.UserMetadata.Username,
	}, nil
}

// providerUser is the user record shape returned by the provider.
type providerUser struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	UserMetadata struct {
		Username string `json:"username"`
	} `json:"user_metadata"`
}

// signupResponse tolerates both flat and nested user payloads.
type signupResponse struct {
	providerUser
	User *providerUser `json:"user"`
}

func (r signupResponse) user() providerUser {
	if r.User != nil {
		return *r.User
	}
	return r.providerUser
}

func (p *Provider) postJSON(ctx context.Context, path, bearer string, body, out any) error {
	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, buf)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return apperrors.ProviderUnavailable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return providerHTTPError(resp)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// mapTokenError classifies password-grant failures: provider rejections
// become invalid-credential errors carrying the provider's own message,
// everything else is a transport failure.
func mapTokenError(err error) error {
	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) {
		switch rerr.Response.StatusCode {
		case http.StatusBadRequest, http.StatusUnauthorized,
			http.StatusForbidden, http.StatusUnprocessableEntity:
			return apperrors.InvalidCredentials(providerMessage(rerr))
		}
	}
	return apperrors.ProviderUnavailable(err)
}

func providerMessage(rerr *oauth2.RetrieveError) string {
	if rerr.ErrorDescription != "" {
		return rerr.ErrorDescription
	}
	var body struct {
		ErrorDescription string `json:"error_description"`
		Msg              string `json:"msg"`
		Message          string `json:"message"`
	}
	if err := json.Unmarshal(rerr.Body, &body); err == nil {
		for _, m := range []string{body.ErrorDescription, body.Msg, body.Message} {
			if m != "" {
				return m
			}
		}
	}
	return "Invalid login credentials"
}

func providerHTTPError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<10))

	var body struct {
		ErrorDescription string `json:"error_description"`
		Msg              string `json:"msg"`
		Message          string `json:"message"`
	}
	message := ""
	if err := json.Unmarshal(raw, &body); err == nil {
		for _, m := range []string{body.ErrorDescription, body.Msg, body.Message} {
			if m != "" {
				message = m
				break
			}
		}
	}

	switch resp.StatusCode {
	case http.StatusBadRequest, http.StatusUnauthorized,
		http.StatusForbidden, http.StatusUnprocessableEntity:
		if message == "" {
			message = "Invalid login credentials"
		}
		return apperrors.InvalidCredentials(message)
	}
	if message == "" {
		message = resp.Status
	}
	return apperrors.ProviderUnavailable(fmt.Errorf("provider returned %d: %s", resp.StatusCode, message))
}
