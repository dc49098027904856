package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"runtime/debug"
	"strings"
	"time"

	domainauth "github.com/edutools/mark-register/internal/domain/auth"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// SessionResolver resolves a session ID to a live session. Implemented by the
// auth service.
type SessionResolver interface {
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
}

// Guard returns a middleware that gates a route through the route
// authorization decision function. The requested path drives the decision, so
// paths under /admin additionally require the admin role.
//
// Browser requests get redirects (login with redirect_uri, or dashboard when
// under-privileged); API requests get 401/403 JSON.
func Guard(resolver SessionResolver) func(http.Handler) http.Handler {
	return guardWithPath(resolver, func(r *http.Request) string { return r.URL.Path })
}

// GuardAdmin returns a middleware that gates a route as if it lived under the
// admin prefix, regardless of its actual path. Used for admin-only APIs.
func GuardAdmin(resolver SessionResolver) func(http.Handler) http.Handler {
	return guardWithPath(resolver, func(*http.Request) string { return domainauth.AdminPath })
}

func guardWithPath(resolver SessionResolver, decisionPath func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := getSessionFromRequest(r, resolver)

			in := domainauth.DecideInput{
				Authenticated: session != nil,
				Path:          decisionPath(r),
			}
			if session != nil {
				in.Role = session.Role()
			}

			switch decision := domainauth.Decide(in); decision.Kind {
			case domainauth.Permit:
				ctx := SetSessionInContext(r.Context(), session)
				next.ServeHTTP(w, r.WithContext(ctx))
			case domainauth.RedirectToLogin:
				redirectToLogin(w, r)
			case domainauth.RedirectToDashboard:
				redirectToDashboard(w, r)
			}
		})
	}
}

// getSessionFromRequest retrieves and validates a session from the request.
func getSessionFromRequest(r *http.Request, resolver SessionResolver) *domainauth.Session {
	sessionCookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil
	}

	session, err := resolver.GetSession(r.Context(), sessionCookie.Value)
	if err != nil {
		return nil
	}

	return session
}

// redirectToLogin bounces an unauthenticated request. Browser requests get a
// redirect carrying the requested path; API requests get 401 JSON.
func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	if !isBrowserRequest(r) {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}

	redirectPath := safeRedirectPath(r.URL.RequestURI())
	loginURL := domainauth.LoginPath + "?redirect_uri=" + url.QueryEscape(redirectPath)
	http.Redirect(w, r, loginURL, http.StatusSeeOther)
}

// redirectToDashboard downgrades an authenticated but under-privileged
// request. Browser requests land on the dashboard; API requests get 403 JSON.
func redirectToDashboard(w http.ResponseWriter, r *http.Request) {
	if !isBrowserRequest(r) {
		WriteError(w, ErrorParams{
			Code:    http.StatusForbidden,
			ErrCode: "insufficient_permissions",
			Err:     errors.New("insufficient permissions"),
		})
		return
	}

	http.Redirect(w, r, domainauth.DashboardPath, http.StatusSeeOther)
}

// isBrowserRequest determines if a request is from a browser based on:
// 1. Path prefix - API routes start with /api/
// 2. Accept header - browsers typically accept text/html.
func isBrowserRequest(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return false
	}

	accept := r.Header.Get("Accept")
	if accept == "" {
		// No Accept header, assume browser for non-API routes
		return true
	}
	return strings.Contains(accept, "text/html")
}

// safeRedirectPath ensures the provided redirect is a same-origin relative path
// starting with "/" and not an absolute URL. Returns "/" when invalid.
func safeRedirectPath(candidate string) string {
	if candidate == "" {
		return "/"
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return "/"
	}
	return candidate
}
