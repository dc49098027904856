package httpx

import (
	"html/template"
	"net/http"

	domainauth "github.com/edutools/mark-register/internal/domain/auth"
)

// pageTemplate is the minimal HTML shell for the browser routes. The pages are
// thin; the frontend drives everything through the /api endpoints.
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}} | Mark Register</title>
</head>
<body>
  <div id="app" data-page="{{.Page}}"></div>
  <script src="/static/app.js" defer></script>
</body>
</html>
`))

type pageData struct {
	Title string
	Page  string
}

func pageHandler(title, page string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := pageTemplate.Execute(w, pageData{Title: title, Page: page}); err != nil {
			// Headers are already written; nothing useful left to send.
			return
		}
	}
}

// registerPageRoutes wires the browser-facing pages. Login and register stay
// public; everything else goes through the guard, which sends anonymous
// visitors to the login page with a redirect_uri back to where they were.
func registerPageRoutes(mux *http.ServeMux, authed func(http.Handler) http.Handler) {
	mux.Handle("GET "+domainauth.LoginPath, pageHandler("Sign in", "login"))
	mux.Handle("GET "+domainauth.RegisterPath, pageHandler("Register", "register"))

	mux.Handle("GET /{$}", authed(http.RedirectHandler(domainauth.DashboardPath, http.StatusSeeOther)))
	mux.Handle("GET "+domainauth.DashboardPath, authed(pageHandler("Dashboard", "dashboard")))
	mux.Handle("GET /mark-entry", authed(pageHandler("Mark Entry", "mark-entry")))
	mux.Handle("GET /create-pattern", authed(pageHandler("Create Pattern", "create-pattern")))
	mux.Handle("GET "+domainauth.AdminPath, authed(pageHandler("Administration", "admin")))
}
