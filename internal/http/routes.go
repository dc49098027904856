package httpx

import (
	"io/fs"
	"log/slog"
	"net/http"

	markregister "github.com/edutools/mark-register"
	"github.com/edutools/mark-register/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth         *service.AuthService
	Departments  *service.DepartmentService
	Subjects     *service.SubjectService
	Patterns     *service.PatternService
	Marks        *service.MarksService
	Export       *service.ExportService
	Assignments  *service.AssignmentService
	Users        *service.UsersService
	CookieDomain string
	Logger       *slog.Logger // Logger for HTTP errors (optional)
}

// NewRouter creates and configures the HTTP router. Every route below flows
// through the same route authorization decision: public routes bypass it,
// authenticated routes go through Guard, admin-only routes through GuardAdmin.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	authed := Guard(services.Auth)
	adminOnly := GuardAdmin(services.Auth)

	authHandlers := &AuthHandlers{Svc: services.Auth, CookieDomain: services.CookieDomain, Logger: services.Logger}
	registerAuthRoutes(mux, authHandlers)

	registerDepartmentRoutes(mux, &DepartmentHandlers{Svc: services.Departments}, authed, adminOnly)
	registerSubjectRoutes(mux, &SubjectHandlers{Svc: services.Subjects}, &PatternHandlers{Svc: services.Patterns}, authed)
	registerPatternRoutes(mux, &PatternHandlers{Svc: services.Patterns}, &MarkHandlers{Svc: services.Marks, Export: services.Export}, authed)
	registerMarkRoutes(mux, &MarkHandlers{Svc: services.Marks, Export: services.Export}, authed)
	registerAssignmentRoutes(mux, &AssignmentHandlers{Svc: services.Assignments}, authed, adminOnly)
	registerUserRoutes(mux, &UserHandlers{Svc: services.Users}, adminOnly)

	registerPageRoutes(mux, authed)
	mux.Handle("GET /static/", staticHandler())

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	return mux
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("POST /api/auth/login", h.Login)
	mux.HandleFunc("POST /api/auth/register", h.Register)
	mux.HandleFunc("POST /api/auth/logout", h.Logout)
	mux.HandleFunc("GET /api/auth/status", h.Status)
}

// registerDepartmentRoutes wires department CRUD. Reads need a session, writes
// need the admin role.
func registerDepartmentRoutes(mux *http.ServeMux, h *DepartmentHandlers, authed, adminOnly func(http.Handler) http.Handler) {
	mux.Handle("GET /api/departments", authed(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/departments/{id}", authed(http.HandlerFunc(h.Get)))
	mux.Handle("POST /api/departments", adminOnly(http.HandlerFunc(h.Create)))
	mux.Handle("PATCH /api/departments/{id}", adminOnly(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /api/departments/{id}", adminOnly(http.HandlerFunc(h.Delete)))
}

func registerSubjectRoutes(mux *http.ServeMux, h *SubjectHandlers, patterns *PatternHandlers, authed func(http.Handler) http.Handler) {
	mux.Handle("POST /api/subjects", authed(http.HandlerFunc(h.Create)))
	mux.Handle("GET /api/subjects", authed(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/subjects/{id}", authed(http.HandlerFunc(h.Get)))
	mux.Handle("DELETE /api/subjects/{id}", authed(http.HandlerFunc(h.Delete)))
	mux.Handle("GET /api/subjects/{id}/patterns/{code}", authed(http.HandlerFunc(patterns.Lookup)))
}

func registerPatternRoutes(mux *http.ServeMux, h *PatternHandlers, marks *MarkHandlers, authed func(http.Handler) http.Handler) {
	mux.Handle("POST /api/patterns", authed(http.HandlerFunc(h.Create)))
	mux.Handle("GET /api/patterns", authed(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/patterns/{id}", authed(http.HandlerFunc(h.Get)))
	mux.Handle("DELETE /api/patterns/{id}", authed(http.HandlerFunc(h.Delete)))

	mux.Handle("GET /api/patterns/{id}/marks", authed(http.HandlerFunc(marks.Report)))
	mux.Handle("GET /api/patterns/{id}/marks/{student}", authed(http.HandlerFunc(marks.StudentMarks)))
	mux.Handle("DELETE /api/patterns/{id}/marks", authed(http.HandlerFunc(marks.Clear)))
	mux.Handle("GET /api/patterns/{id}/export", authed(http.HandlerFunc(marks.ExportCSV)))
}

func registerMarkRoutes(mux *http.ServeMux, h *MarkHandlers, authed func(http.Handler) http.Handler) {
	mux.Handle("POST /api/marks", authed(http.HandlerFunc(h.Submit)))
}

// registerAssignmentRoutes wires staff subject assignments. Staff can read
// their own; managing assignments is an admin concern.
func registerAssignmentRoutes(mux *http.ServeMux, h *AssignmentHandlers, authed, adminOnly func(http.Handler) http.Handler) {
	mux.Handle("GET /api/assignments/mine", authed(http.HandlerFunc(h.Mine)))
	mux.Handle("GET /api/assignments", adminOnly(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/assignments/{profile}", adminOnly(http.HandlerFunc(h.ForProfile)))
	mux.Handle("PUT /api/assignments", adminOnly(http.HandlerFunc(h.Assign)))
	mux.Handle("DELETE /api/assignments/{id}", adminOnly(http.HandlerFunc(h.Delete)))
}

func registerUserRoutes(mux *http.ServeMux, h *UserHandlers, adminOnly func(http.Handler) http.Handler) {
	mux.Handle("GET /api/users", adminOnly(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/users/{username}", adminOnly(http.HandlerFunc(h.Get)))
	mux.Handle("PUT /api/users/{id}/role", adminOnly(http.HandlerFunc(h.SetRole)))
	mux.Handle("DELETE /api/users/{id}", adminOnly(http.HandlerFunc(h.Delete)))
}

// staticHandler serves the embedded frontend assets.
func staticHandler() http.Handler {
	sub, err := fs.Sub(markregister.StaticFS, "frontend/static")
	if err != nil {
		panic("static assets missing from build: " + err.Error())
	}
	return http.StripPrefix("/static/", http.FileServerFS(sub))
}
