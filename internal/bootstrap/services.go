package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/edutools/mark-register/config"
	"github.com/edutools/mark-register/internal/data"
	"github.com/edutools/mark-register/internal/service"
)

const (
	// shutdownWaitTimeout is the maximum time to wait for services to stop gracefully.
	shutdownWaitTimeout = 15 * time.Second

	// sessionEventBuffer sizes the audit subscriber's channel. Overflow drops
	// events rather than blocking login.
	sessionEventBuffer = 64
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth        *service.AuthService
	Departments *service.DepartmentService
	Subjects    *service.SubjectService
	Patterns    *service.PatternService
	Marks       *service.MarksService
	Export      *service.ExportService
	Assignments *service.AssignmentService
	Users       *service.UsersService
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// serviceRepositories groups data adapters backing service ports.
type serviceRepositories struct {
	Departments *data.DepartmentRepo
	Subjects    *data.SubjectRepo
	Patterns    *data.PatternRepo
	Marks       *data.MarkRepo
	Assignments *data.AssignmentRepo
	Profiles    *data.ProfileRepo
}

// buildRepositories builds repositories backing service ports; no business rules here.
func buildRepositories(db *sql.DB) *serviceRepositories {
	return &serviceRepositories{
		Departments: data.NewDepartmentRepo(db),
		Subjects:    data.NewSubjectRepo(db),
		Patterns:    data.NewPatternRepo(db),
		Marks:       data.NewMarkRepo(db),
		Assignments: data.NewAssignmentRepo(db),
		Profiles:    data.NewProfileRepo(db),
	}
}

// NewServices initializes all application services.
func NewServices(ctx context.Context, deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service deps require config")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	repos := buildRepositories(deps.DB)

	authSvc, err := BuildAuthService(ctx, AuthDeps{
		Auth:        deps.Config.Auth,
		RedisClient: deps.RedisClient,
		Profiles:    repos.Profiles,
		Logger:      logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build auth service: %w", err)
	}

	marksSvc := service.NewMarksService(service.MarksServiceOptions{
		Marks:    repos.Marks,
		Patterns: repos.Patterns,
	})

	exportSvc, err := buildExportService(marksSvc, deps.Config.Export)
	if err != nil {
		return ServiceContainer{}, err
	}

	return ServiceContainer{
		Auth:        authSvc,
		Departments: service.NewDepartmentService(service.DepartmentServiceOptions{Repo: repos.Departments}),
		Subjects:    service.NewSubjectService(service.SubjectServiceOptions{Repo: repos.Subjects}),
		Patterns: service.NewPatternService(service.PatternServiceOptions{
			Repo:     repos.Patterns,
			Subjects: repos.Subjects,
		}),
		Marks:       marksSvc,
		Export:      exportSvc,
		Assignments: service.NewAssignmentService(service.AssignmentServiceOptions{Repo: repos.Assignments}),
		Users:       service.NewUsersService(service.UsersServiceOptions{Repo: repos.Profiles}),
	}, nil
}

// buildExportService wires the CSV exporter with any configured extra columns.
func buildExportService(marks *service.MarksService, cfg config.ExportConfig) (*service.ExportService, error) {
	parsed, err := cfg.ParseExtraColumns()
	if err != nil {
		return nil, fmt.Errorf("parse export columns: %w", err)
	}
	columns := make([]service.ExportColumn, 0, len(parsed))
	for _, col := range parsed {
		columns = append(columns, service.ExportColumn{
			Header:     col.Header,
			Expression: col.Expression,
		})
	}
	exportSvc, err := service.NewExportService(service.ExportServiceOptions{
		Reports: marks,
		Columns: columns,
	})
	if err != nil {
		return nil, fmt.Errorf("build export service: %w", err)
	}
	return exportSvc, nil
}

// ServiceOrchestrationConfig contains everything needed to run the application.
type ServiceOrchestrationConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// RunServicesWithShutdown starts the HTTP server and the session audit
// consumer, then blocks until a shutdown signal is received.
func RunServicesWithShutdown(cfg *ServiceOrchestrationConfig) error {
	if cfg == nil {
		return errors.New("service orchestration config is required")
	}
	if cfg.Config == nil {
		return errors.New("service orchestration config missing AppConfig")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	serviceCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	auditDone := startSessionAuditConsumer(serviceCtx, cfg.Services.Auth, logger)

	server := StartHTTPServer(&HTTPServerConfig{
		Config:   cfg.Config,
		Services: cfg.Services,
		Logger:   logger,
	})

	return waitForShutdown(shutdownConfig{
		ctx:        serviceCtx,
		cancel:     cancel,
		httpServer: server,
		auditDone:  auditDone,
		logger:     logger,
	})
}

// startSessionAuditConsumer logs session lifecycle events until ctx is
// cancelled. Returns a channel closed when the consumer exits.
func startSessionAuditConsumer(ctx context.Context, auth *service.AuthService, logger *slog.Logger) <-chan struct{} {
	done := make(chan struct{})
	if auth == nil {
		close(done)
		return done
	}

	events, unsubscribe := auth.Events().Subscribe(sessionEventBuffer)

	go func() {
		defer close(done)
		defer unsubscribe()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				logSessionEvent(logger, ev)
			}
		}
	}()

	return done
}

func logSessionEvent(logger *slog.Logger, ev service.SessionEvent) {
	attrs := []any{"event", string(ev.Type), "session_id", ev.SessionID}
	if ev.Session != nil {
		attrs = append(attrs, "username", ev.Session.Identity.Username, "role", string(ev.Session.Role()))
	}
	logger.Info("session event", attrs...)
}

// shutdownConfig contains dependencies for graceful shutdown.
type shutdownConfig struct {
	ctx        context.Context
	cancel     context.CancelFunc
	httpServer *http.Server
	auditDone  <-chan struct{}
	logger     *slog.Logger
}

// waitForShutdown waits for a shutdown signal.
func waitForShutdown(cfg shutdownConfig) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	<-quit
	cfg.logger.Info("shutting down services...")
	cfg.cancel()
	return gracefulStop(cfg)
}

// gracefulStop attempts to gracefully stop all services.
func gracefulStop(cfg shutdownConfig) error {
	if cfg.httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownWaitTimeout)
		defer cancel()

		if err := ShutdownHTTPServer(ShutdownConfig{
			Context: shutdownCtx,
			Server:  cfg.httpServer,
			Logger:  cfg.logger,
		}); err != nil {
			return err
		}
	}

	waitForService(cfg.auditDone, "session audit consumer", cfg.logger)
	return nil
}

// waitForService waits for a service to finish with timeout.
func waitForService(done <-chan struct{}, name string, logger *slog.Logger) {
	if done == nil {
		return
	}
	select {
	case <-done:
		logger.Info(name + " stopped")
	case <-time.After(shutdownWaitTimeout):
		logger.Warn("timeout waiting for " + name + " to stop")
	}
}
