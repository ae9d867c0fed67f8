package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"bridgesched/internal/config"
	apperrors "bridgesched/internal/errors"
	"bridgesched/internal/files"
	"bridgesched/internal/infrastructure"
	"bridgesched/internal/metrics"
	custommw "bridgesched/internal/middleware"
	"bridgesched/internal/services"
	handlers "bridgesched/internal/transport/http"
)

// Version is the reported build version.
const Version = "1.0.0"

// Application is the composed service: configuration, logger, services and
// the HTTP server.
type Application struct {
	Config          *config.Config
	Logger          *slog.Logger
	Router          *chi.Mux
	Server          *http.Server
	TeamService     *services.TeamService
	ScheduleService *services.ScheduleService
	FileStore       *files.Store
	Metrics         *metrics.Collector
}

// NewApplication loads configuration and wires every component.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := infrastructure.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	slog.SetDefault(logger)

	collector := metrics.NewCollector()
	teamService := services.NewTeamService()
	scheduleService, err := services.NewScheduleService(cfg, teamService, collector, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build schedule service: %w", err)
	}

	app := &Application{
		Config:          cfg,
		Logger:          logger,
		TeamService:     teamService,
		ScheduleService: scheduleService,
		FileStore:       files.NewStore(cfg.Paths.OutputDir),
		Metrics:         collector,
	}
	app.Router = app.buildRouter()
	app.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return app, nil
}

func (a *Application) buildRouter() *chi.Mux {
	r := chi.NewRouter()
	errorHandler := apperrors.NewHandler(a.Logger)

	r.Use(custommw.RequestID)
	r.Use(custommw.StructuredLogger(a.Logger))
	r.Use(custommw.Recoverer(a.Logger))
	r.Use(custommw.SecurityHeaders)
	if a.Config.Security.RateLimitEnabled {
		limiter := custommw.NewRateLimiter(
			a.Config.Security.RateLimitRPS,
			a.Config.Security.RateLimitBurst,
			a.Logger,
		)
		r.Use(limiter.Handler)
	}

	r.NotFound(errorHandler.NotFound)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Mount("/health", handlers.NewHealthHandler(Version).Routes())
		r.Mount("/teams", handlers.NewTeamsHandler(a.TeamService, a.Logger).Routes())
		r.Mount("/schedule", handlers.NewScheduleHandler(a.ScheduleService, a.Logger, errorHandler).Routes())
		r.Mount("/files", handlers.NewFilesHandler(a.FileStore, a.Logger, errorHandler).Routes())
	})
	r.Method(http.MethodGet, "/metrics", a.Metrics.Handler())

	return r
}

// Run starts the HTTP server and blocks until SIGINT/SIGTERM, then shuts
// down gracefully within the configured timeout.
func (a *Application) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("server listening",
			slog.String("addr", a.Server.Addr),
			slog.String("version", Version))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-stop:
		a.Logger.Info("shutting down", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()
	if err := a.Server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	a.Logger.Info("server stopped")
	return nil
}
