package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"taskforge/backend/features/job"
	"taskforge/backend/features/lead"
	"taskforge/backend/features/stats"
	"taskforge/backend/internal/config"
	"taskforge/backend/internal/events"
	"taskforge/backend/internal/middleware"
)

var errNilDependencies = errors.New("nil dependencies")

type App struct {
	Handler http.Handler

	cfg *config.Config
}

func New(
	cfg *config.Config,
	db *sql.DB,
	producer events.Producer,
	logger *slog.Logger,
) (*App, error) {
	if db == nil {
		return nil, fmt.Errorf("app: %w", errNilDependencies)
	}

	notifier := events.NewNotifier(producer)

	// Feature: Lead
	leadRepo := lead.NewPostgresRepo(db)
	leadService := lead.NewService(leadRepo, notifier, logger)
	leadHandler := lead.NewHandler(leadService)

	// Feature: Job
	jobRepo := job.NewPostgresRepo(db)
	jobService := job.NewService(jobRepo, notifier, logger)
	jobHandler := job.NewHandler(jobService)

	// Feature: Stats
	statsHandler := stats.NewHandler(leadRepo, jobRepo)

	cors := middleware.CORS(cfg.CORSAllowedOrigin)
	wrap := func(h http.HandlerFunc) http.Handler {
		return middleware.CorrelationID(cors(h))
	}

	// Routes
	mux := http.NewServeMux()

	mux.Handle("GET /leads", wrap(leadHandler.List))
	mux.Handle("POST /leads", wrap(leadHandler.Create))
	mux.Handle("GET /leads/{id}", wrap(leadHandler.Get))
	mux.Handle("PUT /leads/{id}", wrap(leadHandler.Update))
	mux.Handle("DELETE /leads/{id}", wrap(leadHandler.Delete))

	mux.Handle("GET /jobs", wrap(jobHandler.List))
	mux.Handle("POST /jobs", wrap(jobHandler.Create))
	mux.Handle("GET /jobs/{id}", wrap(jobHandler.Get))
	mux.Handle("PUT /jobs/{id}", wrap(jobHandler.Update))
	mux.Handle("DELETE /jobs/{id}", wrap(jobHandler.Delete))

	mux.Handle("GET /stats", wrap(statsHandler.GetStats))

	// Preflight for every route above.
	mux.Handle("OPTIONS /", wrap(func(w http.ResponseWriter, r *http.Request) {}))

	mux.Handle("GET /health", wrap(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok":true}`))
	}))

	return &App{
		Handler: mux,
		cfg:     cfg,
	}, nil
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.cfg.ServerPort),
		Handler:           a.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", a.cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down server...")
	timeout := time.Duration(a.cfg.ShutdownTimeoutSeconds) * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return <-errCh
}
