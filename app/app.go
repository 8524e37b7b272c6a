package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ss13hub/banwatch/app/modules/bans"
	"github.com/ss13hub/banwatch/config"
	"github.com/ss13hub/banwatch/db/bundb"
)

const shutdownTimeout = 10 * time.Second

// App wires the service together: configuration, store, bans module and the
// HTTP listener.
type App struct {
	Cfg        *config.Config
	BansModule *bans.Module

	db         *bundb.DBService
	logger     *slog.Logger
	registry   *prometheus.Registry
	httpServer *http.Server
}

// NewApp initializes the application. The bans module performs its mandatory
// initial cache load here, so a nil error means the service is ready to
// answer lookups.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	dbService, err := bundb.NewBunDBService(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database service: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	bansModule, err := bans.NewModule(ctx, cfg, dbService.GetDB(), logger, registry, router)
	if err != nil {
		_ = dbService.Close()
		return nil, fmt.Errorf("failed to initialize bans module: %w", err)
	}

	return &App{
		Cfg:        cfg,
		BansModule: bansModule,
		db:         dbService,
		logger:     logger,
		registry:   registry,
		httpServer: &http.Server{
			Addr:              cfg.HTTP.Address,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

// Run starts the background refresher and the HTTP listener, then blocks
// until ctx is canceled or the listener fails.
func (a *App) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	wg.Add(1)
	go a.BansModule.Run(ctx, &wg)

	serveErr := make(chan error, 1)
	go func() {
		a.logger.InfoContext(ctx, "HTTP listener starting", "address", a.httpServer.Addr)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case err := <-serveErr:
		runErr = fmt.Errorf("http listener failed: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("HTTP shutdown failed", "error", err)
	}

	a.BansModule.Close()
	wg.Wait()

	return runErr
}

// Close releases the store connection pool.
func (a *App) Close() error {
	return a.db.Close()
}
