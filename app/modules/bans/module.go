package bans

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	bansservice "github.com/ss13hub/banwatch/app/modules/bans/application"
	"github.com/ss13hub/banwatch/app/modules/bans/infrastructure/cache"
	"github.com/ss13hub/banwatch/app/modules/bans/infrastructure/encoding"
	banshandlers "github.com/ss13hub/banwatch/app/modules/bans/infrastructure/handlers"
	bansmetrics "github.com/ss13hub/banwatch/app/modules/bans/infrastructure/metrics"
	bansdb "github.com/ss13hub/banwatch/app/modules/bans/infrastructure/repositories"
	"github.com/ss13hub/banwatch/config"
	"github.com/uptrace/bun"
)

// Module is the bans lookup module: repository, existence cache, refresher,
// lookup service and HTTP surface.
type Module struct {
	Service   *bansservice.Service
	Cache     *cache.ExistenceCache
	Refresher *cache.Refresher

	handlers   *banshandlers.Handlers
	logger     *slog.Logger
	cancelFunc context.CancelFunc
}

// NewModule wires the bans module and performs the mandatory initial cache
// load. A failed initial load is returned as an error; the process must not
// serve lookups without a populated cache.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	db *bun.DB,
	logger *slog.Logger,
	registry prometheus.Registerer,
	httpRouter chi.Router,
) (*Module, error) {
	if logger == nil {
		logger = slog.Default()
	}

	logger.InfoContext(ctx, "Initializing bans module", "ban_table", cfg.Database.BanTable)

	var metrics bansmetrics.Metrics
	if registry != nil {
		metrics = bansmetrics.NewPrometheus(registry)
	} else {
		metrics = bansmetrics.NewNoop()
	}

	repo := bansdb.NewBanRepository(cfg.Database.BanTable)
	existence := cache.NewExistenceCache()
	refresher := cache.NewRefresher(existence, repo, db, cfg.Cache.RefreshInterval, logger, metrics)

	service := bansservice.NewService(
		repo,
		existence,
		encoding.NewWindows1251Codec(),
		db,
		logger,
		metrics,
	)

	handlers := banshandlers.NewHandlers(service, refresher, logger)

	sizes, err := refresher.Refresh(ctx)
	if err != nil {
		return nil, fmt.Errorf("initial existence cache load failed: %w", err)
	}
	logger.InfoContext(ctx, "Initial existence cache load complete",
		"known_players", sizes.Players,
		"known_admins", sizes.Admins,
	)

	if httpRouter != nil {
		limiter := banshandlers.NewIPRateLimiter(10, 20)
		httpRouter.Route("/api", func(r chi.Router) {
			r.Use(banshandlers.RateLimitMiddleware(limiter))

			r.Get("/players/{ckey}/bans", handlers.HandleGetPlayerBans)
			r.Get("/admins/{ackey}/bans", handlers.HandleGetAdminBans)
			r.Post("/cache/refresh", handlers.HandleRefreshCache)
		})
	}

	return &Module{
		Service:   service,
		Cache:     existence,
		Refresher: refresher,
		handlers:  handlers,
		logger:    logger,
	}, nil
}

// Run starts the periodic cache refresher and blocks until ctx is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	m.Refresher.Run(ctx)
}

// Close stops the module's background work.
func (m *Module) Close() {
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
}
