package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	bansmetrics "github.com/ss13hub/banwatch/app/modules/bans/infrastructure/metrics"
	bansdb "github.com/ss13hub/banwatch/app/modules/bans/infrastructure/repositories"
	"github.com/uptrace/bun"
	"golang.org/x/sync/singleflight"
)

// DefaultRefreshInterval is how long the refresher sleeps between reloads.
const DefaultRefreshInterval = time.Hour

// Sizes reports the cache population after a reload.
type Sizes struct {
	Players int `json:"players"`
	Admins  int `json:"admins"`
}

// Refresher reloads the existence cache from the store: once mandatorily at
// startup, then on a fixed interval, and on demand through Refresh. Manual
// refreshes do not reset the interval timer, and concurrent manual refreshes
// collapse into a single store round trip.
type Refresher struct {
	cache    *ExistenceCache
	repo     bansdb.Repository
	db       *bun.DB
	interval time.Duration
	logger   *slog.Logger
	metrics  bansmetrics.Metrics
	group    singleflight.Group
}

func NewRefresher(
	c *ExistenceCache,
	repo bansdb.Repository,
	db *bun.DB,
	interval time.Duration,
	logger *slog.Logger,
	metrics bansmetrics.Metrics,
) *Refresher {
	if logger == nil {
		logger = slog.Default()
	}
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Refresher{
		cache:    c,
		repo:     repo,
		db:       db,
		interval: interval,
		logger:   logger,
		metrics:  metrics,
	}
}

// Refresh reloads both identifier sets and publishes them into the cache.
// It is synchronous and idempotent; callers racing each other share one
// underlying reload.
func (r *Refresher) Refresh(ctx context.Context) (Sizes, error) {
	result, err, _ := r.group.Do("refresh", func() (interface{}, error) {
		return r.reload(ctx)
	})
	if err != nil {
		return Sizes{}, err
	}
	return result.(Sizes), nil
}

func (r *Refresher) reload(ctx context.Context) (Sizes, error) {
	start := time.Now()
	cycleID := uuid.New().String()

	players, err := r.repo.DistinctPlayerIDs(ctx, r.db)
	if err != nil {
		r.metrics.RefreshCompleted("error", time.Since(start))
		return Sizes{}, fmt.Errorf("failed to load distinct player ckeys: %w", err)
	}

	admins, err := r.repo.DistinctAdminIDs(ctx, r.db)
	if err != nil {
		r.metrics.RefreshCompleted("error", time.Since(start))
		return Sizes{}, fmt.Errorf("failed to load distinct admin ckeys: %w", err)
	}

	r.cache.Load(players, admins)

	playerCount, adminCount := r.cache.Sizes()
	r.metrics.RefreshCompleted("success", time.Since(start))
	r.metrics.CacheSizes(playerCount, adminCount)
	r.logger.InfoContext(ctx, "Existence cache reloaded",
		"cycle_id", cycleID,
		"known_players", playerCount,
		"known_admins", adminCount,
		"duration", time.Since(start),
	)

	return Sizes{Players: playerCount, Admins: adminCount}, nil
}

// Run drives the periodic reload until ctx is canceled. Reload failures here
// are logged and counted but never stop the loop; only the mandatory initial
// load (done by the caller before Run) is fatal.
func (r *Refresher) Run(ctx context.Context) {
	r.logger.InfoContext(ctx, "Cache refresher started", "interval", r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.InfoContext(ctx, "Cache refresher stopping")
			return
		case <-ticker.C:
			if _, err := r.Refresh(ctx); err != nil {
				r.logger.ErrorContext(ctx, "Scheduled cache refresh failed", "error", err)
			}
		}
	}
}
