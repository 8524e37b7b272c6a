package bansservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ss13hub/banwatch/app/modules/bans/domain"
	"github.com/ss13hub/banwatch/app/modules/bans/infrastructure/cache"
	"github.com/ss13hub/banwatch/app/modules/bans/infrastructure/encoding"
	bansmetrics "github.com/ss13hub/banwatch/app/modules/bans/infrastructure/metrics"
	bansdb "github.com/ss13hub/banwatch/app/modules/bans/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// Sentinel errors for the lookup operations. "Unknown" means the identifier
// has never appeared in the ban table at all, which is a different condition
// from a known identifier with zero matching bans.
var (
	ErrUnknownPlayer = errors.New("player ckey has never appeared in the ban table")
	ErrUnknownAdmin  = errors.New("admin ckey has never appeared in the ban table")
)

const (
	subjectPlayer = "player"
	subjectAdmin  = "admin"
)

// Service answers ban lookups. Identifier existence is settled against the
// in-memory cache before any store query; store failures during a lookup
// degrade to an empty result (logged and counted) so callers get the same
// shape for "no bans" and "store trouble".
type Service struct {
	repo    bansdb.Repository
	cache   *cache.ExistenceCache
	codec   encoding.ReasonCodec
	db      *bun.DB
	logger  *slog.Logger
	metrics bansmetrics.Metrics
}

// NewService creates a new lookup Service.
func NewService(
	repo bansdb.Repository,
	existence *cache.ExistenceCache,
	codec encoding.ReasonCodec,
	db *bun.DB,
	logger *slog.Logger,
	metrics bansmetrics.Metrics,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = bansmetrics.NewNoop()
	}
	return &Service{
		repo:    repo,
		cache:   existence,
		codec:   codec,
		db:      db,
		logger:  logger,
		metrics: metrics,
	}
}

// GetBans returns the bans of one player, optionally narrowed to a single
// issuing admin and to job bans only. It fails with ErrUnknownPlayer before
// touching the store when the ckey was never seen.
func (s *Service) GetBans(ctx context.Context, playerID, adminFilter string, jobBansOnly bool, order domain.Order) ([]domain.Ban, error) {
	if !s.cache.ContainsPlayer(playerID) {
		s.metrics.UnknownSubject(subjectPlayer)
		return nil, fmt.Errorf("ckey %q: %w", playerID, ErrUnknownPlayer)
	}

	return s.lookup(ctx, subjectPlayer, bansdb.BanQuery{
		Subject:     bansdb.SubjectPlayer,
		SubjectID:   playerID,
		AdminFilter: adminFilter,
		JobBansOnly: jobBansOnly,
		Order:       order,
	}), nil
}

// GetAdminBans returns every ban issued by one admin. It fails with
// ErrUnknownAdmin before touching the store when the a_ckey was never seen.
func (s *Service) GetAdminBans(ctx context.Context, adminID string, jobBansOnly bool, order domain.Order) ([]domain.Ban, error) {
	if !s.cache.ContainsAdmin(adminID) {
		s.metrics.UnknownSubject(subjectAdmin)
		return nil, fmt.Errorf("a_ckey %q: %w", adminID, ErrUnknownAdmin)
	}

	return s.lookup(ctx, subjectAdmin, bansdb.BanQuery{
		Subject:     bansdb.SubjectAdmin,
		SubjectID:   adminID,
		JobBansOnly: jobBansOnly,
		Order:       order,
	}), nil
}

func (s *Service) lookup(ctx context.Context, subject string, q bansdb.BanQuery) []domain.Ban {
	start := time.Now()

	rows, err := s.repo.SelectBans(ctx, s.db, q)
	if err != nil {
		s.metrics.QueryError(subject)
		s.logger.ErrorContext(ctx, "Ban lookup query failed, returning empty result",
			"subject", subject,
			"subject_id", q.SubjectID,
			"job_bans_only", q.JobBansOnly,
			"error", err,
		)
		return []domain.Ban{}
	}

	bans := s.mapRows(ctx, rows)
	s.metrics.LookupCompleted(subject, time.Since(start), len(bans))
	return bans
}
