package bansservice

import (
	"context"
	"strings"

	"github.com/ss13hub/banwatch/app/modules/bans/domain"
	bansdb "github.com/ss13hub/banwatch/app/modules/bans/infrastructure/repositories"
)

// mapRows converts raw result rows into Ban variants. Rows that cannot be
// mapped (unknown discriminator, undecodable reason) are dropped per row,
// logged, and counted; one bad row never fails the whole result set.
func (s *Service) mapRows(ctx context.Context, rows []bansdb.BanRow) []domain.Ban {
	bans := make([]domain.Ban, 0, len(rows))
	for _, row := range rows {
		ban, ok := s.mapRow(ctx, row)
		if !ok {
			continue
		}
		bans = append(bans, ban)
	}
	return bans
}

func (s *Service) mapRow(ctx context.Context, row bansdb.BanRow) (domain.Ban, bool) {
	reason, err := s.codec.Decode(row.Reason)
	if err != nil {
		s.metrics.RowDropped("reason_decode")
		s.logger.WarnContext(ctx, "Dropping ban row with undecodable reason",
			"ckey", row.Ckey,
			"bantype", row.BanType,
			"error", err,
		)
		return nil, false
	}

	common := domain.Common{
		PlayerID: strings.ToLower(row.Ckey),
		AdminID:  strings.ToLower(row.ACkey),
		Reason:   reason,
		IssuedBy: row.AdminWho,
		IssuedAt: row.BanTime,
	}

	switch domain.Kind(row.BanType) {
	case domain.KindPermaBan:
		return domain.PermaBan{Common: common}, true
	case domain.KindTempBan:
		return domain.TempBan{
			Common:          common,
			DurationMinutes: int(row.Duration.Int64),
			ExpiresAt:       row.ExpirationTime.Time,
		}, true
	case domain.KindJobPermaBan:
		return domain.JobPermaBan{
			Common: common,
			Job:    row.Job.String,
		}, true
	case domain.KindJobTempBan:
		return domain.JobTempBan{
			Common:          common,
			Job:             row.Job.String,
			DurationMinutes: int(row.Duration.Int64),
			ExpiresAt:       row.ExpirationTime.Time,
		}, true
	default:
		s.metrics.RowDropped("unknown_bantype")
		s.logger.WarnContext(ctx, "Dropping ban row with unknown bantype",
			"ckey", row.Ckey,
			"bantype", row.BanType,
		)
		return nil, false
	}
}
