package banshandlers

import (
	"context"

	"github.com/ss13hub/banwatch/app/modules/bans/domain"
	"github.com/ss13hub/banwatch/app/modules/bans/infrastructure/cache"
)

type fakeLookup struct {
	GetBansFn      func(ctx context.Context, playerID, adminFilter string, jobBansOnly bool, order domain.Order) ([]domain.Ban, error)
	GetAdminBansFn func(ctx context.Context, adminID string, jobBansOnly bool, order domain.Order) ([]domain.Ban, error)
}

func (f *fakeLookup) GetBans(ctx context.Context, playerID, adminFilter string, jobBansOnly bool, order domain.Order) ([]domain.Ban, error) {
	if f.GetBansFn != nil {
		return f.GetBansFn(ctx, playerID, adminFilter, jobBansOnly, order)
	}
	return []domain.Ban{}, nil
}

func (f *fakeLookup) GetAdminBans(ctx context.Context, adminID string, jobBansOnly bool, order domain.Order) ([]domain.Ban, error) {
	if f.GetAdminBansFn != nil {
		return f.GetAdminBansFn(ctx, adminID, jobBansOnly, order)
	}
	return []domain.Ban{}, nil
}

type fakeRefresher struct {
	RefreshFn func(ctx context.Context) (cache.Sizes, error)
}

func (f *fakeRefresher) Refresh(ctx context.Context) (cache.Sizes, error) {
	if f.RefreshFn != nil {
		return f.RefreshFn(ctx)
	}
	return cache.Sizes{}, nil
}
