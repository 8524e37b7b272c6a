package bansdb

import (
	"context"

	"github.com/uptrace/bun"
)

// FakeRepository is a fake implementation of Repository for testing.
type FakeRepository struct {
	SelectBansFn        func(ctx context.Context, db bun.IDB, q BanQuery) ([]BanRow, error)
	DistinctPlayerIDsFn func(ctx context.Context, db bun.IDB) ([]string, error)
	DistinctAdminIDsFn  func(ctx context.Context, db bun.IDB) ([]string, error)
}

func (f *FakeRepository) SelectBans(ctx context.Context, db bun.IDB, q BanQuery) ([]BanRow, error) {
	if f.SelectBansFn != nil {
		return f.SelectBansFn(ctx, db, q)
	}
	return nil, nil
}

func (f *FakeRepository) DistinctPlayerIDs(ctx context.Context, db bun.IDB) ([]string, error) {
	if f.DistinctPlayerIDsFn != nil {
		return f.DistinctPlayerIDsFn(ctx, db)
	}
	return nil, nil
}

func (f *FakeRepository) DistinctAdminIDs(ctx context.Context, db bun.IDB) ([]string, error) {
	if f.DistinctAdminIDsFn != nil {
		return f.DistinctAdminIDsFn(ctx, db)
	}
	return nil, nil
}
