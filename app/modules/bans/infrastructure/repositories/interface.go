package bansdb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository defines the contract for reading the ban table.
type Repository interface {
	// SelectBans runs one filtered lookup and returns the raw matching rows.
	SelectBans(ctx context.Context, db bun.IDB, q BanQuery) ([]BanRow, error)

	// DistinctPlayerIDs returns every ckey that has ever appeared in the table.
	DistinctPlayerIDs(ctx context.Context, db bun.IDB) ([]string, error)

	// DistinctAdminIDs returns every a_ckey that has ever appeared in the table.
	DistinctAdminIDs(ctx context.Context, db bun.IDB) ([]string, error)
}
