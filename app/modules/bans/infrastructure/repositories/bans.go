package bansdb

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// BanRepositoryImpl reads the ban table named by trusted configuration.
type BanRepositoryImpl struct {
	table string
}

// NewBanRepository creates a repository over the given ban table. The table
// name must already be validated by the configuration layer.
func NewBanRepository(table string) *BanRepositoryImpl {
	return &BanRepositoryImpl{table: table}
}

// SelectBans runs one filtered lookup and returns the raw matching rows.
// Zero matches is an empty slice, not an error.
func (r *BanRepositoryImpl) SelectBans(ctx context.Context, db bun.IDB, q BanQuery) ([]BanRow, error) {
	var rows []BanRow
	if err := r.buildSelect(db, &rows, q).Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to select bans: %w", err)
	}
	return rows, nil
}

// DistinctPlayerIDs returns every ckey present in the table.
func (r *BanRepositoryImpl) DistinctPlayerIDs(ctx context.Context, db bun.IDB) ([]string, error) {
	return r.distinct(ctx, db, "ckey")
}

// DistinctAdminIDs returns every a_ckey present in the table.
func (r *BanRepositoryImpl) DistinctAdminIDs(ctx context.Context, db bun.IDB) ([]string, error) {
	return r.distinct(ctx, db, "a_ckey")
}

func (r *BanRepositoryImpl) distinct(ctx context.Context, db bun.IDB, column string) ([]string, error) {
	var ids []string
	err := db.NewSelect().
		ColumnExpr("DISTINCT ?", bun.Ident(column)).
		TableExpr("? AS b", bun.Ident(r.table)).
		Scan(ctx, &ids)
	if err != nil {
		return nil, fmt.Errorf("failed to select distinct %s values: %w", column, err)
	}
	return ids, nil
}
