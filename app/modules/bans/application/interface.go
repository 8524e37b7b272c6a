package bansservice

import (
	"context"

	"github.com/ss13hub/banwatch/app/modules/bans/domain"
)

// Lookup is the read API the bans module exposes to its callers.
type Lookup interface {
	// GetBans returns the bans of one player.
	GetBans(ctx context.Context, playerID, adminFilter string, jobBansOnly bool, order domain.Order) ([]domain.Ban, error)

	// GetAdminBans returns every ban issued by one admin.
	GetAdminBans(ctx context.Context, adminID string, jobBansOnly bool, order domain.Order) ([]domain.Ban, error)
}
