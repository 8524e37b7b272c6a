package bansdb

import (
	"database/sql"
	"time"

	"github.com/uptrace/bun"
)

// BanRow is one raw row of the ban table. Reason is kept as the stored bytes;
// the legacy single-byte encoding is decoded at the application layer, not
// here. Duration, expiration_time and job are NULL for the variants that do
// not carry them.
type BanRow struct {
	bun.BaseModel `bun:"table:ban,alias:b"`

	BanTime        time.Time      `bun:"bantime"`
	Job            sql.NullString `bun:"job"`
	Reason         []byte         `bun:"reason"`
	Duration       sql.NullInt64  `bun:"duration"`
	ExpirationTime sql.NullTime   `bun:"expiration_time"`
	Ckey           string         `bun:"ckey"`
	ACkey          string         `bun:"a_ckey"`
	AdminWho       string         `bun:"adminwho"`
	BanType        string         `bun:"bantype"`
}
