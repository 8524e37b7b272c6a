package domain

import "time"

// Kind is the ban discriminator stored in the bantype column.
type Kind string

const (
	KindPermaBan    Kind = "PERMABAN"
	KindTempBan     Kind = "TEMPBAN"
	KindJobPermaBan Kind = "JOB_PERMABAN"
	KindJobTempBan  Kind = "JOB_TEMPBAN"
)

// Common holds the fields shared by every ban variant. PlayerID and AdminID
// are canonical lower-cased ckeys; IssuedBy is the free-form display name of
// the admin who placed the ban.
type Common struct {
	PlayerID string
	AdminID  string
	Reason   string
	IssuedBy string
	IssuedAt time.Time
}

// Ban is one record from the ban table, narrowed to one of four variants by
// the bantype discriminator.
type Ban interface {
	Kind() Kind
	Base() Common
}

// PermaBan is an account-wide ban with no expiry.
type PermaBan struct {
	Common
}

func (b PermaBan) Kind() Kind   { return KindPermaBan }
func (b PermaBan) Base() Common { return b.Common }

// TempBan is an account-wide ban that expires.
type TempBan struct {
	Common
	DurationMinutes int
	ExpiresAt       time.Time
}

func (b TempBan) Kind() Kind   { return KindTempBan }
func (b TempBan) Base() Common { return b.Common }

// JobPermaBan bans a single in-game role permanently.
type JobPermaBan struct {
	Common
	Job string
}

func (b JobPermaBan) Kind() Kind   { return KindJobPermaBan }
func (b JobPermaBan) Base() Common { return b.Common }

// JobTempBan bans a single in-game role until it expires.
type JobTempBan struct {
	Common
	Job             string
	DurationMinutes int
	ExpiresAt       time.Time
}

func (b JobTempBan) Kind() Kind   { return KindJobTempBan }
func (b JobTempBan) Base() Common { return b.Common }
