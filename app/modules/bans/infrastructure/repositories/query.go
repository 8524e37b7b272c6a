package bansdb

import (
	"strings"

	"github.com/ss13hub/banwatch/app/modules/bans/domain"
	"github.com/uptrace/bun"
)

// SubjectKind selects the column a lookup is anchored on.
type SubjectKind int

const (
	// SubjectPlayer anchors the lookup on the ckey column.
	SubjectPlayer SubjectKind = iota
	// SubjectAdmin anchors the lookup on the a_ckey column.
	SubjectAdmin
)

// BanQuery describes one ban lookup. Every field maps to a statically
// enumerated clause; subject ids and the admin filter are always bound as
// query parameters. AdminFilter only applies to player-subject queries, which
// matches the two lookup operations the service exposes.
type BanQuery struct {
	Subject     SubjectKind
	SubjectID   string
	AdminFilter string
	JobBansOnly bool
	Order       domain.Order
}

// selectColumns returns the canonical column list for a lookup. The job
// column is only selected for job-scoped queries.
func selectColumns(jobBansOnly bool) []string {
	if jobBansOnly {
		return []string{"bantime", "job", "reason", "duration", "expiration_time", "ckey", "a_ckey", "adminwho", "bantype"}
	}
	return []string{"bantime", "reason", "duration", "expiration_time", "ckey", "a_ckey", "adminwho", "bantype"}
}

// banKinds returns the fixed bantype filter set for a lookup scope. The
// values are chosen here, never taken from request input.
func banKinds(jobBansOnly bool) []string {
	if jobBansOnly {
		return []string{string(domain.KindJobTempBan), string(domain.KindJobPermaBan)}
	}
	return []string{string(domain.KindTempBan), string(domain.KindPermaBan)}
}

// subjectClause returns the WHERE anchor for a subject kind.
func subjectClause(kind SubjectKind) string {
	if kind == SubjectAdmin {
		return "a_ckey = ?"
	}
	return "ckey = ?"
}

// buildSelect compiles a BanQuery into a parameterized bun query against the
// configured table.
func (r *BanRepositoryImpl) buildSelect(db bun.IDB, rows *[]BanRow, q BanQuery) *bun.SelectQuery {
	sel := db.NewSelect().
		Model(rows).
		ModelTableExpr("? AS b", bun.Ident(r.table)).
		Column(selectColumns(q.JobBansOnly)...).
		Where(subjectClause(q.Subject), strings.ToLower(q.SubjectID)).
		Where("bantype IN (?)", bun.In(banKinds(q.JobBansOnly)))

	if q.Subject == SubjectPlayer && q.AdminFilter != "" {
		sel = sel.Where("a_ckey = ?", strings.ToLower(q.AdminFilter))
	}

	if clause, ok := q.Order.Clause(); ok {
		sel = sel.OrderExpr(clause)
	}

	return sel
}
