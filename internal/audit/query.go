package audit

import (
	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const journalTable = "invocation_log"

// journalColumns is the select order shared by both SQL stores' scanners.
var journalColumns = []string{
	"seq", "id", "operation", "caller", "outcome", "error_code",
	"ledger_time", "created_at", "prev_hash", "hash",
}

// journalQueries renders the journal statements for one SQL dialect.
type journalQueries struct {
	dialect string
}

var (
	pgQueries     = journalQueries{dialect: dialect.Postgres}
	sqliteQueries = journalQueries{dialect: dialect.SQLite}
)

func (q journalQueries) builder() *entsql.DialectBuilder {
	return entsql.Dialect(q.dialect)
}

// head selects the hash of the newest entry.
func (q journalQueries) head() (string, []any) {
	b := q.builder()
	return b.Select("hash").
		From(b.Table(journalTable)).
		OrderBy(entsql.Desc("seq")).
		Limit(1).
		Query()
}

// insert adds one sealed entry. values follow journalColumns without seq.
// On Postgres the statement returns the assigned seq; SQLite callers read
// it from LastInsertId.
func (q journalQueries) insert(values ...any) (string, []any) {
	ins := q.builder().Insert(journalTable).
		Columns(journalColumns[1:]...).
		Values(values...)
	if q.dialect == dialect.Postgres {
		ins.Returning("seq")
	}
	return ins.Query()
}

// newest selects up to limit entries, newest first.
func (q journalQueries) newest(limit int) (string, []any) {
	b := q.builder()
	return b.Select(journalColumns...).
		From(b.Table(journalTable)).
		OrderBy(entsql.Desc("seq")).
		Limit(limit).
		Query()
}

// ascending selects every entry in chain order.
func (q journalQueries) ascending() (string, []any) {
	b := q.builder()
	return b.Select(journalColumns...).
		From(b.Table(journalTable)).
		OrderBy(entsql.Asc("seq")).
		Query()
}

// deleteBefore removes entries created before cutoff.
func (q journalQueries) deleteBefore(cutoff any) (string, []any) {
	return q.builder().Delete(journalTable).
		Where(entsql.LT("created_at", cutoff)).
		Query()
}
