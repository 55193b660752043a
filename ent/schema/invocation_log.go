package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	"github.com/google/uuid"
)

// InvocationLog holds the schema definition for the invocation journal.
// Rows are append-only and hash-chained in seq order; only retention
// deletes them.
type InvocationLog struct {
	ent.Schema
}

// Annotations of the InvocationLog.
func (InvocationLog) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "invocation_log"},
	}
}

// Fields of the InvocationLog.
func (InvocationLog) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("id").
			StorageKey("seq").
			Immutable(),
		field.UUID("entry_id", uuid.UUID{}).
			StorageKey("id").
			Unique().
			Immutable(),
		field.String("operation").
			NotEmpty().
			Immutable(),
		field.String("caller").
			Default("").
			Immutable(), // empty for reads and admin mints
		field.Enum("outcome").
			Values("ok", "failed").
			Immutable(),
		field.String("error_code").
			Default("").
			Immutable(),
		field.Uint64("ledger_time").
			Immutable(),
		field.Time("created_at").
			SchemaType(map[string]string{dialect.SQLite: "integer"}).
			Immutable(), // unix milliseconds on sqlite
		field.String("prev_hash").
			Immutable(),
		field.String("hash").
			Immutable(),
	}
}

// Indexes of the InvocationLog.
func (InvocationLog) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("created_at"),
	}
}
