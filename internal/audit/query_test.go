package audit

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ezcrow.dev/crowdfund/ent/schema"
)

func TestJournalColumnsMatchSchema(t *testing.T) {
	var keys []string
	for _, f := range (schema.InvocationLog{}).Fields() {
		d := f.Descriptor()
		key := d.StorageKey
		if key == "" {
			key = d.Name
		}
		keys = append(keys, key)
	}
	assert.Equal(t, journalColumns, keys)
}

func TestJournalQueries(t *testing.T) {
	cutoff := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		queries     journalQueries
		placeholder string
		returning   bool
	}{
		{name: "postgres", queries: pgQueries, placeholder: "$1", returning: true},
		{name: "sqlite", queries: sqliteQueries, placeholder: "?", returning: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := tt.queries.head()
			assert.Contains(t, query, "invocation_log")
			assert.Contains(t, query, "DESC")
			assert.Contains(t, query, "LIMIT")

			values := make([]any, len(journalColumns)-1)
			query, args = tt.queries.insert(values...)
			require.True(t, strings.HasPrefix(query, "INSERT INTO"), query)
			assert.Contains(t, query, tt.placeholder)
			assert.Len(t, args, len(journalColumns)-1)
			assert.Equal(t, tt.returning, strings.Contains(query, "RETURNING"), query)

			query, args = tt.queries.newest(25)
			for _, col := range journalColumns {
				assert.Contains(t, query, col)
			}
			assert.Contains(t, query, "LIMIT 25")
			assert.Empty(t, args)

			query, _ = tt.queries.ascending()
			assert.Contains(t, query, "ASC")
			assert.NotContains(t, query, "LIMIT")

			query, args = tt.queries.deleteBefore(cutoff)
			require.True(t, strings.HasPrefix(query, "DELETE FROM"), query)
			assert.Contains(t, query, "created_at")
			assert.Contains(t, query, tt.placeholder)
			assert.Equal(t, []any{cutoff}, args)
		})
	}
}
