// Package migrations embeds the SQL schema for the postgres and sqlite
// storage drivers.
package migrations

import "embed"

// Postgres holds the postgres migrations under postgres/.
//
//go:embed postgres/*.sql
var Postgres embed.FS

// SQLite holds the sqlite migrations under sqlite/.
//
//go:embed sqlite/*.sql
var SQLite embed.FS
