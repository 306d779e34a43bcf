// Package schema contains embedded migration files.
package schema

import "embed"

// MigrationsFS contains the SQL migration files for PostgreSQL
// (pgmigrations) and SQLite (sqlitemigrations).
//
//go:embed pgmigrations/*.sql sqlitemigrations/*.sql
var MigrationsFS embed.FS
