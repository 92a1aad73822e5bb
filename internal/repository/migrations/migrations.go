// Package migrations embeds the goose schema migrations for each SQL dialect.
package migrations

import "embed"

//go:embed mysql/*.sql postgres/*.sql sqlite3/*.sql
var FS embed.FS
