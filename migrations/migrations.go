// Package migrations embeds the city catalog schema for golang-migrate.
package migrations

import "embed"

// FS holds the sqlite and postgres migration sets
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
