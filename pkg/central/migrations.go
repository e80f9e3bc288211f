package central

import "embed"

// Migrations embeds the central schema's SQL migrations for db.WithMigrations.
//
//go:embed migrations/*.sql
var Migrations embed.FS
