// Package sql embeds the goose migrations so the server binary can apply
// them without access to the source tree.
package sql

import "embed"

//go:embed schema/*.sql
var Migrations embed.FS

// MigrationsDir is the directory of Migrations that goose reads from.
const MigrationsDir = "schema"
