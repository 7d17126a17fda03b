// Package migrations embeds the goose migration files for the SQLite
// key-value backend.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
