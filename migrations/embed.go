// Package migrations embeds the goose SQL migrations so the server can apply
// them at startup and integration tests can drive them without touching disk.
package migrations

import "embed"

// FS holds every *.sql migration, embedded at compile time.
// Pass it to goose.NewProvider.
//
//go:embed *.sql
var FS embed.FS
