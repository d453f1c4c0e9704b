// Package migrations embeds the SQL schema for the candidates store.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
