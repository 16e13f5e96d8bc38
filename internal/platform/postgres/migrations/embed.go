// Package migrations embeds the SQL schema migrations applied by goose.
package migrations

import "embed"

// FS holds the goose SQL migrations, named <version>_<name>.sql.
//
//go:embed *.sql
var FS embed.FS
