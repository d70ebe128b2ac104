// Package migrations embeds the SQL schema migrations.
//
// Table names carry the __prefix__ placeholder so one set of migrations
// serves every environment (dev_, test_, prod_). The migrate package
// substitutes the real prefix before handing the files to goose.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
