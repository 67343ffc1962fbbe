// Package migrations holds the report store schema.
package migrations

import "embed"

// FS contains the SQL migration files, applied in name order.
//
//go:embed *.sql
var FS embed.FS
