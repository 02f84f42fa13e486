package migrations

import "embed"

// FS holds the embedded SQL migration files.
//
//go:embed sqlite
var FS embed.FS
