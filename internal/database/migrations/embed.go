package migrations

import "embed"

// FS embeds the SQL migrations, one directory per database driver.
//
//go:embed postgres/*.sql sqlite3/*.sql
var FS embed.FS
