package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateVPNPaths, downCreateVPNPaths)
}

// IF NOT EXISTS keeps registries created by earlier releases, which
// made the table before migrations were tracked.
func upCreateVPNPaths(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS vpn_paths (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		path TEXT NOT NULL
	)`)
	return err
}

func downCreateVPNPaths(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS vpn_paths`)
	return err
}
