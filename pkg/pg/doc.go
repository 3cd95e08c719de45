// Package pg opens pgx connection pools with retries, applies goose
// migrations from an embedded filesystem and classifies common Postgres
// errors.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err := pg.Migrate(ctx, pool, migrations.FS, cfg, log); err != nil { ... }
package pg
