package commands

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/stroomai/leadgen/modules/brief/store/pgstore"
	"github.com/stroomai/leadgen/modules/brief/store/sqlitestore"
	"github.com/stroomai/leadgen/pkg/config"
	"github.com/stroomai/leadgen/pkg/pg"
)

var errNothingToMigrate = errors.New("nothing to migrate: set PG_CONN_URL or SQLITE_DSN")

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the intake log schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			var (
				pgCfg     pg.Config
				sqliteCfg sqlitestore.Config
			)
			if err := errors.Join(config.Load(&pgCfg), config.Load(&sqliteCfg)); err != nil {
				return err
			}

			switch {
			case pgCfg.Enabled():
				pool, err := pg.Connect(ctx, pgCfg)
				if err != nil {
					return err
				}
				defer pool.Close()
				if err := pgstore.Migrate(ctx, pool, pgCfg, appLog); err != nil {
					return err
				}
				appLog.InfoContext(ctx, "postgres intake log migrated", slog.String("table", pgCfg.MigrationsTable))
				return nil

			case sqliteCfg.Enabled():
				store, err := sqlitestore.Open(ctx, sqliteCfg.DSN)
				if err != nil {
					return err
				}
				appLog.InfoContext(ctx, "sqlite intake log ready")
				return store.Close()

			default:
				return errNothingToMigrate
			}
		},
	}
}
