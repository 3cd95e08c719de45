package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/stroomai/leadgen/pkg/config"
	"github.com/stroomai/leadgen/pkg/environment"
	"github.com/stroomai/leadgen/pkg/logger"
	"github.com/stroomai/leadgen/pkg/requestid"
)

const serviceName = "leadgen"

type appConfig struct {
	Env string `env:"APP_ENV" envDefault:"production"`
}

var (
	appEnv environment.Environment
	appLog *slog.Logger
)

func Execute() error {
	root := &cobra.Command{
		Use:          serviceName,
		Short:        "Project brief intake service",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var cfg appConfig
			if err := config.Load(&cfg); err != nil {
				return err
			}
			appEnv = environment.Environment(cfg.Env).Normalize()
			appLog = logger.New(
				logger.WithEnvironment(appEnv, serviceName),
				logger.WithOutput(cmd.ErrOrStderr()),
				logger.WithContextExtractors(requestid.LoggerExtractor()),
			)
			return nil
		},
	}

	root.AddCommand(serveCmd(), migrateCmd(), submitCmd(), wizardCmd())
	return root.Execute()
}
