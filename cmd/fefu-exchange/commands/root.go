// Package commands implements the fefu-exchange command line: the API
// server, schema migrations and a dump of the form descriptors.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/deppfellow/fefu-exchange/internal/config"
	"github.com/deppfellow/fefu-exchange/internal/logger"
	"github.com/rs/zerolog"
)

func Execute() error {
	root := &cobra.Command{
		Use:          "fefu-exchange",
		Short:        "Campus exchange backend",
		SilenceUsage: true,
	}

	root.AddCommand(serveCmd(), migrateCmd(), formsCmd(), emailPreviewCmd())
	return root.Execute()
}

// bootstrap loads the configuration and builds the application logger.
func bootstrap() (*config.Config, *logger.LoggerService, *zerolog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	loggerService, err := logger.NewLoggerService(cfg.Observability)
	if err != nil {
		return nil, nil, nil, err
	}

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)
	return cfg, loggerService, &log, nil
}
