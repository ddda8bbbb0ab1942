package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/deppfellow/fefu-exchange/internal/database"
	"github.com/deppfellow/fefu-exchange/internal/handler"
	"github.com/deppfellow/fefu-exchange/internal/middleware"
	"github.com/deppfellow/fefu-exchange/internal/repository"
	"github.com/deppfellow/fefu-exchange/internal/router"
	"github.com/deppfellow/fefu-exchange/internal/server"
	"github.com/deppfellow/fefu-exchange/internal/service"
)

const shutdownTimeout = 30 * time.Second

func serveCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the background workers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, loggerService, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer loggerService.Shutdown()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if migrate {
				if err := database.Migrate(ctx, log, cfg); err != nil {
					log.Error().Err(err).Msg("failed to migrate database")
					return err
				}
			}

			srv, err := server.New(cfg, log, loggerService)
			if err != nil {
				log.Error().Err(err).Msg("failed to initialize server")
				return err
			}

			repos := repository.NewRepositories(srv)

			services, err := service.NewService(srv, repos)
			if err != nil {
				log.Error().Err(err).Msg("could not create services")
				return err
			}

			handlers := handler.NewHandlers(srv, services)
			middlewares := middleware.NewMiddlewares(srv, services.Auth, repos.Accounts)
			srv.SetupHTTPServer(router.NewRouter(srv, handlers, middlewares))

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start()
			}()

			select {
			case err = <-errCh:
				log.Error().Err(err).Msg("server stopped unexpectedly")
			case <-ctx.Done():
				log.Info().Msg("shutdown started")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
				log.Error().Err(shutdownErr).Msg("server forced to shutdown")
				err = errors.Join(err, shutdownErr)
			}

			log.Info().Msg("server exited properly")
			return err
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")
	return cmd
}
