package cmd

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ellavondegurechaff/progression/internal/api"
	"github.com/ellavondegurechaff/progression/internal/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the admin API and the badge scheduler",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		e, err := newEngine(ctx, cfg)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.db.InitializeSchema(ctx); err != nil {
			return err
		}

		e.scheduler.Start(ctx)

		app := api.NewApp(&api.Server{
			Points:  e.points,
			Badges:  e.badges,
			Runner:  e.scheduler,
			DB:      e.db,
			Version: cmd.Root().Version,
		})

		listenErr := make(chan error, 1)
		go func() {
			slog.Info("Starting API server",
				slog.String("type", "api"),
				slog.String("address", cfg.API.Addr()),
			)
			listenErr <- app.Listen(cfg.API.Addr())
		}()

		select {
		case err := <-listenErr:
			return err
		case <-ctx.Done():
		}

		slog.Info("Shutting down API server...", slog.String("type", "api"))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
			slog.Error("Server shutdown error", slog.String("type", "api"), slog.Any("error", err))
		}
		slog.Info("API server shutdown complete", slog.String("type", "api"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
