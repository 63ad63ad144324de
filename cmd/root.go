package cmd

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ellavondegurechaff/progression/internal/config"
	"github.com/ellavondegurechaff/progression/internal/logger"
)

var (
	configPath string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "progression",
	Short:         "Point ledger, levels and leaderboard badges",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadConfig(configPath)
		if errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("config") {
			d := config.Default()
			loaded, err = &d, nil
		}
		if err != nil {
			return err
		}
		cfg = loaded

		slog.SetDefault(slog.New(logger.NewHandler("progression", slog.HandlerOptions{
			Level:     cfg.Log.Level,
			AddSource: cfg.Log.AddSource,
		}, os.Stdout)))
		slog.Debug("Configuration loaded",
			slog.String("type", "sys"),
			slog.String("path", configPath),
		)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigPath, "path to config")
}

// Execute runs the command line until it finishes or the process is
// interrupted.
func Execute(version, commit string) error {
	rootCmd.Version = version + " (" + commit + ")"

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		slog.Error("Command failed", slog.String("type", "sys"), slog.Any("error", err))
	}
	return err
}
