package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ellavondegurechaff/progression/internal/gateways/database"
)

var resetTables bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the engine's tables and indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		db, err := database.New(ctx, cfg.DB)
		if err != nil {
			slog.Error("Failed to connect to database", slog.String("type", "db"), slog.Any("error", err))
			return err
		}
		defer db.Close()

		if err := db.InitializeSchema(ctx); err != nil {
			slog.Error("Migration failed", slog.String("type", "db"), slog.Any("error", err))
			return err
		}
		if resetTables {
			if err := db.ResetTables(ctx); err != nil {
				return err
			}
		}

		slog.Info("Migration completed successfully!", slog.String("type", "db"))
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&resetTables, "reset", false, "truncate every engine table after migrating")
	rootCmd.AddCommand(migrateCmd)
}
