package cmd

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"
)

var recalculateCmd = &cobra.Command{
	Use:   "recalculate",
	Short: "Run one badge recalculation and print its summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		e, err := newEngine(ctx, cfg)
		if err != nil {
			return err
		}
		defer e.Close()

		summary, _ := e.scheduler.RunOnce(ctx)

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(summary); err != nil {
			return err
		}
		if !summary.Success {
			return errors.New("badge recalculation finished with failures")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(recalculateCmd)
}
