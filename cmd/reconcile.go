package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile <user-id>",
	Short: "Rebuild a user's level state from the ledger",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		e, err := newEngine(ctx, cfg)
		if err != nil {
			return err
		}
		defer e.Close()

		state, err := e.points.Reconcile(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d points, level %d (version %d)\n",
			state.UserID, state.CumulativePoints, state.Level, state.Version)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reconcileCmd)
}
