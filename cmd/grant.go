package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ellavondegurechaff/progression/internal/domain/points"
)

var grantFlags struct {
	userID      string
	amount      int
	source      string
	sourceID    string
	description string
}

var grantCmd = &cobra.Command{
	Use:   "grant",
	Short: "Grant points to one user",
	RunE: func(cmd *cobra.Command, args []string) error {
		req := points.GrantRequest{
			UserID:     grantFlags.userID,
			Amount:     grantFlags.amount,
			SourceType: points.SourceType(grantFlags.source),
		}
		if grantFlags.sourceID != "" {
			req.SourceID = &grantFlags.sourceID
		}
		if grantFlags.description != "" {
			req.Description = &grantFlags.description
		}
		if err := req.Validate(); err != nil {
			return err
		}

		ctx := cmd.Context()
		e, err := newEngine(ctx, cfg)
		if err != nil {
			return err
		}
		defer e.Close()

		state, err := e.points.GrantPoints(ctx, req)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d points, level %d\n", state.UserID, state.CumulativePoints, state.Level)
		return nil
	},
}

func init() {
	f := grantCmd.Flags()
	f.StringVar(&grantFlags.userID, "user", "", "user id")
	f.IntVar(&grantFlags.amount, "amount", 0, "points to grant")
	f.StringVar(&grantFlags.source, "source", string(points.SourceBonus), "CHALLENGE_COMPLETION or BONUS")
	f.StringVar(&grantFlags.sourceID, "source-id", "", "challenge id for challenge completions")
	f.StringVar(&grantFlags.description, "description", "", "")
	_ = grantCmd.MarkFlagRequired("user")
	_ = grantCmd.MarkFlagRequired("amount")

	rootCmd.AddCommand(grantCmd)
}
