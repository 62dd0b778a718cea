package commands

import (
	"github.com/spf13/cobra"
)

func newStatsCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print ledger statistics",
	}
	cmd.AddCommand(newStatsMonthlyCommand(e), newStatsAllTimeCommand(e))
	return cmd
}

func newStatsMonthlyCommand(e *env) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Donations, expenses and payment counts for one month",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := e.open(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			if month == "" {
				month = rt.Payments.CurrentMonth().String()
			}
			stats, err := rt.Stats.MonthlyStats(cmd.Context(), month)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), stats)
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "month as YYYY-MM (default: current month)")
	return cmd
}

func newStatsAllTimeCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "all-time",
		Short: "Lifetime donations, expenses and available balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := e.open(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			stats, err := rt.Stats.AllTimeStats(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), stats)
		},
	}
}
