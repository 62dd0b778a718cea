package commands

import (
	"github.com/spf13/cobra"
)

func newPaymentsCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payments",
		Short: "Manage monthly payment rows",
	}
	cmd.AddCommand(newPaymentsGenerateCommand(e))
	return cmd
}

func newPaymentsGenerateCommand(e *env) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Create UNPAID payments for every active donor lacking one",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := e.open(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			if month == "" {
				month = rt.Payments.CurrentMonth().String()
			}
			res, err := rt.Payments.GenerateMonthlyPayments(cmd.Context(), month)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "month as YYYY-MM (default: current month)")
	return cmd
}
