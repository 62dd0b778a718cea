// Package commands implements the donorctl administration CLI.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"donorbook/internal/bootstrap"
	"donorbook/internal/infra"
)

type env struct {
	cfg    *infra.Config
	logger infra.Logger
}

func (e *env) load(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load()
	cfg, err := infra.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	e.cfg = cfg
	e.logger = infra.NewLogger(cfg.AppEnv, "donorctl").Output(cmd.ErrOrStderr())
	return nil
}

func (e *env) open(ctx context.Context) (*bootstrap.Runtime, error) {
	return bootstrap.Open(ctx, e.cfg, e.logger)
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	decimal.MarshalJSONWithoutQuotes = true
	e := &env{}

	rootCmd := &cobra.Command{
		Use:   "donorctl",
		Short: "Administer the donorbook ledger",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:      true,
		PersistentPreRunE: e.load,
	}

	rootCmd.AddCommand(
		newMigrateCommand(e),
		newPaymentsCommand(e),
		newStatsCommand(e),
		newUsersCommand(e),
	)

	return rootCmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
