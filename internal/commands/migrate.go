package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"donorbook/internal/infra"
)

func newMigrateCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply or roll back schema migrations",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if e.cfg.DataBackend != infra.BackendPostgres {
				return errors.New("migrate requires DATA_BACKEND=postgres")
			}
			if len(args) == 1 && args[0] == "down" {
				return infra.RollbackMigration(e.cfg.DatabaseURL, e.logger)
			}
			return infra.RunMigrations(e.cfg.DatabaseURL, e.logger)
		},
	}
	return cmd
}
