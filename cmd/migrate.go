package cmd

import (
	"yamdb/pkg/database"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create missing tables and indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := bootstrap()
			if err != nil {
				return err
			}
			defer env.Close()

			if err := database.Migrate(cmd.Context(), env.db); err != nil {
				return err
			}
			env.logger.Info("Schema applied")
			return nil
		},
	}
}
