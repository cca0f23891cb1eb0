package cmd

import (
	"fmt"

	"github.com/ariebrainware/basis-data-dental/config"
	"github.com/ariebrainware/basis-data-dental/model"
	"github.com/ariebrainware/basis-data-dental/util"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and seed the roles",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := util.InitLogger(config.LoadConfig())
			db, err := config.ConnectDatabase()
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			if err := model.Migrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			logger.Info().Int("tables", len(model.Tables())).Msg("migrations executed successfully")
			return nil
		},
	}
}
