package cmd

import (
	"github.com/spf13/cobra"
	"github.com/yeremiapane/blackfish/config"
	"github.com/yeremiapane/blackfish/database"
	"github.com/yeremiapane/blackfish/models"
	"github.com/yeremiapane/blackfish/utils"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the reservation inbox tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			utils.InitLogger(cfg.LogLevel)

			db, err := config.InitDB(cfg)
			if err != nil {
				return err
			}
			if db == nil {
				return models.ValidationError{Field: "BACKOFFICE_DRIVER", Msg: "the simulated back office has nothing to migrate"}
			}
			return database.Migrate(db)
		},
	}
}
