package cmd

import (
	"github.com/spf13/cobra"
	"github.com/yeremiapane/blackfish/config"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blackfish",
		Short: "Blackfish speakeasy website",
		Long: `Blackfish serves the speakeasy's single-page website: navigation, gallery
with lightbox and the reservation request form.

Configuration is read from the environment and from a .env file when present.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
		},
		SilenceUsage: true,
	}

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newMigrateCmd())

	return cmd
}
