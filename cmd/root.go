package cmd

import (
	"fmt"
	"os"

	"github.com/providerdesk/providerdesk/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ConfigFileLocation is of the config to load
var ConfigFileLocation string

// TopLevelLogger is the logger all loggers come from
var TopLevelLogger *zap.Logger

// LoadedConfig is the currently loaded configuration after initial bootstrapping
var LoadedConfig *config.Configuration

var rootCommand = cobra.Command{
	Use:   "providerdesk",
	Short: "providerdesk admin backend",
	Long: `providerdesk serves the administrative backend of the
	healthcare provider directory`,
	Run: func(cmd *cobra.Command, args []string) {
		serveCommand.Run(cmd, args)
	},
}

func Execute() {
	if err := rootCommand.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCommand.PersistentFlags().
		StringVar(&ConfigFileLocation, "config", "", "config file to be used")

	verifyCommand.AddCommand(&sendTestMailCommand)

	adminCommand.AddCommand(&listAdminsCommand)
	adminCommand.AddCommand(&unlockAdminCommand)

	superAdminCommand.AddCommand(&listSuperAdminsCommand)
	superAdminCommand.AddCommand(&unlockSuperAdminCommand)

	rootCommand.AddCommand(&verifyCommand)
	rootCommand.AddCommand(&adminCommand)
	rootCommand.AddCommand(&superAdminCommand)
	rootCommand.AddCommand(&bootstrapCommand)
	rootCommand.AddCommand(&serveCommand)
}
