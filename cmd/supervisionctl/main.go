// supervisionctl runs operator tasks against the supervision database.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yigit/supervision/internal/bootstrap"
	"github.com/yigit/supervision/internal/pkg/logger"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "supervisionctl",
	Short:         "Operator tooling for the internship supervision service",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", bootstrap.DefaultConfigPath, "path to the YAML config file")

	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)
	appCredentialsCmd.AddCommand(appCredentialsCreateCmd)
	blacklistCmd.AddCommand(blacklistPurgeCmd)
	rootCmd.AddCommand(migrateCmd, appCredentialsCmd, blacklistCmd, hashPasswordCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
