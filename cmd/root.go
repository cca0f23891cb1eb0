// Package cmd holds the command line of the clinic server.
package cmd

import (
	"fmt"
	"os"

	"github.com/ariebrainware/basis-data-dental/config"
	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "dental",
	Short: "Dental clinic backend",
	Long: `Backend of a single-clinic dental practice: patients, dentists,
appointments, treatments, odontograms and the dashboard.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.SetEnvFile(envFile)
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "config", "", "env file to load (default .env)")

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newSeedCommand())
	rootCmd.AddCommand(newGeoIPCommand())
}
