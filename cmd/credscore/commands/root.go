package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "credscore",
	Short: "Credit default scoring service",
	Long: `credscore - credit default scoring

Serves a fitted gradient-boosting model behind an HTTP API, rebuilding the
training-time feature vector from the applicant form at request time.

Usage:
  go run ./cmd/credscore [command]

Examples:
  go run ./cmd/credscore api
  go run ./cmd/credscore score --input applicant.json
  go run ./cmd/credscore etl --app application.csv --out prepared.csv
  go run ./cmd/credscore inspect`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
