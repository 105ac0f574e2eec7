package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	env          string
	verbose      bool
	strategyFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tradesim",
	Short: "tradesim - daily indicators and single-position backtests",
	Long: `tradesim CLI

Computes daily indicators from stored stock prices and backtests
rule-based strategies against them.

Usage:
  go run ./cmd/tradesim [command]

Examples:
  go run ./cmd/tradesim simulate
  go run ./cmd/tradesim simulate --symbol NVDA --cash 10000 --strategy 2
  go run ./cmd/tradesim metrics AAPL
  go run ./cmd/tradesim api
  go run ./cmd/tradesim scheduler start
  go run ./cmd/tradesim test-db`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&env, "env", "", "environment override (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().StringVar(&strategyFile, "strategy-file", "", "strategy parameter YAML (default is STRATEGY_FILE)")
}
