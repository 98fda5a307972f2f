package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	strategyFile string
	verbose      bool
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "borsabot",
	Short: "Borsabot — günlük hisse analizi ve öneri botu",
	Long: `Borsabot Unified CLI

Teknik analiz, haber duyarlılığı ve sektör çeşitlendirmesiyle günlük
hisse önerileri üretir; geçmiş veriler üzerinde strateji testi yapar.

Usage:
  go run ./cmd/borsabot [command]

Examples:
  go run ./cmd/borsabot analyze
  go run ./cmd/borsabot backtest run --from 2025-01-01 --to 2025-03-31
  go run ./cmd/borsabot api
  go run ./cmd/borsabot scheduler`,
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&strategyFile, "strategy", "", "strategy file (default from STRATEGY_PATH)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
