package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/acagil/borsabot/internal/brain"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Günlük analizi çalıştır",
	Long: `Günlük analiz hattını çalıştırır: haber duyarlılığı, teknik analiz,
puanlama, seçim ve öneri raporu.

Example:
  go run ./cmd/borsabot analyze
  go run ./cmd/borsabot analyze --dry-run
  go run ./cmd/borsabot analyze --tickers THYAO.IS,ASELS.IS`,
	RunE: runAnalyze,
}

var (
	analyzeDryRun  bool
	analyzeTickers string
	analyzeWithDB  bool
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().BoolVar(&analyzeDryRun, "dry-run", false, "skip persistence and mail")
	analyzeCmd.Flags().StringVar(&analyzeTickers, "tickers", "", "comma-separated ticker list (default: strategy universe)")
	analyzeCmd.Flags().BoolVar(&analyzeWithDB, "db", false, "persist results to the database")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	a, err := newApp(analyzeWithDB && !analyzeDryRun)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	if a.repo != nil {
		if err := a.repo.EnsureSchema(ctx); err != nil {
			return err
		}
	}

	runConfig := brain.RunConfig{
		Date:   time.Now(),
		DryRun: analyzeDryRun,
	}
	if analyzeTickers != "" {
		runConfig.Tickers = splitTickers(analyzeTickers)
	}

	result, err := a.orchestrator().Run(ctx, runConfig)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	printRecommendations(result)
	return nil
}

func printRecommendations(result *brain.RunResult) {
	fmt.Printf("\n=== Günlük Öneriler — %s ===\n", result.Date.Format("02.01.2006"))
	fmt.Printf("Piyasa görünümü: %s | analiz edilen: %d | süre: %.1fs\n\n",
		result.Set.MarketMood, result.Analyzed, result.Duration.Seconds())

	if len(result.Set.Recommendations) == 0 {
		fmt.Println("Bugün için uygun öneri bulunamadı.")
		return
	}

	for _, rec := range result.Set.Recommendations {
		fmt.Printf("%d. %-10s %-20s puan %5.1f  %-8s fiyat %8.2f\n",
			rec.Rank, rec.Ticker, rec.Sector, rec.FinalScore, rec.Rating.Display(), rec.Price)
		if rec.Support > 0 && rec.Resistance > 0 {
			fmt.Printf("   destek %.2f / direnç %.2f", rec.Support, rec.Resistance)
			if rec.RiskReward > 0 {
				fmt.Printf("  (R/R %.2f)", rec.RiskReward)
			}
			fmt.Println()
		}
		if len(rec.Signals) > 0 {
			fmt.Printf("   %s\n", strings.Join(rec.Signals, " · "))
		}
	}
}

func splitTickers(s string) []string {
	parts := strings.Split(s, ",")
	tickers := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tickers = append(tickers, t)
		}
	}
	return tickers
}
