package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Strateji geriye dönük testi",
}

var backtestRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Tarih aralığında kampanya çalıştır",
	Long: `Verilen tarih aralığındaki her iş günü için analiz hattını geçmiş
verilerle tekrar çalıştırır ve sonuçları özetler.

Example:
  go run ./cmd/borsabot backtest run --from 2025-01-01 --to 2025-03-31
  go run ./cmd/borsabot backtest run --from 2025-01-01 --to 2025-01-31 --tickers THYAO.IS,GARAN.IS`,
	RunE: runBacktest,
}

var (
	backtestFrom    string
	backtestTo      string
	backtestTickers string
)

func init() {
	rootCmd.AddCommand(backtestCmd)
	backtestCmd.AddCommand(backtestRunCmd)

	backtestRunCmd.Flags().StringVar(&backtestFrom, "from", "", "start date (YYYY-MM-DD)")
	backtestRunCmd.Flags().StringVar(&backtestTo, "to", "", "end date (YYYY-MM-DD)")
	backtestRunCmd.Flags().StringVar(&backtestTickers, "tickers", "", "comma-separated ticker list (default: strategy universe)")
	backtestRunCmd.MarkFlagRequired("from")
	backtestRunCmd.MarkFlagRequired("to")
}

func runBacktest(cmd *cobra.Command, args []string) error {
	from, err := time.Parse("2006-01-02", backtestFrom)
	if err != nil {
		return fmt.Errorf("invalid --from date: %w", err)
	}
	to, err := time.Parse("2006-01-02", backtestTo)
	if err != nil {
		return fmt.Errorf("invalid --to date: %w", err)
	}

	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.close()

	tickers := a.strategy.Universe.All()
	if backtestTickers != "" {
		tickers = splitTickers(backtestTickers)
	}

	report, err := a.runner.RunCampaign(cmd.Context(), from, to, tickers)
	if err != nil {
		return fmt.Errorf("backtest failed: %w", err)
	}

	fmt.Printf("\n=== Backtest %s → %s ===\n", backtestFrom, backtestTo)
	fmt.Printf("İş günü: %d | işlem: %d | süre: %.1fs\n\n",
		report.TradingDays, report.TotalTrades, report.Elapsed.Seconds())

	if report.Empty() {
		fmt.Println("Aralıkta hiç işlem üretilmedi.")
		return nil
	}

	fmt.Printf("Başarı: %d (%%%.1f)  Nötr: %d (%%%.1f)  Zarar: %d (%%%.1f)\n",
		report.Successes, report.WinRate,
		report.Neutrals, report.NeutralPct,
		report.Losses, report.LossPct)
	fmt.Printf("Ortalama getiri: %%%.2f  (başarı %%%.2f / zarar %%%.2f)\n",
		report.AvgReturn, report.AvgSuccessReturn, report.AvgLossReturn)
	if report.RiskReward > 0 {
		fmt.Printf("Risk/ödül: %.2f\n", report.RiskReward)
	}
	if report.BestTrade != nil {
		fmt.Printf("En iyi:  %s %s %%%.2f\n",
			report.BestTrade.Ticker, report.BestTrade.Date.Format("2006-01-02"), report.BestTrade.ReturnPct)
	}
	if report.WorstTrade != nil {
		fmt.Printf("En kötü: %s %s %%%.2f\n",
			report.WorstTrade.Ticker, report.WorstTrade.Date.Format("2006-01-02"), report.WorstTrade.ReturnPct)
	}

	if len(report.TickerStats) > 0 {
		fmt.Println("\nHisse bazında:")
		for _, stat := range report.TickerStats {
			fmt.Printf("  %-10s %3d işlem  başarı %%%.1f  ort. getiri %%%.2f\n",
				stat.Ticker, stat.Trades, stat.SuccessRate, stat.AvgReturn)
		}
	}

	return nil
}
