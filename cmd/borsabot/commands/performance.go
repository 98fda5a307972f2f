package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/acagil/borsabot/internal/notify"
	"github.com/acagil/borsabot/internal/tracker"
)

var performanceCmd = &cobra.Command{
	Use:   "performance",
	Short: "Öneri performansı takibi",
}

var performanceCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Bekleyen performans kontrollerini çalıştır",
	Long: `Kaydedilmiş önerilerin 7/14/30 günlük gerçekleşen getirilerini ölçer
ve sonuçları veritabanına yazar.

Example:
  go run ./cmd/borsabot performance check`,
	RunE: runPerformanceCheck,
}

var performanceMail bool

func init() {
	rootCmd.AddCommand(performanceCmd)
	performanceCmd.AddCommand(performanceCheckCmd)

	performanceCheckCmd.Flags().BoolVar(&performanceMail, "mail", false, "send the summary by mail")
}

func runPerformanceCheck(cmd *cobra.Command, args []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	if err := a.repo.EnsureSchema(ctx); err != nil {
		return err
	}

	checker := tracker.NewChecker(a.repo, a.prices, a.log)
	report, err := checker.Run(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("performance check failed: %w", err)
	}

	plain, htmlBody := notify.RenderCheckReport(report)
	fmt.Println(plain)

	if performanceMail && a.mailer.Enabled() {
		subject := fmt.Sprintf("Performans Kontrolü — %s", report.AsOf.Format("02.01.2006"))
		if err := a.mailer.Send(ctx, subject, plain, htmlBody); err != nil {
			return fmt.Errorf("mail failed: %w", err)
		}
	}

	return nil
}
