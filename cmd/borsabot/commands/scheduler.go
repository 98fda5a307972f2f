package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/acagil/borsabot/internal/scheduler"
	"github.com/acagil/borsabot/internal/scheduler/jobs"
	"github.com/acagil/borsabot/internal/tracker"
)

var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Zamanlanmış görevleri çalıştır",
	Long: `Zamanlayıcıyı başlatır:
  - günlük analiz (hafta içi, varsayılan 09:30)
  - performans kontrolü (hafta içi, varsayılan 18:00)

Example:
  go run ./cmd/borsabot scheduler`,
	RunE: runScheduler,
}

func init() {
	rootCmd.AddCommand(schedulerCmd)
}

func runScheduler(cmd *cobra.Command, args []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.repo.EnsureSchema(cmd.Context()); err != nil {
		return err
	}

	sched := scheduler.New(a.log)

	analysisJob := jobs.NewAnalysisJob(a.orchestrator(),
		a.cfg.AnalysisHour, a.cfg.AnalysisMinute, a.log)
	if err := sched.AddJob(analysisJob); err != nil {
		return err
	}

	checker := tracker.NewChecker(a.repo, a.prices, a.log)
	performanceJob := jobs.NewPerformanceJob(checker, a.mailer,
		a.cfg.PerformanceHour, a.cfg.PerformanceMinute, a.log)
	if err := sched.AddJob(performanceJob); err != nil {
		return err
	}

	sched.Start()
	defer sched.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	return nil
}
