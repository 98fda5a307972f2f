package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/acagil/borsabot/internal/notify"
	"github.com/acagil/borsabot/internal/tracker"
	"github.com/acagil/borsabot/pkg/logger"
)

// PerformanceJob checks realized returns of stored recommendations on
// weekday evenings and mails the summary.
type PerformanceJob struct {
	checker *tracker.Checker
	mailer  *notify.Mailer // may be nil
	hour    int
	minute  int
	logger  *logger.Logger
}

// NewPerformanceJob creates the performance check job.
func NewPerformanceJob(checker *tracker.Checker, mailer *notify.Mailer, hour, minute int, log *logger.Logger) *PerformanceJob {
	return &PerformanceJob{
		checker: checker,
		mailer:  mailer,
		hour:    hour,
		minute:  minute,
		logger:  log,
	}
}

// Name returns the job name.
func (j *PerformanceJob) Name() string {
	return "performance_check"
}

// Schedule returns the cron schedule: weekdays at the configured time.
func (j *PerformanceJob) Schedule() string {
	return fmt.Sprintf("0 %d %d * * 1-5", j.minute, j.hour)
}

// Run executes the performance check and mails the summary.
func (j *PerformanceJob) Run(ctx context.Context) error {
	report, err := j.checker.Run(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("performance check: %w", err)
	}

	if j.mailer != nil && j.mailer.Enabled() {
		plain, htmlBody := notify.RenderCheckReport(report)
		subject := fmt.Sprintf("Performans Kontrolü — %s", report.AsOf.Format("02.01.2006"))
		if err := j.mailer.Send(ctx, subject, plain, htmlBody); err != nil {
			j.logger.WithError(err).Warn("Performance mail failed")
		}
	}

	return nil
}
