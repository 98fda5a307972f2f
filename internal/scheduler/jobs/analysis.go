package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/acagil/borsabot/internal/brain"
	"github.com/acagil/borsabot/pkg/logger"
)

// AnalysisJob runs the daily analysis pipeline on weekday mornings,
// shortly before the session opens.
type AnalysisJob struct {
	orchestrator *brain.Orchestrator
	hour         int
	minute       int
	logger       *logger.Logger
}

// NewAnalysisJob creates the daily analysis job.
func NewAnalysisJob(orchestrator *brain.Orchestrator, hour, minute int, log *logger.Logger) *AnalysisJob {
	return &AnalysisJob{
		orchestrator: orchestrator,
		hour:         hour,
		minute:       minute,
		logger:       log,
	}
}

// Name returns the job name.
func (j *AnalysisJob) Name() string {
	return "daily_analysis"
}

// Schedule returns the cron schedule: weekdays at the configured time.
func (j *AnalysisJob) Schedule() string {
	return fmt.Sprintf("0 %d %d * * 1-5", j.minute, j.hour)
}

// Run executes the daily pipeline for today.
func (j *AnalysisJob) Run(ctx context.Context) error {
	result, err := j.orchestrator.Run(ctx, brain.RunConfig{Date: time.Now()})
	if err != nil {
		return fmt.Errorf("analysis pipeline: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"analyzed": result.Analyzed,
		"selected": len(result.Selected),
	}).Info("Scheduled analysis finished")

	return nil
}
