package jobs

import (
	"testing"

	"github.com/robfig/cron/v3"

	"github.com/acagil/borsabot/pkg/logger"
)

func TestAnalysisJob_Schedule(t *testing.T) {
	job := NewAnalysisJob(nil, 9, 30, logger.Nop())

	if got := job.Schedule(); got != "0 30 9 * * 1-5" {
		t.Errorf("Schedule() = %q, want weekdays at 09:30", got)
	}
	if job.Name() != "daily_analysis" {
		t.Errorf("Name() = %q", job.Name())
	}
}

func TestPerformanceJob_Schedule(t *testing.T) {
	job := NewPerformanceJob(nil, nil, 18, 0, logger.Nop())

	if got := job.Schedule(); got != "0 0 18 * * 1-5" {
		t.Errorf("Schedule() = %q, want weekdays at 18:00", got)
	}
	if job.Name() != "performance_check" {
		t.Errorf("Name() = %q", job.Name())
	}
}

func TestSchedules_ParseWithSecondsField(t *testing.T) {
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

	specs := []string{
		NewAnalysisJob(nil, 9, 30, logger.Nop()).Schedule(),
		NewPerformanceJob(nil, nil, 18, 0, logger.Nop()).Schedule(),
	}
	for _, spec := range specs {
		if _, err := parser.Parse(spec); err != nil {
			t.Errorf("cron spec %q does not parse: %v", spec, err)
		}
	}
}
