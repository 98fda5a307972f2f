package scheduler

import (
	"testing"
	"time"
)

func TestJobHistory_AddResult(t *testing.T) {
	h := &JobHistory{}

	if h.Latest() != nil {
		t.Error("Latest() on empty history must be nil")
	}

	h.AddResult(JobResult{JobName: "daily_analysis", Success: true})
	h.AddResult(JobResult{JobName: "daily_analysis", Success: false, Error: "boom"})

	latest := h.Latest()
	if latest == nil {
		t.Fatal("Latest() returned nil after adding results")
	}
	if latest.Success || latest.Error != "boom" {
		t.Errorf("Latest() = %+v, want the failed run", latest)
	}
}

func TestJobHistory_Cap(t *testing.T) {
	h := &JobHistory{}

	for i := 0; i < historyLimit+20; i++ {
		h.AddResult(JobResult{
			JobName:   "daily_analysis",
			StartTime: time.Now(),
			Success:   true,
		})
	}

	if len(h.Results) != historyLimit {
		t.Errorf("history length = %d, want capped at %d", len(h.Results), historyLimit)
	}
}
