package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/acagil/borsabot/internal/brain"
	"github.com/acagil/borsabot/pkg/logger"
)

// AnalysisHandler triggers the daily analysis pipeline on demand.
type AnalysisHandler struct {
	orchestrator *brain.Orchestrator
	logger       *logger.Logger
}

// NewAnalysisHandler creates an analysis handler.
func NewAnalysisHandler(orchestrator *brain.Orchestrator, log *logger.Logger) *AnalysisHandler {
	return &AnalysisHandler{orchestrator: orchestrator, logger: log}
}

// AnalysisRequest is the optional request body.
type AnalysisRequest struct {
	Tickers []string `json:"tickers,omitempty"`
	DryRun  bool     `json:"dry_run,omitempty"`
}

// Run executes the pipeline for today and returns the formatted set.
// POST /api/analyze
func (h *AnalysisHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req AnalysisRequest
	if r.Body != nil {
		// Empty body is fine; defaults apply.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	result, err := h.orchestrator.Run(r.Context(), brain.RunConfig{
		Date:    time.Now(),
		Tickers: req.Tickers,
		DryRun:  req.DryRun,
	})
	if err != nil {
		h.logger.WithError(err).Error("Analysis pipeline failed")
		respondError(w, http.StatusInternalServerError, "Analysis pipeline failed")
		return
	}

	respondJSON(w, http.StatusOK, result.Set)
}
