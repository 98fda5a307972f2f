package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/acagil/borsabot/internal/backtest"
	"github.com/acagil/borsabot/pkg/logger"
)

// BacktestHandler runs backtest campaigns on request.
type BacktestHandler struct {
	runner   *backtest.Runner
	universe []string
	logger   *logger.Logger
}

// NewBacktestHandler creates a backtest handler. universe is the
// default ticker list when a request names none.
func NewBacktestHandler(runner *backtest.Runner, universe []string, log *logger.Logger) *BacktestHandler {
	return &BacktestHandler{runner: runner, universe: universe, logger: log}
}

// BacktestRequest is the campaign request body.
type BacktestRequest struct {
	From    string   `json:"from"` // YYYY-MM-DD
	To      string   `json:"to"`   // YYYY-MM-DD
	Tickers []string `json:"tickers,omitempty"`
}

// RunCampaign runs a backtest campaign over the requested range.
// POST /api/backtest
func (h *BacktestHandler) RunCampaign(w http.ResponseWriter, r *http.Request) {
	var req BacktestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	from, err := time.Parse("2006-01-02", req.From)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid 'from' date format (expected YYYY-MM-DD)")
		return
	}
	to, err := time.Parse("2006-01-02", req.To)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid 'to' date format (expected YYYY-MM-DD)")
		return
	}

	tickers := req.Tickers
	if len(tickers) == 0 {
		tickers = h.universe
	}

	report, err := h.runner.RunCampaign(r.Context(), from, to, tickers)
	if err != nil {
		h.logger.WithError(err).Error("Backtest campaign failed")
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, report)
}
