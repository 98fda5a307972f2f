package contracts

import "time"

// Outcome classifies a backtest trade by its forward return.
type Outcome string

const (
	OutcomeSuccess Outcome = "SUCCESS" // return >= +5%
	OutcomeNeutral Outcome = "NEUTRAL" // return in [0%, 5%)
	OutcomeLoss    Outcome = "LOSS"    // return < 0%
)

// ClassifyOutcome maps a forward return percentage to an outcome.
// Breakpoints are fixed design constants; the win-rate numbers of past
// campaigns depend on them staying put.
func ClassifyOutcome(returnPct float64) Outcome {
	switch {
	case returnPct >= 5:
		return OutcomeSuccess
	case returnPct >= 0:
		return OutcomeNeutral
	default:
		return OutcomeLoss
	}
}

// BacktestTrade is one evaluated entry/exit pair from a single-day
// backtest. Never mutated after creation.
type BacktestTrade struct {
	Ticker     string    `json:"ticker"`
	Date       time.Time `json:"date"`
	EntryPrice float64   `json:"entry_price"`
	ExitPrice  float64   `json:"exit_price"`
	ReturnPct  float64   `json:"return_pct"`
	Outcome    Outcome   `json:"outcome"`
	Score      float64   `json:"score"` // backtest final score at entry
}
