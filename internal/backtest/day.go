package backtest

import (
	"context"
	"math"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/acagil/borsabot/internal/contracts"
	"github.com/acagil/borsabot/internal/strategy"
	"github.com/acagil/borsabot/pkg/logger"
)

// Backtest-only score blend. Historical replays have no news data, so
// the final score measures the technical component in isolation with a
// neutral momentum term. Deliberately distinct from the live formula.
const (
	backtestTechnicalWeight = 0.7
	backtestMomentumWeight  = 0.3
	neutralMomentumScore    = 50.0
)

const defaultWorkers = 4

// Runner replays the scoring pipeline over historical windows.
// SSOT: backtest evaluation happens here only.
type Runner struct {
	prices  contracts.PriceProvider
	scorer  contracts.TechnicalScorer
	config  strategy.Backtest
	workers int
	logger  *logger.Logger
}

// NewRunner creates a backtest runner.
func NewRunner(prices contracts.PriceProvider, scorer contracts.TechnicalScorer, config strategy.Backtest, log *logger.Logger) *Runner {
	return &Runner{
		prices:  prices,
		scorer:  scorer,
		config:  config,
		workers: defaultWorkers,
		logger:  log,
	}
}

// WithWorkers bounds the per-ticker evaluation pool.
func (r *Runner) WithWorkers(n int) *Runner {
	if n > 0 {
		r.workers = n
	}
	return r
}

// candidate is a ticker that produced a buy signal on the test date.
type candidate struct {
	ticker string
	entry  float64
	score  float64
}

// RunDay reproduces the pipeline for one historical date using only
// technical signals, selects the top candidates and measures their
// forward return. Per-ticker failures are absorbed; a day without
// qualifying candidates yields an empty trade list.
func (r *Runner) RunDay(ctx context.Context, testDate time.Time, tickers []string) []contracts.BacktestTrade {
	lookbackStart := testDate.AddDate(0, 0, -r.config.LookbackDays)

	// Fan out signal evaluation across a bounded pool. Each worker
	// writes only its own slot; ranking waits for the join below.
	results := make([]*candidate, len(tickers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, ticker := range tickers {
		i, ticker := i, ticker
		g.Go(func() error {
			results[i] = r.evaluate(gctx, ticker, lookbackStart, testDate)
			return nil // failures already absorbed as skips
		})
	}
	_ = g.Wait()

	candidates := make([]*candidate, 0, len(tickers))
	for _, c := range results {
		if c != nil {
			candidates = append(candidates, c)
		}
	}

	// Rank by score; stable keeps the universe order on ties.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > r.config.TopCount {
		candidates = candidates[:r.config.TopCount]
	}

	r.logger.WithFields(map[string]interface{}{
		"date":       testDate.Format("2006-01-02"),
		"candidates": len(candidates),
	}).Debug("Backtest day candidates selected")

	trades := make([]contracts.BacktestTrade, 0, len(candidates))
	for _, c := range candidates {
		trade, ok := r.measureForward(ctx, c, testDate)
		if !ok {
			continue
		}
		trades = append(trades, trade)
	}

	return trades
}

// evaluate fetches history and scores one ticker. Any failure or data
// shortage returns nil (SKIPPED).
func (r *Runner) evaluate(ctx context.Context, ticker string, start, end time.Time) *candidate {
	series, err := r.prices.FetchHistory(ctx, ticker, start, end)
	if err != nil {
		r.logger.WithFields(map[string]interface{}{
			"ticker": ticker,
			"error":  err.Error(),
		}).Debug("Backtest history fetch failed, skipping ticker")
		return nil
	}
	if len(series) < r.config.MinHistoryRows {
		return nil
	}

	analysis := r.scorer.Score(ticker, series)
	if analysis.Score == 0 {
		return nil
	}

	final := analysis.Score*backtestTechnicalWeight + neutralMomentumScore*backtestMomentumWeight
	if final < r.config.EntryThreshold {
		return nil
	}

	return &candidate{
		ticker: ticker,
		entry:  analysis.CurrentPrice,
		score:  round1(final),
	}
}

// measureForward fetches the forward window and computes the trade
// outcome. The exit is the close at index min(exitDayIndex, len-1):
// the 7th available trading day, or the latest one on short windows.
// This fallback shortens the effective holding horizon and is kept
// as-is; historical win rates depend on it.
func (r *Runner) measureForward(ctx context.Context, c *candidate, testDate time.Time) (contracts.BacktestTrade, bool) {
	forwardStart := testDate.AddDate(0, 0, 1)
	forwardEnd := forwardStart.AddDate(0, 0, r.config.ForwardWindowDays)

	forward, err := r.prices.FetchHistory(ctx, c.ticker, forwardStart, forwardEnd)
	if err != nil {
		r.logger.WithFields(map[string]interface{}{
			"ticker": c.ticker,
			"error":  err.Error(),
		}).Debug("Backtest forward fetch failed, skipping trade")
		return contracts.BacktestTrade{}, false
	}
	if len(forward) < r.config.MinForwardRows {
		return contracts.BacktestTrade{}, false
	}
	if c.entry <= 0 {
		return contracts.BacktestTrade{}, false
	}

	exitIdx := r.config.ExitDayIndex
	if exitIdx > len(forward)-1 {
		exitIdx = len(forward) - 1
	}
	exitPrice := forward[exitIdx].Close

	returnPct := (exitPrice - c.entry) / c.entry * 100

	return contracts.BacktestTrade{
		Ticker:     c.ticker,
		Date:       testDate,
		EntryPrice: c.entry,
		ExitPrice:  exitPrice,
		ReturnPct:  returnPct,
		Outcome:    contracts.ClassifyOutcome(returnPct),
		Score:      c.score,
	}, true
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
