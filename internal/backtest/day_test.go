package backtest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acagil/borsabot/internal/contracts"
	"github.com/acagil/borsabot/internal/strategy"
	"github.com/acagil/borsabot/pkg/logger"
)

// fakeProvider serves canned history and forward series, keyed by
// whether the requested window starts after the test date.
type fakeProvider struct {
	testDate time.Time
	history  map[string]contracts.PriceSeries
	forward  map[string]contracts.PriceSeries
}

func (f *fakeProvider) FetchHistory(_ context.Context, ticker string, start, _ time.Time) (contracts.PriceSeries, error) {
	if start.After(f.testDate) {
		return f.forward[ticker], nil
	}
	return f.history[ticker], nil
}

// fakeScorer returns a fixed technical score per ticker, entry price 100.
type fakeScorer struct {
	scores map[string]float64
}

func (f *fakeScorer) Score(ticker string, _ contracts.PriceSeries) *contracts.TickerAnalysis {
	return &contracts.TickerAnalysis{
		Ticker:       ticker,
		Score:        f.scores[ticker],
		CurrentPrice: 100,
		Fibonacci:    map[string]float64{},
	}
}

func testBacktestConfig() strategy.Backtest {
	return strategy.Backtest{
		LookbackDays:      200,
		MinHistoryRows:    60,
		EntryThreshold:    55,
		TopCount:          3,
		ForwardWindowDays: 10,
		MinForwardRows:    5,
		ExitDayIndex:      6,
	}
}

func series(start time.Time, closes ...float64) contracts.PriceSeries {
	out := make(contracts.PriceSeries, 0, len(closes))
	for i, c := range closes {
		out = append(out, contracts.Candle{
			Time:  start.AddDate(0, 0, i),
			Close: c,
		})
	}
	return out
}

func flatSeries(start time.Time, n int, close float64) contracts.PriceSeries {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = close
	}
	return series(start, closes...)
}

var testDate = time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC) // a Wednesday

func newTestRunner(provider *fakeProvider, scorer *fakeScorer) *Runner {
	return NewRunner(provider, scorer, testBacktestConfig(), logger.Nop())
}

func TestRunDay_Outcomes(t *testing.T) {
	historyStart := testDate.AddDate(0, 0, -100)
	forwardStart := testDate.AddDate(0, 0, 1)

	provider := &fakeProvider{
		testDate: testDate,
		history: map[string]contracts.PriceSeries{
			"WIN.IS":  flatSeries(historyStart, 80, 100),
			"FLAT.IS": flatSeries(historyStart, 80, 100),
			"LOSS.IS": flatSeries(historyStart, 80, 100),
		},
		forward: map[string]contracts.PriceSeries{
			"WIN.IS":  flatSeries(forwardStart, 8, 106),   // +6.0% -> SUCCESS
			"FLAT.IS": flatSeries(forwardStart, 8, 100.5), // +0.5% -> NEUTRAL
			"LOSS.IS": flatSeries(forwardStart, 8, 94),    // -6.0% -> LOSS
		},
	}
	scorer := &fakeScorer{scores: map[string]float64{
		"WIN.IS": 80, "FLAT.IS": 80, "LOSS.IS": 80, // final 71.0, above threshold
	}}

	runner := newTestRunner(provider, scorer)
	trades := runner.RunDay(context.Background(), testDate, []string{"WIN.IS", "FLAT.IS", "LOSS.IS"})

	require.Len(t, trades, 3)

	outcomes := make(map[string]contracts.Outcome)
	returns := make(map[string]float64)
	for _, trade := range trades {
		outcomes[trade.Ticker] = trade.Outcome
		returns[trade.Ticker] = trade.ReturnPct
		assert.Equal(t, 100.0, trade.EntryPrice)
		assert.Equal(t, 71.0, trade.Score)
	}

	assert.Equal(t, contracts.OutcomeSuccess, outcomes["WIN.IS"])
	assert.Equal(t, contracts.OutcomeNeutral, outcomes["FLAT.IS"])
	assert.Equal(t, contracts.OutcomeLoss, outcomes["LOSS.IS"])
	assert.InDelta(t, 6.0, returns["WIN.IS"], 1e-9)
	assert.InDelta(t, -6.0, returns["LOSS.IS"], 1e-9)
}

func TestRunDay_ExitIndex(t *testing.T) {
	historyStart := testDate.AddDate(0, 0, -100)
	forwardStart := testDate.AddDate(0, 0, 1)

	provider := &fakeProvider{
		testDate: testDate,
		history: map[string]contracts.PriceSeries{
			"FULL.IS":  flatSeries(historyStart, 80, 100),
			"SHORT.IS": flatSeries(historyStart, 80, 100),
		},
		forward: map[string]contracts.PriceSeries{
			// 10 rows: exit at index 6 -> close 106
			"FULL.IS": series(forwardStart, 100, 101, 102, 103, 104, 105, 106, 107, 108, 109),
			// 5 rows: exit falls back to the last row -> close 104
			"SHORT.IS": series(forwardStart, 100, 101, 102, 103, 104),
		},
	}
	scorer := &fakeScorer{scores: map[string]float64{"FULL.IS": 80, "SHORT.IS": 80}}

	runner := newTestRunner(provider, scorer)
	trades := runner.RunDay(context.Background(), testDate, []string{"FULL.IS", "SHORT.IS"})

	require.Len(t, trades, 2)
	exits := make(map[string]float64)
	for _, trade := range trades {
		exits[trade.Ticker] = trade.ExitPrice
	}

	assert.Equal(t, 106.0, exits["FULL.IS"])
	assert.Equal(t, 104.0, exits["SHORT.IS"])
}

func TestRunDay_EntryThreshold(t *testing.T) {
	historyStart := testDate.AddDate(0, 0, -100)
	forwardStart := testDate.AddDate(0, 0, 1)

	provider := &fakeProvider{
		testDate: testDate,
		history: map[string]contracts.PriceSeries{
			"NEAR.IS": flatSeries(historyStart, 80, 100),
			"PASS.IS": flatSeries(historyStart, 80, 100),
		},
		forward: map[string]contracts.PriceSeries{
			"NEAR.IS": flatSeries(forwardStart, 8, 106),
			"PASS.IS": flatSeries(forwardStart, 8, 106),
		},
	}
	// 57*0.7 + 15 = 54.9 rejected; 58*0.7 + 15 = 55.6 accepted.
	scorer := &fakeScorer{scores: map[string]float64{"NEAR.IS": 57, "PASS.IS": 58}}

	runner := newTestRunner(provider, scorer)
	trades := runner.RunDay(context.Background(), testDate, []string{"NEAR.IS", "PASS.IS"})

	require.Len(t, trades, 1)
	assert.Equal(t, "PASS.IS", trades[0].Ticker)
	assert.Equal(t, 55.6, trades[0].Score)
}

func TestRunDay_SkipsInsufficientData(t *testing.T) {
	historyStart := testDate.AddDate(0, 0, -100)
	forwardStart := testDate.AddDate(0, 0, 1)

	provider := &fakeProvider{
		testDate: testDate,
		history: map[string]contracts.PriceSeries{
			"THIN.IS":  flatSeries(historyStart, 59, 100), // below min history rows
			"ZERO.IS":  flatSeries(historyStart, 80, 100),
			"NOFWD.IS": flatSeries(historyStart, 80, 100),
		},
		forward: map[string]contracts.PriceSeries{
			"NOFWD.IS": flatSeries(forwardStart, 4, 106), // below min forward rows
		},
	}
	scorer := &fakeScorer{scores: map[string]float64{
		"THIN.IS": 90, "ZERO.IS": 0, "NOFWD.IS": 90,
	}}

	runner := newTestRunner(provider, scorer)
	trades := runner.RunDay(context.Background(), testDate, []string{"THIN.IS", "ZERO.IS", "NOFWD.IS"})

	assert.Empty(t, trades)
}

func TestRunDay_TopCount(t *testing.T) {
	historyStart := testDate.AddDate(0, 0, -100)
	forwardStart := testDate.AddDate(0, 0, 1)

	tickers := []string{"A.IS", "B.IS", "C.IS", "D.IS", "E.IS"}
	scores := map[string]float64{"A.IS": 90, "B.IS": 85, "C.IS": 80, "D.IS": 75, "E.IS": 70}

	history := make(map[string]contracts.PriceSeries)
	forward := make(map[string]contracts.PriceSeries)
	for _, ticker := range tickers {
		history[ticker] = flatSeries(historyStart, 80, 100)
		forward[ticker] = flatSeries(forwardStart, 8, 106)
	}

	provider := &fakeProvider{testDate: testDate, history: history, forward: forward}
	runner := newTestRunner(provider, &fakeScorer{scores: scores})

	trades := runner.RunDay(context.Background(), testDate, tickers)

	require.Len(t, trades, 3)
	got := map[string]bool{}
	for _, trade := range trades {
		got[trade.Ticker] = true
	}
	assert.True(t, got["A.IS"] && got["B.IS"] && got["C.IS"],
		"expected the three highest-scored tickers, got %v", got)
}
