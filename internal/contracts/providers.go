package contracts

import (
	"context"
	"time"
)

// Candle is one daily OHLCV bar.
type Candle struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// PriceSeries is a time-ascending sequence of daily candles.
type PriceSeries []Candle

// Closes extracts the close column.
func (p PriceSeries) Closes() []float64 {
	closes := make([]float64, len(p))
	for i, c := range p {
		closes[i] = c.Close
	}
	return closes
}

// Last returns the most recent candle and false when the series is empty.
func (p PriceSeries) Last() (Candle, bool) {
	if len(p) == 0 {
		return Candle{}, false
	}
	return p[len(p)-1], true
}

// PriceProvider returns a daily OHLCV table for a ticker over a date
// range. An empty series is a valid "no data" answer, not an error.
type PriceProvider interface {
	FetchHistory(ctx context.Context, ticker string, start, end time.Time) (PriceSeries, error)
}

// TechnicalScorer turns a price series into a 0-100 technical score with
// supporting indicator values. A score of 0 means "no usable analysis".
type TechnicalScorer interface {
	Score(ticker string, series PriceSeries) *TickerAnalysis
}

// SentimentProvider returns the per-sector news sentiment snapshot for
// the current run.
type SentimentProvider interface {
	Snapshot(ctx context.Context) (SectorSentiment, error)
}
