package technical

import (
	"fmt"
	"math"

	"github.com/acagil/borsabot/internal/contracts"
	"github.com/acagil/borsabot/pkg/logger"
)

// Params holds indicator periods and the data floor.
type Params struct {
	RSIPeriod       int
	MACDFast        int
	MACDSlow        int
	MACDSignal      int
	BollingerPeriod int
	SMAShort        int
	SMALong         int
	MinRows         int // below this the scorer reports "no analysis"
}

// DefaultParams returns the standard indicator parameters.
func DefaultParams() Params {
	return Params{
		RSIPeriod:       14,
		MACDFast:        12,
		MACDSlow:        26,
		MACDSignal:      9,
		BollingerPeriod: 20,
		SMAShort:        20,
		SMALong:         50,
		MinRows:         60,
	}
}

// Scorer condenses a daily price series into a single 0-100 technical
// score with human-readable signals. Implements contracts.TechnicalScorer.
type Scorer struct {
	params Params
	logger *logger.Logger
}

// NewScorer creates a new technical scorer.
func NewScorer(params Params, log *logger.Logger) *Scorer {
	return &Scorer{
		params: params,
		logger: log,
	}
}

// Score analyzes a price series. A score of 0 means the series was too
// short to analyze; callers treat that as "analysis unavailable".
func (s *Scorer) Score(ticker string, series contracts.PriceSeries) *contracts.TickerAnalysis {
	analysis := &contracts.TickerAnalysis{
		Ticker:    ticker,
		Fibonacci: map[string]float64{},
		Signals:   []string{},
	}

	if len(series) < s.params.MinRows {
		s.logger.WithFields(map[string]interface{}{
			"ticker": ticker,
			"rows":   len(series),
			"min":    s.params.MinRows,
		}).Debug("Not enough price history for technical analysis")
		return analysis
	}

	closes := series.Closes()
	last, _ := series.Last()
	price := last.Close

	analysis.CurrentPrice = price
	analysis.RSI = round1(RSI(closes, s.params.RSIPeriod))
	analysis.Fibonacci = FibonacciLevels(series)

	// Score buildup: start neutral, let each indicator push the score.
	score := 50.0

	// RSI zones
	switch {
	case analysis.RSI < 30:
		score += 15
		analysis.Signals = append(analysis.Signals, fmt.Sprintf("RSI aşırı satım bölgesinde (%.1f)", analysis.RSI))
	case analysis.RSI < 50:
		score += 8
		analysis.Signals = append(analysis.Signals, fmt.Sprintf("RSI nötr altı (%.1f)", analysis.RSI))
	case analysis.RSI <= 70:
		score += 3
	default:
		score -= 10
		analysis.Signals = append(analysis.Signals, fmt.Sprintf("RSI aşırı alım bölgesinde (%.1f)", analysis.RSI))
	}

	// MACD momentum
	macd, signal, hist := MACD(closes, s.params.MACDFast, s.params.MACDSlow, s.params.MACDSignal)
	if macd > signal {
		score += 15
		if hist > 0 {
			analysis.Signals = append(analysis.Signals, "MACD sinyal hattının üzerinde, momentum pozitif")
		}
	} else {
		score -= 5
	}

	// Moving average alignment
	smaShort := SMA(closes, s.params.SMAShort)
	smaLong := SMA(closes, s.params.SMALong)
	switch {
	case price > smaShort && smaShort > smaLong:
		score += 15
		analysis.Signals = append(analysis.Signals,
			fmt.Sprintf("Fiyat SMA%d ve SMA%d üzerinde, trend yukarı", s.params.SMAShort, s.params.SMALong))
	case price > smaShort:
		score += 8
		analysis.Signals = append(analysis.Signals, fmt.Sprintf("Fiyat SMA%d üzerinde", s.params.SMAShort))
	default:
		score -= 8
		analysis.Signals = append(analysis.Signals, fmt.Sprintf("Fiyat SMA%d altında, trend zayıf", s.params.SMAShort))
	}

	// Bollinger position
	upper, _, lower := Bollinger(closes, s.params.BollingerPeriod)
	switch {
	case price < lower:
		score += 10
		analysis.Signals = append(analysis.Signals, "Fiyat alt Bollinger bandının altında, tepki alımı olası")
	case price > upper:
		score -= 8
		analysis.Signals = append(analysis.Signals, "Fiyat üst Bollinger bandının üzerinde")
	}

	// Keep a valid analysis distinguishable from "no data": clamp the
	// floor above the 0 sentinel.
	analysis.Score = math.Max(1, math.Min(100, score))

	return analysis
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
