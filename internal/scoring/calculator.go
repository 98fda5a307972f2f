package scoring

import (
	"math"

	"github.com/acagil/borsabot/internal/contracts"
	"github.com/acagil/borsabot/internal/strategy"
)

// Rating thresholds and confidence labels are fixed design constants,
// matched to the live track record. Lower bounds are inclusive.
const (
	thresholdStrongBuy = 70.0
	thresholdBuy       = 58.0
	thresholdWatch     = 48.0
	thresholdWeak      = 38.0
)

// neutralMomentum is the placeholder momentum factor. Momentum already
// feeds the technical score upstream, so the standalone term stays
// neutral until a dedicated momentum signal exists.
const neutralMomentum = 0.5

// Calculator blends a stock's technical score with its sector's news
// sentiment into the final 0-100 score and rating.
type Calculator struct {
	weights strategy.Weights
}

// NewCalculator creates a calculator with the given blend weights.
func NewCalculator(weights strategy.Weights) *Calculator {
	return &Calculator{weights: weights}
}

// Compute derives the ScoredStock for one analysis. Pure function of its
// inputs plus the static sector map and configured weights.
//
// Formula:
//
//	final = tech*W_TECH + sector*W_NEWS + tech*W_FUND + 0.5*W_MOM
//
// The fundamental term reuses the normalized technical score as a proxy;
// there is no independent fundamentals feed (the free Alpha Vantage tier
// is too limited). This is a known approximation, kept on purpose.
func (c *Calculator) Compute(analysis contracts.TickerAnalysis, sentiment contracts.SectorSentiment) contracts.ScoredStock {
	sector := SectorFor(analysis.Ticker)
	sectorScore := sentiment.ScoreFor(sector)

	stock := contracts.ScoredStock{
		TickerAnalysis: analysis,
		Sector:         sector,
		SectorScore:    round3(sectorScore),
	}

	// A technical score of 0 encodes "no analysis available" upstream;
	// short-circuit to a zero-confidence result.
	if analysis.Score == 0 {
		stock.Rating = contracts.RatingSell
		stock.Confidence = contracts.ConfidenceLow
		return stock
	}

	// Normalize: technical 0-100 -> 0-1, sector -1..+1 -> 0..1.
	techNorm := analysis.Score / 100.0
	sectorNorm := (sectorScore + 1.0) / 2.0

	finalRaw := techNorm*float64(c.weights.Technical)/100.0 +
		sectorNorm*float64(c.weights.News)/100.0 +
		techNorm*float64(c.weights.Fundamental)/100.0 + // fundamentals proxy
		neutralMomentum*float64(c.weights.Momentum)/100.0

	finalScore := finalRaw * 100.0
	finalScore = math.Max(0, math.Min(100, finalScore))

	stock.FinalScore = round1(finalScore)
	stock.Rating, stock.Confidence = rate(stock.FinalScore)

	return stock
}

// rate maps a final score to its rating tier; first match wins.
func rate(finalScore float64) (contracts.Rating, string) {
	switch {
	case finalScore >= thresholdStrongBuy:
		return contracts.RatingStrongBuy, contracts.ConfidenceHigh
	case finalScore >= thresholdBuy:
		return contracts.RatingBuy, contracts.ConfidenceMediumHigh
	case finalScore >= thresholdWatch:
		return contracts.RatingWatch, contracts.ConfidenceMedium
	case finalScore >= thresholdWeak:
		return contracts.RatingWeak, contracts.ConfidenceMediumLow
	default:
		return contracts.RatingSell, contracts.ConfidenceLow
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
