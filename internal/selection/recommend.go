package selection

import (
	"math"
	"time"

	"github.com/acagil/borsabot/internal/contracts"
	"github.com/acagil/borsabot/pkg/logger"
)

// Fibonacci level labels used as support/resistance proxies.
const (
	fibSupportLabel    = "fib_0.382"
	fibResistanceLabel = "fib_0.618"
)

const maxSignalsPerRecommendation = 5

// Formatter turns a shortlist into display-ready recommendations with
// risk/reward annotations and the overall market mood.
type Formatter struct {
	logger *logger.Logger
}

// NewFormatter creates a new formatter.
func NewFormatter(log *logger.Logger) *Formatter {
	return &Formatter{logger: log}
}

// Format builds the recommendation set for a shortlist. Rank is the
// 1-based position in selection order.
func (f *Formatter) Format(selected []contracts.ScoredStock, sentiment contracts.SectorSentiment) contracts.RecommendationSet {
	recommendations := make([]contracts.Recommendation, 0, len(selected))

	for i, stock := range selected {
		support := stock.Fibonacci[fibSupportLabel]
		resistance := stock.Fibonacci[fibResistanceLabel]

		rec := contracts.Recommendation{
			Rank:       i + 1,
			Ticker:     stock.Ticker,
			Sector:     stock.Sector,
			Price:      stock.CurrentPrice,
			FinalScore: stock.FinalScore,
			Rating:     stock.Rating,
			Confidence: stock.Confidence,
			Signals:    trimSignals(stock.Signals),
			Support:    support,
			Resistance: resistance,
		}

		// Risk/reward needs all three levels; otherwise the zeros are
		// an insufficient-data sentinel.
		if support > 0 && resistance > 0 && stock.CurrentPrice > 0 {
			rec.RiskPct = round1((stock.CurrentPrice - support) / stock.CurrentPrice * 100)
			rec.RewardPct = round1((resistance - stock.CurrentPrice) / stock.CurrentPrice * 100)
			if rec.RiskPct > 0 {
				rec.RiskReward = round2(rec.RewardPct / rec.RiskPct)
			}
		}

		recommendations = append(recommendations, rec)
	}

	set := contracts.RecommendationSet{
		Recommendations: recommendations,
		TotalSelected:   len(selected),
		MarketMood:      MarketMood(sentiment),
		GeneratedAt:     time.Now(),
	}

	f.logger.WithFields(map[string]interface{}{
		"count": len(recommendations),
		"mood":  set.MarketMood,
	}).Debug("Recommendations formatted")

	return set
}

// MarketMood derives the overall mood label from the unweighted mean of
// all sector sentiment scores.
func MarketMood(sentiment contracts.SectorSentiment) string {
	avg, ok := sentiment.Average()
	if !ok {
		return "undetermined"
	}

	switch {
	case avg >= 0.3:
		return "very positive"
	case avg >= 0.1:
		return "positive"
	case avg >= -0.1:
		return "mixed"
	case avg >= -0.3:
		return "negative"
	default:
		return "very negative"
	}
}

func trimSignals(signals []string) []string {
	if len(signals) <= maxSignalsPerRecommendation {
		return signals
	}
	return signals[:maxSignalsPerRecommendation]
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
