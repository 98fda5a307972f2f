package selection

import (
	"fmt"
	"sort"

	"github.com/acagil/borsabot/internal/contracts"
	"github.com/acagil/borsabot/internal/scoring"
	"github.com/acagil/borsabot/internal/strategy"
	"github.com/acagil/borsabot/pkg/logger"
)

// Selector ranks scored stocks and applies threshold, rating and
// sector-diversity filters to produce the day's shortlist.
// SSOT: shortlist selection happens here only.
type Selector struct {
	calc   *scoring.Calculator
	config strategy.Selection
	logger *logger.Logger
}

// NewSelector creates a new selector.
func NewSelector(calc *scoring.Calculator, config strategy.Selection, log *logger.Logger) *Selector {
	return &Selector{
		calc:   calc,
		config: config,
		logger: log,
	}
}

// SelectTop selects up to the configured number of picks.
func (s *Selector) SelectTop(analyses []contracts.TickerAnalysis, sentiment contracts.SectorSentiment) []contracts.ScoredStock {
	// MaxPicks is validated at strategy load time.
	selected, _ := s.SelectTopN(analyses, sentiment, s.config.MaxPicks)
	return selected
}

// SelectTopN selects up to maxCount stocks. Selection criteria:
//
//  1. highest final score first (stable on ties, input order preserved)
//  2. final score at or above the minimum threshold
//  3. rating BUY or better
//  4. at most one stock per sector
//
// If nothing qualifies, the single best-scored stock is taken anyway
// when it clears the lower fallback floor, ignoring rating and sector
// filters. An empty result is a valid terminal state, not an error;
// only an invalid maxCount is.
func (s *Selector) SelectTopN(analyses []contracts.TickerAnalysis, sentiment contracts.SectorSentiment, maxCount int) ([]contracts.ScoredStock, error) {
	if maxCount <= 0 {
		return nil, fmt.Errorf("max count must be positive, got %d", maxCount)
	}

	// Score every stock that has a usable technical analysis.
	scored := make([]contracts.ScoredStock, 0, len(analyses))
	for _, analysis := range analyses {
		if analysis.Score == 0 {
			continue // no analysis available upstream
		}
		scored = append(scored, s.calc.Compute(analysis, sentiment))
	}

	// Stable sort keeps input order on equal scores, which decides who
	// wins a sector slot.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].FinalScore > scored[j].FinalScore
	})

	selected := make([]contracts.ScoredStock, 0, maxCount)
	usedSectors := make(map[string]bool)
	rejected := make(map[string]int) // reason -> count

	for _, stock := range scored {
		if len(selected) >= maxCount {
			break
		}

		if stock.FinalScore < s.config.MinFinalScore {
			rejected["score"]++
			continue
		}

		if !stock.Rating.Buyable() {
			rejected["rating"]++
			continue
		}

		if usedSectors[stock.Sector] {
			rejected["sector"]++
			continue
		}

		selected = append(selected, stock)
		usedSectors[stock.Sector] = true
	}

	// Fallback: never return "no signal" while a decent stock exists.
	// The lowered floor still guards against recommending junk.
	if len(selected) == 0 && len(scored) > 0 {
		if best := scored[0]; best.FinalScore >= s.config.FallbackMinScore {
			selected = append(selected, best)
			rejected["fallback_used"] = 1
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"analyzed": len(analyses),
		"scored":   len(scored),
		"selected": len(selected),
		"rejected": rejected,
	}).Info("Shortlist selection completed")

	return selected, nil
}
