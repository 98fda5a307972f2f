package tracker

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/acagil/borsabot/internal/contracts"
	"github.com/acagil/borsabot/pkg/logger"
)

// checkHorizons are the holding periods, in calendar days, at which a
// stored recommendation gets its realized return measured.
var checkHorizons = []int{7, 14, 30}

// Checker measures how stored recommendations performed after the
// fact. Per-recommendation failures are logged and skipped.
type Checker struct {
	repo   *Repository
	prices contracts.PriceProvider
	logger *logger.Logger
}

// NewChecker creates a performance checker.
func NewChecker(repo *Repository, prices contracts.PriceProvider, log *logger.Logger) *Checker {
	return &Checker{repo: repo, prices: prices, logger: log}
}

// HorizonResult aggregates the checks completed for one horizon.
type HorizonResult struct {
	HorizonDays int     `json:"horizon_days"`
	Checked     int     `json:"checked"`
	Successes   int     `json:"successes"`
	Losses      int     `json:"losses"`
	AvgReturn   float64 `json:"avg_return"`
}

// CheckReport summarizes one checker run.
type CheckReport struct {
	AsOf     time.Time       `json:"as_of"`
	Horizons []HorizonResult `json:"horizons"`
	Skipped  int             `json:"skipped"`
}

// Run checks every due recommendation at every horizon and persists
// the outcomes.
func (c *Checker) Run(ctx context.Context, asOf time.Time) (*CheckReport, error) {
	report := &CheckReport{AsOf: asOf}

	for _, horizon := range checkHorizons {
		due, err := c.repo.DueForCheck(ctx, asOf, horizon)
		if err != nil {
			return nil, fmt.Errorf("query due checks (%dd): %w", horizon, err)
		}

		result := HorizonResult{HorizonDays: horizon}
		var sum float64

		for _, rec := range due {
			check, ok := c.measure(ctx, rec, horizon)
			if !ok {
				report.Skipped++
				continue
			}
			if err := c.repo.SaveCheck(ctx, check); err != nil {
				c.logger.WithError(err).Warn("Performance check save failed")
				report.Skipped++
				continue
			}

			result.Checked++
			sum += check.ReturnPct
			switch check.Outcome {
			case contracts.OutcomeSuccess:
				result.Successes++
			case contracts.OutcomeLoss:
				result.Losses++
			}
		}

		if result.Checked > 0 {
			result.AvgReturn = math.Round(sum/float64(result.Checked)*100) / 100
		}
		report.Horizons = append(report.Horizons, result)
	}

	c.logger.WithFields(map[string]interface{}{
		"as_of":   asOf.Format("2006-01-02"),
		"skipped": report.Skipped,
	}).Info("Performance check run finished")

	return report, nil
}

// measure fetches the price around recommendation date + horizon and
// computes the realized return. The last close at or before the check
// date is used so weekends and holidays resolve to the prior session.
func (c *Checker) measure(ctx context.Context, rec TrackedRecommendation, horizonDays int) (PerformanceCheck, bool) {
	if rec.EntryPrice <= 0 {
		return PerformanceCheck{}, false
	}

	checkDate := rec.Date.AddDate(0, 0, horizonDays)
	windowStart := checkDate.AddDate(0, 0, -5)

	series, err := c.prices.FetchHistory(ctx, rec.Ticker, windowStart, checkDate.AddDate(0, 0, 1))
	if err != nil {
		c.logger.WithFields(map[string]interface{}{
			"ticker": rec.Ticker,
			"error":  err.Error(),
		}).Debug("Performance check fetch failed, skipping")
		return PerformanceCheck{}, false
	}
	if len(series) == 0 {
		return PerformanceCheck{}, false
	}

	checkPrice := series[len(series)-1].Close
	returnPct := (checkPrice - rec.EntryPrice) / rec.EntryPrice * 100

	return PerformanceCheck{
		RecommendationID: rec.ID,
		HorizonDays:      horizonDays,
		CheckDate:        checkDate,
		CheckPrice:       checkPrice,
		ReturnPct:        returnPct,
		Outcome:          contracts.ClassifyOutcome(returnPct),
	}, true
}
