package brain

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/acagil/borsabot/internal/contracts"
	"github.com/acagil/borsabot/internal/notify"
	"github.com/acagil/borsabot/internal/selection"
	"github.com/acagil/borsabot/internal/strategy"
	"github.com/acagil/borsabot/internal/tracker"
	"github.com/acagil/borsabot/pkg/logger"
)

const (
	fetchWorkers = 4
	fetchTimeout = 30 * time.Second
)

// Orchestrator coordinates the daily analysis pipeline:
// sentiment → fetch+score → select → format → persist → mail.
// SSOT: pipeline sequencing happens here only.
type Orchestrator struct {
	sentiment contracts.SentimentProvider
	prices    contracts.PriceProvider
	scorer    contracts.TechnicalScorer
	selector  *selection.Selector
	formatter *selection.Formatter
	strategy  *strategy.Config

	// Optional collaborators; nil disables the stage.
	repo   *tracker.Repository
	mailer *notify.Mailer

	logger *logger.Logger
}

// NewOrchestrator creates a pipeline orchestrator. repo and mailer may
// be nil; the persist and mail stages are then skipped.
func NewOrchestrator(
	sentimentProvider contracts.SentimentProvider,
	prices contracts.PriceProvider,
	scorer contracts.TechnicalScorer,
	selector *selection.Selector,
	formatter *selection.Formatter,
	strategyConfig *strategy.Config,
	repo *tracker.Repository,
	mailer *notify.Mailer,
	log *logger.Logger,
) *Orchestrator {
	return &Orchestrator{
		sentiment: sentimentProvider,
		prices:    prices,
		scorer:    scorer,
		selector:  selector,
		formatter: formatter,
		strategy:  strategyConfig,
		repo:      repo,
		mailer:    mailer,
		logger:    log,
	}
}

// RunConfig holds the parameters for one pipeline run.
type RunConfig struct {
	Date    time.Time
	Tickers []string // empty: strategy universe
	DryRun  bool     // skip persist and mail stages
}

// RunResult holds the outputs of one pipeline run.
type RunResult struct {
	Date            time.Time
	Analyzed        int
	Selected        []contracts.ScoredStock
	Set             *contracts.RecommendationSet
	CompletedStages []string
	Duration        time.Duration
}

// Run executes the daily pipeline. Upstream data problems degrade the
// run (neutral sentiment, skipped tickers); only configuration errors
// abort it.
func (o *Orchestrator) Run(ctx context.Context, config RunConfig) (*RunResult, error) {
	startTime := time.Now()

	tickers := config.Tickers
	if len(tickers) == 0 {
		tickers = o.strategy.Universe.All()
	}

	result := &RunResult{
		Date:            config.Date,
		CompletedStages: make([]string, 0, 5),
	}

	o.logger.WithFields(map[string]interface{}{
		"date":    config.Date.Format("2006-01-02"),
		"tickers": len(tickers),
		"dry_run": config.DryRun,
	}).Info("Starting analysis pipeline")

	// Stage 1: sentiment snapshot. Failure degrades to neutral.
	sentiment := o.runSentiment(ctx)
	result.CompletedStages = append(result.CompletedStages, "sentiment")

	// Stage 2: per-ticker fetch + technical score.
	analyses := o.runAnalysis(ctx, config.Date, tickers)
	result.Analyzed = len(analyses)
	result.CompletedStages = append(result.CompletedStages, "analysis")

	// Stage 3: scoring + selection.
	selected := o.selector.SelectTop(analyses, sentiment)
	result.Selected = selected
	result.CompletedStages = append(result.CompletedStages, "selection")

	// Stage 4: formatting.
	set := o.formatter.Format(selected, sentiment)
	set.GeneratedAt = config.Date
	result.Set = &set
	result.CompletedStages = append(result.CompletedStages, "format")

	if !config.DryRun {
		if o.repo != nil {
			if err := o.repo.SaveSet(ctx, &set); err != nil {
				return result, fmt.Errorf("persist recommendations: %w", err)
			}
			result.CompletedStages = append(result.CompletedStages, "persist")
		}

		if o.mailer != nil && o.mailer.Enabled() {
			if err := o.sendReport(ctx, &set); err != nil {
				// Mail delivery is best effort; the run already succeeded.
				o.logger.WithError(err).Warn("Report mail failed")
			} else {
				result.CompletedStages = append(result.CompletedStages, "mail")
			}
		}
	}

	result.Duration = time.Since(startTime)

	o.logger.WithFields(map[string]interface{}{
		"analyzed": result.Analyzed,
		"selected": len(selected),
		"duration": result.Duration.Seconds(),
	}).Info("Analysis pipeline completed")

	return result, nil
}

// runSentiment fetches the sector sentiment snapshot. Any failure
// yields an empty snapshot, which downstream treats as neutral.
func (o *Orchestrator) runSentiment(ctx context.Context) contracts.SectorSentiment {
	sentiment, err := o.sentiment.Snapshot(ctx)
	if err != nil {
		o.logger.WithError(err).Warn("Sentiment snapshot failed, using neutral")
		return contracts.SectorSentiment{}
	}
	return sentiment
}

// runAnalysis fans out price fetch + technical scoring per ticker over
// a bounded pool. Failed or score-zero tickers are dropped.
func (o *Orchestrator) runAnalysis(ctx context.Context, date time.Time, tickers []string) []contracts.TickerAnalysis {
	lookbackStart := date.AddDate(0, 0, -o.strategy.Backtest.LookbackDays)

	results := make([]*contracts.TickerAnalysis, len(tickers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchWorkers)

	for i, ticker := range tickers {
		i, ticker := i, ticker
		g.Go(func() error {
			fetchCtx, cancel := context.WithTimeout(gctx, fetchTimeout)
			defer cancel()

			series, err := o.prices.FetchHistory(fetchCtx, ticker, lookbackStart, date)
			if err != nil {
				o.logger.WithFields(map[string]interface{}{
					"ticker": ticker,
					"error":  err.Error(),
				}).Warn("Price fetch failed, skipping ticker")
				return nil
			}
			if len(series) < o.strategy.Backtest.MinHistoryRows {
				return nil
			}

			results[i] = o.scorer.Score(ticker, series)
			return nil
		})
	}
	_ = g.Wait()

	analyses := make([]contracts.TickerAnalysis, 0, len(tickers))
	for _, a := range results {
		if a != nil && a.Score > 0 {
			analyses = append(analyses, *a)
		}
	}
	return analyses
}

func (o *Orchestrator) sendReport(ctx context.Context, set *contracts.RecommendationSet) error {
	plain, htmlBody, err := notify.RenderDailyReport(set)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Günlük Hisse Önerileri — %s", set.GeneratedAt.Format("02.01.2006"))
	return o.mailer.Send(ctx, subject, plain, htmlBody)
}
