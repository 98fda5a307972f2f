package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/acagil/borsabot/internal/backtest"
	"github.com/acagil/borsabot/internal/brain"
	"github.com/acagil/borsabot/internal/external/yahoo"
	"github.com/acagil/borsabot/internal/notify"
	"github.com/acagil/borsabot/internal/scoring"
	"github.com/acagil/borsabot/internal/selection"
	"github.com/acagil/borsabot/internal/sentiment"
	"github.com/acagil/borsabot/internal/strategy"
	"github.com/acagil/borsabot/internal/technical"
	"github.com/acagil/borsabot/internal/tracker"
	"github.com/acagil/borsabot/pkg/config"
	"github.com/acagil/borsabot/pkg/database"
	"github.com/acagil/borsabot/pkg/httputil"
	"github.com/acagil/borsabot/pkg/logger"
	"github.com/acagil/borsabot/pkg/redis"
)

// app holds the wired components shared by the CLI commands.
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	strategy *strategy.Config

	db    *database.DB  // nil without --with-db / db-backed commands
	cache *redis.Client

	httpClient *httputil.Client
	prices     *yahoo.Client
	scorer     *technical.Scorer
	selector   *selection.Selector
	formatter  *selection.Formatter
	analyzer   *sentiment.Analyzer
	runner     *backtest.Runner

	repo   *tracker.Repository // nil without database
	mailer *notify.Mailer
}

// newApp loads configuration and wires the analysis stack. When
// needDB is true a database connection is established and the tracker
// schema ensured; otherwise persistence is disabled.
func newApp(needDB bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if verbose {
		cfg.LogLevel = "debug"
	}
	log := logger.New(cfg)

	strategyCfg, err := loadStrategy(cfg, log)
	if err != nil {
		return nil, err
	}

	cacheClient, err := redis.New(cfg)
	if err != nil {
		// A dead cache only costs repeat fetches.
		log.WithError(err).Warn("Redis unavailable, price caching disabled")
		cacheClient, _ = redis.New(&config.Config{})
	}

	httpClient := httputil.New(log).WithRateLimit(5, time.Second)

	a := &app{
		cfg:        cfg,
		log:        log,
		strategy:   strategyCfg,
		cache:      cacheClient,
		httpClient: httpClient,
	}

	a.prices = yahoo.NewClient(httpClient, redis.NewCache(cacheClient, "borsabot"), log)
	a.scorer = technical.NewScorer(technical.DefaultParams(), log)

	calc := scoring.NewCalculator(strategyCfg.Weights)
	a.selector = selection.NewSelector(calc, strategyCfg.Selection, log)
	a.formatter = selection.NewFormatter(log)

	scraper := sentiment.NewHeadlineScraper(httpClient, log)
	a.analyzer = sentiment.NewAnalyzer(cfg.NewsAPI, httpClient, scraper, log)

	a.runner = backtest.NewRunner(a.prices, a.scorer, strategyCfg.Backtest, log)
	a.mailer = notify.NewMailer(cfg, httpClient, log)

	if needDB {
		db, err := database.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		a.db = db
		a.repo = tracker.NewRepository(db.Pool)
	}

	return a, nil
}

// orchestrator builds the daily pipeline from the wired components.
func (a *app) orchestrator() *brain.Orchestrator {
	return brain.NewOrchestrator(
		a.analyzer, a.prices, a.scorer, a.selector, a.formatter,
		a.strategy, a.repo, a.mailer, a.log,
	)
}

// close releases held connections.
func (a *app) close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.cache != nil {
		_ = a.cache.Close()
	}
}

// loadStrategy reads the strategy file, falling back to the built-in
// defaults when no file exists at the configured path.
func loadStrategy(cfg *config.Config, log *logger.Logger) (*strategy.Config, error) {
	path := cfg.StrategyPath
	if strategyFile != "" {
		path = strategyFile
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.WithField("path", path).Warn("Strategy file not found, using defaults")
		return strategy.Default(), nil
	}

	strategyCfg, _, err := strategy.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load strategy: %w", err)
	}
	if err := strategy.Validate(strategyCfg); err != nil {
		return nil, fmt.Errorf("invalid strategy: %w", err)
	}

	hash, err := strategy.Hash(strategyCfg)
	if err == nil {
		log.WithFields(map[string]interface{}{
			"path": path,
			"hash": hash[:12],
		}).Info("Strategy loaded")
	}

	return strategyCfg, nil
}
