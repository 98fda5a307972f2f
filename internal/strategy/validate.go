package strategy

import "fmt"

// Validate checks the loaded strategy for programmer errors. Invalid
// configuration is the only error class that surfaces hard; everything
// downstream assumes a valid Config.
func Validate(cfg *Config) error {
	if cfg.Meta.StrategyID == "" {
		return fmt.Errorf("meta.strategy_id is required")
	}

	if sum := cfg.Weights.Sum(); sum != 100 {
		return fmt.Errorf("weights_pct must sum to 100, got %d", sum)
	}

	if cfg.Selection.MaxPicks <= 0 {
		return fmt.Errorf("selection.max_picks must be positive, got %d", cfg.Selection.MaxPicks)
	}
	if cfg.Selection.FallbackMinScore > cfg.Selection.MinFinalScore {
		return fmt.Errorf("selection.fallback_min_score (%.1f) must not exceed min_final_score (%.1f)",
			cfg.Selection.FallbackMinScore, cfg.Selection.MinFinalScore)
	}

	bt := cfg.Backtest
	if bt.LookbackDays <= 0 {
		return fmt.Errorf("backtest.lookback_days must be positive")
	}
	if bt.MinHistoryRows <= 0 {
		return fmt.Errorf("backtest.min_history_rows must be positive")
	}
	if bt.TopCount <= 0 {
		return fmt.Errorf("backtest.top_count must be positive")
	}
	if bt.ForwardWindowDays <= 0 {
		return fmt.Errorf("backtest.forward_window_days must be positive")
	}
	if bt.MinForwardRows <= 0 {
		return fmt.Errorf("backtest.min_forward_rows must be positive")
	}
	if bt.ExitDayIndex < 0 {
		return fmt.Errorf("backtest.exit_day_index must not be negative")
	}

	if len(cfg.Universe.All()) == 0 {
		return fmt.Errorf("universe must contain at least one ticker")
	}

	return nil
}
