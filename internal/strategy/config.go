package strategy

// Config is the full strategy definition loaded from YAML.
// SSOT: config/strategy/borsa_v1.yaml — weights, thresholds and the
// ticker universe are never hardcoded in components.
type Config struct {
	Meta      Meta      `yaml:"meta" json:"meta"`
	Weights   Weights   `yaml:"weights_pct" json:"weights_pct"`
	Selection Selection `yaml:"selection" json:"selection"`
	Backtest  Backtest  `yaml:"backtest" json:"backtest"`
	Universe  Universe  `yaml:"universe" json:"universe"`
}

// Meta identifies the strategy revision.
type Meta struct {
	StrategyID string `yaml:"strategy_id" json:"strategy_id"`
	Version    string `yaml:"version" json:"version"`
}

// Weights are the final-score blend weights in percent. They must sum
// to 100.
type Weights struct {
	Technical   int `yaml:"technical" json:"technical"`     // default 40
	News        int `yaml:"news" json:"news"`               // default 20
	Fundamental int `yaml:"fundamental" json:"fundamental"` // default 30
	Momentum    int `yaml:"momentum" json:"momentum"`       // default 10
}

// Sum returns the total weight in percent.
func (w Weights) Sum() int {
	return w.Technical + w.News + w.Fundamental + w.Momentum
}

// Selection holds shortlist thresholds.
type Selection struct {
	MaxPicks         int     `yaml:"max_picks" json:"max_picks"`                   // default 3
	MinFinalScore    float64 `yaml:"min_final_score" json:"min_final_score"`       // default 50
	FallbackMinScore float64 `yaml:"fallback_min_score" json:"fallback_min_score"` // default 40
}

// Backtest holds replay parameters.
type Backtest struct {
	LookbackDays      int     `yaml:"lookback_days" json:"lookback_days"`             // calendar days of history, default 200
	MinHistoryRows    int     `yaml:"min_history_rows" json:"min_history_rows"`       // default 60
	EntryThreshold    float64 `yaml:"entry_threshold" json:"entry_threshold"`         // default 55
	TopCount          int     `yaml:"top_count" json:"top_count"`                     // default 3
	ForwardWindowDays int     `yaml:"forward_window_days" json:"forward_window_days"` // calendar days, default 10
	MinForwardRows    int     `yaml:"min_forward_rows" json:"min_forward_rows"`       // default 5
	ExitDayIndex      int     `yaml:"exit_day_index" json:"exit_day_index"`           // default 6 (7th trading day)
}

// Universe is the ticker list the bot analyzes.
type Universe struct {
	Turkish []string `yaml:"turkish" json:"turkish"`
	Global  []string `yaml:"global" json:"global"`
}

// All returns the combined universe, Turkish tickers first.
func (u Universe) All() []string {
	all := make([]string, 0, len(u.Turkish)+len(u.Global))
	all = append(all, u.Turkish...)
	all = append(all, u.Global...)
	return all
}

// Default returns the built-in strategy used when no YAML file is
// available (tests, ad-hoc CLI runs).
func Default() *Config {
	return &Config{
		Meta: Meta{
			StrategyID: "borsa_v1",
			Version:    "1.0.0",
		},
		Weights: Weights{
			Technical:   40,
			News:        20,
			Fundamental: 30,
			Momentum:    10,
		},
		Selection: Selection{
			MaxPicks:         3,
			MinFinalScore:    50,
			FallbackMinScore: 40,
		},
		Backtest: Backtest{
			LookbackDays:      200,
			MinHistoryRows:    60,
			EntryThreshold:    55,
			TopCount:          3,
			ForwardWindowDays: 10,
			MinForwardRows:    5,
			ExitDayIndex:      6,
		},
		Universe: Universe{
			Turkish: []string{
				"THYAO.IS", "ASELS.IS", "AKBANK.IS", "ISCTR.IS", "GARAN.IS",
				"AKSEN.IS", "TUPRS.IS", "BIMAS.IS", "ENKAI.IS", "SISE.IS",
				"TOASO.IS", "FROTO.IS", "OTKAR.IS", "SAHOL.IS", "DOAS.IS",
				"EKGYO.IS", "TTKOM.IS", "TCELL.IS", "AKSA.IS",
			},
			Global: []string{"AAPL", "MSFT", "NVDA", "TSLA", "AMZN"},
		},
	}
}
