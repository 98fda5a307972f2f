package contracts

import "time"

// Recommendation is one display-ready entry of the daily shortlist.
type Recommendation struct {
	Rank       int     `json:"rank"` // 1-based, descending final score
	Ticker     string  `json:"ticker"`
	Sector     string  `json:"sector"`
	Price      float64 `json:"price"`
	FinalScore float64 `json:"final_score"`
	Rating     Rating  `json:"rating"`
	Confidence string  `json:"confidence"`

	Signals []string `json:"signals"` // at most 5

	// Fibonacci-derived levels; 0 means the level was unavailable.
	Support    float64 `json:"support"`
	Resistance float64 `json:"resistance"`

	// Risk/reward; all three are 0 when support, resistance or price is
	// missing (insufficient-data sentinel, not a computed zero).
	RiskPct    float64 `json:"risk_pct"`
	RewardPct  float64 `json:"reward_pct"`
	RiskReward float64 `json:"risk_reward_ratio"`
}

// RecommendationSet is the full formatted output for one analysis run.
type RecommendationSet struct {
	Recommendations []Recommendation `json:"recommendations"`
	TotalSelected   int              `json:"total_selected"`
	MarketMood      string           `json:"market_mood"`
	GeneratedAt     time.Time        `json:"generated_at"`
}
