package contracts

// TickerAnalysis is the raw output of the technical scorer for one stock.
// Immutable once produced for a run.
type TickerAnalysis struct {
	Ticker       string             `json:"ticker"`
	Score        float64            `json:"score"`         // 0-100, 0 means "no usable analysis"
	CurrentPrice float64            `json:"current_price"`
	RSI          float64            `json:"rsi"`
	Fibonacci    map[string]float64 `json:"fibonacci"` // level label ("fib_0.382") -> price
	Signals      []string           `json:"signals"`
}

// SectorSentiment maps a sector name to its average news sentiment in
// [-1.0, +1.0]. A sector absent from the map falls back to the "genel"
// bucket, and to 0.0 if that is absent too.
type SectorSentiment map[string]float64

// SectorGeneral is the fallback sector bucket.
const SectorGeneral = "genel"

// ScoreFor returns the sentiment score for a sector, applying the
// fallback chain sector -> genel -> 0.0.
func (s SectorSentiment) ScoreFor(sector string) float64 {
	if score, ok := s[sector]; ok {
		return score
	}
	if score, ok := s[SectorGeneral]; ok {
		return score
	}
	return 0.0
}

// Average returns the unweighted mean over all sector scores, and false
// when the map is empty.
func (s SectorSentiment) Average() (float64, bool) {
	if len(s) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, score := range s {
		sum += score
	}
	return sum / float64(len(s)), true
}

// Rating is the discrete buy/sell verdict derived from the final score.
type Rating string

const (
	RatingStrongBuy Rating = "STRONG_BUY"
	RatingBuy       Rating = "BUY"
	RatingWatch     Rating = "WATCH"
	RatingWeak      Rating = "WEAK"
	RatingSell      Rating = "SELL"
)

// Display returns the Turkish report label for the rating.
func (r Rating) Display() string {
	switch r {
	case RatingStrongBuy:
		return "GÜÇLÜ AL"
	case RatingBuy:
		return "AL"
	case RatingWatch:
		return "İZLE"
	case RatingWeak:
		return "ZAYIF"
	case RatingSell:
		return "SAT"
	default:
		return string(r)
	}
}

// Buyable reports whether the rating qualifies for selection
// (BUY or better).
func (r Rating) Buyable() bool {
	return r == RatingBuy || r == RatingStrongBuy
}

// Confidence labels attached to each rating tier.
const (
	ConfidenceHigh       = "High"
	ConfidenceMediumHigh = "Medium-High"
	ConfidenceMedium     = "Medium"
	ConfidenceMediumLow  = "Medium-Low"
	ConfidenceLow        = "Low"
)

// ScoredStock is a TickerAnalysis extended with the blended final score.
// Derived per run, never persisted by the scoring core itself.
type ScoredStock struct {
	TickerAnalysis

	Sector      string  `json:"sector"`
	SectorScore float64 `json:"sector_score"` // [-1, 1]
	FinalScore  float64 `json:"final_score"`  // [0, 100]
	Rating      Rating  `json:"rating"`
	Confidence  string  `json:"confidence"`
}
