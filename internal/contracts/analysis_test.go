package contracts

import "testing"

func TestSectorSentiment_ScoreFor(t *testing.T) {
	sentiment := SectorSentiment{
		"teknoloji": 0.4,
		"genel":     0.1,
	}

	tests := []struct {
		name   string
		sector string
		want   float64
	}{
		{"known sector", "teknoloji", 0.4},
		{"unknown sector falls back to genel", "enerji", 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sentiment.ScoreFor(tt.sector); got != tt.want {
				t.Errorf("ScoreFor(%q) = %v, want %v", tt.sector, got, tt.want)
			}
		})
	}

	// Without a genel bucket the fallback is neutral.
	empty := SectorSentiment{}
	if got := empty.ScoreFor("finans"); got != 0.0 {
		t.Errorf("ScoreFor on empty sentiment = %v, want 0.0", got)
	}
}

func TestSectorSentiment_Average(t *testing.T) {
	sentiment := SectorSentiment{"a": 0.2, "b": 0.4}
	avg, ok := sentiment.Average()
	if !ok {
		t.Fatal("Average() ok = false, want true")
	}
	if diff := avg - 0.3; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Average() = %v, want 0.3", avg)
	}

	if _, ok := (SectorSentiment{}).Average(); ok {
		t.Error("Average() on empty map ok = true, want false")
	}
}

func TestRating_Buyable(t *testing.T) {
	tests := []struct {
		rating Rating
		want   bool
	}{
		{RatingStrongBuy, true},
		{RatingBuy, true},
		{RatingWatch, false},
		{RatingWeak, false},
		{RatingSell, false},
	}

	for _, tt := range tests {
		if got := tt.rating.Buyable(); got != tt.want {
			t.Errorf("%s.Buyable() = %v, want %v", tt.rating, got, tt.want)
		}
	}
}

func TestRating_Display(t *testing.T) {
	if got := RatingStrongBuy.Display(); got != "GÜÇLÜ AL" {
		t.Errorf("RatingStrongBuy.Display() = %q, want %q", got, "GÜÇLÜ AL")
	}
	if got := RatingSell.Display(); got != "SAT" {
		t.Errorf("RatingSell.Display() = %q, want %q", got, "SAT")
	}
}
