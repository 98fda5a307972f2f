package scoring

import (
	"testing"

	"github.com/acagil/borsabot/internal/contracts"
)

func TestSectorFor(t *testing.T) {
	tests := []struct {
		ticker string
		want   string
	}{
		{"THYAO.IS", "teknoloji"},
		{"ASELS.IS", "savunma"},
		{"GARAN.IS", "finans"},
		{"TCELL.IS", "telekom"},
		{"AAPL", "teknoloji"},
		{"XOM", "enerji"},
		{"UNKNOWN.IS", contracts.SectorGeneral},
	}

	for _, tt := range tests {
		if got := SectorFor(tt.ticker); got != tt.want {
			t.Errorf("SectorFor(%q) = %q, want %q", tt.ticker, got, tt.want)
		}
	}
}

func TestSentimentFor(t *testing.T) {
	sentiment := contracts.SectorSentiment{
		"teknoloji": 0.4,
		"genel":     -0.1,
	}

	if got := SentimentFor("AAPL", sentiment); got != 0.4 {
		t.Errorf("SentimentFor(AAPL) = %v, want 0.4", got)
	}
	// Mapped sector missing from the snapshot: genel fallback.
	if got := SentimentFor("GARAN.IS", sentiment); got != -0.1 {
		t.Errorf("SentimentFor(GARAN.IS) = %v, want -0.1", got)
	}
}
