package yahoo

import (
	"testing"
	"time"
)

func chartJSON(timestamps string, open, high, low, closeVals, volume string) []byte {
	return []byte(`{
		"chart": {
			"result": [{
				"timestamp": [` + timestamps + `],
				"indicators": {
					"quote": [{
						"open": [` + open + `],
						"high": [` + high + `],
						"low": [` + low + `],
						"close": [` + closeVals + `],
						"volume": [` + volume + `]
					}]
				}
			}],
			"error": null
		}
	}`)
}

func TestParseChart(t *testing.T) {
	// Two days, second bar is a null session that must be skipped.
	body := chartJSON(
		"1717027200, 1717113600, 1717200000",
		"100.0, null, 102.0",
		"105.0, null, 106.0",
		"99.0, null, 101.0",
		"104.0, null, 105.5",
		"1000, null, 2000",
	)

	series, err := parseChart(body)
	if err != nil {
		t.Fatalf("parseChart() error: %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("got %d candles, want 2 (null bar skipped): %v", len(series), series)
	}
	if series[0].Close != 104.0 || series[1].Close != 105.5 {
		t.Errorf("closes = %v/%v, want 104.0/105.5", series[0].Close, series[1].Close)
	}
	if series[0].Volume != 1000 {
		t.Errorf("volume = %v, want 1000", series[0].Volume)
	}
}

func TestParseChart_AscendingOrder(t *testing.T) {
	// Timestamps out of order must come back sorted ascending.
	body := chartJSON(
		"1717200000, 1717027200",
		"102.0, 100.0",
		"106.0, 105.0",
		"101.0, 99.0",
		"105.5, 104.0",
		"2000, 1000",
	)

	series, err := parseChart(body)
	if err != nil {
		t.Fatalf("parseChart() error: %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("got %d candles, want 2", len(series))
	}
	if !series[0].Time.Before(series[1].Time) {
		t.Errorf("series not ascending: %v then %v", series[0].Time, series[1].Time)
	}
	want := time.Unix(1717027200, 0).UTC()
	if !series[0].Time.Equal(want) {
		t.Errorf("first candle time = %v, want %v", series[0].Time, want)
	}
}

func TestParseChart_APIError(t *testing.T) {
	body := []byte(`{"chart": {"result": null, "error": {"code": "Not Found", "description": "No data found"}}}`)

	if _, err := parseChart(body); err == nil {
		t.Error("parseChart() must surface chart API errors")
	}
}

func TestParseChart_EmptyResult(t *testing.T) {
	body := []byte(`{"chart": {"result": [], "error": null}}`)

	series, err := parseChart(body)
	if err != nil {
		t.Fatalf("parseChart() error: %v", err)
	}
	if len(series) != 0 {
		t.Errorf("got %d candles, want 0", len(series))
	}
}

func TestParseChart_InvalidJSON(t *testing.T) {
	if _, err := parseChart([]byte("not json")); err == nil {
		t.Error("parseChart() must fail on malformed JSON")
	}
}
