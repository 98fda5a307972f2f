package technical

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSMA(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}

	if got := SMA(values, 5); !almostEqual(got, 3.0) {
		t.Errorf("SMA(period 5) = %v, want 3.0", got)
	}
	if got := SMA(values, 2); !almostEqual(got, 4.5) {
		t.Errorf("SMA(period 2) = %v, want 4.5", got)
	}
	if got := SMA(values, 6); got != 0 {
		t.Errorf("SMA with insufficient data = %v, want 0", got)
	}
	if got := SMA(values, 0); got != 0 {
		t.Errorf("SMA with zero period = %v, want 0", got)
	}
}

func TestEMASeries(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}

	out := EMASeries(values, 3)
	if len(out) != len(values) {
		t.Fatalf("EMASeries length = %d, want %d", len(out), len(values))
	}
	// Seeded with the SMA of the first three values.
	if !almostEqual(out[2], 2.0) {
		t.Errorf("EMA seed = %v, want 2.0", out[2])
	}
	// k = 0.5: ema[3] = 4*0.5 + 2*0.5 = 3
	if !almostEqual(out[3], 3.0) {
		t.Errorf("EMA[3] = %v, want 3.0", out[3])
	}

	empty := EMASeries([]float64{1, 2}, 3)
	for _, v := range empty {
		if v != 0 {
			t.Errorf("EMASeries with insufficient data = %v, want all zero", empty)
			break
		}
	}
}

func TestRSI(t *testing.T) {
	// Insufficient data reports the neutral midpoint.
	if got := RSI([]float64{100, 101}, 14); got != 50.0 {
		t.Errorf("RSI with insufficient data = %v, want 50.0", got)
	}

	// Monotonically rising closes: no losses, RSI pegs at 100.
	rising := make([]float64, 30)
	for i := range rising {
		rising[i] = 100 + float64(i)
	}
	if got := RSI(rising, 14); got != 100.0 {
		t.Errorf("RSI of rising series = %v, want 100.0", got)
	}

	// Monotonically falling closes: no gains, RSI pegs at 0.
	falling := make([]float64, 30)
	for i := range falling {
		falling[i] = 100 - float64(i)
	}
	if got := RSI(falling, 14); !almostEqual(got, 0.0) {
		t.Errorf("RSI of falling series = %v, want 0.0", got)
	}

	// A mixed series stays strictly inside the band.
	mixed := make([]float64, 30)
	for i := range mixed {
		if i%2 == 0 {
			mixed[i] = 100 + float64(i)
		} else {
			mixed[i] = 99 - float64(i%5)
		}
	}
	got := RSI(mixed, 14)
	if got <= 0 || got >= 100 {
		t.Errorf("RSI of mixed series = %v, want inside (0, 100)", got)
	}
}

func TestMACD(t *testing.T) {
	// Insufficient data: all zero.
	macd, signal, hist := MACD([]float64{1, 2, 3}, 12, 26, 9)
	if macd != 0 || signal != 0 || hist != 0 {
		t.Errorf("MACD with insufficient data = %v/%v/%v, want zeros", macd, signal, hist)
	}

	// A constant series has identical EMAs: MACD collapses to zero.
	flat := make([]float64, 40)
	for i := range flat {
		flat[i] = 100
	}
	macd, signal, hist = MACD(flat, 12, 26, 9)
	if !almostEqual(macd, 0) || !almostEqual(signal, 0) || !almostEqual(hist, 0) {
		t.Errorf("MACD of flat series = %v/%v/%v, want zeros", macd, signal, hist)
	}
}

func TestBollinger(t *testing.T) {
	// Constant values: zero deviation, all bands collapse to the mean.
	flat := make([]float64, 25)
	for i := range flat {
		flat[i] = 50
	}
	upper, middle, lower := Bollinger(flat, 20)
	if !almostEqual(upper, 50) || !almostEqual(middle, 50) || !almostEqual(lower, 50) {
		t.Errorf("Bollinger of flat series = %v/%v/%v, want 50/50/50", upper, middle, lower)
	}

	upper, middle, lower = Bollinger([]float64{1, 2}, 20)
	if upper != 0 || middle != 0 || lower != 0 {
		t.Errorf("Bollinger with insufficient data = %v/%v/%v, want zeros", upper, middle, lower)
	}
}
