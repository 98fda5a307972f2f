package technical

import (
	"fmt"

	"github.com/acagil/borsabot/internal/contracts"
)

// fibonacciRatios are the retracement ratios used for support and
// resistance proxies.
var fibonacciRatios = []float64{0.236, 0.382, 0.500, 0.618, 0.786}

// FibonacciLevels computes retracement levels from the swing high and
// low of the series. Keys follow the "fib_0.382" label convention.
func FibonacciLevels(series contracts.PriceSeries) map[string]float64 {
	if len(series) == 0 {
		return map[string]float64{}
	}

	high := series[0].High
	low := series[0].Low
	for _, candle := range series {
		if candle.High > high {
			high = candle.High
		}
		if candle.Low < low {
			low = candle.Low
		}
	}

	levels := make(map[string]float64, len(fibonacciRatios))
	swing := high - low
	for _, ratio := range fibonacciRatios {
		levels[fmt.Sprintf("fib_%.3g", ratio)] = high - swing*ratio
	}
	return levels
}
