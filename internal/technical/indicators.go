package technical

import "math"

// SMA returns the simple moving average of the last period values.
// Returns 0 when there is not enough data.
func SMA(values []float64, period int) float64 {
	if period <= 0 || len(values) < period {
		return 0
	}

	sum := 0.0
	for _, v := range values[len(values)-period:] {
		sum += v
	}
	return sum / float64(period)
}

// EMASeries returns the exponential moving average series. The first
// period-1 entries are zero; the EMA is seeded with the SMA of the
// first period values.
func EMASeries(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	if period <= 0 || len(values) < period {
		return out
	}

	seed := 0.0
	for _, v := range values[:period] {
		seed += v
	}
	seed /= float64(period)
	out[period-1] = seed

	k := 2.0 / float64(period+1)
	for i := period; i < len(values); i++ {
		out[i] = values[i]*k + out[i-1]*(1-k)
	}
	return out
}

// RSI computes the Wilder-smoothed relative strength index over the
// given period. Returns the neutral 50.0 when data is insufficient.
func RSI(values []float64, period int) float64 {
	if period <= 0 || len(values) < period+1 {
		return 50.0
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := values[i] - values[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	// Wilder smoothing for the remaining bars
	for i := period + 1; i < len(values); i++ {
		change := values[i] - values[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}

// MACD returns the MACD line, signal line and histogram for the given
// fast/slow/signal periods. All zero when data is insufficient.
func MACD(values []float64, fast, slow, signalPeriod int) (macd, signal, hist float64) {
	if len(values) < slow+signalPeriod {
		return 0, 0, 0
	}

	fastEMA := EMASeries(values, fast)
	slowEMA := EMASeries(values, slow)

	macdSeries := make([]float64, 0, len(values)-slow+1)
	for i := slow - 1; i < len(values); i++ {
		macdSeries = append(macdSeries, fastEMA[i]-slowEMA[i])
	}

	signalSeries := EMASeries(macdSeries, signalPeriod)

	macd = macdSeries[len(macdSeries)-1]
	signal = signalSeries[len(signalSeries)-1]
	return macd, signal, macd - signal
}

// Bollinger returns the upper, middle and lower bands over the given
// period using 2 standard deviations. All zero when data is
// insufficient.
func Bollinger(values []float64, period int) (upper, middle, lower float64) {
	if period <= 0 || len(values) < period {
		return 0, 0, 0
	}

	window := values[len(values)-period:]
	middle = SMA(values, period)

	variance := 0.0
	for _, v := range window {
		diff := v - middle
		variance += diff * diff
	}
	stddev := math.Sqrt(variance / float64(period))

	return middle + 2*stddev, middle, middle - 2*stddev
}
