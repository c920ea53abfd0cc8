package calculator

import (
	"errors"
	"math"
)

// Default lookback periods used by the orchestrator.
const (
	RSIPeriod        = 14
	MACDFastPeriod   = 12
	MACDSlowPeriod   = 26
	MACDSignalPeriod = 9
	BollingerPeriod  = 20
	BollingerK       = 2.0
	VolatilityPeriod = 20
	VolumePeriod     = 20
)

// TradingDaysPerYear is the annualization factor base for volatility.
const TradingDaysPerYear = 252

// CalculateSMA computes the simple moving average of the last `period` prices.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// CalculateEMA computes the exponential moving average with smoothing
// factor 2/(period+1), seeded with the first price and recursed over the
// entire series. The final value is returned.
func CalculateEMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for EMA calculation")
	}
	alpha := 2.0 / float64(period+1)
	ema := prices[0]
	for _, p := range prices[1:] {
		ema = alpha*p + (1-alpha)*ema
	}
	return ema, nil
}

// CalculateRSI computes the Relative Strength Index over the last `period`
// price changes using a simple arithmetic mean of gains and losses.
// This deliberately differs from Wilder's smoothed average; downstream
// consumers expect these values. Requires period+1 prices.
func CalculateRSI(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period+1 {
		return 0, errors.New("not enough data for RSI calculation")
	}
	var gains, losses float64
	start := len(prices) - period
	for i := start; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}
	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)
	if avgLoss == 0 {
		return 100.0, nil
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs), nil
}

// CalculateMACD computes the MACD line as EMA(fast) - EMA(slow).
// The signal line is set equal to the MACD line, so the histogram is
// always zero. This mirrors the established record semantics; do not
// replace it with a real EMA-of-MACD signal without migrating consumers.
// Requires slow+signal prices.
func CalculateMACD(prices []float64, fast, slow, signal int) (line, signalLine, histogram float64, err error) {
	if fast <= 0 || slow <= 0 || signal <= 0 {
		return 0, 0, 0, errors.New("periods must be positive")
	}
	if len(prices) < slow+signal {
		return 0, 0, 0, errors.New("not enough data for MACD calculation")
	}
	fastEMA, err := CalculateEMA(prices, fast)
	if err != nil {
		return 0, 0, 0, err
	}
	slowEMA, err := CalculateEMA(prices, slow)
	if err != nil {
		return 0, 0, 0, err
	}
	line = fastEMA - slowEMA
	signalLine = line
	histogram = line - signalLine
	return line, signalLine, histogram, nil
}

// CalculateBollinger computes Bollinger Bands: middle = SMA(period),
// upper/lower = middle +/- k * population standard deviation of the
// last `period` prices.
func CalculateBollinger(prices []float64, period int, k float64) (middle, upper, lower float64, err error) {
	middle, err = CalculateSMA(prices, period)
	if err != nil {
		return 0, 0, 0, err
	}
	band := k * populationStdDev(prices[len(prices)-period:])
	return middle, middle + band, middle - band, nil
}

// BollingerPosition returns where price sits within the band as a ratio
// of the band width. A zero-width band yields 0.5. The ratio is not
// clamped: prices outside the bands produce values outside [0, 1].
func BollingerPosition(price, upper, lower float64) float64 {
	if upper == lower {
		return 0.5
	}
	return (price - lower) / (upper - lower)
}

// BollingerWidth returns the band width as a percentage of the middle band.
func BollingerWidth(upper, lower, middle float64) (float64, error) {
	if middle <= 0 {
		return 0, errors.New("middle band must be positive")
	}
	return (upper - lower) / middle * 100, nil
}

// CalculateVolatility computes the annualized standard deviation of simple
// returns over the last `period` returns, expressed as a percentage.
// Requires period+1 prices.
func CalculateVolatility(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period+1 {
		return 0, errors.New("not enough data for volatility calculation")
	}
	window := prices[len(prices)-period-1:]
	returns := make([]float64, 0, period)
	for i := 1; i < len(window); i++ {
		if window[i-1] == 0 {
			return 0, errors.New("zero price in volatility window")
		}
		returns = append(returns, (window[i]-window[i-1])/window[i-1])
	}
	return populationStdDev(returns) * math.Sqrt(TradingDaysPerYear) * 100, nil
}

// CalculatePriceChange returns the percentage change between the latest
// price and the price `periodsBack` periods earlier.
func CalculatePriceChange(prices []float64, periodsBack int) (float64, error) {
	if periodsBack <= 0 {
		return 0, errors.New("periodsBack must be positive")
	}
	if len(prices) < periodsBack+1 {
		return 0, errors.New("not enough data for price change calculation")
	}
	prev := prices[len(prices)-1-periodsBack]
	if prev == 0 {
		return 0, errors.New("previous price is zero")
	}
	return (prices[len(prices)-1] - prev) / prev * 100, nil
}

// CalculateAvgVolume computes the arithmetic mean of the last `period` volumes.
func CalculateAvgVolume(volumes []int64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(volumes) < period {
		return 0, errors.New("not enough data for average volume calculation")
	}
	var sum int64
	for i := len(volumes) - period; i < len(volumes); i++ {
		sum += volumes[i]
	}
	return float64(sum) / float64(period), nil
}

func populationStdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	return math.Sqrt(variance / float64(len(values)))
}
