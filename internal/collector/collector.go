package collector

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"TrendLedger/internal/calculator"
	"TrendLedger/internal/model"
	"TrendLedger/internal/recorder"
	"TrendLedger/internal/timeframe"
)

// DefaultDaysBack is the default lookback window, sized so the 200-period
// SMA has enough daily bars even across weekends and holidays.
const DefaultDaysBack = 300

// Collector orchestrates bar fetching, frequency normalization, indicator
// computation, and storage for one or many symbols.
type Collector struct {
	Source     BarSource
	Store      recorder.Store
	DataSource string // canonical source tag bars are restricted to
}

// NewCollector creates a new Collector.
func NewCollector(source BarSource, store recorder.Store, dataSource string) *Collector {
	return &Collector{Source: source, Store: store, DataSource: dataSource}
}

// Calculate fetches bars for the symbol in [date-daysBack, date], resamples
// hourly input to daily, and computes every indicator with its default
// period. It returns nil (with no error) when the window holds no bars.
// Fields whose lookback exceeds the available history stay nil.
func (c *Collector) Calculate(ctx context.Context, symbol string, date time.Time, daysBack int) (*model.IndicatorRecord, error) {
	start := startOfDay(date.AddDate(0, 0, -daysBack))
	end := endOfDay(date)

	bars, err := c.Source.FetchBars(ctx, symbol, c.DataSource, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetch bars for %s: %w", symbol, err)
	}
	if len(bars) == 0 {
		log.Printf("[WARN] no bars for %s in [%s, %s]",
			symbol, start.Format("2006-01-02"), end.Format("2006-01-02"))
		return nil, nil
	}

	daily := bars
	if timeframe.Detect(bars) == model.FrequencyHourly {
		daily = timeframe.ResampleDaily(bars)
	}

	closes := make([]float64, len(daily))
	volumes := make([]int64, len(daily))
	for i, b := range daily {
		closes[i] = b.Close
		volumes[i] = b.Volume
	}

	rec := &model.IndicatorRecord{Symbol: symbol, CalculatedDate: dateOnly(date)}
	if len(daily) > 0 {
		rec.CalculatedDate = daily[len(daily)-1].Date()
	}

	rec.SMA20 = tryIndicator(func() (float64, error) { return calculator.CalculateSMA(closes, 20) })
	rec.SMA50 = tryIndicator(func() (float64, error) { return calculator.CalculateSMA(closes, 50) })
	rec.SMA200 = tryIndicator(func() (float64, error) { return calculator.CalculateSMA(closes, 200) })

	rec.EMA12 = tryIndicator(func() (float64, error) { return calculator.CalculateEMA(closes, 12) })
	rec.EMA26 = tryIndicator(func() (float64, error) { return calculator.CalculateEMA(closes, 26) })
	rec.EMA50 = tryIndicator(func() (float64, error) { return calculator.CalculateEMA(closes, 50) })

	rec.RSI = tryIndicator(func() (float64, error) { return calculator.CalculateRSI(closes, calculator.RSIPeriod) })
	rec.RSI14 = rec.RSI

	if line, signal, hist, err := calculator.CalculateMACD(closes,
		calculator.MACDFastPeriod, calculator.MACDSlowPeriod, calculator.MACDSignalPeriod); err == nil {
		rec.MACDLine = &line
		rec.MACDSignal = &signal
		rec.MACDHistogram = &hist
	}

	if middle, upper, lower, err := calculator.CalculateBollinger(closes,
		calculator.BollingerPeriod, calculator.BollingerK); err == nil {
		rec.BBMiddle = &middle
		rec.BBUpper = &upper
		rec.BBLower = &lower
		pos := calculator.BollingerPosition(closes[len(closes)-1], upper, lower)
		rec.BBPosition = &pos
		rec.BBWidth = tryIndicator(func() (float64, error) { return calculator.BollingerWidth(upper, lower, middle) })
	}

	rec.Volatility20 = tryIndicator(func() (float64, error) {
		return calculator.CalculateVolatility(closes, calculator.VolatilityPeriod)
	})

	rec.PriceChange1D = tryIndicator(func() (float64, error) { return calculator.CalculatePriceChange(closes, 1) })
	rec.PriceChange5D = tryIndicator(func() (float64, error) { return calculator.CalculatePriceChange(closes, 5) })
	rec.PriceChange30D = tryIndicator(func() (float64, error) { return calculator.CalculatePriceChange(closes, 30) })

	rec.AvgVolume20 = tryIndicator(func() (float64, error) {
		return calculator.CalculateAvgVolume(volumes, calculator.VolumePeriod)
	})
	if len(volumes) > 0 {
		v := volumes[len(volumes)-1]
		rec.CurrentVolume = &v
	}

	return rec, nil
}

// CalculateAndStore runs Calculate and persists the result. It reports
// false when there was nothing to store: no bars, a blank record, or a
// storage failure (which is also returned as the error).
func (c *Collector) CalculateAndStore(ctx context.Context, symbol string, date time.Time, daysBack int) (bool, error) {
	rec, err := c.Calculate(ctx, symbol, date, daysBack)
	if err != nil {
		return false, err
	}
	if rec == nil {
		return false, nil
	}
	return c.Store.Store(rec)
}

// CalculateBatch processes symbols independently: one symbol's failure is
// logged and recorded without aborting the rest of the batch.
func (c *Collector) CalculateBatch(ctx context.Context, symbols []string, date time.Time, daysBack int) *model.BatchResult {
	result := &model.BatchResult{
		RunID:     uuid.NewString(),
		Date:      dateOnly(date),
		Results:   make(map[string]bool, len(symbols)),
		StartedAt: time.Now(),
	}
	log.Printf("[INFO] batch %s: calculating %d symbols for %s",
		result.RunID, len(symbols), result.Date.Format("2006-01-02"))

	for _, symbol := range symbols {
		ok, err := c.calculateStoreSafe(ctx, symbol, date, daysBack)
		if err != nil {
			log.Printf("[ERROR] batch %s: %s: %v", result.RunID, symbol, err)
		}
		result.Results[symbol] = ok
		if ok {
			result.Succeeded++
		} else {
			result.Failed++
		}
	}

	result.FinishedAt = time.Now()
	log.Printf("[INFO] batch %s: done, %d succeeded, %d failed in %s",
		result.RunID, result.Succeeded, result.Failed, result.Duration().Round(time.Millisecond))
	return result
}

// calculateStoreSafe confines one symbol's failure, including panics, to
// that symbol's batch entry.
func (c *Collector) calculateStoreSafe(ctx context.Context, symbol string, date time.Time, daysBack int) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			err = fmt.Errorf("panic calculating %s: %v", symbol, r)
		}
	}()
	return c.CalculateAndStore(ctx, symbol, date, daysBack)
}

func tryIndicator(fn func() (float64, error)) *float64 {
	v, err := fn()
	if err != nil {
		return nil
	}
	return &v
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func startOfDay(t time.Time) time.Time {
	return dateOnly(t)
}

func endOfDay(t time.Time) time.Time {
	return dateOnly(t).Add(24*time.Hour - time.Second)
}
