// Package timeframe normalizes heterogeneous bar granularity: it
// classifies the frequency of a bar series and aggregates hourly bars
// into daily ones.
package timeframe

import (
	"time"

	"TrendLedger/internal/model"
)

// Tolerance bands for the inter-bar delta classification. The daily band
// is wide enough to absorb market-close-time variation between sessions.
const (
	hourlyMin = 45 * time.Minute
	hourlyMax = 75 * time.Minute
	dailyMin  = 22 * time.Hour
	dailyMax  = 26 * time.Hour
)

// Detect classifies the dominant inter-bar interval of an ordered bar
// series. A frequency wins when a strict majority of consecutive deltas
// falls inside its tolerance band; anything else (including series with
// fewer than two bars) is unknown. Callers must treat unknown input as
// already daily and pass it through unresampled.
func Detect(bars []model.Bar) model.Frequency {
	if len(bars) < 2 {
		return model.FrequencyUnknown
	}
	var hourly, daily int
	for i := 1; i < len(bars); i++ {
		delta := bars[i].Time.Sub(bars[i-1].Time)
		switch {
		case delta >= hourlyMin && delta <= hourlyMax:
			hourly++
		case delta >= dailyMin && delta <= dailyMax:
			daily++
		}
	}
	samples := len(bars) - 1
	if hourly*2 > samples {
		return model.FrequencyHourly
	}
	if daily*2 > samples {
		return model.FrequencyDaily
	}
	return model.FrequencyUnknown
}
