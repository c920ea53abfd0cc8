package model

import "time"

// Frequency classifies the dominant inter-bar interval of a series.
type Frequency string

const (
	FrequencyHourly  Frequency = "hourly"
	FrequencyDaily   Frequency = "daily"
	FrequencyUnknown Frequency = "unknown"
)

// Bar is a single OHLCV observation for a symbol, tagged with the
// data source that produced it. Bars are read-only once fetched.
type Bar struct {
	Symbol string
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
	Source string
}

// Date returns the bar's calendar date as midnight UTC.
func (b Bar) Date() time.Time {
	y, m, d := b.Time.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
