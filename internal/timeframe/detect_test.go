package timeframe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"TrendLedger/internal/model"
)

func barsAt(times ...time.Time) []model.Bar {
	bars := make([]model.Bar, len(times))
	for i, ts := range times {
		bars[i] = model.Bar{Symbol: "TEST", Time: ts, Open: 100, High: 101, Low: 99, Close: 100, Volume: 1000}
	}
	return bars
}

func TestDetect_Hourly(t *testing.T) {
	start := time.Date(2024, 1, 8, 10, 0, 0, 0, time.UTC)
	var times []time.Time
	for i := 0; i < 8; i++ {
		times = append(times, start.Add(time.Duration(i)*time.Hour))
	}
	assert.Equal(t, model.FrequencyHourly, Detect(barsAt(times...)))
}

func TestDetect_HourlyWithOvernightGaps(t *testing.T) {
	// two trading sessions with an overnight gap between them
	var times []time.Time
	for day := 0; day < 2; day++ {
		open := time.Date(2024, 1, 8+day, 10, 0, 0, 0, time.UTC)
		for h := 0; h < 7; h++ {
			times = append(times, open.Add(time.Duration(h)*time.Hour))
		}
	}
	assert.Equal(t, model.FrequencyHourly, Detect(barsAt(times...)))
}

func TestDetect_DailyWithWeekendGap(t *testing.T) {
	// Mon-Fri closes plus the following Monday: one 72h delta must not
	// flip the classification
	var times []time.Time
	for d := 0; d < 5; d++ {
		times = append(times, time.Date(2024, 1, 8+d, 16, 0, 0, 0, time.UTC))
	}
	times = append(times, time.Date(2024, 1, 15, 16, 0, 0, 0, time.UTC))
	assert.Equal(t, model.FrequencyDaily, Detect(barsAt(times...)))
}

func TestDetect_DailyCloseTimeVariation(t *testing.T) {
	// session close wobbles within the +/-2h tolerance band
	times := []time.Time{
		time.Date(2024, 1, 8, 16, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 9, 15, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 10, 16, 30, 0, 0, time.UTC),
		time.Date(2024, 1, 11, 16, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, model.FrequencyDaily, Detect(barsAt(times...)))
}

func TestDetect_IrregularIsUnknown(t *testing.T) {
	// 4h spacing matches neither band and must not invent a frequency
	start := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	var times []time.Time
	for i := 0; i < 10; i++ {
		times = append(times, start.Add(time.Duration(4*i)*time.Hour))
	}
	assert.Equal(t, model.FrequencyUnknown, Detect(barsAt(times...)))
}

func TestDetect_MixedIsUnknown(t *testing.T) {
	start := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	times := []time.Time{
		start,
		start.Add(1 * time.Hour),
		start.Add(6 * time.Hour),
		start.Add(30 * time.Hour),
		start.Add(33 * time.Hour),
	}
	assert.Equal(t, model.FrequencyUnknown, Detect(barsAt(times...)))
}

func TestDetect_TooFewBars(t *testing.T) {
	assert.Equal(t, model.FrequencyUnknown, Detect(nil))
	assert.Equal(t, model.FrequencyUnknown, Detect(barsAt(time.Now())))
}
