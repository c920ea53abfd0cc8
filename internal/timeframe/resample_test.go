package timeframe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TrendLedger/internal/model"
)

func hourlyBar(ts time.Time, open, high, low, close float64, volume int64) model.Bar {
	return model.Bar{Symbol: "TEST", Source: "test", Time: ts, Open: open, High: high, Low: low, Close: close, Volume: volume}
}

func TestResampleDaily_SingleDay(t *testing.T) {
	day := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	bars := []model.Bar{
		hourlyBar(day.Add(10*time.Hour), 100, 102, 99, 101, 500),
		hourlyBar(day.Add(11*time.Hour), 101, 105, 100, 104, 300),
		hourlyBar(day.Add(12*time.Hour), 104, 104.5, 98, 99, 200),
	}

	daily := ResampleDaily(bars)
	require.Len(t, daily, 1)

	d := daily[0]
	assert.Equal(t, day, d.Time)
	assert.Equal(t, 100.0, d.Open)   // first bar's open
	assert.Equal(t, 99.0, d.Close)   // last bar's close
	assert.Equal(t, 105.0, d.High)   // max of highs
	assert.Equal(t, 98.0, d.Low)     // min of lows
	assert.Equal(t, int64(1000), d.Volume)
	assert.Equal(t, "TEST", d.Symbol)
	assert.Equal(t, "test", d.Source)
}

func TestResampleDaily_WeekendGap(t *testing.T) {
	fri := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	mon := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	bars := []model.Bar{
		hourlyBar(fri.Add(10*time.Hour), 100, 101, 99, 100.5, 100),
		hourlyBar(fri.Add(11*time.Hour), 100.5, 102, 100, 101, 100),
		hourlyBar(mon.Add(10*time.Hour), 101, 103, 100, 102, 100),
		hourlyBar(mon.Add(11*time.Hour), 102, 104, 101, 103, 100),
	}

	daily := ResampleDaily(bars)
	// Friday and Monday only: the weekend must not be synthesized
	require.Len(t, daily, 2)
	assert.Equal(t, fri, daily[0].Time)
	assert.Equal(t, mon, daily[1].Time)
	assert.True(t, daily[0].Time.Before(daily[1].Time))
}

func TestResampleDaily_Invariants(t *testing.T) {
	day := time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC)
	bars := []model.Bar{
		hourlyBar(day.Add(9*time.Hour), 50, 51, 49.5, 50.2, 10),
		hourlyBar(day.Add(10*time.Hour), 50.2, 53, 50, 52.8, 20),
	}
	daily := ResampleDaily(bars)
	require.Len(t, daily, 1)
	d := daily[0]
	assert.LessOrEqual(t, d.Low, d.Open)
	assert.LessOrEqual(t, d.Open, d.High)
	assert.LessOrEqual(t, d.Low, d.Close)
	assert.LessOrEqual(t, d.Close, d.High)
	assert.Positive(t, d.Volume)
}

func TestResampleDaily_DoesNotMutateInput(t *testing.T) {
	day := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	bars := []model.Bar{
		hourlyBar(day.Add(10*time.Hour), 100, 102, 99, 101, 500),
		hourlyBar(day.Add(11*time.Hour), 101, 105, 100, 104, 300),
	}
	snapshot := make([]model.Bar, len(bars))
	copy(snapshot, bars)

	ResampleDaily(bars)
	assert.Equal(t, snapshot, bars)
}

func TestResampleDaily_Empty(t *testing.T) {
	assert.Empty(t, ResampleDaily(nil))
}
