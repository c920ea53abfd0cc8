package notifier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"TrendLedger/internal/model"
)

func TestFormatBatchSummary(t *testing.T) {
	started := time.Date(2024, 3, 15, 22, 30, 0, 0, time.UTC)
	result := &model.BatchResult{
		RunID:      "run-1",
		Date:       time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Results:    map[string]bool{"AAPL": true, "ZZZZ": false, "MSFT": false},
		Succeeded:  1,
		Failed:     2,
		StartedAt:  started,
		FinishedAt: started.Add(3 * time.Second),
	}

	msg := FormatBatchSummary(result)
	assert.Contains(t, msg, "2024-03-15")
	assert.Contains(t, msg, "1 succeeded")
	assert.Contains(t, msg, "2 failed")
	assert.Contains(t, msg, "MSFT, ZZZZ")
}

func TestFormatRecord_NilFields(t *testing.T) {
	sma := 101.5
	vol := int64(1000)
	rec := &model.IndicatorRecord{
		Symbol:         "AAPL",
		CalculatedDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		SMA20:          &sma,
		CurrentVolume:  &vol,
	}

	msg := FormatRecord(rec)
	assert.Contains(t, msg, "AAPL")
	assert.Contains(t, msg, "101.50")
	assert.Contains(t, msg, "n/a")
	assert.Contains(t, msg, "Volume: 1000")
}
