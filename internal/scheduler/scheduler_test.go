package scheduler

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TrendLedger/internal/model"
	"TrendLedger/internal/recorder"
)

func newTestScheduler(t *testing.T) (*Scheduler, recorder.Store) {
	t.Helper()
	store, err := recorder.NewSQLiteStore(filepath.Join(t.TempDir(), "indicators.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewScheduler(context.Background(), nil, store, nil, []string{"AAPL", "MSFT"}, 300), store
}

func TestHandleCommand_Latest(t *testing.T) {
	sched, store := newTestScheduler(t)

	sma := 123.45
	_, err := store.Store(&model.IndicatorRecord{
		Symbol:         "AAPL",
		CalculatedDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		SMA20:          &sma,
	})
	require.NoError(t, err)

	reply := sched.HandleCommand("/latest aapl")
	assert.Contains(t, reply, "AAPL")
	assert.Contains(t, reply, "123.45")

	reply = sched.HandleCommand("/latest ZZZZ")
	assert.Contains(t, reply, "No indicators")

	reply = sched.HandleCommand("/latest")
	assert.Contains(t, reply, "Usage")
}

func TestHandleCommand_Status(t *testing.T) {
	sched, _ := newTestScheduler(t)
	reply := sched.HandleCommand("/status")
	assert.Contains(t, reply, "2 symbols")
	assert.Contains(t, reply, "300 days")
}

func TestHandleCommand_Unknown(t *testing.T) {
	sched, _ := newTestScheduler(t)
	reply := sched.HandleCommand("/bogus")
	assert.Contains(t, reply, "Commands:")
	assert.Empty(t, sched.HandleCommand("   "))
}

func TestRegister_BadCronSpec(t *testing.T) {
	sched, _ := newTestScheduler(t)
	assert.Error(t, sched.Register("not a cron spec"))
	assert.NoError(t, sched.Register("0 30 22 * * 1-5"))
}
