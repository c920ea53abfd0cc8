package collector

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedBarDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bars.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE price_bars (
		symbol TEXT NOT NULL,
		ts     INTEGER NOT NULL,
		open   REAL, high REAL, low REAL, close REAL,
		volume INTEGER,
		source TEXT NOT NULL
	)`)
	require.NoError(t, err)

	base := time.Date(2024, 3, 11, 16, 0, 0, 0, time.UTC)
	stmt := `INSERT INTO price_bars (symbol, ts, open, high, low, close, volume, source) VALUES (?,?,?,?,?,?,?,?)`
	for i := 0; i < 5; i++ {
		ts := base.AddDate(0, 0, i).Unix()
		_, err = db.Exec(stmt, "AAPL", ts, 100.0+float64(i), 101.0+float64(i), 99.0+float64(i), 100.5+float64(i), 1000+i, "eodhd")
		require.NoError(t, err)
	}
	// different source and symbol must be filtered out
	_, err = db.Exec(stmt, "AAPL", base.Unix(), 1.0, 1.0, 1.0, 1.0, 1, "other")
	require.NoError(t, err)
	_, err = db.Exec(stmt, "MSFT", base.Unix(), 2.0, 2.0, 2.0, 2.0, 2, "eodhd")
	require.NoError(t, err)

	return path
}

func TestSQLiteBars_FetchBars(t *testing.T) {
	src, err := NewSQLiteBars(seedBarDB(t))
	require.NoError(t, err)
	defer src.Close()

	start := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 13, 23, 59, 59, 0, time.UTC)
	bars, err := src.FetchBars(context.Background(), "AAPL", "eodhd", start, end)
	require.NoError(t, err)
	require.Len(t, bars, 3)

	for i, b := range bars {
		assert.Equal(t, "AAPL", b.Symbol)
		assert.Equal(t, "eodhd", b.Source)
		assert.Equal(t, 100.5+float64(i), b.Close)
		if i > 0 {
			assert.True(t, bars[i-1].Time.Before(b.Time))
		}
	}
}

func TestSQLiteBars_EmptyWindow(t *testing.T) {
	src, err := NewSQLiteBars(seedBarDB(t))
	require.NoError(t, err)
	defer src.Close()

	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC)
	bars, err := src.FetchBars(context.Background(), "AAPL", "eodhd", start, end)
	require.NoError(t, err)
	assert.Empty(t, bars)
}
