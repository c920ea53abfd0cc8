package collector

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "modernc.org/sqlite"

	"TrendLedger/internal/model"
)

// SQLiteBars reads bars from a local SQLite database populated by the
// acquisition layer. The price_bars table is owned by that layer; this
// source only ever reads it.
type SQLiteBars struct {
	db *sql.DB
}

// NewSQLiteBars opens the bar database read-only.
func NewSQLiteBars(dbPath string) (*SQLiteBars, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=ro", dbPath))
	if err != nil {
		return nil, fmt.Errorf("open bar store: %w", err)
	}
	log.Printf("[INFO] bar store opened: %s", dbPath)
	return &SQLiteBars{db: db}, nil
}

func (s *SQLiteBars) Name() string { return "sqlite" }

// FetchBars returns bars for the symbol and source between start and end
// inclusive, ordered by timestamp ascending.
func (s *SQLiteBars) FetchBars(ctx context.Context, symbol, source string, start, end time.Time) ([]model.Bar, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT symbol, ts, open, high, low, close, volume, source
		 FROM price_bars
		 WHERE symbol = ? AND source = ? AND ts BETWEEN ? AND ?
		 ORDER BY ts ASC`,
		symbol, source, start.Unix(), end.Unix())
	if err != nil {
		return nil, fmt.Errorf("query bars for %s: %w", symbol, err)
	}
	defer rows.Close()

	var bars []model.Bar
	for rows.Next() {
		var b model.Bar
		var ts int64
		if err := rows.Scan(&b.Symbol, &ts, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume, &b.Source); err != nil {
			return nil, fmt.Errorf("scan bar for %s: %w", symbol, err)
		}
		b.Time = time.Unix(ts, 0).UTC()
		bars = append(bars, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bars for %s: %w", symbol, err)
	}
	return bars, nil
}

func (s *SQLiteBars) Close() error {
	return s.db.Close()
}
