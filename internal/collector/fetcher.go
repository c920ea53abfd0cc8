package collector

import (
	"context"
	"time"

	"TrendLedger/internal/model"
)

// BarSource fetches OHLCV bars from an external store or vendor API.
// Implementations return bars for one symbol restricted to the given data
// source, bounded to [start, end] and ordered by timestamp ascending.
// The calculation pipeline never writes through this interface.
type BarSource interface {
	FetchBars(ctx context.Context, symbol, source string, start, end time.Time) ([]model.Bar, error)
	Name() string
}
