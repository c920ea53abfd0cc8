package recorder

import (
	"time"

	"TrendLedger/internal/model"
)

// Store persists calculated indicator records into the latest-snapshot
// table and the append-only history table.
type Store interface {
	// Store writes the record to both tables. It returns false without an
	// error when the record carries no indicator values (blank records are
	// never persisted) and propagates any write failure unretried.
	Store(rec *model.IndicatorRecord) (bool, error)

	// GetLatest returns the latest snapshot for a symbol, or nil when the
	// symbol has never been calculated.
	GetLatest(symbol string) (*model.IndicatorRecord, error)

	// GetHistory returns history entries for a symbol between start and end
	// (inclusive), ordered by calculation date ascending.
	GetHistory(symbol string, start, end time.Time) ([]model.IndicatorRecord, error)

	Close() error
}
