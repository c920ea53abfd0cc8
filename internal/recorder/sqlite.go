package recorder

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"TrendLedger/internal/model"
)

const dateLayout = "2006-01-02"

// indicatorColumns is the shared column order for both tables. Argument
// and scan helpers below must stay in sync with this list.
var indicatorColumns = []string{
	"sma_20", "sma_50", "sma_200",
	"ema_12", "ema_26", "ema_50",
	"rsi", "rsi_14",
	"macd_line", "macd_signal", "macd_histogram",
	"bb_upper", "bb_middle", "bb_lower", "bb_position", "bb_width",
	"volatility_20",
	"price_change_1d", "price_change_5d", "price_change_30d",
	"avg_volume_20", "current_volume",
}

// SQLiteStore persists indicator records to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboards can read while the scheduler writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] indicator store opened: %s", dbPath)
	return s, nil
}

// indicatorDDL is the shared nullable column block of both tables, in
// indicatorColumns order.
const indicatorDDL = `
			sma_20           REAL,
			sma_50           REAL,
			sma_200          REAL,
			ema_12           REAL,
			ema_26           REAL,
			ema_50           REAL,
			rsi              REAL,
			rsi_14           REAL,
			macd_line        REAL,
			macd_signal      REAL,
			macd_histogram   REAL,
			bb_upper         REAL,
			bb_middle        REAL,
			bb_lower         REAL,
			bb_position      REAL,
			bb_width         REAL,
			volatility_20    REAL,
			price_change_1d  REAL,
			price_change_5d  REAL,
			price_change_30d REAL,
			avg_volume_20    REAL,
			current_volume   INTEGER,`

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS indicators_latest (
			symbol          TEXT PRIMARY KEY,
			calculated_date TEXT NOT NULL,` + indicatorDDL + `
			updated_at      INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS indicators_history (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol          TEXT NOT NULL,
			calculated_date TEXT NOT NULL,` + indicatorDDL + `
			created_at      INTEGER NOT NULL,
			UNIQUE(symbol, calculated_date)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_history_symbol_date
			ON indicators_history(symbol, calculated_date)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
	}
	return nil
}

// Store upserts the latest snapshot and appends the history entry for the
// record's (symbol, date) inside a single transaction. A record with no
// indicator values is skipped and reported as not stored; an existing
// history entry for the same (symbol, date) is left untouched.
func (s *SQLiteStore) Store(rec *model.IndicatorRecord) (bool, error) {
	if rec == nil || rec.Symbol == "" {
		return false, errors.New("record must have a symbol")
	}
	if !rec.HasValues() {
		log.Printf("[WARN] skipping blank record for %s on %s",
			rec.Symbol, rec.CalculatedDate.Format(dateLayout))
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	date := rec.CalculatedDate.Format(dateLayout)
	now := time.Now().Unix()

	args := append([]any{rec.Symbol, date}, indicatorArgs(rec)...)
	args = append(args, now)

	// Latest snapshot: a single atomic insert-or-overwrite keyed by symbol.
	if _, err := tx.Exec(upsertLatestSQL, args...); err != nil {
		return false, fmt.Errorf("upsert latest for %s: %w", rec.Symbol, err)
	}

	// History is a fact log: replaying a (symbol, date) is a no-op.
	var existing int
	if err := tx.QueryRow(
		`SELECT COUNT(1) FROM indicators_history WHERE symbol = ? AND calculated_date = ?`,
		rec.Symbol, date,
	).Scan(&existing); err != nil {
		return false, fmt.Errorf("check history for %s: %w", rec.Symbol, err)
	}
	if existing == 0 {
		if _, err := tx.Exec(insertHistorySQL, args...); err != nil {
			return false, fmt.Errorf("insert history for %s: %w", rec.Symbol, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit for %s: %w", rec.Symbol, err)
	}
	return true, nil
}

// GetLatest returns the latest snapshot for a symbol, or nil if absent.
func (s *SQLiteStore) GetLatest(symbol string) (*model.IndicatorRecord, error) {
	row := s.db.QueryRow(fmt.Sprintf(
		`SELECT symbol, calculated_date, %s FROM indicators_latest WHERE symbol = ?`,
		strings.Join(indicatorColumns, ", ")), symbol)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get latest for %s: %w", symbol, err)
	}
	return rec, nil
}

// GetHistory returns history entries between start and end inclusive,
// ordered by calculation date ascending.
func (s *SQLiteStore) GetHistory(symbol string, start, end time.Time) ([]model.IndicatorRecord, error) {
	rows, err := s.db.Query(fmt.Sprintf(
		`SELECT symbol, calculated_date, %s FROM indicators_history
		 WHERE symbol = ? AND calculated_date BETWEEN ? AND ?
		 ORDER BY calculated_date ASC`,
		strings.Join(indicatorColumns, ", ")),
		symbol, start.Format(dateLayout), end.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("query history for %s: %w", symbol, err)
	}
	defer rows.Close()

	var records []model.IndicatorRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan history for %s: %w", symbol, err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history for %s: %w", symbol, err)
	}
	return records, nil
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing indicator store")
	return s.db.Close()
}

var (
	upsertLatestSQL = fmt.Sprintf(
		`INSERT INTO indicators_latest (symbol, calculated_date, %s, updated_at)
		 VALUES (%s)
		 ON CONFLICT(symbol) DO UPDATE SET calculated_date = excluded.calculated_date, %s, updated_at = excluded.updated_at`,
		strings.Join(indicatorColumns, ", "),
		placeholders(len(indicatorColumns)+3),
		excludedSet(indicatorColumns))

	insertHistorySQL = fmt.Sprintf(
		`INSERT INTO indicators_history (symbol, calculated_date, %s, created_at)
		 VALUES (%s)`,
		strings.Join(indicatorColumns, ", "),
		placeholders(len(indicatorColumns)+3))
)

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func excludedSet(cols []string) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = fmt.Sprintf("%s = excluded.%s", c, c)
	}
	return strings.Join(parts, ", ")
}

// indicatorArgs returns the record's nullable fields in indicatorColumns
// order. Nil pointers become SQL NULLs.
func indicatorArgs(rec *model.IndicatorRecord) []any {
	return []any{
		rec.SMA20, rec.SMA50, rec.SMA200,
		rec.EMA12, rec.EMA26, rec.EMA50,
		rec.RSI, rec.RSI14,
		rec.MACDLine, rec.MACDSignal, rec.MACDHistogram,
		rec.BBUpper, rec.BBMiddle, rec.BBLower, rec.BBPosition, rec.BBWidth,
		rec.Volatility20,
		rec.PriceChange1D, rec.PriceChange5D, rec.PriceChange30D,
		rec.AvgVolume20, rec.CurrentVolume,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*model.IndicatorRecord, error) {
	rec := &model.IndicatorRecord{}
	var date string
	err := row.Scan(
		&rec.Symbol, &date,
		&rec.SMA20, &rec.SMA50, &rec.SMA200,
		&rec.EMA12, &rec.EMA26, &rec.EMA50,
		&rec.RSI, &rec.RSI14,
		&rec.MACDLine, &rec.MACDSignal, &rec.MACDHistogram,
		&rec.BBUpper, &rec.BBMiddle, &rec.BBLower, &rec.BBPosition, &rec.BBWidth,
		&rec.Volatility20,
		&rec.PriceChange1D, &rec.PriceChange5D, &rec.PriceChange30D,
		&rec.AvgVolume20, &rec.CurrentVolume,
	)
	if err != nil {
		return nil, err
	}
	rec.CalculatedDate, err = time.Parse(dateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("parse calculated_date %q: %w", date, err)
	}
	return rec, nil
}
