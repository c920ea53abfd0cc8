package notifier

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"TrendLedger/internal/model"
)

// FormatBatchSummary formats a batch calculation run into a Telegram message.
func FormatBatchSummary(result *model.BatchResult) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>Indicator batch</b> | %s\n", result.Date.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Run %s\n\n", result.RunID))
	b.WriteString(fmt.Sprintf("✅ %d succeeded, ❌ %d failed (%s)\n",
		result.Succeeded, result.Failed, result.Duration().Round(time.Millisecond)))

	if result.Failed > 0 {
		var failed []string
		for symbol, ok := range result.Results {
			if !ok {
				failed = append(failed, symbol)
			}
		}
		sort.Strings(failed)
		b.WriteString(fmt.Sprintf("\nFailed: %s\n", strings.Join(failed, ", ")))
	}

	return b.String()
}

// FormatRecord formats a stored indicator record for display. Fields the
// available history could not fill render as n/a.
func FormatRecord(rec *model.IndicatorRecord) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📈 <b>%s</b> | %s\n\n", rec.Symbol, rec.CalculatedDate.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("SMA 20/50/200: %s / %s / %s\n", num(rec.SMA20), num(rec.SMA50), num(rec.SMA200)))
	b.WriteString(fmt.Sprintf("EMA 12/26/50: %s / %s / %s\n", num(rec.EMA12), num(rec.EMA26), num(rec.EMA50)))
	b.WriteString(fmt.Sprintf("RSI(14): %s\n", num(rec.RSI14)))
	b.WriteString(fmt.Sprintf("MACD: %s\n", num(rec.MACDLine)))
	b.WriteString(fmt.Sprintf("Bollinger: %s / %s / %s (pos %s, width %s%%)\n",
		num(rec.BBLower), num(rec.BBMiddle), num(rec.BBUpper), num(rec.BBPosition), num(rec.BBWidth)))
	b.WriteString(fmt.Sprintf("Volatility(20): %s%%\n", num(rec.Volatility20)))
	b.WriteString(fmt.Sprintf("Change 1d/5d/30d: %s%% / %s%% / %s%%\n",
		num(rec.PriceChange1D), num(rec.PriceChange5D), num(rec.PriceChange30D)))
	if rec.CurrentVolume != nil {
		b.WriteString(fmt.Sprintf("Volume: %d (avg %s)\n", *rec.CurrentVolume, num(rec.AvgVolume20)))
	}

	return b.String()
}

func num(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *v)
}
