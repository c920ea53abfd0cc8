package timeframe

import "TrendLedger/internal/model"

// ResampleDaily aggregates hourly bars into one daily bar per calendar
// day that has at least one input bar. Open comes from the first bar of
// the day, close from the last, high/low are the extremes, and volume is
// summed. Days with no bars produce no output. The input is not mutated
// and the output is ordered by date ascending, matching the input order.
func ResampleDaily(bars []model.Bar) []model.Bar {
	if len(bars) == 0 {
		return nil
	}
	out := make([]model.Bar, 0, len(bars)/6+1)
	var cur model.Bar
	open := false
	for _, b := range bars {
		day := b.Date()
		if open && day.Equal(cur.Time) {
			if b.High > cur.High {
				cur.High = b.High
			}
			if b.Low < cur.Low {
				cur.Low = b.Low
			}
			cur.Close = b.Close
			cur.Volume += b.Volume
			continue
		}
		if open {
			out = append(out, cur)
		}
		cur = model.Bar{
			Symbol: b.Symbol,
			Time:   day,
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
			Source: b.Source,
		}
		open = true
	}
	out = append(out, cur)
	return out
}
