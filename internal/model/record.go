package model

import "time"

// IndicatorRecord holds the computed indicators for one symbol on one
// calculation date. Every indicator field is independently nullable: a
// nil field means the lookback window exceeded the available history.
type IndicatorRecord struct {
	Symbol         string
	CalculatedDate time.Time

	SMA20  *float64
	SMA50  *float64
	SMA200 *float64

	EMA12 *float64
	EMA26 *float64
	EMA50 *float64

	RSI   *float64
	RSI14 *float64

	MACDLine      *float64
	MACDSignal    *float64
	MACDHistogram *float64

	BBUpper    *float64
	BBMiddle   *float64
	BBLower    *float64
	BBPosition *float64
	BBWidth    *float64

	Volatility20 *float64

	PriceChange1D  *float64
	PriceChange5D  *float64
	PriceChange30D *float64

	AvgVolume20   *float64
	CurrentVolume *int64
}

// HasValues reports whether at least one indicator field is set.
// Records with no values are never persisted.
func (r *IndicatorRecord) HasValues() bool {
	floats := []*float64{
		r.SMA20, r.SMA50, r.SMA200,
		r.EMA12, r.EMA26, r.EMA50,
		r.RSI, r.RSI14,
		r.MACDLine, r.MACDSignal, r.MACDHistogram,
		r.BBUpper, r.BBMiddle, r.BBLower, r.BBPosition, r.BBWidth,
		r.Volatility20,
		r.PriceChange1D, r.PriceChange5D, r.PriceChange30D,
		r.AvgVolume20,
	}
	for _, f := range floats {
		if f != nil {
			return true
		}
	}
	return r.CurrentVolume != nil
}
