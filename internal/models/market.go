package models

import "time"

// DateLayout is the series key format used for all daily data.
const DateLayout = "2006-01-02"

// DateSeries maps a date key ("2006-01-02") to a value. Sparse: only days
// with an observation are present.
type DateSeries map[string]float64

// PriceSeries maps symbol to its daily price history in the asset's native
// currency. Supplied by the market-data collaborator; read-only here.
type PriceSeries map[string]DateSeries

// FxSeries maps a currency code to its daily rate-to-target history.
// Same sparsity contract as PriceSeries.
type FxSeries map[string]DateSeries

// MidnightUTC returns midnight UTC on t's calendar date. Truncating against
// the UTC epoch would shift non-UTC times onto the wrong date key; this
// normalizes from the date components in t's own location instead.
func MidnightUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateKeys generates one date key per calendar day from start to end
// inclusive.
func DateKeys(start, end time.Time) []string {
	start = MidnightUTC(start)
	end = MidnightUTC(end)

	if end.Before(start) {
		return nil
	}

	days := int(end.Sub(start).Hours()/24) + 1
	keys := make([]string, 0, days)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		keys = append(keys, d.Format(DateLayout))
	}
	return keys
}
