package performance

import "github.com/folioapp/folio/internal/models"

// seriesResolver resolves a value for a key on a date, carrying the most
// recently observed value forward across gaps. Cursors advance monotonically
// with the simulation and are never rewound; each resolver instance is owned
// by exactly one simulation run.
type seriesResolver struct {
	series   map[string]models.DateSeries
	cursor   map[string]float64
	fallback float64 // returned before any observation: 0 for prices, 1 for FX
}

func newPriceResolver(series map[string]models.DateSeries) *seriesResolver {
	return &seriesResolver{series: series, cursor: make(map[string]float64), fallback: 0}
}

// newFxResolver defaults to parity rather than zero: an unconverted native
// amount is closer to correct than a zeroed-out one.
func newFxResolver(series map[string]models.DateSeries) *seriesResolver {
	return &seriesResolver{series: series, cursor: make(map[string]float64), fallback: 1}
}

// resolve returns the best-known value for key on date and whether this
// lookup is the key's first discovery: the transition from "no known value"
// to "first known value". Discovery fires at most once per key. Non-positive
// quotes are data gaps, not observations, and never enter the cursor.
func (r *seriesResolver) resolve(key, date string) (float64, bool) {
	if v, ok := r.series[key][date]; ok && v > 0 {
		_, seen := r.cursor[key]
		r.cursor[key] = v
		return v, !seen
	}

	if v, seen := r.cursor[key]; seen {
		return v, false
	}
	return r.fallback, false
}

// known reports whether any value has ever been observed for key.
func (r *seriesResolver) known(key string) bool {
	_, seen := r.cursor[key]
	return seen
}

// seed primes the cursor from the series value on date when present, without
// treating it as a discovery. Used at simulation start and when a position is
// first funded by a flow.
func (r *seriesResolver) seed(key, date string) {
	if v, ok := r.series[key][date]; ok && v > 0 {
		r.cursor[key] = v
	}
}

// prime sets the cursor to a value that arrived through the ledger rather
// than the series, again without firing discovery. Non-positive values are
// ignored.
func (r *seriesResolver) prime(key string, v float64) {
	if v > 0 {
		r.cursor[key] = v
	}
}
