package performance

import (
	"sort"
	"strings"
	"time"

	"github.com/folioapp/folio/internal/models"
)

// simState is the accumulating context threaded through the day-by-day
// replay. One instance per simulation run; never shared across runs.
type simState struct {
	holdings        models.Holdings
	units           float64
	nav             float64
	lastMarketValue float64
}

// simulator replays a ledger one calendar day at a time, maintaining a
// unitized NAV index. Each day's transition is an explicit step so single
// days are testable without replaying full history.
type simulator struct {
	valuer *valuer
	state  simState
}

// newSimulator seeds the run: holdings are built from all events strictly
// before the start date, resolver cursors are primed from the start date's
// series values, and the initial unit count prices the opening market value
// at the seed NAV of 100.
func newSimulator(events []models.LedgerEvent, prices models.PriceSeries, fx models.FxSeries, start time.Time, targetCurrency string) *simulator {
	v := newValuer(prices, fx, events, targetCurrency)

	startKey := start.Format(models.DateLayout)
	holdings := make(models.Holdings)
	for _, batch := range batchByDay(eventsBefore(events, startKey)) {
		holdings = applyEvents(holdings, batch)
	}

	for sym := range v.currencyOf {
		v.prices.seed(sym, startKey)
	}
	for sym := range prices {
		v.prices.seed(sym, startKey)
	}
	for currency := range fx {
		v.fx.seed(currency, startKey)
	}

	opening := v.value(holdings, startKey)

	s := &simulator{
		valuer: v,
		state: simState{
			holdings:        holdings,
			nav:             100,
			lastMarketValue: opening.MarketValue,
		},
	}
	if opening.MarketValue > 0 {
		s.state.units = opening.MarketValue / s.state.nav
	}
	return s
}

// step advances the simulation one calendar day and emits that day's record.
// events must be the day's complete batch, applied after the pre-mutation
// valuation so the passive value captures price/FX movement on yesterday's
// positions only.
func (s *simulator) step(date string, events []models.LedgerEvent) models.DailyPerformanceRecord {
	// 1. Value yesterday's positions at today's prices.
	dv := s.valuer.value(s.state.holdings, date)

	// 2. Convert the day's cash flows at today's FX rate.
	netFlow, dividends, flowEstimated := s.convertFlows(events, date)

	// 3. Today's trades take effect for tomorrow's valuation.
	prior := s.state.holdings
	s.state.holdings = applyEvents(s.state.holdings, events)
	s.seedFlowFunded(events, date, prior)

	// 4. Growth excludes the discovery inflow: a newly priced holding is an
	// external flow into the index, not investment growth. Dividends are
	// portfolio income and inflate NAV. Bootstrap: with no prior value the
	// NAV stays at its seed instead of multiplying by an undefined ratio.
	if s.state.lastMarketValue > 0 {
		growth := (dv.MarketValue - dv.DiscoveryInflow + dividends) / s.state.lastMarketValue
		s.state.nav *= growth
	}

	// 5. Mint or redeem units at the post-growth NAV, so units bought today
	// are priced at today's index value.
	totalFlow := netFlow + dv.DiscoveryInflow
	if s.state.nav > 0 {
		s.state.units += totalFlow / s.state.nav
	}

	// 6. End-of-day market value after trading activity. The dividend uplift
	// is already folded into NAV and is not counted again here.
	finalValue := dv.MarketValue + netFlow

	record := models.DailyPerformanceRecord{
		Date:        date,
		MarketValue: finalValue,
		NAV:         s.state.nav,
		NetFlow:     totalFlow,
		Units:       s.state.units,
		Estimated:   dv.Estimated || flowEstimated,
	}

	s.state.lastMarketValue = finalValue
	return record
}

// seedFlowFunded primes the price and FX cursors for any symbol that became
// held through today's events and has no cursor yet. The position's value
// already entered netFlow and lastMarketValue today; letting tomorrow's first
// quote fire discovery would book the same money a second time and drive the
// growth ratio to zero. Prefers the day's series quote, falling back to the
// event's own trade price.
func (s *simulator) seedFlowFunded(events []models.LedgerEvent, date string, prior models.Holdings) {
	for _, e := range events {
		if prior[e.Symbol] > 0 || s.state.holdings[e.Symbol] <= 0 {
			continue
		}

		if !s.valuer.prices.known(e.Symbol) {
			s.valuer.prices.seed(e.Symbol, date)
			if !s.valuer.prices.known(e.Symbol) {
				s.valuer.prices.prime(e.Symbol, e.Price)
			}
		}

		if c := strings.ToUpper(e.AssetCurrency); c != "" && c != s.valuer.targetCurrency && !s.valuer.fx.known(c) {
			s.valuer.fx.seed(c, date)
		}
	}
}

// convertFlows accumulates the day's ledger events into a target-currency
// net capital flow and a separate dividend total.
func (s *simulator) convertFlows(events []models.LedgerEvent, date string) (netFlow, dividends float64, estimated bool) {
	for _, e := range events {
		rate, _, est := s.valuer.fxRate(strings.ToUpper(e.AssetCurrency), date)

		switch models.LedgerEventType(strings.ToLower(string(e.Type))) {
		case models.EventAdd:
			netFlow += (e.Quantity*e.Price + e.Fee) * rate
			estimated = estimated || est
		case models.EventRemove:
			netFlow -= (abs(e.Quantity)*e.Price - e.Fee) * rate
			estimated = estimated || est
		case models.EventDividend:
			dividends += e.Quantity * e.Price * rate
			estimated = estimated || est
		case models.EventSplit:
			// Non-cash event; no flow impact.
		}
	}
	return netFlow, dividends, estimated
}

// simulate runs the full forward-only replay from start through today
// inclusive, one record per calendar day.
func simulate(events []models.LedgerEvent, prices models.PriceSeries, fx models.FxSeries, start, today time.Time, targetCurrency string) []models.DailyPerformanceRecord {
	sim := newSimulator(events, prices, fx, start, targetCurrency)

	byDay := eventsByDay(events)
	dates := models.DateKeys(start, today)

	records := make([]models.DailyPerformanceRecord, 0, len(dates))
	for _, date := range dates {
		records = append(records, sim.step(date, byDay[date]))
	}
	return records
}

// eventsBefore returns the events dated strictly before the cutoff key.
func eventsBefore(events []models.LedgerEvent, cutoff string) []models.LedgerEvent {
	var out []models.LedgerEvent
	for _, e := range events {
		if e.DateKey() < cutoff {
			out = append(out, e)
		}
	}
	return out
}

// eventsByDay indexes events by their date key. Same-day events form one
// batch; intra-day order is not significant to the replay.
func eventsByDay(events []models.LedgerEvent) map[string][]models.LedgerEvent {
	out := make(map[string][]models.LedgerEvent)
	for _, e := range events {
		key := e.DateKey()
		out[key] = append(out[key], e)
	}
	return out
}

// batchByDay splits events into per-day batches sorted by date ascending.
func batchByDay(events []models.LedgerEvent) [][]models.LedgerEvent {
	byDay := eventsByDay(events)

	keys := make([]string, 0, len(byDay))
	for k := range byDay {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([][]models.LedgerEvent, 0, len(keys))
	for _, k := range keys {
		out = append(out, byDay[k])
	}
	return out
}
