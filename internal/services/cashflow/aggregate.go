package cashflow

import (
	"sort"
	"strings"
	"time"

	"github.com/folioapp/folio/internal/models"
)

// fxCursor carries the last observed rate forward per currency. Unlike the
// valuation path this pass does not track discovery; bucketed charts tolerate
// the coarser accuracy.
type fxCursor struct {
	series models.FxSeries
	last   map[string]float64
	target string
}

func newFxCursor(series models.FxSeries, target string) *fxCursor {
	return &fxCursor{
		series: series,
		last:   make(map[string]float64),
		target: strings.ToUpper(target),
	}
}

// rate resolves the conversion rate for one event date. Events arrive in
// non-decreasing date order, so the cursor only ever moves forward.
func (c *fxCursor) rate(currency, dateKey string) float64 {
	currency = strings.ToUpper(currency)
	if currency == "" || currency == c.target {
		return 1
	}
	if v, ok := c.series[currency][dateKey]; ok && v > 0 {
		c.last[currency] = v
		return v
	}
	if v, ok := c.last[currency]; ok && v > 0 {
		return v
	}
	return 1
}

// weekStart returns the Monday of the event's ISO week.
func weekStart(d time.Time) time.Time {
	offset := (int(d.Weekday()) + 6) % 7
	day := d.AddDate(0, 0, -offset)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
}

func monthStart(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func yearStart(d time.Time) time.Time {
	return time.Date(d.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
}

type flowTotals struct {
	inflow  float64
	outflow float64
}

// aggregate buckets the ledger's cash flows by week, month and year in the
// target currency. A single O(n) reduction; it shares nothing with the NAV
// simulation state.
func aggregate(events []models.LedgerEvent, fx models.FxSeries, target string) *models.FlowSummary {
	cursor := newFxCursor(fx, target)

	weekly := make(map[string]*flowTotals)
	monthly := make(map[string]*flowTotals)
	yearly := make(map[string]*flowTotals)
	divMonthly := make(map[string]float64)
	divYearly := make(map[string]float64)

	for _, e := range events {
		r := cursor.rate(e.AssetCurrency, e.DateKey())

		switch models.LedgerEventType(strings.ToLower(string(e.Type))) {
		case models.EventAdd:
			amount := (e.Quantity*e.Price + e.Fee) * r
			addFlow(weekly, weekStart(e.Date), amount, 0)
			addFlow(monthly, monthStart(e.Date), amount, 0)
			addFlow(yearly, yearStart(e.Date), amount, 0)
		case models.EventRemove:
			qty := e.Quantity
			if qty < 0 {
				qty = -qty
			}
			amount := (qty*e.Price - e.Fee) * r
			addFlow(weekly, weekStart(e.Date), 0, amount)
			addFlow(monthly, monthStart(e.Date), 0, amount)
			addFlow(yearly, yearStart(e.Date), 0, amount)
		case models.EventDividend:
			amount := e.Quantity * e.Price * r
			divMonthly[monthStart(e.Date).Format(models.DateLayout)] += amount
			divYearly[yearStart(e.Date).Format(models.DateLayout)] += amount
		}
	}

	return &models.FlowSummary{
		Contributions: models.ContributionBuckets{
			Weekly:  sortedFlows(weekly),
			Monthly: sortedFlows(monthly),
			Yearly:  sortedFlows(yearly),
		},
		Dividends: models.DividendBuckets{
			Monthly: sortedDividends(divMonthly),
			Yearly:  sortedDividends(divYearly),
		},
	}
}

func addFlow(buckets map[string]*flowTotals, period time.Time, inflow, outflow float64) {
	key := period.Format(models.DateLayout)
	t, ok := buckets[key]
	if !ok {
		t = &flowTotals{}
		buckets[key] = t
	}
	t.inflow += inflow
	t.outflow += outflow
}

func sortedFlows(buckets map[string]*flowTotals) []models.FlowBucket {
	out := make([]models.FlowBucket, 0, len(buckets))
	for period, t := range buckets {
		out = append(out, models.FlowBucket{Period: period, Inflow: t.inflow, Outflow: t.outflow})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}

func sortedDividends(buckets map[string]float64) []models.DividendBucket {
	out := make([]models.DividendBucket, 0, len(buckets))
	for period, amount := range buckets {
		out = append(out, models.DividendBucket{Period: period, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}
