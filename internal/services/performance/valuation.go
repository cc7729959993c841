package performance

import (
	"sort"
	"strings"

	"github.com/folioapp/folio/internal/models"
)

// valuer converts a holdings snapshot into a single target-currency market
// value for one date. It owns the price and FX resolvers for the run.
type valuer struct {
	prices         *seriesResolver
	fx             *seriesResolver
	currencyOf     map[string]string // symbol → native currency
	targetCurrency string
}

func newValuer(prices models.PriceSeries, fx models.FxSeries, events []models.LedgerEvent, targetCurrency string) *valuer {
	currencyOf := make(map[string]string)
	for _, e := range events {
		if c := strings.ToUpper(e.AssetCurrency); c != "" {
			currencyOf[e.Symbol] = c
		}
	}

	return &valuer{
		prices:         newPriceResolver(prices),
		fx:             newFxResolver(fx),
		currencyOf:     currencyOf,
		targetCurrency: strings.ToUpper(targetCurrency),
	}
}

// dayValue is the result of valuing holdings on one date.
//
// MarketValue includes any newly discovered value; DiscoveryInflow is the
// portion attributable to holdings priced for the first time (price or FX),
// which the simulator books as an external flow rather than growth.
// Estimated is set when a cross-currency holding was converted at the parity
// fallback because no FX observation exists yet.
type dayValue struct {
	MarketValue     float64
	DiscoveryInflow float64
	Estimated       bool
}

// fxRate resolves the rate converting one unit of currency into the target
// currency on date. Same-currency holdings never touch the resolver.
func (v *valuer) fxRate(currency, date string) (rate float64, discovered, estimated bool) {
	if currency == "" || currency == v.targetCurrency {
		return 1, false, false
	}
	rate, discovered = v.fx.resolve(currency, date)
	estimated = !v.fx.known(currency)
	return rate, discovered, estimated
}

// value computes the market value of holdings on date. Symbols are visited
// in sorted order so float accumulation is deterministic across runs.
func (v *valuer) value(holdings models.Holdings, date string) dayValue {
	symbols := make([]string, 0, len(holdings))
	for sym, qty := range holdings {
		if qty > 0 {
			symbols = append(symbols, sym)
		}
	}
	sort.Strings(symbols)

	var out dayValue
	for _, sym := range symbols {
		qty := holdings[sym]

		price, priceDiscovered := v.prices.resolve(sym, date)
		rate, fxDiscovered, estimated := v.fxRate(v.currencyOf[sym], date)

		converted := qty * price * rate
		out.MarketValue += converted
		if priceDiscovered || fxDiscovered {
			out.DiscoveryInflow += converted
		}
		if estimated && converted != 0 {
			out.Estimated = true
		}
	}

	return out
}
