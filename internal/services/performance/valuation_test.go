package performance

import (
	"math"
	"testing"

	"github.com/folioapp/folio/internal/models"
)

func approxEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestValuer_SingleCurrency(t *testing.T) {
	events := []models.LedgerEvent{
		{Symbol: "BHP.AU", Type: models.EventAdd, Quantity: 100, AssetCurrency: "AUD"},
	}
	prices := models.PriceSeries{"BHP.AU": {"2024-01-02": 45.0}}

	v := newValuer(prices, models.FxSeries{}, events, "AUD")
	dv := v.value(models.Holdings{"BHP.AU": 100}, "2024-01-02")

	if !approxEqual(dv.MarketValue, 4500, 1e-9) {
		t.Errorf("MarketValue = %v, want 4500", dv.MarketValue)
	}
	if dv.Estimated {
		t.Error("same-currency valuation must not be flagged estimated")
	}
}

func TestValuer_CrossCurrencyConversion(t *testing.T) {
	events := []models.LedgerEvent{
		{Symbol: "AAPL.US", Type: models.EventAdd, Quantity: 10, AssetCurrency: "USD"},
	}
	prices := models.PriceSeries{"AAPL.US": {"2024-01-02": 200.0}}
	fx := models.FxSeries{"USD": {"2024-01-02": 1.5}} // 1 USD = 1.5 AUD

	v := newValuer(prices, fx, events, "AUD")
	dv := v.value(models.Holdings{"AAPL.US": 10}, "2024-01-02")

	if !approxEqual(dv.MarketValue, 3000, 1e-9) {
		t.Errorf("MarketValue = %v, want 3000", dv.MarketValue)
	}
	if dv.Estimated {
		t.Error("valuation with a real FX rate must not be flagged estimated")
	}
}

func TestValuer_ParityFallbackFlagsEstimated(t *testing.T) {
	events := []models.LedgerEvent{
		{Symbol: "AAPL.US", Type: models.EventAdd, Quantity: 10, AssetCurrency: "USD"},
	}
	prices := models.PriceSeries{"AAPL.US": {"2024-01-02": 200.0}}

	v := newValuer(prices, models.FxSeries{}, events, "AUD")
	dv := v.value(models.Holdings{"AAPL.US": 10}, "2024-01-02")

	// No FX data ever seen: parity is used and the day is marked estimated.
	if !approxEqual(dv.MarketValue, 2000, 1e-9) {
		t.Errorf("MarketValue = %v, want 2000 at parity", dv.MarketValue)
	}
	if !dv.Estimated {
		t.Error("parity fallback must flag the valuation as estimated")
	}
}

func TestValuer_DiscoveryInflowOnFirstPrice(t *testing.T) {
	events := []models.LedgerEvent{
		{Symbol: "BHP.AU", Type: models.EventAdd, Quantity: 100, AssetCurrency: "AUD"},
		{Symbol: "NEW.AU", Type: models.EventAdd, Quantity: 10, AssetCurrency: "AUD"},
	}
	prices := models.PriceSeries{
		"BHP.AU": {"2024-01-02": 45.0, "2024-01-03": 45.0},
		"NEW.AU": {"2024-01-03": 50.0}, // first quote one day later
	}

	v := newValuer(prices, models.FxSeries{}, events, "AUD")
	holdings := models.Holdings{"BHP.AU": 100, "NEW.AU": 10}

	day1 := v.value(holdings, "2024-01-02")
	if !approxEqual(day1.MarketValue, 4500, 1e-9) {
		t.Errorf("day1 MarketValue = %v, want 4500 (NEW unpriced)", day1.MarketValue)
	}
	if !approxEqual(day1.DiscoveryInflow, 4500, 1e-9) {
		t.Errorf("day1 DiscoveryInflow = %v, want 4500 (BHP first quote)", day1.DiscoveryInflow)
	}

	day2 := v.value(holdings, "2024-01-03")
	if !approxEqual(day2.MarketValue, 5000, 1e-9) {
		t.Errorf("day2 MarketValue = %v, want 5000", day2.MarketValue)
	}
	// Only NEW's full value registers as discovery on day 2.
	if !approxEqual(day2.DiscoveryInflow, 500, 1e-9) {
		t.Errorf("day2 DiscoveryInflow = %v, want 500", day2.DiscoveryInflow)
	}
}

func TestValuer_SplitInvariance(t *testing.T) {
	events := []models.LedgerEvent{
		{Symbol: "BHP.AU", Type: models.EventAdd, Quantity: 10, AssetCurrency: "AUD"},
	}

	before := newValuer(models.PriceSeries{"BHP.AU": {"2024-01-02": 100.0}}, models.FxSeries{}, events, "AUD")
	after := newValuer(models.PriceSeries{"BHP.AU": {"2024-01-02": 50.0}}, models.FxSeries{}, events, "AUD")

	holdings := models.Holdings{"BHP.AU": 10}
	split := applyEvents(holdings, []models.LedgerEvent{
		{Symbol: "BHP.AU", Type: models.EventSplit, Quantity: 2},
	})

	pre := before.value(holdings, "2024-01-02")
	post := after.value(split, "2024-01-02")

	// Share count × price is split-invariant: doubling units with a halved
	// price leaves the market value unchanged.
	if !approxEqual(pre.MarketValue, post.MarketValue, 1e-9) {
		t.Errorf("market value changed across split: %v vs %v", pre.MarketValue, post.MarketValue)
	}
}

func TestValuer_IgnoresNonPositiveQuantities(t *testing.T) {
	events := []models.LedgerEvent{
		{Symbol: "BHP.AU", Type: models.EventAdd, Quantity: 10, AssetCurrency: "AUD"},
	}
	prices := models.PriceSeries{"BHP.AU": {"2024-01-02": 100.0}}

	v := newValuer(prices, models.FxSeries{}, events, "AUD")
	dv := v.value(models.Holdings{"BHP.AU": 0, "GONE.AU": -5}, "2024-01-02")

	if dv.MarketValue != 0 {
		t.Errorf("MarketValue = %v, want 0 for non-positive holdings", dv.MarketValue)
	}
}
