package models

import "time"

// DailyPerformanceRecord is one day of the unitized performance series.
// MarketValue is the post-flow value in the target currency; NAV is the
// unitless index seeded at 100; NetFlow includes any discovery inflow;
// Units is the cumulative outstanding unit count.
//
// By construction MarketValue ≈ Units × NAV on days without dividend income
// (the dividend uplift is folded into NAV, not MarketValue).
type DailyPerformanceRecord struct {
	Date        string  `json:"date"`
	MarketValue float64 `json:"market_value"`
	NAV         float64 `json:"nav"`
	NetFlow     float64 `json:"net_flow"`
	Units       float64 `json:"units"`
	Estimated   bool    `json:"estimated,omitempty"` // an FX parity fallback was used this day
}

// BenchmarkRecord is one day of the normalized benchmark series.
// NormalizedValue is 100 × RawValue / firstValidRawValue; days before the
// first valid raw value carry 0.
type BenchmarkRecord struct {
	Date            string  `json:"date"`
	RawValue        float64 `json:"raw_value"`
	NormalizedValue float64 `json:"normalized_value"`
}

// PerformanceRequest describes one performance computation.
type PerformanceRequest struct {
	Events          []LedgerEvent `json:"events"`
	BenchmarkSymbol string        `json:"benchmark_symbol"`
	StartDate       time.Time     `json:"start_date"`
	TargetCurrency  string        `json:"target_currency"`
}

// PerformanceResult pairs the portfolio series with the aligned benchmark
// series. Both share the same date axis.
type PerformanceResult struct {
	Portfolio []DailyPerformanceRecord `json:"portfolio"`
	Benchmark []BenchmarkRecord        `json:"benchmark"`
}
