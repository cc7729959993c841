// Package interfaces defines service contracts for Folio
package interfaces

import (
	"context"

	"github.com/folioapp/folio/internal/models"
)

// PerformanceService computes time-weighted performance series.
type PerformanceService interface {
	// ComputePerformance replays the ledger day by day and returns the
	// unitized portfolio series alongside the normalized benchmark series.
	ComputePerformance(ctx context.Context, req models.PerformanceRequest) (*models.PerformanceResult, error)

	// RenderPerformanceChart renders a PNG comparing the NAV index with the
	// normalized benchmark.
	RenderPerformanceChart(result *models.PerformanceResult) ([]byte, error)
}

// FlowService aggregates ledger cash flows into period buckets.
type FlowService interface {
	// AggregateFlows buckets contributions and dividends by week, month and
	// year in the target currency.
	AggregateFlows(ctx context.Context, req models.FlowRequest) (*models.FlowSummary, error)

	// CapitalPerformance reports ledger-level capital totals, including the
	// money-weighted return when an XIRR implementation is available.
	CapitalPerformance(ctx context.Context, req models.FlowRequest) (*models.CapitalSummary, error)
}
