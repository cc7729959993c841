// Package interfaces defines service contracts for Folio
package interfaces

import (
	"context"
	"time"

	"github.com/folioapp/folio/internal/models"
)

// PriceHistoryProvider supplies sparse daily price history for a symbol.
// Entries may be stale, gapped or entirely absent; the performance engine
// tolerates gaps via carry-forward.
type PriceHistoryProvider interface {
	// GetDailyHistory retrieves the daily close series from fromDate onward,
	// keyed by "2006-01-02" date strings, in the asset's native currency.
	GetDailyHistory(ctx context.Context, symbol string, from time.Time) (models.DateSeries, error)
}

// FxHistoryProvider supplies sparse daily FX rate history for a currency
// pair, keyed the same way as price history.
type FxHistoryProvider interface {
	// GetFxHistory retrieves the daily rate series for pair (e.g. "USDAUD")
	// from fromDate onward. The rate converts one unit of the base currency
	// into the quote currency.
	GetFxHistory(ctx context.Context, pair string, from time.Time) (models.DateSeries, error)
}

// LedgerSource yields a portfolio's ledger events pre-filtered and sorted in
// non-decreasing date order. The performance engine never queries storage
// itself; events arrive through this contract or directly in a request.
type LedgerSource interface {
	// GetEvents retrieves the ledger events for a portfolio, sorted by date.
	GetEvents(ctx context.Context, portfolio string) ([]models.LedgerEvent, error)
}

// XIRRFunc computes the money-weighted annual return for a set of dated cash
// flows, or nil when no rate converges. The implementation is external to
// this system.
type XIRRFunc func(flows []models.CashFlow) *float64
