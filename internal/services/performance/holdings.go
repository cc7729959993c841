// Package performance computes time-weighted portfolio performance by
// replaying a ledger of events against daily price and FX history.
package performance

import (
	"strings"

	"github.com/folioapp/folio/internal/models"
)

// applyEvents folds one day's batch of ledger events into a holdings map and
// returns the updated copy. Pure function of (state, events): the input map
// is never mutated.
//
// REMOVE is not clamped at zero; an over-sell is a data-entry error that
// surfaces downstream as an implausible market value rather than being
// silently fixed here.
func applyEvents(state models.Holdings, events []models.LedgerEvent) models.Holdings {
	next := state.Clone()

	for _, e := range events {
		switch models.LedgerEventType(strings.ToLower(string(e.Type))) {
		case models.EventAdd:
			next[e.Symbol] += e.Quantity
		case models.EventRemove:
			next[e.Symbol] -= abs(e.Quantity)
		case models.EventSplit:
			// Quantity is the split multiplier (3 for a 3-for-1 split).
			next[e.Symbol] *= e.Quantity
		case models.EventDividend:
			// Cash event: no unit change.
		}
	}

	return next
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
