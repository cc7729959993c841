// Package models defines data structures for Folio
package models

import (
	"strings"
	"time"
)

// LedgerEventType categorizes a ledger event.
type LedgerEventType string

const (
	EventAdd      LedgerEventType = "add"      // buy / opening balance
	EventRemove   LedgerEventType = "remove"   // sell
	EventDividend LedgerEventType = "dividend" // cash income, no unit change
	EventSplit    LedgerEventType = "split"    // unit multiplier (e.g. 3 for 3-for-1)
)

// validLedgerEventTypes lists all accepted event types.
var validLedgerEventTypes = map[LedgerEventType]bool{
	EventAdd:      true,
	EventRemove:   true,
	EventDividend: true,
	EventSplit:    true,
}

// ValidLedgerEventType returns true if t is a valid ledger event type.
func ValidLedgerEventType(t LedgerEventType) bool {
	return validLedgerEventTypes[LedgerEventType(strings.ToLower(string(t)))]
}

// LedgerEvent is a single immutable entry in the investment ledger.
// Quantity is the unsigned magnitude of units affected (a multiplier for
// splits); Price and Fee are in the asset's native currency.
type LedgerEvent struct {
	Symbol        string          `json:"symbol"`
	Type          LedgerEventType `json:"type"`
	Quantity      float64         `json:"quantity"`
	Price         float64         `json:"price"`
	Fee           float64         `json:"fee"`
	Date          time.Time       `json:"date"`
	AssetCurrency string          `json:"asset_currency"`
}

// DateKey returns the event date as a series key ("2006-01-02").
func (e LedgerEvent) DateKey() string {
	return e.Date.Format(DateLayout)
}

// Holdings maps symbol to unit count. It is ephemeral state, rebuilt per
// analysis run and mutated only by the replayer.
type Holdings map[string]float64

// Clone returns an independent copy of the holdings map.
func (h Holdings) Clone() Holdings {
	out := make(Holdings, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}

// Symbols returns the distinct symbols appearing in the events.
func Symbols(events []LedgerEvent) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range events {
		if !seen[e.Symbol] {
			seen[e.Symbol] = true
			out = append(out, e.Symbol)
		}
	}
	return out
}

// Currencies returns the distinct asset currencies in the events, excluding
// the target currency (which needs no conversion).
func Currencies(events []LedgerEvent, target string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range events {
		c := strings.ToUpper(e.AssetCurrency)
		if c == "" || c == strings.ToUpper(target) {
			continue
		}
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}
