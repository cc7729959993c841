package models

import "time"

// FlowBucket aggregates contributions for one period. Inflow is money
// invested (buys), Outflow is proceeds from sales; both are in the target
// currency and positive.
type FlowBucket struct {
	Period  string  `json:"period"` // bucket start date key
	Inflow  float64 `json:"inflow"`
	Outflow float64 `json:"outflow"`
}

// DividendBucket aggregates dividend income for one period in the target
// currency.
type DividendBucket struct {
	Period string  `json:"period"`
	Amount float64 `json:"amount"`
}

// FlowSummary is the bucketed cash-flow view of a ledger.
type FlowSummary struct {
	Contributions ContributionBuckets `json:"contributions"`
	Dividends     DividendBuckets     `json:"dividends"`
}

// ContributionBuckets holds contribution flows at three granularities.
type ContributionBuckets struct {
	Weekly  []FlowBucket `json:"weekly"`
	Monthly []FlowBucket `json:"monthly"`
	Yearly  []FlowBucket `json:"yearly"`
}

// DividendBuckets holds dividend income at two granularities.
type DividendBuckets struct {
	Monthly []DividendBucket `json:"monthly"`
	Yearly  []DividendBucket `json:"yearly"`
}

// FlowRequest describes one flow aggregation run.
type FlowRequest struct {
	Events         []LedgerEvent `json:"events"`
	TargetCurrency string        `json:"target_currency"`
}

// CashFlow is a dated signed amount, the shape consumed by the external
// money-weighted-return (XIRR) collaborator.
type CashFlow struct {
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
}

// CapitalSummary reports ledger-level capital totals. MoneyWeightedReturn
// is present only when an XIRR implementation is wired in.
type CapitalSummary struct {
	TotalInvested       float64    `json:"total_invested"`
	TotalProceeds       float64    `json:"total_proceeds"`
	TotalDividends      float64    `json:"total_dividends"`
	NetInvested         float64    `json:"net_invested"`
	FirstEventDate      *time.Time `json:"first_event_date,omitempty"`
	EventCount          int        `json:"event_count"`
	MoneyWeightedReturn *float64   `json:"money_weighted_return,omitempty"`
}
