package cashflow

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/folioapp/folio/internal/common"
	"github.com/folioapp/folio/internal/interfaces"
	"github.com/folioapp/folio/internal/models"
)

// Compile-time interface check
var _ interfaces.FlowService = (*Service)(nil)

// Service implements FlowService
type Service struct {
	fx     interfaces.FxHistoryProvider
	xirr   interfaces.XIRRFunc
	logger *common.Logger
}

// NewService creates a new cash-flow service. xirr may be nil; capital
// summaries then omit the money-weighted return.
func NewService(fx interfaces.FxHistoryProvider, xirr interfaces.XIRRFunc, logger *common.Logger) *Service {
	return &Service{
		fx:     fx,
		xirr:   xirr,
		logger: logger,
	}
}

// AggregateFlows buckets the ledger's contributions and dividends by week,
// month and year in the target currency.
func (s *Service) AggregateFlows(ctx context.Context, req models.FlowRequest) (*models.FlowSummary, error) {
	funcStart := time.Now()

	if len(req.Events) == 0 {
		return &models.FlowSummary{}, nil
	}

	target := strings.ToUpper(req.TargetCurrency)
	fx := s.fetchFxSeries(ctx, req.Events, target)

	summary := aggregate(req.Events, fx, target)

	s.logger.Info().
		Dur("elapsed", time.Since(funcStart)).
		Int("events", len(req.Events)).
		Int("weekly_buckets", len(summary.Contributions.Weekly)).
		Msg("AggregateFlows: TOTAL")
	return summary, nil
}

// CapitalPerformance reports ledger-level capital totals in the target
// currency. The money-weighted return is attached only when an XIRR
// implementation was wired in and it produces a rate.
func (s *Service) CapitalPerformance(ctx context.Context, req models.FlowRequest) (*models.CapitalSummary, error) {
	funcStart := time.Now()

	summary := &models.CapitalSummary{EventCount: len(req.Events)}
	if len(req.Events) == 0 {
		return summary, nil
	}

	target := strings.ToUpper(req.TargetCurrency)
	fx := s.fetchFxSeries(ctx, req.Events, target)
	cursor := newFxCursor(fx, target)

	var flows []models.CashFlow
	var first time.Time

	for _, e := range req.Events {
		if first.IsZero() || e.Date.Before(first) {
			first = e.Date
		}
		r := cursor.rate(e.AssetCurrency, e.DateKey())

		switch models.LedgerEventType(strings.ToLower(string(e.Type))) {
		case models.EventAdd:
			amount := (e.Quantity*e.Price + e.Fee) * r
			summary.TotalInvested += amount
			flows = append(flows, models.CashFlow{Amount: -amount, Date: e.Date})
		case models.EventRemove:
			qty := e.Quantity
			if qty < 0 {
				qty = -qty
			}
			amount := (qty*e.Price - e.Fee) * r
			summary.TotalProceeds += amount
			flows = append(flows, models.CashFlow{Amount: amount, Date: e.Date})
		case models.EventDividend:
			amount := e.Quantity * e.Price * r
			summary.TotalDividends += amount
			flows = append(flows, models.CashFlow{Amount: amount, Date: e.Date})
		}
	}

	summary.NetInvested = summary.TotalInvested - summary.TotalProceeds
	if !first.IsZero() {
		summary.FirstEventDate = &first
	}
	if s.xirr != nil && len(flows) > 0 {
		summary.MoneyWeightedReturn = s.xirr(flows)
	}

	s.logger.Info().
		Dur("elapsed", time.Since(funcStart)).
		Int("events", len(req.Events)).
		Bool("xirr", summary.MoneyWeightedReturn != nil).
		Msg("CapitalPerformance: TOTAL")
	return summary, nil
}

// fetchFxSeries loads FX history for every non-target currency in the ledger
// concurrently. Failures resolve to empty series; conversion then falls back
// to the carry-forward cursor or parity.
func (s *Service) fetchFxSeries(ctx context.Context, events []models.LedgerEvent, target string) models.FxSeries {
	currencies := models.Currencies(events, target)
	if len(currencies) == 0 {
		return models.FxSeries{}
	}

	from := events[0].Date
	for _, e := range events[1:] {
		if e.Date.Before(from) {
			from = e.Date
		}
	}

	fx := make(models.FxSeries, len(currencies))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, currency := range currencies {
		wg.Add(1)
		go func(currency string) {
			defer wg.Done()
			pair := currency + target
			series, err := s.fx.GetFxHistory(ctx, pair, from)
			if err != nil {
				s.logger.Warn().Err(err).Str("pair", pair).Msg("FX history unavailable, continuing with empty series")
				series = models.DateSeries{}
			}
			mu.Lock()
			fx[currency] = series
			mu.Unlock()
		}(currency)
	}
	wg.Wait()

	return fx
}
