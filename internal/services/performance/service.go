package performance

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/folioapp/folio/internal/common"
	"github.com/folioapp/folio/internal/interfaces"
	"github.com/folioapp/folio/internal/models"
)

// Compile-time interface check
var _ interfaces.PerformanceService = (*Service)(nil)

// Sentinel errors for callers that branch on failure modes.
var (
	ErrNoEvents = fmt.Errorf("ledger has no events")
)

// Service implements PerformanceService
type Service struct {
	prices interfaces.PriceHistoryProvider
	fx     interfaces.FxHistoryProvider
	logger *common.Logger
	now    func() time.Time
}

// NewService creates a new performance service
func NewService(prices interfaces.PriceHistoryProvider, fx interfaces.FxHistoryProvider, logger *common.Logger) *Service {
	return &Service{
		prices: prices,
		fx:     fx,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock overrides the service's notion of "today". Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// ComputePerformance fetches every required price and FX series concurrently,
// then replays the ledger day by day from the start date through today and
// normalizes the benchmark onto the resulting date axis.
func (s *Service) ComputePerformance(ctx context.Context, req models.PerformanceRequest) (*models.PerformanceResult, error) {
	funcStart := time.Now()

	if len(req.Events) == 0 {
		return nil, ErrNoEvents
	}

	target := strings.ToUpper(req.TargetCurrency)
	start := req.StartDate
	if start.IsZero() {
		start = earliestEventDate(req.Events)
	}
	today := models.MidnightUTC(s.now())

	s.logger.Info().
		Str("benchmark", req.BenchmarkSymbol).
		Str("currency", target).
		Str("from", start.Format(models.DateLayout)).
		Str("to", today.Format(models.DateLayout)).
		Int("events", len(req.Events)).
		Msg("Computing portfolio performance")

	// Phase 1: fan out one fetch per distinct symbol and currency pair.
	// A single barrier before the day loop; the loop itself is sequential.
	phaseStart := time.Now()
	prices, fx, benchmark := s.fetchSeries(ctx, req.Events, req.BenchmarkSymbol, target, start)
	s.logger.Info().
		Dur("elapsed", time.Since(phaseStart)).
		Int("price_series", len(prices)).
		Int("fx_series", len(fx)).
		Msg("ComputePerformance: market data fetch complete")

	// Phase 2: sequential day-by-day replay.
	phaseStart = time.Now()
	records := simulate(req.Events, prices, fx, start, today, target)
	s.logger.Info().
		Dur("elapsed", time.Since(phaseStart)).
		Int("days", len(records)).
		Msg("ComputePerformance: simulation complete")

	// Phase 3: benchmark aligned to the portfolio date axis.
	axis := make([]string, len(records))
	for i, r := range records {
		axis[i] = r.Date
	}

	result := &models.PerformanceResult{
		Portfolio: records,
		Benchmark: normalizeBenchmark(benchmark, axis),
	}

	s.logger.Info().
		Dur("elapsed", time.Since(funcStart)).
		Int("points", len(records)).
		Msg("ComputePerformance: TOTAL")
	return result, nil
}

// fetchSeries loads all price, FX and benchmark history concurrently.
// Provider failures resolve to empty series; the carry-forward policy
// absorbs the gap and the simulation always proceeds.
func (s *Service) fetchSeries(ctx context.Context, events []models.LedgerEvent, benchmarkSymbol, target string, from time.Time) (models.PriceSeries, models.FxSeries, models.DateSeries) {
	symbols := models.Symbols(events)
	currencies := models.Currencies(events, target)

	prices := make(models.PriceSeries, len(symbols))
	fx := make(models.FxSeries, len(currencies))
	var benchmark models.DateSeries

	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, sym := range symbols {
		wg.Add(1)
		go func(sym string) {
			defer wg.Done()
			series, err := s.prices.GetDailyHistory(ctx, sym, from)
			if err != nil {
				s.logger.Warn().Err(err).Str("symbol", sym).Msg("Price history unavailable, continuing with empty series")
				series = models.DateSeries{}
			}
			mu.Lock()
			prices[sym] = series
			mu.Unlock()
		}(sym)
	}

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

	if benchmarkSymbol != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			series, err := s.prices.GetDailyHistory(ctx, benchmarkSymbol, from)
			if err != nil {
				s.logger.Warn().Err(err).Str("symbol", benchmarkSymbol).Msg("Benchmark history unavailable, continuing with empty series")
				series = models.DateSeries{}
			}
			mu.Lock()
			benchmark = series
			mu.Unlock()
		}()
	}

	wg.Wait()

	if benchmark == nil {
		benchmark = models.DateSeries{}
	}
	return prices, fx, benchmark
}

// earliestEventDate scans the ledger for the oldest event date.
func earliestEventDate(events []models.LedgerEvent) time.Time {
	var earliest time.Time
	for _, e := range events {
		if earliest.IsZero() || e.Date.Before(earliest) {
			earliest = e.Date
		}
	}
	return earliest
}
