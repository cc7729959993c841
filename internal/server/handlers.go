package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/folioapp/folio/internal/common"
	"github.com/folioapp/folio/internal/models"
	"github.com/folioapp/folio/internal/services/performance"
)

// --- System handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": common.GetVersion(),
		"uptime":  time.Since(s.app.StartupTime).Round(time.Second).String(),
	})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

// --- Performance handlers ---

func (s *Server) handlePerformance(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	req, ok := s.decodePerformanceRequest(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.app.Config.Performance.GetFetchTimeout())
	defer cancel()

	result, err := s.app.PerformanceService.ComputePerformance(ctx, req)
	if err != nil {
		if errors.Is(err, performance.ErrNoEvents) {
			WriteError(w, http.StatusBadRequest, "At least one ledger event is required")
			return
		}
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Performance error: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

func (s *Server) handlePerformanceChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	req, ok := s.decodePerformanceRequest(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.app.Config.Performance.GetFetchTimeout())
	defer cancel()

	result, err := s.app.PerformanceService.ComputePerformance(ctx, req)
	if err != nil {
		if errors.Is(err, performance.ErrNoEvents) {
			WriteError(w, http.StatusBadRequest, "At least one ledger event is required")
			return
		}
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Performance error: %v", err))
		return
	}

	png, err := s.app.PerformanceService.RenderPerformanceChart(result)
	if err != nil {
		WriteError(w, http.StatusUnprocessableEntity, fmt.Sprintf("Chart error: %v", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// decodePerformanceRequest decodes and normalizes the request body: invalid
// event types reject with 400, the target currency defaults to the configured
// base currency, and events are stably sorted into date order (same-day order
// is preserved, matching the batch semantics of the replay).
func (s *Server) decodePerformanceRequest(w http.ResponseWriter, r *http.Request) (models.PerformanceRequest, bool) {
	var req models.PerformanceRequest
	if !DecodeJSON(w, r, &req) {
		return req, false
	}
	if !s.normalizeEvents(w, req.Events, &req.TargetCurrency) {
		return req, false
	}
	return req, true
}

// --- Flow handlers ---

func (s *Server) handleFlows(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.FlowRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if !s.normalizeEvents(w, req.Events, &req.TargetCurrency) {
		return
	}

	summary, err := s.app.FlowService.AggregateFlows(r.Context(), req)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Flow aggregation error: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, summary)
}

func (s *Server) handleFlowsCapital(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.FlowRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if !s.normalizeEvents(w, req.Events, &req.TargetCurrency) {
		return
	}

	summary, err := s.app.FlowService.CapitalPerformance(r.Context(), req)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Capital summary error: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, summary)
}

// normalizeEvents validates event types, sorts events into date order and
// defaults the target currency. Writes a 400 and returns false on bad input.
func (s *Server) normalizeEvents(w http.ResponseWriter, events []models.LedgerEvent, targetCurrency *string) bool {
	for _, e := range events {
		if !models.ValidLedgerEventType(e.Type) {
			WriteError(w, http.StatusBadRequest, fmt.Sprintf("Unknown event type %q for symbol %s", e.Type, e.Symbol))
			return false
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})

	if *targetCurrency == "" {
		*targetCurrency = s.app.Config.BaseCurrency
	}
	return true
}
