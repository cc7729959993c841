package server

import "net/http"

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)

	// Performance
	mux.HandleFunc("/api/performance", s.handlePerformance)
	mux.HandleFunc("/api/performance/chart", s.handlePerformanceChart)

	// Cash flows
	mux.HandleFunc("/api/flows", s.handleFlows)
	mux.HandleFunc("/api/flows/capital", s.handleFlowsCapital)
}
