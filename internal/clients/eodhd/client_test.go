package eodhd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGetDailyHistory_NumericFields(t *testing.T) {
	mockResp := `[
		{"date": "2025-06-02", "open": 41.0, "high": 43.0, "low": 40.5, "close": 42.5, "adjusted_close": 42.0, "volume": 5000000},
		{"date": "2025-06-03", "open": 42.5, "high": 44.0, "low": 42.0, "close": 43.5, "adjusted_close": 43.0, "volume": 4200000}
	]`

	var gotPath, gotFrom, gotToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotFrom = r.URL.Query().Get("from")
		gotToken = r.URL.Query().Get("api_token")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(mockResp))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	series, err := client.GetDailyHistory(context.Background(), "BHP.AU", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("GetDailyHistory failed: %v", err)
	}

	if gotPath != "/eod/BHP.AU" {
		t.Errorf("path = %s, want /eod/BHP.AU", gotPath)
	}
	if gotFrom != "2025-06-01" {
		t.Errorf("from = %s, want 2025-06-01", gotFrom)
	}
	if gotToken != "test-key" {
		t.Errorf("api_token = %s, want test-key", gotToken)
	}

	if len(series) != 2 {
		t.Fatalf("expected 2 points, got %d", len(series))
	}
	// Adjusted close wins over raw close.
	if series["2025-06-02"] != 42.0 {
		t.Errorf("2025-06-02 = %.2f, want 42.00", series["2025-06-02"])
	}
	if series["2025-06-03"] != 43.0 {
		t.Errorf("2025-06-03 = %.2f, want 43.00", series["2025-06-03"])
	}
}

func TestGetDailyHistory_StringFieldsAndMissingAdjusted(t *testing.T) {
	// AU exchange returns price fields as strings; adjusted_close may be absent.
	mockResp := `[
		{"date": "2025-06-02", "open": "42.10", "high": "43.50", "low": "41.80", "close": "43.25", "volume": 5000000}
	]`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(mockResp))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	series, err := client.GetDailyHistory(context.Background(), "BHP.AU", time.Time{})
	if err != nil {
		t.Fatalf("GetDailyHistory failed: %v", err)
	}

	if series["2025-06-02"] != 43.25 {
		t.Errorf("2025-06-02 = %.2f, want 43.25 (close fallback)", series["2025-06-02"])
	}
}

func TestGetFxHistory_AppendsForexSuffix(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"date": "2025-06-02", "close": 1.52, "adjusted_close": 1.52}]`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	series, err := client.GetFxHistory(context.Background(), "usdaud", time.Time{})
	if err != nil {
		t.Fatalf("GetFxHistory failed: %v", err)
	}

	if gotPath != "/eod/USDAUD.FOREX" {
		t.Errorf("path = %s, want /eod/USDAUD.FOREX", gotPath)
	}
	if series["2025-06-02"] != 1.52 {
		t.Errorf("2025-06-02 = %.4f, want 1.5200", series["2025-06-02"])
	}
}

func TestGetDailyHistory_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte("plan limit reached"))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := client.GetDailyHistory(context.Background(), "BHP.AU", time.Time{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusPaymentRequired {
		t.Errorf("status = %d, want 402", apiErr.StatusCode)
	}
	if apiErr.Message != "plan limit reached" {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestGetDailyHistory_SkipsValuelessBars(t *testing.T) {
	// Halted or unpriced days come back with "N/A" or absent closes; they
	// must not enter the series as zeros.
	mockResp := `[
		{"date": "2025-06-02", "close": "N/A", "adjusted_close": "N/A"},
		{"date": "2025-06-03", "volume": 0},
		{"date": "2025-06-04", "close": 42.0}
	]`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(mockResp))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	series, err := client.GetDailyHistory(context.Background(), "BHP.AU", time.Time{})
	if err != nil {
		t.Fatalf("GetDailyHistory failed: %v", err)
	}
	if len(series) != 1 {
		t.Fatalf("expected 1 point, got %d", len(series))
	}
	if series["2025-06-04"] != 42.0 {
		t.Errorf("2025-06-04 = %.2f, want 42.00", series["2025-06-04"])
	}
	if _, ok := series["2025-06-02"]; ok {
		t.Error("N/A bar stored as a zero price")
	}
}

func TestGetDailyHistory_SkipsEmptyDates(t *testing.T) {
	mockResp := `[
		{"date": "", "close": 10.0},
		{"date": "2025-06-02", "close": 42.0}
	]`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(mockResp))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	series, err := client.GetDailyHistory(context.Background(), "BHP.AU", time.Time{})
	if err != nil {
		t.Fatalf("GetDailyHistory failed: %v", err)
	}
	if len(series) != 1 {
		t.Fatalf("expected 1 point, got %d", len(series))
	}
}
