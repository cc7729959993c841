// Package app wires configuration, clients and services into one unit
// shared by the server entry point and tests.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/folioapp/folio/internal/clients/eodhd"
	"github.com/folioapp/folio/internal/common"
	"github.com/folioapp/folio/internal/interfaces"
	"github.com/folioapp/folio/internal/services/cashflow"
	"github.com/folioapp/folio/internal/services/performance"
)

// App holds all initialized services and clients.
type App struct {
	Config             *common.Config
	Logger             *common.Logger
	EODHDClient        *eodhd.Client
	PerformanceService interfaces.PerformanceService
	FlowService        interfaces.FlowService
	StartupTime        time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, logging, the market-data client and the
// services. configPath may be empty, in which case the default resolution
// logic is used: FOLIO_CONFIG, then folio.toml beside the binary, then the
// development fallback.
func NewApp(configPath string) (*App, error) {
	binDir := getBinaryDir()

	if configPath == "" {
		configPath = os.Getenv("FOLIO_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "folio.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/folio.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	if config.Clients.EODHD.APIKey == "" {
		logger.Warn().Msg("EODHD API key not configured - market data will resolve to empty series")
	}

	clientOpts := []eodhd.ClientOption{
		eodhd.WithLogger(logger),
		eodhd.WithTimeout(config.Clients.EODHD.GetTimeout()),
	}
	if config.Clients.EODHD.BaseURL != "" {
		clientOpts = append(clientOpts, eodhd.WithBaseURL(config.Clients.EODHD.BaseURL))
	}
	if config.Clients.EODHD.RateLimit > 0 {
		clientOpts = append(clientOpts, eodhd.WithRateLimit(config.Clients.EODHD.RateLimit))
	}
	eodhdClient := eodhd.NewClient(config.Clients.EODHD.APIKey, clientOpts...)

	// The XIRR collaborator is external; capital summaries omit the
	// money-weighted return until one is wired in here.
	app := &App{
		Config:             config,
		Logger:             logger,
		EODHDClient:        eodhdClient,
		PerformanceService: performance.NewService(eodhdClient, eodhdClient, logger),
		FlowService:        cashflow.NewService(eodhdClient, nil, logger),
		StartupTime:        time.Now(),
	}

	logger.Info().
		Str("version", common.GetVersion()).
		Str("environment", config.Environment).
		Str("base_currency", config.BaseCurrency).
		Msg("Folio initialized")

	return app, nil
}
