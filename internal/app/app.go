// Package app wires configuration, storage, clients and services into a
// single shared core used by cmd/momoney-server and the tests.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/silvamenu/momoney/internal/clients/alphavantage"
	"github.com/silvamenu/momoney/internal/clients/gemini"
	"github.com/silvamenu/momoney/internal/common"
	"github.com/silvamenu/momoney/internal/interfaces"
	"github.com/silvamenu/momoney/internal/services/assistant"
	"github.com/silvamenu/momoney/internal/services/portfolio"
	"github.com/silvamenu/momoney/internal/services/quote"
	surreal "github.com/silvamenu/momoney/internal/storage/surrealdb"
)

// App holds all initialized services and clients.
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	Storage          interfaces.StorageManager
	QuoteService     interfaces.QuoteService
	PortfolioService interfaces.PortfolioService
	AssistantService interfaces.AssistantService
	StartupTime      time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes storage, clients and services from configuration.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(ctx context.Context, configPath string) (*App, error) {
	startupStart := time.Now()

	// Resolve config: explicit path, MOMONEY_CONFIG, binary dir, then dev fallback
	if configPath == "" {
		configPath = os.Getenv("MOMONEY_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(getBinaryDir(), "momoney.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/momoney.toml"
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLogger(config.Logging.Level)

	storageManager, err := surreal.NewStorageManager(ctx, config, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Resolve API keys. Either client may be absent; the server degrades the
	// affected endpoints rather than refusing to start.
	var quoteService interfaces.QuoteService
	alphaKey, err := common.ResolveAPIKey("alphavantage_api_key", config.Clients.AlphaVantage.APIKey)
	if err != nil {
		logger.Warn().Msg("Alpha Vantage API key not configured - stock quotes will be unavailable")
	} else {
		avClient := alphavantage.NewClient(alphaKey,
			alphavantage.WithBaseURL(config.Clients.AlphaVantage.BaseURL),
			alphavantage.WithLogger(logger),
			alphavantage.WithRateLimit(config.Clients.AlphaVantage.RateLimit),
			alphavantage.WithTimeout(config.Clients.AlphaVantage.GetTimeout()),
		)
		quoteService = quote.NewService(avClient, quote.NewCache(config.Quotes.GetCacheTTL()), logger,
			quote.WithBatchLimit(config.Quotes.BatchLimit),
			quote.WithFetchInterval(config.Quotes.GetFetchInterval()),
		)
	}

	var assistantService interfaces.AssistantService
	geminiKey, err := common.ResolveAPIKey("gemini_api_key", config.Clients.Gemini.APIKey)
	if err != nil {
		logger.Warn().Msg("Gemini API key not configured - assistant will be unavailable")
	} else {
		geminiClient, err := gemini.NewClient(ctx, geminiKey,
			gemini.WithLogger(logger),
			gemini.WithModel(config.Clients.Gemini.Model),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize Gemini client")
		} else {
			assistantService = assistant.NewService(storageManager, geminiClient, logger)
		}
	}

	portfolioService := portfolio.NewService(storageManager, quoteService, logger)

	a := &App{
		Config:           config,
		Logger:           logger,
		Storage:          storageManager,
		QuoteService:     quoteService,
		PortfolioService: portfolioService,
		AssistantService: assistantService,
		StartupTime:      startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// Close releases all resources held by the App.
func (a *App) Close() {
	if a.Storage != nil {
		a.Storage.Close()
		a.Storage = nil
	}
}
