package app

import (
	"context"

	"github.com/rs/zerolog"

	"mspwatch/internal/config"
	"mspwatch/internal/fetcher"
	"mspwatch/internal/rates"
)

// App aggregates configuration and shared dependencies for the CLI commands.
type App struct {
	Config *config.Config
	Logger zerolog.Logger

	svc *rates.Service
}

// NewApp constructs a new application handle.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	return &App{Config: cfg, Logger: logger.With().Str("component", "app").Logger()}
}

// service lazily wires the acquisition pipeline. Tiers without credentials
// are left unconfigured so the pipeline skips them without network calls.
func (a *App) service(ctx context.Context) *rates.Service {
	if a.svc != nil {
		return a.svc
	}

	var source fetcher.RecordSource
	if a.Config.DataGov.APIKey != "" {
		source = fetcher.NewDataGov(fetcher.DataGovOptions{
			BaseURL:    a.Config.DataGov.BaseURL,
			APIKey:     a.Config.DataGov.APIKey,
			ResourceID: a.Config.DataGov.ResourceID,
			Limit:      a.Config.DataGov.Limit,
			Timeout:    a.Config.DataGov.RequestTimeout,
			UserAgent:  a.Config.DataGov.UserAgent,
		}, a.Logger)
	} else {
		a.Logger.Debug().Msg("datagov.api_key not configured; government tier disabled")
	}

	var gen fetcher.TextGenerator
	if a.Config.Gemini.APIKey != "" {
		gemini, err := fetcher.NewGemini(ctx, fetcher.GeminiOptions{
			APIKey: a.Config.Gemini.APIKey,
			Model:  a.Config.Gemini.Model,
		}, a.Logger)
		if err != nil {
			a.Logger.Warn().Err(err).Msg("gemini adapter unavailable; generative tier disabled")
		} else {
			gen = gemini
		}
	} else {
		a.Logger.Debug().Msg("gemini.api_key not configured; generative tier disabled")
	}

	cache := rates.NewCache(a.Config.Cache.TTL)
	a.svc = rates.NewService(source, gen, cache, a.Logger)
	return a.svc
}

// RatesOptions configure the rates command.
type RatesOptions struct {
	Category string
	JSON     bool
}

// HistoryOptions configure the history command.
type HistoryOptions struct {
	CropID  string
	JSON    bool
	PNGPath string
	CSVPath string
}
