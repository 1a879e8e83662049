// Package app wires configuration, clients, and services into a runnable
// application shared by the CLI entry point and the scheduler.
package app

import (
	"context"
	"fmt"
	"os"

	"github.com/robfig/cron/v3"

	"github.com/finlens/incomelens/internal/clients/yahoo"
	"github.com/finlens/incomelens/internal/common"
	"github.com/finlens/incomelens/internal/interfaces"
	"github.com/finlens/incomelens/internal/services/analysis"
	"github.com/finlens/incomelens/internal/services/report"
)

// App holds all initialized services and clients.
type App struct {
	Config   *common.Config
	Logger   *common.Logger
	Provider interfaces.QuoteProvider
	Analysis interfaces.AnalysisService
	Report   interfaces.ReportService

	cron *cron.Cron
}

// NewApp initializes configuration, the provider client, and all services.
// configPath may be empty, in which case the default resolution logic is
// used: INCOMELENS_CONFIG, then config/incomelens.toml.
func NewApp(configPath string) (*App, error) {
	if configPath == "" {
		configPath = os.Getenv("INCOMELENS_CONFIG")
	}
	if configPath == "" {
		configPath = "config/incomelens.toml"
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLogger(config.Logging.Level)

	provider := yahoo.NewClient(
		yahoo.WithBaseURL(config.Provider.BaseURL),
		yahoo.WithRateLimit(config.Provider.RateLimit),
		yahoo.WithTimeout(config.Provider.GetTimeout()),
		yahoo.WithLogger(logger),
	)

	analysisService, err := analysis.NewService(provider, config, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize analysis service: %w", err)
	}

	return &App{
		Config:   config,
		Logger:   logger,
		Provider: provider,
		Analysis: analysisService,
		Report:   report.NewService(config, logger),
	}, nil
}

// RunOnce executes a full analysis pass: batch run, console output, and
// the HTML report file.
func (a *App) RunOnce(ctx context.Context) error {
	result, err := a.Analysis.Run(ctx)
	if err != nil {
		return fmt.Errorf("analysis run failed: %w", err)
	}

	if err := a.Report.RenderConsole(os.Stdout, result); err != nil {
		return fmt.Errorf("console report failed: %w", err)
	}

	if _, err := a.Report.SaveHTML(result); err != nil {
		return fmt.Errorf("html report failed: %w", err)
	}

	return nil
}

// StartScheduler begins scheduled re-runs when a cron spec is configured.
// Returns false when scheduling is disabled.
func (a *App) StartScheduler(ctx context.Context) (bool, error) {
	spec := a.Config.Schedule.Cron
	if spec == "" {
		return false, nil
	}

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		a.Logger.Info().Str("cron", spec).Msg("Scheduled analysis run starting")
		if err := a.RunOnce(ctx); err != nil {
			a.Logger.Error().Err(err).Msg("Scheduled analysis run failed")
		}
	})
	if err != nil {
		return false, fmt.Errorf("invalid schedule cron spec %q: %w", spec, err)
	}

	c.Start()
	a.cron = c
	a.Logger.Info().Str("cron", spec).Msg("Scheduler started")
	return true, nil
}

// Close stops background work.
func (a *App) Close() {
	if a.cron != nil {
		a.cron.Stop()
	}
}
