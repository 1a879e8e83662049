// Package common provides shared utilities for incomelens
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// DateLayout is the calendar-date format used throughout the configuration
// and the provider boundary.
const DateLayout = "2006-01-02"

// Config holds all configuration for incomelens
type Config struct {
	Symbols             []string       `toml:"symbols"`
	NEOExchangeSymbols  []string       `toml:"neo_exchange_symbols"` // symbols that also trade under a .NE listing
	InvestmentPerSymbol float64        `toml:"investment_per_symbol"`
	StartDate           string         `toml:"start_date"` // YYYY-MM-DD, preferred purchase date
	Concurrency         int            `toml:"concurrency"`
	Provider            ProviderConfig `toml:"provider"`
	Report              ReportConfig   `toml:"report"`
	Schedule            ScheduleConfig `toml:"schedule"`
	Logging             LoggingConfig  `toml:"logging"`
}

// ProviderConfig holds market-data provider configuration
type ProviderConfig struct {
	BaseURL   string `toml:"base_url"`
	RateLimit int    `toml:"rate_limit"` // requests per second, shared across all workers
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the per-call timeout duration
func (c *ProviderConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// ReportConfig holds report output configuration
type ReportConfig struct {
	OutputPath string `toml:"output_path"`
	Title      string `toml:"title"`
}

// ScheduleConfig holds the optional scheduled re-run configuration.
// An empty cron spec disables scheduling.
type ScheduleConfig struct {
	Cron string `toml:"cron"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `toml:"level"`
}

// GetStartDate parses the configured start date
func (c *Config) GetStartDate() (time.Time, error) {
	t, err := time.Parse(DateLayout, c.StartDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start_date %q: %w", c.StartDate, err)
	}
	return t, nil
}

// IsNEOSymbol reports whether the base symbol belongs to the configured
// NEO-exchange exception set.
func (c *Config) IsNEOSymbol(symbol string) bool {
	for _, s := range c.NEOExchangeSymbols {
		if strings.EqualFold(s, symbol) {
			return true
		}
	}
	return false
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Symbols:             []string{"FSCO", "EIC", "OXLC", "GOF", "BBDC"},
		NEOExchangeSymbols:  []string{"HHIS", "MSTE"},
		InvestmentPerSymbol: 10000,
		StartDate:           "2025-01-02",
		Concurrency:         4,
		Provider: ProviderConfig{
			BaseURL:   "https://query1.finance.yahoo.com",
			RateLimit: 5,
			Timeout:   "30s",
		},
		Report: ReportConfig{
			OutputPath: "income_investing_report.html",
			Title:      "Income Investing Analysis",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides.
// Later files override earlier ones; missing files are skipped.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("INCOMELENS_SYMBOLS"); v != "" {
		parts := strings.Split(v, ",")
		symbols := make([]string, 0, len(parts))
		for _, p := range parts {
			if s := strings.TrimSpace(p); s != "" {
				symbols = append(symbols, strings.ToUpper(s))
			}
		}
		if len(symbols) > 0 {
			config.Symbols = symbols
		}
	}

	if v := os.Getenv("INCOMELENS_INVESTMENT"); v != "" {
		if amount, err := strconv.ParseFloat(v, 64); err == nil {
			config.InvestmentPerSymbol = amount
		}
	}

	if v := os.Getenv("INCOMELENS_START_DATE"); v != "" {
		config.StartDate = v
	}

	if v := os.Getenv("INCOMELENS_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Concurrency = n
		}
	}

	if v := os.Getenv("INCOMELENS_PROVIDER_URL"); v != "" {
		config.Provider.BaseURL = v
	}

	if v := os.Getenv("INCOMELENS_REPORT_PATH"); v != "" {
		config.Report.OutputPath = v
	}

	if v := os.Getenv("INCOMELENS_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
}

// Validate checks the configuration for values the analysis cannot run with
func (c *Config) Validate() error {
	if len(c.Symbols) == 0 {
		return fmt.Errorf("no symbols configured")
	}
	if c.InvestmentPerSymbol <= 0 {
		return fmt.Errorf("investment_per_symbol must be positive, got %.2f", c.InvestmentPerSymbol)
	}
	if _, err := c.GetStartDate(); err != nil {
		return err
	}
	if c.Concurrency < 1 {
		c.Concurrency = 1
	}
	return nil
}
