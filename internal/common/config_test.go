package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	assert.NotEmpty(t, config.Symbols)
	assert.Equal(t, []string{"HHIS", "MSTE"}, config.NEOExchangeSymbols)
	assert.Equal(t, 10000.0, config.InvestmentPerSymbol)
	assert.Equal(t, "2025-01-02", config.StartDate)
	assert.Equal(t, 4, config.Concurrency)
	assert.Equal(t, "https://query1.finance.yahoo.com", config.Provider.BaseURL)
	assert.Equal(t, 5, config.Provider.RateLimit)
	assert.Equal(t, "income_investing_report.html", config.Report.OutputPath)
	assert.Equal(t, "info", config.Logging.Level)

	require.NoError(t, config.Validate())
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "incomelens.toml")
	content := `
symbols = ["OXLC", "GOF"]
neo_exchange_symbols = ["HHIS"]
investment_per_symbol = 25000.0
start_date = "2025-02-03"
concurrency = 8

[provider]
base_url = "http://localhost:9999"
rate_limit = 2
timeout = "10s"

[report]
output_path = "out/report.html"

[schedule]
cron = "0 18 * * 1-5"

[logging]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"OXLC", "GOF"}, config.Symbols)
	assert.Equal(t, 25000.0, config.InvestmentPerSymbol)
	assert.Equal(t, "2025-02-03", config.StartDate)
	assert.Equal(t, 8, config.Concurrency)
	assert.Equal(t, "http://localhost:9999", config.Provider.BaseURL)
	assert.Equal(t, "0 18 * * 1-5", config.Schedule.Cron)
	assert.Equal(t, "debug", config.Logging.Level)

	start, err := config.GetStartDate()
	require.NoError(t, err)
	assert.Equal(t, 2025, start.Year())
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	assert.Equal(t, 10000.0, config.InvestmentPerSymbol)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("INCOMELENS_SYMBOLS", "oxlc, gof ,eic")
	t.Setenv("INCOMELENS_INVESTMENT", "5000")
	t.Setenv("INCOMELENS_START_DATE", "2025-03-03")
	t.Setenv("INCOMELENS_CONCURRENCY", "2")
	t.Setenv("INCOMELENS_PROVIDER_URL", "http://localhost:8080")
	t.Setenv("INCOMELENS_REPORT_PATH", "custom.html")
	t.Setenv("INCOMELENS_LOG_LEVEL", "warn")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, []string{"OXLC", "GOF", "EIC"}, config.Symbols)
	assert.Equal(t, 5000.0, config.InvestmentPerSymbol)
	assert.Equal(t, "2025-03-03", config.StartDate)
	assert.Equal(t, 2, config.Concurrency)
	assert.Equal(t, "http://localhost:8080", config.Provider.BaseURL)
	assert.Equal(t, "custom.html", config.Report.OutputPath)
	assert.Equal(t, "warn", config.Logging.Level)
}

func TestConfigValidate(t *testing.T) {
	config := NewDefaultConfig()
	config.Symbols = nil
	assert.Error(t, config.Validate())

	config = NewDefaultConfig()
	config.InvestmentPerSymbol = 0
	assert.Error(t, config.Validate())

	config = NewDefaultConfig()
	config.StartDate = "01/02/2025"
	assert.Error(t, config.Validate())

	config = NewDefaultConfig()
	config.Concurrency = 0
	require.NoError(t, config.Validate())
	assert.Equal(t, 1, config.Concurrency, "concurrency floors at one worker")
}

func TestIsNEOSymbol(t *testing.T) {
	config := NewDefaultConfig()
	assert.True(t, config.IsNEOSymbol("HHIS"))
	assert.True(t, config.IsNEOSymbol("hhis"))
	assert.False(t, config.IsNEOSymbol("OXLC"))
}

func TestProviderTimeout(t *testing.T) {
	p := ProviderConfig{Timeout: "10s"}
	assert.Equal(t, "10s", p.GetTimeout().String())

	p = ProviderConfig{Timeout: "bogus"}
	assert.Equal(t, "30s", p.GetTimeout().String())
}
