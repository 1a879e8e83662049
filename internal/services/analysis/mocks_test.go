package analysis

import (
	"context"
	"sync"
	"time"

	"github.com/finlens/incomelens/internal/common"
	"github.com/finlens/incomelens/internal/models"
)

// --- Mocks ---

type historyCall struct {
	variant string
	from    time.Time
	to      time.Time
}

// mockProvider implements interfaces.QuoteProvider. History is stored as a
// full per-variant series and filtered to the requested [from, to) window,
// so window-widening behavior falls out naturally. historyFn and failFirst
// override that for window- or call-dependent scenarios.
type mockProvider struct {
	mu sync.Mutex

	history      map[string][]models.PriceBar
	historyErr   map[string]error
	historyFn    func(variant string, from, to time.Time) ([]models.PriceBar, error)
	failFirst    int // error the first N history calls
	recent       map[string][]models.PriceBar
	recentErr    map[string]error
	dividends    map[string][]models.DividendRecord
	dividendsErr map[string]error
	snapshots    map[string]*models.QuoteSnapshot
	snapshotErr  map[string]error

	historyCalls  []historyCall
	dividendCalls []string
	recentCalls   []string
	snapshotCalls []string
}

func (m *mockProvider) FetchHistory(_ context.Context, variant string, from, to time.Time) ([]models.PriceBar, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.historyCalls = append(m.historyCalls, historyCall{variant: variant, from: from, to: to})

	if m.failFirst > 0 {
		m.failFirst--
		return nil, errProvider
	}
	if m.historyFn != nil {
		return m.historyFn(variant, from, to)
	}
	if err := m.historyErr[variant]; err != nil {
		return nil, err
	}

	var out []models.PriceBar
	for _, bar := range m.history[variant] {
		if !bar.Date.Before(from) && bar.Date.Before(to) {
			out = append(out, bar)
		}
	}
	return out, nil
}

func (m *mockProvider) FetchRecent(_ context.Context, variant string, _ int) ([]models.PriceBar, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recentCalls = append(m.recentCalls, variant)
	if err := m.recentErr[variant]; err != nil {
		return nil, err
	}
	return m.recent[variant], nil
}

func (m *mockProvider) FetchDividends(_ context.Context, variant string) ([]models.DividendRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dividendCalls = append(m.dividendCalls, variant)
	if err := m.dividendsErr[variant]; err != nil {
		return nil, err
	}
	return m.dividends[variant], nil
}

func (m *mockProvider) FetchQuoteSnapshot(_ context.Context, variant string) (*models.QuoteSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshotCalls = append(m.snapshotCalls, variant)
	if err := m.snapshotErr[variant]; err != nil {
		return nil, err
	}
	if snap, ok := m.snapshots[variant]; ok {
		return snap, nil
	}
	return &models.QuoteSnapshot{}, nil
}

// --- Helpers ---

var errProvider = &providerError{"connection reset"}

type providerError struct{ msg string }

func (e *providerError) Error() string { return e.msg }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var (
	testStart = day(2025, 1, 2)
	testNow   = time.Date(2025, 8, 29, 17, 30, 0, 0, time.UTC)
)

func newTestService(provider *mockProvider, symbols ...string) *Service {
	cfg := common.NewDefaultConfig()
	cfg.Symbols = symbols
	cfg.StartDate = "2025-01-02"
	cfg.Concurrency = 1

	svc, err := NewService(provider, cfg, common.NewSilentLogger())
	if err != nil {
		panic(err)
	}
	svc.now = func() time.Time { return testNow }
	return svc
}
