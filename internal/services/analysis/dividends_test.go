package analysis

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/finlens/incomelens/internal/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCollectDividends_InclusiveBoundaries(t *testing.T) {
	provider := &mockProvider{
		dividends: map[string][]models.DividendRecord{
			"OXLC": {
				{ExDate: day(2024, 12, 31), Amount: 0.08}, // before window
				{ExDate: day(2025, 1, 2), Amount: 0.09},   // first day, inclusive
				{ExDate: day(2025, 4, 15), Amount: 0.09},
				{ExDate: day(2025, 8, 29), Amount: 0.09}, // last day, inclusive
				{ExDate: day(2025, 8, 30), Amount: 0.09}, // after window
			},
		},
	}
	svc := newTestService(provider, "OXLC")

	summary := svc.collectDividends(context.Background(), "OXLC", testStart, day(2025, 8, 29), 100)
	if summary.PaymentCount != 3 {
		t.Errorf("expected 3 payments inside the inclusive window, got %d", summary.PaymentCount)
	}
	if !almostEqual(summary.TotalCollected, 27.0) {
		t.Errorf("expected 0.27 per share x 100 shares = 27.00, got %.4f", summary.TotalCollected)
	}
}

func TestCollectDividends_FirstVariantWithHistoryWins(t *testing.T) {
	provider := &mockProvider{
		dividends: map[string][]models.DividendRecord{
			"ENB":    {{ExDate: day(2025, 3, 1), Amount: 0.50}},
			"ENB.TO": {{ExDate: day(2025, 3, 1), Amount: 0.70}},
		},
	}
	svc := newTestService(provider, "ENB")

	summary := svc.collectDividends(context.Background(), "ENB", testStart, day(2025, 8, 29), 10)
	if !almostEqual(summary.TotalCollected, 5.0) {
		t.Errorf("base variant history must win, got %.4f", summary.TotalCollected)
	}
	if len(provider.dividendCalls) != 1 {
		t.Errorf("later variants must not be consulted, calls: %v", provider.dividendCalls)
	}
}

func TestCollectDividends_VariantFallbackOnError(t *testing.T) {
	provider := &mockProvider{
		dividendsErr: map[string]error{
			"ENB": errors.New("not found"),
		},
		dividends: map[string][]models.DividendRecord{
			"ENB.TO": {{ExDate: day(2025, 3, 1), Amount: 0.35}},
		},
	}
	svc := newTestService(provider, "ENB")

	summary := svc.collectDividends(context.Background(), "ENB", testStart, day(2025, 8, 29), 10)
	if !almostEqual(summary.TotalCollected, 3.5) {
		t.Errorf("expected .TO history after base error, got %.4f", summary.TotalCollected)
	}
}

func TestCollectDividends_NoHistoryAnywhere(t *testing.T) {
	provider := &mockProvider{}
	svc := newTestService(provider, "BTX")

	summary := svc.collectDividends(context.Background(), "BTX", testStart, day(2025, 8, 29), 100)
	if summary.TotalCollected != 0 || summary.PaymentCount != 0 {
		t.Errorf("expected zero summary, got %+v", summary)
	}
}

func TestCollectDividends_LocalOffsetExDates(t *testing.T) {
	// Ex-dates from exchange feeds carry a time of day and a local
	// offset; compared raw against the midnight window bound they would
	// fall outside it.
	sydney := time.FixedZone("AEST", 10*3600)
	provider := &mockProvider{
		dividends: map[string][]models.DividendRecord{
			"BHP.AX": {
				{ExDate: time.Date(2025, 8, 29, 23, 0, 0, 0, sydney), Amount: 1.20},
			},
		},
	}
	svc := newTestService(provider, "BHP.AX")

	summary := svc.collectDividends(context.Background(), "BHP.AX", testStart, day(2025, 8, 29), 10)
	if summary.PaymentCount != 1 {
		t.Errorf("boundary payment with local offset must stay in window, got %+v", summary)
	}
}
