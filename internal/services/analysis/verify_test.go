package analysis

import (
	"context"
	"testing"
	"time"

	"github.com/finlens/incomelens/internal/models"
)

// twoMethodFn returns distinct series for the anchored and the ranged
// verification query, keyed on the requested window start.
func twoMethodFn(target time.Time, anchoredOpen, rangedOpen float64) func(string, time.Time, time.Time) ([]models.PriceBar, error) {
	return func(_ string, from, _ time.Time) ([]models.PriceBar, error) {
		switch {
		case from.Equal(target):
			return []models.PriceBar{{Date: target, Open: anchoredOpen, Close: anchoredOpen}}, nil
		case from.Equal(target.AddDate(0, 0, -2)):
			return []models.PriceBar{{Date: target.AddDate(0, 0, 1), Open: rangedOpen, Close: rangedOpen}}, nil
		}
		return nil, nil
	}
}

func TestVerify_AgreementWithinTolerance(t *testing.T) {
	provider := &mockProvider{historyFn: twoMethodFn(testStart, 100.00, 100.50)}
	svc := newTestService(provider, "GOF")

	outcome := svc.verify(context.Background(), "GOF", testStart)
	if !outcome.Verified {
		t.Fatalf("expected verified outcome, got %+v", outcome)
	}
	if outcome.Average == nil || *outcome.Average != 100.25 {
		t.Errorf("expected average 100.25, got %v", outcome.Average)
	}
	if len(outcome.Prices) != 2 || len(outcome.Methods) != 2 {
		t.Errorf("expected two prices from two methods, got %+v", outcome)
	}
	if outcome.MaxDeviation > verificationTolerance {
		t.Errorf("deviation %f exceeds tolerance", outcome.MaxDeviation)
	}
}

func TestVerify_DiscrepancyBeyondTolerance(t *testing.T) {
	provider := &mockProvider{historyFn: twoMethodFn(testStart, 100.00, 103.00)}
	svc := newTestService(provider, "GOF")

	outcome := svc.verify(context.Background(), "GOF", testStart)
	if outcome.Verified {
		t.Fatal("3% spread must not verify")
	}
	if outcome.Average == nil || *outcome.Average != 101.5 {
		t.Errorf("average is still reported on discrepancy, got %v", outcome.Average)
	}
	if outcome.MaxDeviation <= verificationTolerance {
		t.Errorf("expected deviation above tolerance, got %f", outcome.MaxDeviation)
	}
}

func TestVerify_SinglePriceNeverVerified(t *testing.T) {
	provider := &mockProvider{
		historyFn: func(_ string, from, _ time.Time) ([]models.PriceBar, error) {
			if from.Equal(testStart) {
				return []models.PriceBar{{Date: testStart, Open: 100.00, Close: 100.00}}, nil
			}
			return nil, nil
		},
	}
	svc := newTestService(provider, "GOF")

	outcome := svc.verify(context.Background(), "GOF", testStart)
	if outcome.Verified {
		t.Fatal("a single source must never verify")
	}
	if outcome.Average == nil || *outcome.Average != 100.00 {
		t.Errorf("single price is still usable as average, got %v", outcome.Average)
	}
}

func TestVerify_AllMethodsFail(t *testing.T) {
	provider := &mockProvider{}
	svc := newTestService(provider, "GOF")

	outcome := svc.verify(context.Background(), "GOF", testStart)
	if outcome.Verified || outcome.Average != nil {
		t.Fatalf("expected unusable outcome, got %+v", outcome)
	}
	if outcome.Err != "all verification methods failed" {
		t.Errorf("unexpected error text %q", outcome.Err)
	}
}

func TestVerify_StopsAtFirstVariantWithPrice(t *testing.T) {
	provider := &mockProvider{historyFn: twoMethodFn(testStart, 100.00, 100.10)}
	svc := newTestService(provider, "GOF")

	svc.verify(context.Background(), "GOF", testStart)
	for _, call := range provider.historyCalls {
		if call.variant != "GOF" {
			t.Fatalf("scanning must stop once the base variant yields prices, saw %s", call.variant)
		}
	}
}

func TestVerify_NearestOpenPicksClosestRow(t *testing.T) {
	provider := &mockProvider{
		historyFn: func(_ string, from, _ time.Time) ([]models.PriceBar, error) {
			if from.Equal(testStart.AddDate(0, 0, -2)) {
				return []models.PriceBar{
					{Date: testStart.AddDate(0, 0, -2), Open: 98.00, Close: 98.00},
					{Date: testStart.AddDate(0, 0, 1), Open: 100.00, Close: 100.00},
					{Date: testStart.AddDate(0, 0, 3), Open: 104.00, Close: 104.00},
				}, nil
			}
			return nil, nil
		},
	}
	svc := newTestService(provider, "GOF")

	outcome := svc.verify(context.Background(), "GOF", testStart)
	if outcome.Average == nil || *outcome.Average != 100.00 {
		t.Errorf("ranged method must pick the row closest to the target date, got %v", outcome.Average)
	}
}
