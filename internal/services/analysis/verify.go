package analysis

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/finlens/incomelens/internal/models"
)

// verificationTolerance is the maximum relative deviation from the mean
// for a set of independently retrieved prices to count as verified.
const verificationTolerance = 0.01

// verify cross-validates the historical price for a symbol by running two
// independent retrieval methods per ticker variant against a window around
// the target date. It is the fallback path, used only when the primary
// historical resolver has failed outright. Scanning stops at the first
// variant that yields at least one price. The outcome reports only an
// average price, never a resolved calendar date.
func (s *Service) verify(ctx context.Context, symbol string, targetDate time.Time) models.VerificationOutcome {
	var prices []float64
	var methods []string

	for _, variant := range verificationVariants(symbol, s.isNEO(symbol)) {
		// Method A: direct history query anchored at the target date,
		// opening price of the first row.
		barsA, err := s.provider.FetchHistory(ctx, variant, targetDate, targetDate.AddDate(0, 0, preferredWindowDays))
		if err != nil {
			s.logger.Debug().Err(err).Str("symbol", symbol).Str("variant", variant).Msg("Verification history query failed")
		} else if quote := firstOpen(barsA, variant, models.MethodHistoryPreferredDate); quote != nil {
			prices = append(prices, quote.Price)
			methods = append(methods, fmt.Sprintf("history (%s)", variant))
		}

		// Method B: ranged query, opening price of the row closest to
		// the target date.
		barsB, err := s.provider.FetchHistory(ctx, variant, targetDate.AddDate(0, 0, -2), targetDate.AddDate(0, 0, 4))
		if err != nil {
			s.logger.Debug().Err(err).Str("symbol", symbol).Str("variant", variant).Msg("Verification range query failed")
		} else if price, ok := nearestOpen(barsB, targetDate); ok {
			prices = append(prices, price)
			methods = append(methods, fmt.Sprintf("range (%s)", variant))
		}

		if len(prices) > 0 {
			break
		}
	}

	switch len(prices) {
	case 0:
		return models.VerificationOutcome{
			Verified: false,
			Err:      "all verification methods failed",
		}
	case 1:
		// A single source is unreliable: usable, but never verified.
		avg := prices[0]
		return models.VerificationOutcome{
			Average:  &avg,
			Verified: false,
			Methods:  methods,
			Prices:   prices,
		}
	}

	avg := 0.0
	for _, p := range prices {
		avg += p
	}
	avg /= float64(len(prices))

	maxDeviation := 0.0
	for _, p := range prices {
		if dev := math.Abs(p-avg) / avg; dev > maxDeviation {
			maxDeviation = dev
		}
	}

	verified := maxDeviation <= verificationTolerance
	if !verified {
		s.logger.Warn().
			Str("symbol", symbol).
			Float64("max_deviation", maxDeviation).
			Floats64("prices", prices).
			Msg("Price discrepancy between verification methods")
	}

	return models.VerificationOutcome{
		Average:      &avg,
		Verified:     verified,
		Methods:      methods,
		Prices:       prices,
		MaxDeviation: maxDeviation,
	}
}

// nearestOpen returns the opening price of the bar whose date is closest
// to the target (minimum absolute difference).
func nearestOpen(bars []models.PriceBar, target time.Time) (float64, bool) {
	best := 0.0
	bestDiff := time.Duration(math.MaxInt64)
	found := false

	for _, bar := range bars {
		if bar.Open <= 0 {
			continue
		}
		diff := bar.Date.Sub(target)
		if diff < 0 {
			diff = -diff
		}
		if diff < bestDiff {
			bestDiff = diff
			best = bar.Open
			found = true
		}
	}
	return best, found
}
