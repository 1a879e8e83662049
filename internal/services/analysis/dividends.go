package analysis

import (
	"context"
	"time"

	"github.com/finlens/incomelens/internal/models"
)

// collectDividends sums per-share dividends with ex-dates inside the
// inclusive holding window [periodStart, periodEnd], scaled by shares
// owned. The first ticker variant returning any dividend history is used;
// later variants are never consulted even if they might differ. A zero
// summary covers both "no dividends in the window" and "no history from
// any variant".
func (s *Service) collectDividends(ctx context.Context, symbol string, periodStart, periodEnd time.Time, sharesOwned float64) models.DividendSummary {
	var history []models.DividendRecord

	for _, variant := range ExpandVariants(symbol, s.isNEO(symbol)) {
		dividends, err := s.provider.FetchDividends(ctx, variant)
		if err != nil {
			s.logger.Warn().Err(err).Str("symbol", symbol).Str("variant", variant).Msg("Dividend history lookup failed")
			continue
		}
		if len(dividends) > 0 {
			history = dividends
			break
		}
	}

	if len(history) == 0 {
		s.logger.Debug().Str("symbol", symbol).Msg("No dividend history found")
		return models.DividendSummary{}
	}

	// Provider ex-dates may carry exchange-local offsets; compare on
	// calendar days so boundary payments stay inside the window.
	start := dateOnly(periodStart)
	end := dateOnly(periodEnd)

	perShare := 0.0
	count := 0
	for _, d := range history {
		exDay := dateOnly(d.ExDate)
		if exDay.Before(start) || exDay.After(end) {
			continue
		}
		perShare += d.Amount
		count++
	}

	if count == 0 {
		s.logger.Debug().Str("symbol", symbol).Msg("No dividends in holding period")
		return models.DividendSummary{}
	}

	total := perShare * sharesOwned
	s.logger.Debug().
		Str("symbol", symbol).
		Int("payments", count).
		Float64("total", total).
		Msg("Dividends collected for period")

	return models.DividendSummary{
		TotalCollected: total,
		PaymentCount:   count,
	}
}
