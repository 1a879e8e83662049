package analysis

import (
	"context"
	"time"

	"github.com/finlens/incomelens/internal/models"
)

const (
	// preferredWindowDays bounds the forward search from the preferred
	// purchase date before falling back to the earliest-available strategy.
	preferredWindowDays = 5

	// lookbackDays bounds the widened earliest-available search window.
	lookbackDays = 90
)

// resolveHistorical finds the opening price nearest to the preferred date,
// trying each ticker variant in order. When the preferred window has no
// trading data the search widens to [pre{-90d}, today] and takes the first
// available trading day, always flagged as a fallback. The first variant
// that yields a price wins; per-variant provider errors are non-fatal.
func (s *Service) resolveHistorical(ctx context.Context, symbol string, preferred time.Time) (*models.PriceQuote, error) {
	lastErr := "no data available"

	for _, variant := range ExpandVariants(symbol, s.isNEO(symbol)) {
		bars, err := s.provider.FetchHistory(ctx, variant, preferred, preferred.AddDate(0, 0, preferredWindowDays))
		if err != nil {
			s.logger.Warn().Err(err).Str("symbol", symbol).Str("variant", variant).Msg("Historical price lookup failed")
			lastErr = err.Error()
			continue
		}

		if quote := firstOpen(bars, variant, models.MethodHistoryPreferredDate); quote != nil {
			quote.Fallback = !sameDay(quote.AsOfDate, preferred)
			s.logger.Debug().
				Str("symbol", symbol).
				Str("variant", variant).
				Float64("price", quote.Price).
				Bool("fallback", quote.Fallback).
				Msg("Resolved historical price")
			return quote, nil
		}

		// Preferred window empty: widen to the earliest available trading
		// day, e.g. a fund that launched after the reference date.
		wide, err := s.provider.FetchHistory(ctx, variant, preferred.AddDate(0, 0, -lookbackDays), s.now())
		if err != nil {
			s.logger.Warn().Err(err).Str("symbol", symbol).Str("variant", variant).Msg("Widened historical lookup failed")
			lastErr = err.Error()
			continue
		}

		if quote := firstOpen(wide, variant, models.MethodHistoryEarliestAvailable); quote != nil {
			quote.Fallback = true
			s.logger.Debug().
				Str("symbol", symbol).
				Str("variant", variant).
				Float64("price", quote.Price).
				Str("actual_date", quote.AsOfDate.Format("2006-01-02")).
				Msg("Resolved historical price from earliest available date")
			return quote, nil
		}
	}

	return nil, &ResolutionFailure{Symbol: symbol, Op: "historical price", Reason: lastErr}
}

// firstOpen builds a quote from the opening price of the first trading day
// in a series, or nil when the series has no usable open.
func firstOpen(bars []models.PriceBar, variant string, method models.SourceMethod) *models.PriceQuote {
	for _, bar := range bars {
		if bar.Open <= 0 {
			continue
		}
		return &models.PriceQuote{
			Price:    bar.Open,
			AsOfDate: bar.Date,
			Variant:  variant,
			Method:   method,
		}
	}
	return nil
}
