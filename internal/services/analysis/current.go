package analysis

import (
	"context"

	"github.com/finlens/incomelens/internal/models"
)

// recentLookbackDays is the window requested for current-price resolution.
const recentLookbackDays = 5

// resolveCurrent finds the most recent closing price for a symbol, trying
// ticker variants in order. Each variant first asks for the last few
// trading days and takes the closing price of the last row; when that
// yields nothing, the live quote snapshot is consulted and its regular
// market price accepted without a date. Per-variant errors are non-fatal.
func (s *Service) resolveCurrent(ctx context.Context, symbol string) (*models.PriceQuote, error) {
	lastErr := "no current price data"

	for _, variant := range ExpandVariants(symbol, s.isNEO(symbol)) {
		bars, err := s.provider.FetchRecent(ctx, variant, recentLookbackDays)
		if err != nil {
			s.logger.Warn().Err(err).Str("symbol", symbol).Str("variant", variant).Msg("Recent price lookup failed")
			lastErr = err.Error()
		} else if len(bars) > 0 {
			last := bars[len(bars)-1]
			if last.Close > 0 {
				s.logger.Debug().
					Str("symbol", symbol).
					Str("variant", variant).
					Float64("price", last.Close).
					Msg("Resolved current price")
				return &models.PriceQuote{
					Price:    last.Close,
					AsOfDate: last.Date,
					Variant:  variant,
					Method:   models.MethodRecentClose,
				}, nil
			}
		}

		snapshot, err := s.provider.FetchQuoteSnapshot(ctx, variant)
		if err != nil {
			s.logger.Warn().Err(err).Str("symbol", symbol).Str("variant", variant).Msg("Quote snapshot lookup failed")
			lastErr = err.Error()
			continue
		}
		if snapshot != nil && snapshot.RegularMarketPrice > 0 {
			s.logger.Debug().
				Str("symbol", symbol).
				Str("variant", variant).
				Float64("price", snapshot.RegularMarketPrice).
				Msg("Resolved current price from quote snapshot")
			return &models.PriceQuote{
				Price:   snapshot.RegularMarketPrice,
				Variant: variant,
				Method:  models.MethodQuoteSnapshot,
			}, nil
		}
	}

	return nil, &ResolutionFailure{Symbol: symbol, Op: "current price", Reason: lastErr}
}
