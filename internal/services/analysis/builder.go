package analysis

import (
	"context"
	"time"

	"github.com/finlens/incomelens/internal/common"
	"github.com/finlens/incomelens/internal/models"
)

// processSymbol produces exactly one record per symbol, whatever happens.
// The primary path is the historical resolver; on a hard failure the
// cross-validation verifier supplies a degraded record. Panics are
// contained here so one symbol can never abort the batch.
func (s *Service) processSymbol(ctx context.Context, symbol string, endDate time.Time) (rec models.PortfolioRecord, ver models.SymbolVerification) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Str("symbol", symbol).Interface("panic", r).Msg("Unexpected error processing symbol")
			rec = zeroRecord(symbol, models.StatusError)
			ver = models.SymbolVerification{
				Symbol:  symbol,
				Outcome: models.VerificationOutcome{Err: "unexpected processing error"},
			}
		}
	}()

	quote, err := s.resolveHistorical(ctx, symbol, s.startDate)
	if err != nil {
		s.logger.Warn().Err(err).Str("symbol", symbol).Msg("No data from primary source, trying alternative")
		return s.buildFromVerifier(ctx, symbol)
	}

	rec = s.buildFullRecord(ctx, symbol, quote, endDate)
	ver = models.SymbolVerification{
		Symbol:    symbol,
		MainPrice: rec.InitialPrice,
		Outcome:   models.VerificationOutcome{Verified: true},
	}
	return rec, ver
}

// buildFullRecord computes the complete record for a symbol whose initial
// price resolved. A current-price failure zeroes the value and gain fields
// but does not demote the record to failed.
func (s *Service) buildFullRecord(ctx context.Context, symbol string, quote *models.PriceQuote, endDate time.Time) models.PortfolioRecord {
	shares := s.investment / quote.Price

	var currentPrice, currentValue, gainLoss, gainLossPct float64
	current, curErr := s.resolveCurrent(ctx, symbol)
	if curErr != nil {
		s.logger.Warn().Err(curErr).Str("symbol", symbol).Msg("Could not get current price")
	} else {
		currentPrice = current.Price
		currentValue = shares * currentPrice
		gainLoss = currentValue - s.investment
		if s.investment > 0 {
			gainLossPct = (gainLoss / s.investment) * 100
		}
	}

	// The dividend window starts at the actual resolved purchase date,
	// not the originally preferred one.
	dividends := s.collectDividends(ctx, symbol, quote.AsOfDate, endDate, shares)

	totalReturn := gainLoss + dividends.TotalCollected
	totalReturnPct := 0.0
	if curErr == nil && s.investment > 0 {
		totalReturnPct = (totalReturn / s.investment) * 100
	}

	display := symbol
	if quote.Fallback {
		display = symbol + "**"
	}

	return models.PortfolioRecord{
		Symbol:             symbol,
		DisplaySymbol:      display,
		InitialPrice:       common.Round2(quote.Price),
		SharesPurchased:    common.Round2(shares),
		CurrentPrice:       common.Round2(currentPrice),
		CurrentValue:       common.Round2(currentValue),
		DividendsCollected: common.Round2(dividends.TotalCollected),
		DividendCount:      dividends.PaymentCount,
		GainLoss:           common.Round2(gainLoss),
		GainLossPct:        common.Round1(gainLossPct),
		TotalReturn:        common.Round2(totalReturn),
		TotalReturnPct:     common.Round1(totalReturnPct),
		Status:             models.StatusVerified,
		IsFallbackDate:     quote.Fallback,
		ActualStartDate:    quote.AsOfDate,
	}
}

// buildFromVerifier synthesizes a degraded record from the verifier's
// average price: shares are computed but current price, value, dividends,
// and gain/loss stay zero.
func (s *Service) buildFromVerifier(ctx context.Context, symbol string) (models.PortfolioRecord, models.SymbolVerification) {
	outcome := s.verify(ctx, symbol, s.startDate)

	if outcome.Average == nil {
		s.logger.Warn().Str("symbol", symbol).Msg("No data available from any source")
		if outcome.Err == "" {
			outcome.Err = "no data available from any source"
		}
		return zeroRecord(symbol, models.StatusNoData), models.SymbolVerification{
			Symbol:  symbol,
			Outcome: outcome,
		}
	}

	initialPrice := *outcome.Average
	shares := s.investment / initialPrice

	status := models.StatusAltSource
	if outcome.Verified {
		status = models.StatusVerified
	}
	s.logger.Info().
		Str("symbol", symbol).
		Str("status", string(status)).
		Float64("price", initialPrice).
		Msg("Alternative source provided initial price")

	rec := zeroRecord(symbol, status)
	rec.InitialPrice = common.Round2(initialPrice)
	rec.SharesPurchased = common.Round2(shares)

	return rec, models.SymbolVerification{
		Symbol:    symbol,
		MainPrice: initialPrice,
		Outcome:   outcome,
	}
}

// zeroRecord builds a record with all financial fields zeroed.
func zeroRecord(symbol string, status models.VerificationStatus) models.PortfolioRecord {
	return models.PortfolioRecord{
		Symbol:        symbol,
		DisplaySymbol: symbol,
		Status:        status,
	}
}
