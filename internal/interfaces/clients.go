// Package interfaces defines service contracts for incomelens
package interfaces

import (
	"context"
	"time"

	"github.com/finlens/incomelens/internal/models"
)

// QuoteProvider provides access to a market-data source. Implementations
// return time-ordered series (oldest first). All errors are opaque and
// non-fatal to callers: resolution code treats any error as "try the next
// variant or method".
type QuoteProvider interface {
	// FetchHistory retrieves daily bars for the window [from, to)
	FetchHistory(ctx context.Context, variant string, from, to time.Time) ([]models.PriceBar, error)

	// FetchRecent retrieves daily bars for roughly the last lookbackDays trading days
	FetchRecent(ctx context.Context, variant string, lookbackDays int) ([]models.PriceBar, error)

	// FetchDividends retrieves the full dividend history for a variant
	FetchDividends(ctx context.Context, variant string) ([]models.DividendRecord, error)

	// FetchQuoteSnapshot retrieves the provider's live quote fields
	FetchQuoteSnapshot(ctx context.Context, variant string) (*models.QuoteSnapshot, error)
}
