package models

import (
	"time"
)

// PriceBar represents a single trading day's price data
type PriceBar struct {
	Date  time.Time `json:"date"`
	Open  float64   `json:"open"`
	Close float64   `json:"close"`
}

// DividendRecord represents a single dividend payment
type DividendRecord struct {
	ExDate time.Time `json:"ex_date"`
	Amount float64   `json:"amount"` // per-share amount, never negative
}

// QuoteSnapshot holds the provider's live quote fields. Only the regular
// market price is consumed; a zero price means the snapshot is unusable.
type QuoteSnapshot struct {
	RegularMarketPrice float64 `json:"regular_market_price"`
}

// SourceMethod identifies the retrieval method that produced a price quote
type SourceMethod string

const (
	MethodHistoryPreferredDate     SourceMethod = "history_preferred_date"
	MethodHistoryEarliestAvailable SourceMethod = "history_earliest_available"
	MethodRecentClose              SourceMethod = "recent_close"
	MethodQuoteSnapshot            SourceMethod = "quote_snapshot"
)

// PriceQuote is the result of a successful price resolution.
// Price is always positive; AsOfDate may be zero when the price came from
// a live quote snapshot with no associated trading day.
type PriceQuote struct {
	Price    float64      `json:"price"`
	AsOfDate time.Time    `json:"as_of_date"`
	Variant  string       `json:"variant"` // ticker variant that produced the quote
	Method   SourceMethod `json:"method"`
	Fallback bool         `json:"fallback"` // resolved date differs from the preferred date
}

// DividendSummary aggregates dividends collected over a holding period.
// A zero summary means either no dividends in the window or no dividend
// history from any variant; the two are not distinguished.
type DividendSummary struct {
	TotalCollected float64 `json:"total_collected"` // per-share sum times shares owned
	PaymentCount   int     `json:"payment_count"`
}
