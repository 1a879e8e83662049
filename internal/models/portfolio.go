// Package models defines data structures for incomelens
package models

import (
	"time"
)

// VerificationStatus classifies how a record's initial price was obtained
type VerificationStatus string

const (
	StatusVerified  VerificationStatus = "VERIFIED"   // primary path, or cross-validated within tolerance
	StatusAltSource VerificationStatus = "ALT SOURCE" // single alternate source, not cross-validated
	StatusNoData    VerificationStatus = "NO DATA"    // no usable price from any source
	StatusError     VerificationStatus = "ERROR"      // unexpected failure processing the symbol
)

// Working reports whether a record with this status counts toward the
// working partition of the batch.
func (s VerificationStatus) Working() bool {
	return s != StatusNoData && s != StatusError
}

// VerificationOutcome is the result of cross-validating a price against
// independent retrieval methods. Average is nil when every method failed.
type VerificationOutcome struct {
	Average      *float64  `json:"average,omitempty"`
	Verified     bool      `json:"verified"`
	Methods      []string  `json:"methods,omitempty"` // method identifiers in collection order
	Prices       []float64 `json:"prices,omitempty"`
	MaxDeviation float64   `json:"max_deviation,omitempty"` // max |price-avg|/avg across collected prices
	Err          string    `json:"error,omitempty"`
}

// PortfolioRecord is the per-symbol output of the analysis. Created once
// per run and never mutated after construction. Money fields are rounded
// to 2 decimals and percentages to 1 decimal at construction.
type PortfolioRecord struct {
	Symbol             string             `json:"symbol"`
	DisplaySymbol      string             `json:"display_symbol"` // symbol plus "**" when a fallback launch date was used
	InitialPrice       float64            `json:"initial_price"`
	SharesPurchased    float64            `json:"shares_purchased"`
	CurrentPrice       float64            `json:"current_price"`
	CurrentValue       float64            `json:"current_value"`
	DividendsCollected float64            `json:"dividends_collected"`
	DividendCount      int                `json:"dividend_count"`
	GainLoss           float64            `json:"gain_loss"`
	GainLossPct        float64            `json:"gain_loss_pct"`
	TotalReturn        float64            `json:"total_return"`
	TotalReturnPct     float64            `json:"total_return_pct"`
	Status             VerificationStatus `json:"status"`
	IsFallbackDate     bool               `json:"is_fallback_date"`
	ActualStartDate    time.Time          `json:"actual_start_date,omitempty"`
}

// SymbolVerification pairs a symbol with its verification outcome for the
// batch verification summary.
type SymbolVerification struct {
	Symbol    string              `json:"symbol"`
	MainPrice float64             `json:"main_price"`
	Outcome   VerificationOutcome `json:"outcome"`
}

// BatchResult holds the outcome of one full analysis run. Records preserve
// the configured symbol order; Working and Failed partition Records by
// status and together always cover every symbol attempted.
type BatchResult struct {
	RunID         string               `json:"run_id"`
	GeneratedAt   time.Time            `json:"generated_at"`
	Records       []PortfolioRecord    `json:"records"`
	Working       []PortfolioRecord    `json:"working"`
	Failed        []PortfolioRecord    `json:"failed"`
	Verifications []SymbolVerification `json:"verifications"`
}

// VerifiedCount returns how many symbols had a fully verified price.
func (r *BatchResult) VerifiedCount() int {
	n := 0
	for _, v := range r.Verifications {
		if v.Outcome.Verified {
			n++
		}
	}
	return n
}

// Unverified returns the verification entries that were not fully verified.
func (r *BatchResult) Unverified() []SymbolVerification {
	var out []SymbolVerification
	for _, v := range r.Verifications {
		if !v.Outcome.Verified {
			out = append(out, v)
		}
	}
	return out
}
