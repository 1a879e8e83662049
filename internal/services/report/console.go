package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/finlens/incomelens/internal/common"
	"github.com/finlens/incomelens/internal/models"
)

// portfolioTotals aggregates the working records for the summary sections.
type portfolioTotals struct {
	InitialInvestment float64
	CurrentValue      float64
	Dividends         float64
	GainLoss          float64
	GainLossPct       float64
	TotalReturn       float64
	TotalReturnPct    float64
}

func computeTotals(working []models.PortfolioRecord, investmentPerSymbol float64) portfolioTotals {
	t := portfolioTotals{
		InitialInvestment: float64(len(working)) * investmentPerSymbol,
	}
	for _, rec := range working {
		t.CurrentValue += rec.CurrentValue
		t.Dividends += rec.DividendsCollected
	}
	t.GainLoss = t.CurrentValue - t.InitialInvestment
	t.TotalReturn = t.CurrentValue + t.Dividends - t.InitialInvestment
	if t.InitialInvestment > 0 {
		t.GainLossPct = (t.GainLoss / t.InitialInvestment) * 100
		t.TotalReturnPct = (t.TotalReturn / t.InitialInvestment) * 100
	}
	return t
}

// RenderConsole writes the working table, failed table, verification
// summary, and portfolio summary to w.
func (s *Service) RenderConsole(w io.Writer, result *models.BatchResult) error {
	rule := strings.Repeat("=", 60)

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "INCOME INVESTING - INITIAL PURCHASE ANALYSIS")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Reference Date: %s (Raw Market Prices - Not Dividend Adjusted)\n", s.config.StartDate)
	fmt.Fprintf(w, "Investment Amount: %s per symbol\n", common.FormatMoney(s.config.InvestmentPerSymbol))
	fmt.Fprintln(w, rule)

	if len(result.Working) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%-8s %15s %10s %15s %18s %12s %12s %8s %14s %10s  %s\n",
			"Symbol", "Initial Price", "Shares", "Current Price", "Current Value",
			"Dividends", "Gain/Loss", "G/L %", "Total Return", "Return %", "Verified")
		fmt.Fprintln(w, strings.Repeat("-", 150))

		for _, rec := range result.Working {
			fmt.Fprintf(w, "%-8s %15.2f %10.2f %15.2f %18.2f %12.2f %12.2f %8.1f %14.2f %10.1f  %s\n",
				rec.DisplaySymbol, rec.InitialPrice, rec.SharesPurchased,
				rec.CurrentPrice, rec.CurrentValue, rec.DividendsCollected,
				rec.GainLoss, rec.GainLossPct, rec.TotalReturn, rec.TotalReturnPct,
				rec.Status)
		}
	}

	if len(result.Failed) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, rule)
		fmt.Fprintln(w, "FAILED SYMBOLS (No Data Available)")
		fmt.Fprintln(w, rule)
		for _, rec := range result.Failed {
			fmt.Fprintf(w, "  %-8s %s\n", rec.Symbol, rec.Status)
		}
	}

	s.renderVerificationSummary(w, result, rule)
	s.renderPortfolioSummary(w, result, rule)

	return nil
}

func (s *Service) renderVerificationSummary(w io.Writer, result *models.BatchResult, rule string) {
	total := len(result.Verifications)
	if total == 0 {
		return
	}
	verified := result.VerifiedCount()

	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "VERIFICATION SUMMARY")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Prices Verified: %d/%d symbols\n", verified, total)
	fmt.Fprintf(w, "Verification Rate: %.1f%%\n", float64(verified)/float64(total)*100)

	unverified := result.Unverified()
	if len(unverified) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Unverified symbols:")
		for _, v := range unverified {
			reason := v.Outcome.Err
			if reason == "" {
				reason = "alternative source used"
			}
			fmt.Fprintf(w, "  %s: %s - %s\n", v.Symbol, common.FormatMoney(v.MainPrice), reason)
		}
	}
}

func (s *Service) renderPortfolioSummary(w io.Writer, result *models.BatchResult, rule string) {
	if len(result.Working) == 0 {
		return
	}

	t := computeTotals(result.Working, s.config.InvestmentPerSymbol)

	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "PORTFOLIO SUMMARY")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Working Symbols: %d/%d\n", len(result.Working), len(result.Records))
	fmt.Fprintf(w, "Total Initial Investment: %s\n", common.FormatMoney(t.InitialInvestment))
	fmt.Fprintf(w, "Total Current Value: %s\n", common.FormatMoney(t.CurrentValue))
	fmt.Fprintf(w, "Total Dividends Collected: %s\n", common.FormatMoney(t.Dividends))
	fmt.Fprintf(w, "Total Gain/Loss (Price Only): %s (%s)\n", common.FormatMoney(t.GainLoss), common.FormatSignedPct(t.GainLossPct))
	fmt.Fprintf(w, "Total Return (Price + Dividends): %s (%s)\n", common.FormatMoney(t.TotalReturn), common.FormatSignedPct(t.TotalReturnPct))

	best, worst, topDividend := performers(result.Working)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Best Price Performer: %s (%s)\n", best.Symbol, common.FormatSignedPct(best.GainLossPct))
	fmt.Fprintf(w, "Worst Price Performer: %s (%s)\n", worst.Symbol, common.FormatSignedPct(worst.GainLossPct))
	fmt.Fprintf(w, "Highest Dividend Payer: %s (%s)\n", topDividend.Symbol, common.FormatMoney(topDividend.DividendsCollected))
}

// performers picks the best and worst records by gain/loss percent and the
// record with the highest dividends collected.
func performers(working []models.PortfolioRecord) (best, worst, topDividend models.PortfolioRecord) {
	best, worst, topDividend = working[0], working[0], working[0]
	for _, rec := range working[1:] {
		if rec.GainLossPct > best.GainLossPct {
			best = rec
		}
		if rec.GainLossPct < worst.GainLossPct {
			worst = rec
		}
		if rec.DividendsCollected > topDividend.DividendsCollected {
			topDividend = rec
		}
	}
	return best, worst, topDividend
}
