// Package interfaces defines service contracts for incomelens
package interfaces

import (
	"context"
	"io"

	"github.com/finlens/incomelens/internal/models"
)

// AnalysisService runs the income-investing portfolio analysis
type AnalysisService interface {
	// Run processes every configured symbol and returns the batch result.
	// Individual symbol failures never abort the batch.
	Run(ctx context.Context) (*models.BatchResult, error)
}

// ReportService renders batch results for human consumption
type ReportService interface {
	// RenderConsole writes the full console report to w
	RenderConsole(w io.Writer, result *models.BatchResult) error

	// RenderHTML generates the sortable HTML report
	RenderHTML(result *models.BatchResult) (string, error)

	// SaveHTML renders the HTML report and writes it to the configured path
	SaveHTML(result *models.BatchResult) (string, error)
}
