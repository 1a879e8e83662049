// Package report renders batch results as a console table and a sortable
// HTML report.
package report

import (
	"fmt"
	"os"

	"github.com/finlens/incomelens/internal/common"
	"github.com/finlens/incomelens/internal/interfaces"
	"github.com/finlens/incomelens/internal/models"
)

// Service implements ReportService
type Service struct {
	config *common.Config
	logger *common.Logger
}

// NewService creates a new report service
func NewService(config *common.Config, logger *common.Logger) *Service {
	return &Service{
		config: config,
		logger: logger,
	}
}

// SaveHTML renders the HTML report and writes it to the configured output
// path. Returns the path written.
func (s *Service) SaveHTML(result *models.BatchResult) (string, error) {
	html, err := s.RenderHTML(result)
	if err != nil {
		return "", err
	}

	path := s.config.Report.OutputPath
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return "", fmt.Errorf("failed to write report %s: %w", path, err)
	}

	s.logger.Info().Str("path", path).Msg("HTML report generated")
	return path, nil
}

// Ensure Service implements ReportService
var _ interfaces.ReportService = (*Service)(nil)
