// Package analysis implements the multi-source price and dividend
// resolution pipeline behind the income-investing portfolio snapshot.
package analysis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/finlens/incomelens/internal/common"
	"github.com/finlens/incomelens/internal/interfaces"
	"github.com/finlens/incomelens/internal/models"
)

// Service implements AnalysisService. Each symbol is processed
// independently; failures are contained at the symbol boundary and never
// abort the batch.
type Service struct {
	provider    interfaces.QuoteProvider
	logger      *common.Logger
	symbols     []string
	neoSymbols  map[string]bool
	investment  float64
	startDate   time.Time
	concurrency int
	now         func() time.Time // injectable clock for testing
}

// NewService creates a new analysis service from the loaded configuration.
func NewService(provider interfaces.QuoteProvider, config *common.Config, logger *common.Logger) (*Service, error) {
	startDate, err := config.GetStartDate()
	if err != nil {
		return nil, err
	}

	neo := make(map[string]bool, len(config.NEOExchangeSymbols))
	for _, s := range config.NEOExchangeSymbols {
		neo[s] = true
	}

	concurrency := config.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	return &Service{
		provider:    provider,
		logger:      logger,
		symbols:     config.Symbols,
		neoSymbols:  neo,
		investment:  config.InvestmentPerSymbol,
		startDate:   startDate,
		concurrency: concurrency,
		now:         time.Now,
	}, nil
}

func (s *Service) isNEO(symbol string) bool {
	return s.neoSymbols[symbol]
}

// ResolutionFailure signals that every variant and method was exhausted
// for one resolution step. Reason carries the last provider error message.
type ResolutionFailure struct {
	Symbol string
	Op     string
	Reason string
}

func (e *ResolutionFailure) Error() string {
	return fmt.Sprintf("%s resolution failed for %s: %s", e.Op, e.Symbol, e.Reason)
}

// sameDay reports whether two timestamps fall on the same UTC calendar day.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// dateOnly truncates a timestamp to its UTC calendar day. Provider
// timestamps may carry exchange-local offsets; comparisons over holding
// periods are done on calendar days only.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Run processes every configured symbol through a bounded worker pool and
// returns the ordered, partitioned batch result.
func (s *Service) Run(ctx context.Context) (*models.BatchResult, error) {
	endDate := dateOnly(s.now())

	s.logger.Info().
		Int("symbols", len(s.symbols)).
		Str("start_date", s.startDate.Format(common.DateLayout)).
		Float64("investment", s.investment).
		Int("concurrency", s.concurrency).
		Msg("Starting portfolio analysis")

	records := make([]models.PortfolioRecord, len(s.symbols))
	verifications := make([]models.SymbolVerification, len(s.symbols))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < s.concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				// Each worker writes only to its own index, so no
				// shared accumulator is needed.
				records[i], verifications[i] = s.processSymbol(ctx, s.symbols[i], endDate)
			}
		}()
	}
	for i := range s.symbols {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	result := &models.BatchResult{
		RunID:         uuid.NewString(),
		GeneratedAt:   s.now(),
		Records:       records,
		Verifications: verifications,
	}
	for _, rec := range records {
		if rec.Status.Working() {
			result.Working = append(result.Working, rec)
		} else {
			result.Failed = append(result.Failed, rec)
		}
	}

	s.logger.Info().
		Int("working", len(result.Working)).
		Int("failed", len(result.Failed)).
		Int("verified", result.VerifiedCount()).
		Msg("Portfolio analysis complete")

	return result, nil
}

// Ensure Service implements AnalysisService
var _ interfaces.AnalysisService = (*Service)(nil)
