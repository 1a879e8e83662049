// Package yahoo provides a client for the Yahoo Finance chart API
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/finlens/incomelens/internal/common"
	"github.com/finlens/incomelens/internal/interfaces"
	"github.com/finlens/incomelens/internal/models"
)

const (
	DefaultBaseURL   = "https://query1.finance.yahoo.com"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second, shared across all callers
)

// Client implements the QuoteProvider interface against the Yahoo Finance
// v8 chart API. A single Client instance is shared by all workers so the
// rate limiter bounds the aggregate request rate.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new Yahoo Finance client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents a provider API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("yahoo API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// chartResponse is the response envelope of the v8 chart API
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open  []*float64 `json:"open"`
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
			Events struct {
				Dividends map[string]struct {
					Amount float64 `json:"amount"`
					Date   int64   `json:"date"`
				} `json:"dividends"`
			} `json:"events"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// getChart performs a rate-limited GET against the chart endpoint
func (c *Client) getChart(ctx context.Context, variant string, params url.Values) (*chartResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	endpoint := fmt.Sprintf("/v8/finance/chart/%s", url.PathEscape(variant))
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	c.logger.Debug().Str("variant", variant).Str("endpoint", endpoint).Msg("Yahoo chart request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var chart chartResponse
	if jsonErr := json.Unmarshal(body, &chart); jsonErr != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, &APIError{StatusCode: resp.StatusCode, Message: string(body), Endpoint: endpoint}
		}
		return nil, fmt.Errorf("failed to decode response: %w", jsonErr)
	}

	if chart.Chart.Error != nil {
		// "Data doesn't exist" for a requested window is an empty series,
		// not a provider failure: resolvers widen the window on empty.
		if isNoDataError(chart.Chart.Error.Code, chart.Chart.Error.Description) {
			return &chartResponse{}, nil
		}
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("%s: %s", chart.Chart.Error.Code, chart.Chart.Error.Description),
			Endpoint:   endpoint,
		}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: string(body), Endpoint: endpoint}
	}

	return &chart, nil
}

func isNoDataError(code, description string) bool {
	desc := strings.ToLower(description)
	return strings.Contains(desc, "data doesn't exist") ||
		strings.Contains(desc, "no data found") ||
		strings.EqualFold(code, "Not Found")
}

// bars extracts non-null daily bars from a chart response, oldest first.
func bars(chart *chartResponse) []models.PriceBar {
	if len(chart.Chart.Result) == 0 {
		return nil
	}
	result := chart.Chart.Result[0]
	if len(result.Timestamp) == 0 || len(result.Indicators.Quote) == 0 {
		return nil
	}
	quote := result.Indicators.Quote[0]

	out := make([]models.PriceBar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		var open, close float64
		if i < len(quote.Open) && quote.Open[i] != nil {
			open = *quote.Open[i]
		}
		if i < len(quote.Close) && quote.Close[i] != nil {
			close = *quote.Close[i]
		}
		if open == 0 && close == 0 {
			continue // null bar (holiday etc.)
		}
		out = append(out, models.PriceBar{
			Date:  time.Unix(ts, 0).UTC(),
			Open:  open,
			Close: close,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// FetchHistory retrieves daily bars for the window [from, to).
// An empty slice with a nil error means the window has no trading data.
func (c *Client) FetchHistory(ctx context.Context, variant string, from, to time.Time) ([]models.PriceBar, error) {
	params := url.Values{}
	params.Set("period1", fmt.Sprintf("%d", from.Unix()))
	params.Set("period2", fmt.Sprintf("%d", to.Unix()))
	params.Set("interval", "1d")
	params.Set("includeAdjustedClose", "false")

	chart, err := c.getChart(ctx, variant, params)
	if err != nil {
		return nil, err
	}
	return bars(chart), nil
}

// FetchRecent retrieves daily bars for roughly the last lookbackDays trading days
func (c *Client) FetchRecent(ctx context.Context, variant string, lookbackDays int) ([]models.PriceBar, error) {
	if lookbackDays <= 0 {
		lookbackDays = 5
	}
	params := url.Values{}
	params.Set("range", fmt.Sprintf("%dd", lookbackDays))
	params.Set("interval", "1d")
	params.Set("includeAdjustedClose", "false")

	chart, err := c.getChart(ctx, variant, params)
	if err != nil {
		return nil, err
	}
	return bars(chart), nil
}

// FetchDividends retrieves the full dividend history for a variant, oldest first
func (c *Client) FetchDividends(ctx context.Context, variant string) ([]models.DividendRecord, error) {
	params := url.Values{}
	params.Set("range", "max")
	params.Set("interval", "1d")
	params.Set("events", "div")

	chart, err := c.getChart(ctx, variant, params)
	if err != nil {
		return nil, err
	}

	if len(chart.Chart.Result) == 0 {
		return nil, nil
	}

	events := chart.Chart.Result[0].Events.Dividends
	out := make([]models.DividendRecord, 0, len(events))
	for _, d := range events {
		if d.Amount <= 0 {
			continue
		}
		out = append(out, models.DividendRecord{
			ExDate: time.Unix(d.Date, 0).UTC(),
			Amount: d.Amount,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ExDate.Before(out[j].ExDate) })
	return out, nil
}

// FetchQuoteSnapshot retrieves the provider's live quote fields
func (c *Client) FetchQuoteSnapshot(ctx context.Context, variant string) (*models.QuoteSnapshot, error) {
	params := url.Values{}
	params.Set("range", "1d")
	params.Set("interval", "1d")

	chart, err := c.getChart(ctx, variant, params)
	if err != nil {
		return nil, err
	}

	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("no quote snapshot for %s", variant)
	}

	return &models.QuoteSnapshot{
		RegularMarketPrice: chart.Chart.Result[0].Meta.RegularMarketPrice,
	}, nil
}

// Ensure Client implements QuoteProvider
var _ interfaces.QuoteProvider = (*Client)(nil)
