// Package alphavantage provides a client for the Alpha Vantage API
package alphavantage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/silvamenu/momoney/internal/common"
	"github.com/silvamenu/momoney/internal/interfaces"
	"github.com/silvamenu/momoney/internal/models"
)

const (
	DefaultBaseURL   = "https://www.alphavantage.co"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per minute (free-tier quota)
)

// Sentinel errors translated into HTTP statuses by the server layer.
var (
	// ErrRateLimited is returned when the provider answers with its
	// "Note" throttling payload instead of quote data.
	ErrRateLimited = errors.New("alphavantage: rate limit reached")

	// ErrSymbolNotFound is returned when the provider has no quote for
	// the requested symbol.
	ErrSymbolNotFound = errors.New("alphavantage: symbol not found")
)

// Client implements the QuoteProvider interface
type Client struct {
	baseURL    string
	apiKey     string
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

// WithRateLimit sets the rate limit in requests per minute
func WithRateLimit(requestsPerMinute int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), 1)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new Alpha Vantage client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(float64(DefaultRateLimit)/60.0), 1),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Alpha Vantage API error: %s (status: %d)", e.Message, e.StatusCode)
}

// globalQuoteResponse mirrors the GLOBAL_QUOTE payload. Every numeric field
// arrives as a string; "Note" replaces "Global Quote" when throttled.
type globalQuoteResponse struct {
	GlobalQuote  map[string]string `json:"Global Quote"`
	Note         string            `json:"Note"`
	Information  string            `json:"Information"`
	ErrorMessage string            `json:"Error Message"`
}

// GetGlobalQuote retrieves the latest quote snapshot for a symbol.
func (c *Client) GetGlobalQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("function", "GLOBAL_QUOTE")
	params.Set("symbol", symbol)
	params.Set("apikey", c.apiKey)

	reqURL := fmt.Sprintf("%s/query?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("symbol", symbol).Msg("Alpha Vantage quote request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &APIError{StatusCode: resp.StatusCode, Message: string(body)}
	}

	var payload globalQuoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	// The API signals throttling with a 200 and a "Note"/"Information" body.
	if payload.Note != "" || payload.Information != "" {
		return nil, ErrRateLimited
	}
	if payload.ErrorMessage != "" {
		return nil, ErrSymbolNotFound
	}
	if len(payload.GlobalQuote) == 0 || payload.GlobalQuote["01. symbol"] == "" {
		return nil, ErrSymbolNotFound
	}

	q := payload.GlobalQuote
	quote := &models.Quote{
		Symbol:           q["01. symbol"],
		Open:             parseFloat(q["02. open"]),
		High:             parseFloat(q["03. high"]),
		Low:              parseFloat(q["04. low"]),
		Price:            parseFloat(q["05. price"]),
		Volume:           parseInt(q["06. volume"]),
		LatestTradingDay: q["07. latest trading day"],
		PreviousClose:    parseFloat(q["08. previous close"]),
		Change:           parseFloat(q["09. change"]),
		ChangePercent:    parsePercent(q["10. change percent"]),
	}

	return quote, nil
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

func parseInt(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// parsePercent parses values like "1.2345%" into 1.2345.
func parsePercent(s string) float64 {
	return parseFloat(strings.TrimSuffix(strings.TrimSpace(s), "%"))
}

// Ensure Client implements QuoteProvider
var _ interfaces.QuoteProvider = (*Client)(nil)
