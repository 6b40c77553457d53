package alphavantage

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validQuoteBody = `{
	"Global Quote": {
		"01. symbol": "AAPL",
		"02. open": "228.50",
		"03. high": "231.00",
		"04. low": "227.10",
		"05. price": "230.49",
		"06. volume": "44923941",
		"07. latest trading day": "2026-08-28",
		"08. previous close": "229.00",
		"09. change": "1.49",
		"10. change percent": "0.6507%"
	}
}`

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	client := NewClient("test-key",
		WithBaseURL(srv.URL),
		WithRateLimit(6000), // effectively unthrottled for tests
	)
	return client, srv
}

func TestGetGlobalQuote_ParsesStringNumbers(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GLOBAL_QUOTE", r.URL.Query().Get("function"))
		assert.Equal(t, "AAPL", r.URL.Query().Get("symbol"))
		assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))
		w.Write([]byte(validQuoteBody))
	})
	defer srv.Close()

	quote, err := client.GetGlobalQuote(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", quote.Symbol)
	assert.Equal(t, 230.49, quote.Price)
	assert.Equal(t, 1.49, quote.Change)
	assert.Equal(t, 0.6507, quote.ChangePercent)
	assert.Equal(t, int64(44923941), quote.Volume)
	assert.Equal(t, "2026-08-28", quote.LatestTradingDay)
	assert.Equal(t, 229.00, quote.PreviousClose)
	assert.Equal(t, 228.50, quote.Open)
	assert.Equal(t, 231.00, quote.High)
	assert.Equal(t, 227.10, quote.Low)
}

func TestGetGlobalQuote_NoteMeansRateLimited(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Note": "Thank you for using Alpha Vantage! Our standard API rate limit is 25 requests per day."}`))
	})
	defer srv.Close()

	_, err := client.GetGlobalQuote(context.Background(), "AAPL")
	assert.True(t, errors.Is(err, ErrRateLimited))
}

func TestGetGlobalQuote_EmptyQuoteMeansNotFound(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Global Quote": {}}`))
	})
	defer srv.Close()

	_, err := client.GetGlobalQuote(context.Background(), "NOPE")
	assert.True(t, errors.Is(err, ErrSymbolNotFound))
}

func TestGetGlobalQuote_HTTP429(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	defer srv.Close()

	_, err := client.GetGlobalQuote(context.Background(), "AAPL")
	assert.True(t, errors.Is(err, ErrRateLimited))
}

func TestGetGlobalQuote_ServerError(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("upstream broke"))
	})
	defer srv.Close()

	_, err := client.GetGlobalQuote(context.Background(), "AAPL")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}
