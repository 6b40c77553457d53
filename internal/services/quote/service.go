package quote

import (
	"context"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/silvamenu/momoney/internal/common"
	"github.com/silvamenu/momoney/internal/interfaces"
	"github.com/silvamenu/momoney/internal/models"
)

// DefaultBatchLimit caps how many symbols a single batch will fetch from
// the provider. Symbols beyond the cap silently return no data this cycle;
// the next request retries them once earlier entries are fresh.
const DefaultBatchLimit = 5

// DefaultFetchInterval paces sequential provider calls within a batch.
const DefaultFetchInterval = time.Second

// Service implements QuoteService on top of a shared Cache and an external
// quote provider.
type Service struct {
	provider   interfaces.QuoteProvider
	cache      *Cache
	logger     *common.Logger
	batchLimit int
	limiter    *rate.Limiter
}

// ServiceOption configures the service.
type ServiceOption func(*Service)

// WithBatchLimit sets the per-batch fetch cap.
func WithBatchLimit(n int) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.batchLimit = n
		}
	}
}

// WithFetchInterval sets the pacing between provider calls. Zero disables
// pacing (used in tests).
func WithFetchInterval(d time.Duration) ServiceOption {
	return func(s *Service) {
		if d <= 0 {
			s.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		s.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

// NewService creates a quote service. The cache is owned by the caller so
// multiple consumers can share one symbol→quote mapping.
func NewService(provider interfaces.QuoteProvider, cache *Cache, logger *common.Logger, opts ...ServiceOption) *Service {
	s := &Service{
		provider:   provider,
		cache:      cache,
		logger:     logger,
		batchLimit: DefaultBatchLimit,
		limiter:    rate.NewLimiter(rate.Every(DefaultFetchInterval), 1),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// GetQuote retrieves a single quote, serving from fresh cache when possible.
// Provider errors pass through unwrapped so the server layer can translate
// rate-limit and not-found conditions into their status codes.
func (s *Service) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	symbol = strings.TrimSpace(symbol)

	if entry, ok := s.cache.Get(symbol); ok && s.cache.IsFresh(entry) {
		return entry.Quote, nil
	}

	quote, err := s.provider.GetGlobalQuote(ctx, symbol)
	if err != nil {
		return nil, err
	}

	s.cache.Put(symbol, quote)
	return quote, nil
}

// GetQuotes resolves a set of symbols to quotes, minimizing external calls.
//
// Symbols are deduplicated and blanks dropped. Fresh cache entries are
// served directly; at most batchLimit of the remainder are fetched
// sequentially, paced by the limiter. A failed fetch falls back to a stale
// cache entry when one exists, otherwise the symbol is omitted. The result
// is always a partial mapping; only context cancellation aborts the batch.
func (s *Service) GetQuotes(ctx context.Context, symbols []string) (map[string]*models.Quote, error) {
	results := make(map[string]*models.Quote)

	var toFetch []string
	seen := make(map[string]bool)
	for _, raw := range symbols {
		symbol := strings.TrimSpace(raw)
		if symbol == "" || seen[symbol] {
			continue
		}
		seen[symbol] = true

		if entry, ok := s.cache.Get(symbol); ok && s.cache.IsFresh(entry) {
			results[symbol] = entry.Quote
			continue
		}
		toFetch = append(toFetch, symbol)
	}

	if len(toFetch) > s.batchLimit {
		s.logger.Debug().
			Int("requested", len(toFetch)).
			Int("limit", s.batchLimit).
			Msg("Batch fetch capped; remaining symbols deferred to next cycle")
		toFetch = toFetch[:s.batchLimit]
	}

	for _, symbol := range toFetch {
		if err := s.limiter.Wait(ctx); err != nil {
			return results, err
		}

		quote, err := s.provider.GetGlobalQuote(ctx, symbol)
		if err != nil {
			if ctx.Err() != nil {
				return results, ctx.Err()
			}
			// Stale fallback: a past-TTL entry beats no data.
			if entry, ok := s.cache.Get(symbol); ok {
				s.logger.Warn().Err(err).Str("symbol", symbol).Msg("Quote fetch failed, serving stale cache entry")
				results[symbol] = entry.Quote
				continue
			}
			s.logger.Warn().Err(err).Str("symbol", symbol).Msg("Quote fetch failed, no cached fallback")
			continue
		}

		s.cache.Put(symbol, quote)
		results[symbol] = quote
	}

	return results, nil
}

// Ensure Service implements QuoteService
var _ interfaces.QuoteService = (*Service)(nil)
