package portfolio

import (
	"context"
	"fmt"

	"github.com/silvamenu/momoney/internal/common"
	"github.com/silvamenu/momoney/internal/interfaces"
	"github.com/silvamenu/momoney/internal/models"
)

// Service implements PortfolioService.
type Service struct {
	storage interfaces.StorageManager
	quotes  interfaces.QuoteService
	logger  *common.Logger
}

// NewService creates a portfolio service. quotes may be nil, in which case
// holdings are valued at cost.
func NewService(storage interfaces.StorageManager, quotes interfaces.QuoteService, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		quotes:  quotes,
		logger:  logger,
	}
}

// GetPortfolio loads the user's investments, resolves live quotes for the
// tickered ones and returns the enriched valuation.
func (s *Service) GetPortfolio(ctx context.Context, userID string) (*models.PortfolioValuation, error) {
	investments, err := s.storage.FinanceStore().ListInvestments(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}

	holdings := make([]models.Holding, 0, len(investments))
	var tickers []string
	for _, inv := range investments {
		h := inv.Holding()
		holdings = append(holdings, h)
		if h.Ticker != "" {
			tickers = append(tickers, h.Ticker)
		}
	}

	quotes := map[string]*models.Quote{}
	if s.quotes != nil && len(tickers) > 0 {
		quotes, err = s.quotes.GetQuotes(ctx, tickers)
		if err != nil {
			return nil, fmt.Errorf("quote batch aborted: %w", err)
		}
	}

	return Valuate(holdings, quotes), nil
}

// Ensure Service implements PortfolioService
var _ interfaces.PortfolioService = (*Service)(nil)
