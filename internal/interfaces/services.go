// Package interfaces defines service contracts for MoMoney
package interfaces

import (
	"context"

	"github.com/silvamenu/momoney/internal/models"
)

// QuoteService resolves ticker symbols to quotes through a shared cache.
type QuoteService interface {
	// GetQuote retrieves a single quote, serving from fresh cache when
	// possible. Provider errors are returned unwrapped so callers can
	// translate rate-limit and not-found conditions.
	GetQuote(ctx context.Context, symbol string) (*models.Quote, error)

	// GetQuotes resolves a set of symbols to quotes, minimizing external
	// calls. Individual symbol failures are isolated; the result is a
	// partial mapping containing every symbol that could be resolved.
	GetQuotes(ctx context.Context, symbols []string) (map[string]*models.Quote, error)
}

// PortfolioService produces display-ready portfolio figures.
type PortfolioService interface {
	// GetPortfolio loads the user's holdings, resolves live quotes and
	// returns the enriched valuation.
	GetPortfolio(ctx context.Context, userID string) (*models.PortfolioValuation, error)

	// RenderAllocationChart renders the valuation as a PNG allocation chart.
	RenderAllocationChart(valuation *models.PortfolioValuation) ([]byte, error)
}

// AssistantService answers financial questions grounded in the user's data.
type AssistantService interface {
	// Answer validates the question, builds the financial context and
	// forwards the combined prompt to the completion API.
	Answer(ctx context.Context, userID, question string) (*models.AssistantAnswer, error)

	// BuildContext assembles the user's financial summary. Individual
	// query failures degrade to zero values rather than aborting.
	BuildContext(ctx context.Context, userID string) *models.FinancialContext
}
