// Package portfolio computes display-ready valuations from holdings and
// live quotes.
package portfolio

import (
	"github.com/silvamenu/momoney/internal/models"
)

// Valuate merges holdings with a symbol→quote mapping into enriched
// per-holding figures plus portfolio aggregates.
//
// It is a total, side-effect-free function: a holding without a ticker or
// without a matching quote is valued at cost (currentPrice = average price,
// zero gain), and missing numeric inputs behave as zero. Division guards
// keep gainLossPercent at 0 whenever invested capital is 0.
func Valuate(holdings []models.Holding, quotes map[string]*models.Quote) *models.PortfolioValuation {
	valuation := &models.PortfolioValuation{
		Holdings: make([]models.EnrichedHolding, 0, len(holdings)),
	}

	for _, h := range holdings {
		invested := h.Quantity * h.AveragePrice

		enriched := models.EnrichedHolding{
			Holding:      h,
			Invested:     invested,
			CurrentPrice: h.AveragePrice,
		}

		if h.Ticker != "" {
			if quote, ok := quotes[h.Ticker]; ok && quote != nil {
				enriched.CurrentPrice = quote.Price
				enriched.Change = quote.Change
				enriched.ChangePercent = quote.ChangePercent
			}
		}

		enriched.CurrentValue = h.Quantity * enriched.CurrentPrice
		enriched.GainLoss = enriched.CurrentValue - invested
		if invested > 0 {
			enriched.GainLossPercent = enriched.GainLoss / invested * 100
		}

		valuation.TotalInvested += invested
		valuation.CurrentValue += enriched.CurrentValue
		valuation.Holdings = append(valuation.Holdings, enriched)
	}

	valuation.TotalGainLoss = valuation.CurrentValue - valuation.TotalInvested
	if valuation.TotalInvested > 0 {
		valuation.TotalGainLossPercent = valuation.TotalGainLoss / valuation.TotalInvested * 100
	}

	return valuation
}
