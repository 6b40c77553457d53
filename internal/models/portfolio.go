package models

// Holding is a user's recorded position in a financial instrument.
// The valuator treats it as read-only input.
type Holding struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Ticker       string  `json:"ticker,omitempty"`
	Quantity     float64 `json:"quantity,omitempty"`
	AveragePrice float64 `json:"average_price"`
}

// EnrichedHolding is a Holding combined with live quote data.
// Recomputed on every valuation, never persisted.
type EnrichedHolding struct {
	Holding
	Invested        float64 `json:"invested"`
	CurrentPrice    float64 `json:"currentPrice"`
	CurrentValue    float64 `json:"currentValue"`
	Change          float64 `json:"change"`
	ChangePercent   float64 `json:"changePercent"`
	GainLoss        float64 `json:"gainLoss"`
	GainLossPercent float64 `json:"gainLossPercent"`
}

// PortfolioValuation holds enriched holdings plus portfolio-level aggregates.
type PortfolioValuation struct {
	Holdings             []EnrichedHolding `json:"holdings"`
	TotalInvested        float64           `json:"totalInvested"`
	CurrentValue         float64           `json:"currentValue"`
	TotalGainLoss        float64           `json:"totalGainLoss"`
	TotalGainLossPercent float64           `json:"totalGainLossPercent"`
}
