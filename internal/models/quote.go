// Package models defines data structures for MoMoney
package models

// Quote holds a point-in-time price snapshot for a ticker symbol.
type Quote struct {
	Symbol           string  `json:"symbol"`
	Price            float64 `json:"price"`
	Change           float64 `json:"change"`
	ChangePercent    float64 `json:"changePercent"`
	Volume           int64   `json:"volume"`
	LatestTradingDay string  `json:"latestTradingDay"`
	PreviousClose    float64 `json:"previousClose"`
	Open             float64 `json:"open"`
	High             float64 `json:"high"`
	Low              float64 `json:"low"`
}
