// Package interfaces defines service contracts for MoMoney
package interfaces

import (
	"context"

	"github.com/silvamenu/momoney/internal/models"
)

// QuoteProvider provides access to an external market-data API.
type QuoteProvider interface {
	// GetGlobalQuote retrieves the latest quote snapshot for a symbol.
	GetGlobalQuote(ctx context.Context, symbol string) (*models.Quote, error)
}

// CompletionClient provides access to a text-generation API.
type CompletionClient interface {
	// GenerateAnswer generates a reply for prompt under the given system
	// instruction.
	GenerateAnswer(ctx context.Context, systemInstruction, prompt string) (string, error)

	// Model returns the model identifier used for generation.
	Model() string
}
