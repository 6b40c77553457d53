package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/silvamenu/momoney/internal/clients/alphavantage"
)

// handleStockQuote handles POST /get-stock-quote — resolves a ticker symbol
// to a quote through the shared cache. Provider failures are translated into
// stable status codes; upstream details are logged, never returned.
func (s *Server) handleStockQuote(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	uc := requireUser(w, r)
	if uc == nil {
		return
	}

	if s.app.QuoteService == nil {
		s.logger.Error().Msg("Quote requested but market data API key is not configured")
		WriteError(w, http.StatusInternalServerError, "Cotações indisponíveis no momento")
		return
	}

	var req struct {
		Symbol string `json:"symbol"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	if symbol == "" {
		WriteError(w, http.StatusBadRequest, "Símbolo é obrigatório")
		return
	}

	quote, err := s.app.QuoteService.GetQuote(r.Context(), symbol)
	if err != nil {
		switch {
		case errors.Is(err, alphavantage.ErrRateLimited):
			WriteError(w, http.StatusTooManyRequests, "Limite de requisições atingido. Tente novamente em alguns minutos.")
		case errors.Is(err, alphavantage.ErrSymbolNotFound):
			WriteError(w, http.StatusNotFound, "Símbolo não encontrado")
		default:
			s.logger.Error().Err(err).Str("symbol", symbol).Msg("Quote fetch failed")
			WriteError(w, http.StatusInternalServerError, "Erro ao buscar cotação. Tente novamente.")
		}
		return
	}

	WriteJSON(w, http.StatusOK, quote)
}
