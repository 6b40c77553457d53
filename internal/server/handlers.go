package server

import (
	"net/http"

	"github.com/silvamenu/momoney/internal/common"
)

// --- System handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

// --- Portfolio handlers ---

// handlePortfolio handles GET /api/portfolio — the enriched valuation.
func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	uc := requireUser(w, r)
	if uc == nil {
		return
	}

	valuation, err := s.app.PortfolioService.GetPortfolio(r.Context(), uc.UserID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", uc.UserID).Msg("Portfolio valuation failed")
		WriteError(w, http.StatusInternalServerError, "Erro ao calcular carteira")
		return
	}

	WriteJSON(w, http.StatusOK, valuation)
}

// handlePortfolioChart handles GET /api/portfolio/chart — allocation PNG.
func (s *Server) handlePortfolioChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	uc := requireUser(w, r)
	if uc == nil {
		return
	}

	valuation, err := s.app.PortfolioService.GetPortfolio(r.Context(), uc.UserID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", uc.UserID).Msg("Portfolio valuation failed")
		WriteError(w, http.StatusInternalServerError, "Erro ao calcular carteira")
		return
	}

	png, err := s.app.PortfolioService.RenderAllocationChart(valuation)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", uc.UserID).Msg("Chart render failed")
		WriteError(w, http.StatusInternalServerError, "Erro ao gerar gráfico")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// handleSummary handles GET /api/summary — the financial context snapshot
// the assistant grounds its answers on, exposed for the dashboard.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	uc := requireUser(w, r)
	if uc == nil {
		return
	}

	if s.app.AssistantService == nil {
		WriteError(w, http.StatusInternalServerError, "Resumo indisponível no momento")
		return
	}

	WriteJSON(w, http.StatusOK, s.app.AssistantService.BuildContext(r.Context(), uc.UserID))
}
