package server

import (
	"errors"
	"net/http"

	"github.com/silvamenu/momoney/internal/services/assistant"
)

// handleAssistant handles POST /assistente-geral — the AI financial assistant.
// Validation and auth failures are terminal before any data or model access.
func (s *Server) handleAssistant(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	uc := requireUser(w, r)
	if uc == nil {
		return
	}

	if s.app.AssistantService == nil {
		s.logger.Error().Msg("Assistant requested but completion API key is not configured")
		WriteError(w, http.StatusInternalServerError, "Assistente indisponível no momento")
		return
	}

	var req struct {
		Question string `json:"question"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	answer, err := s.app.AssistantService.Answer(r.Context(), uc.UserID, req.Question)
	if err != nil {
		switch {
		case errors.Is(err, assistant.ErrEmptyQuestion):
			WriteError(w, http.StatusBadRequest, "Pergunta é obrigatória")
		case errors.Is(err, assistant.ErrQuestionTooLong):
			WriteError(w, http.StatusBadRequest, "Pergunta muito longa. Máximo de 1000 caracteres.")
		default:
			s.logger.Error().Err(err).Str("user_id", uc.UserID).Msg("Assistant answer failed")
			WriteError(w, http.StatusInternalServerError, "Erro ao processar sua pergunta. Tente novamente.")
		}
		return
	}

	WriteJSON(w, http.StatusOK, answer)
}
