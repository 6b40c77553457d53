package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/silvamenu/momoney/internal/models"
)

// --- Transactions ---

// handleTransactions handles GET and POST /api/transactions.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodPost) {
		return
	}

	uc := requireUser(w, r)
	if uc == nil {
		return
	}

	store := s.app.Storage.FinanceStore()
	ctx := r.Context()

	if r.Method == http.MethodPost {
		var tx models.Transaction
		if !DecodeJSON(w, r, &tx) {
			return
		}

		if tx.Type != models.TransactionIncome && tx.Type != models.TransactionExpense {
			WriteError(w, http.StatusBadRequest, "Tipo deve ser 'renda' ou 'despesa'")
			return
		}
		if tx.Amount <= 0 {
			WriteError(w, http.StatusBadRequest, "Valor deve ser maior que zero")
			return
		}

		tx.ID = uuid.New().String()
		tx.UserID = uc.UserID
		if tx.Date.IsZero() {
			tx.Date = time.Now()
		}

		if err := store.AddTransaction(ctx, &tx); err != nil {
			s.logger.Error().Err(err).Str("user_id", uc.UserID).Msg("Failed to save transaction")
			WriteError(w, http.StatusInternalServerError, "Erro ao salvar transação")
			return
		}

		WriteJSON(w, http.StatusCreated, tx)
		return
	}

	days := 30
	if d := r.URL.Query().Get("days"); d != "" {
		if v, err := strconv.Atoi(d); err == nil && v > 0 && v <= 365 {
			days = v
		}
	}

	transactions, err := store.ListTransactionsSince(ctx, uc.UserID, time.Now().AddDate(0, 0, -days))
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", uc.UserID).Msg("Failed to list transactions")
		WriteError(w, http.StatusInternalServerError, "Erro ao listar transações")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": transactions,
		"days":         days,
	})
}

// --- Goals ---

// handleGoals handles GET and POST /api/goals.
func (s *Server) handleGoals(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodPost) {
		return
	}

	uc := requireUser(w, r)
	if uc == nil {
		return
	}

	store := s.app.Storage.FinanceStore()
	ctx := r.Context()

	if r.Method == http.MethodPost {
		var goal models.Goal
		if !DecodeJSON(w, r, &goal) {
			return
		}

		if strings.TrimSpace(goal.Name) == "" {
			WriteError(w, http.StatusBadRequest, "Nome da meta é obrigatório")
			return
		}
		if goal.TargetAmount <= 0 {
			WriteError(w, http.StatusBadRequest, "Valor alvo deve ser maior que zero")
			return
		}

		goal.ID = uuid.New().String()
		goal.UserID = uc.UserID
		goal.CreatedAt = time.Now()
		if goal.Status == "" {
			goal.Status = models.GoalInProgress
		}

		if err := store.AddGoal(ctx, &goal); err != nil {
			s.logger.Error().Err(err).Str("user_id", uc.UserID).Msg("Failed to save goal")
			WriteError(w, http.StatusInternalServerError, "Erro ao salvar meta")
			return
		}

		WriteJSON(w, http.StatusCreated, goal)
		return
	}

	status := r.URL.Query().Get("status")
	if status == "" {
		status = models.GoalInProgress
	}

	goals, err := store.ListGoalsByStatus(ctx, uc.UserID, status)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", uc.UserID).Msg("Failed to list goals")
		WriteError(w, http.StatusInternalServerError, "Erro ao listar metas")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"goals":  goals,
		"status": status,
	})
}

// --- Investments ---

// handleInvestments handles GET and POST /api/investments.
func (s *Server) handleInvestments(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodPost) {
		return
	}

	uc := requireUser(w, r)
	if uc == nil {
		return
	}

	store := s.app.Storage.FinanceStore()
	ctx := r.Context()

	if r.Method == http.MethodPost {
		var inv models.Investment
		if !DecodeJSON(w, r, &inv) {
			return
		}

		if strings.TrimSpace(inv.Name) == "" {
			WriteError(w, http.StatusBadRequest, "Nome do investimento é obrigatório")
			return
		}

		inv.ID = uuid.New().String()
		inv.UserID = uc.UserID
		inv.Ticker = strings.ToUpper(strings.TrimSpace(inv.Ticker))
		inv.CreatedAt = time.Now()

		if err := store.AddInvestment(ctx, &inv); err != nil {
			s.logger.Error().Err(err).Str("user_id", uc.UserID).Msg("Failed to save investment")
			WriteError(w, http.StatusInternalServerError, "Erro ao salvar investimento")
			return
		}

		WriteJSON(w, http.StatusCreated, inv)
		return
	}

	investments, err := store.ListInvestments(ctx, uc.UserID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", uc.UserID).Msg("Failed to list investments")
		WriteError(w, http.StatusInternalServerError, "Erro ao listar investimentos")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"investments": investments,
	})
}
