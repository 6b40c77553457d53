package surrealdb

import (
	"context"
	"fmt"
	"time"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/silvamenu/momoney/internal/common"
	"github.com/silvamenu/momoney/internal/interfaces"
	"github.com/silvamenu/momoney/internal/models"
)

// FinanceStore persists transactions, goals and investments, one table per
// aggregate, rows keyed by their generated ID.
type FinanceStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewFinanceStore(db *surrealdb.DB, logger *common.Logger) *FinanceStore {
	return &FinanceStore{
		db:     db,
		logger: logger,
	}
}

// upsert writes content under table:id.
func (s *FinanceStore) upsert(ctx context.Context, table, id string, content any) error {
	sql := "UPSERT $rid CONTENT $content"
	vars := map[string]any{
		"rid":     surrealmodels.NewRecordID(table, id),
		"content": content,
	}
	if _, err := surrealdb.Query[any](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to upsert %s record: %w", table, err)
	}
	return nil
}

// --- Transactions ---

func (s *FinanceStore) AddTransaction(ctx context.Context, tx *models.Transaction) error {
	return s.upsert(ctx, "transaction", tx.ID, tx)
}

func (s *FinanceStore) ListTransactionsSince(ctx context.Context, userID string, since time.Time) ([]models.Transaction, error) {
	sql := "SELECT * FROM transaction WHERE user_id = $user_id AND date >= $since ORDER BY date DESC"
	vars := map[string]any{
		"user_id": userID,
		"since":   since,
	}

	results, err := surrealdb.Query[[]models.Transaction](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	if results != nil && len(*results) > 0 {
		return (*results)[0].Result, nil
	}
	return nil, nil
}

// --- Goals ---

func (s *FinanceStore) AddGoal(ctx context.Context, goal *models.Goal) error {
	return s.upsert(ctx, "goal", goal.ID, goal)
}

func (s *FinanceStore) ListGoalsByStatus(ctx context.Context, userID, status string) ([]models.Goal, error) {
	sql := "SELECT * FROM goal WHERE user_id = $user_id AND status = $status ORDER BY created_at DESC"
	vars := map[string]any{
		"user_id": userID,
		"status":  status,
	}

	results, err := surrealdb.Query[[]models.Goal](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	if results != nil && len(*results) > 0 {
		return (*results)[0].Result, nil
	}
	return nil, nil
}

// --- Investments ---

func (s *FinanceStore) AddInvestment(ctx context.Context, inv *models.Investment) error {
	return s.upsert(ctx, "investment", inv.ID, inv)
}

func (s *FinanceStore) ListInvestments(ctx context.Context, userID string) ([]models.Investment, error) {
	sql := "SELECT * FROM investment WHERE user_id = $user_id ORDER BY created_at DESC"
	vars := map[string]any{"user_id": userID}

	results, err := surrealdb.Query[[]models.Investment](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}

	if results != nil && len(*results) > 0 {
		return (*results)[0].Result, nil
	}
	return nil, nil
}

// Compile-time check
var _ interfaces.FinanceStore = (*FinanceStore)(nil)
