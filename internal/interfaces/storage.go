// Package interfaces defines service contracts for MoMoney
package interfaces

import (
	"context"
	"time"

	"github.com/silvamenu/momoney/internal/models"
)

// StorageManager provides access to all persistence stores.
type StorageManager interface {
	UserStore() UserStore
	FinanceStore() FinanceStore
	Close() error
}

// UserStore manages user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// FinanceStore manages a user's financial records.
type FinanceStore interface {
	AddTransaction(ctx context.Context, tx *models.Transaction) error
	ListTransactionsSince(ctx context.Context, userID string, since time.Time) ([]models.Transaction, error)

	AddGoal(ctx context.Context, goal *models.Goal) error
	ListGoalsByStatus(ctx context.Context, userID, status string) ([]models.Goal, error)

	AddInvestment(ctx context.Context, inv *models.Investment) error
	ListInvestments(ctx context.Context, userID string) ([]models.Investment, error)
}
