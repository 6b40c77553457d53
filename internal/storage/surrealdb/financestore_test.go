package surrealdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silvamenu/momoney/internal/models"
)

func TestFinanceStoreTransactionsSince(t *testing.T) {
	db := testDB(t)
	store := NewFinanceStore(db, testLogger())
	ctx := context.Background()

	now := time.Now().Truncate(time.Second)
	rows := []models.Transaction{
		{ID: "t1", UserID: "u1", Type: models.TransactionIncome, Amount: 5000, Date: now.AddDate(0, 0, -5)},
		{ID: "t2", UserID: "u1", Type: models.TransactionExpense, Amount: 3200, Date: now.AddDate(0, 0, -10)},
		{ID: "t3", UserID: "u1", Type: models.TransactionExpense, Amount: 99, Date: now.AddDate(0, 0, -45)},
		{ID: "t4", UserID: "u2", Type: models.TransactionIncome, Amount: 777, Date: now},
	}
	for i := range rows {
		require.NoError(t, store.AddTransaction(ctx, &rows[i]))
	}

	got, err := store.ListTransactionsSince(ctx, "u1", now.AddDate(0, 0, -30))
	require.NoError(t, err)
	require.Len(t, got, 2, "45-day-old row and other users excluded")

	// Ordered newest first
	assert.Equal(t, "t1", got[0].ID)
	assert.Equal(t, "t2", got[1].ID)
}

func TestFinanceStoreGoalsByStatus(t *testing.T) {
	db := testDB(t)
	store := NewFinanceStore(db, testLogger())
	ctx := context.Background()

	goals := []models.Goal{
		{ID: "g1", UserID: "u1", Name: "Viagem", TargetAmount: 1000, CurrentAmount: 250, Status: models.GoalInProgress, CreatedAt: time.Now()},
		{ID: "g2", UserID: "u1", Name: "Reserva", TargetAmount: 10000, CurrentAmount: 10000, Status: models.GoalCompleted, CreatedAt: time.Now()},
		{ID: "g3", UserID: "u2", Name: "Carro", TargetAmount: 50000, CurrentAmount: 0, Status: models.GoalInProgress, CreatedAt: time.Now()},
	}
	for i := range goals {
		require.NoError(t, store.AddGoal(ctx, &goals[i]))
	}

	active, err := store.ListGoalsByStatus(ctx, "u1", models.GoalInProgress)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Viagem", active[0].Name)

	done, err := store.ListGoalsByStatus(ctx, "u1", models.GoalCompleted)
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, "Reserva", done[0].Name)
}

func TestFinanceStoreInvestments(t *testing.T) {
	db := testDB(t)
	store := NewFinanceStore(db, testLogger())
	ctx := context.Background()

	invs := []models.Investment{
		{ID: "i1", UserID: "u1", Name: "Apple", Type: "stock", Ticker: "AAPL", Quantity: 10, AveragePrice: 150, CreatedAt: time.Now()},
		{ID: "i2", UserID: "u1", Name: "CDB", Type: "fixed_income", Price: 5000, CreatedAt: time.Now()},
		{ID: "i3", UserID: "u2", Name: "Vale", Type: "stock", Ticker: "VALE3", CreatedAt: time.Now()},
	}
	for i := range invs {
		require.NoError(t, store.AddInvestment(ctx, &invs[i]))
	}

	got, err := store.ListInvestments(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestFinanceStoreEmptyLists(t *testing.T) {
	db := testDB(t)
	store := NewFinanceStore(db, testLogger())
	ctx := context.Background()

	transactions, err := store.ListTransactionsSince(ctx, "nobody", time.Now().AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Empty(t, transactions)

	investments, err := store.ListInvestments(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, investments)
}
