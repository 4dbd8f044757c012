package service

import (
	"testing"

	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinanceService(t *testing.T) {
	db := newTestDB(t)
	svc := NewFinanceService(repository.NewFinanceRepo(db), db)

	t.Run("create and summarize", func(t *testing.T) {
		_, err := svc.CreateTransaction(CreateCashTransactionInput{
			Type:     model.TxIncome,
			Category: "Catering",
			Amount:   50000,
		})
		require.NoError(t, err)

		_, err = svc.CreateTransaction(CreateCashTransactionInput{
			Type:     model.TxExpense,
			Category: "Rent",
			Amount:   20000,
			Notes:    "August",
		})
		require.NoError(t, err)

		summary, err := svc.GetSummary(nil, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(50000), summary.TotalIncome)
		assert.Equal(t, int64(20000), summary.TotalExpense)
		assert.Equal(t, int64(30000), summary.NetCashFlow)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		_, err := svc.CreateTransaction(CreateCashTransactionInput{
			Type: "REFUND", Category: "Misc", Amount: 100,
		})
		assert.Error(t, err)

		_, err = svc.CreateTransaction(CreateCashTransactionInput{
			Type: model.TxIncome, Category: "Misc", Amount: -5,
		})
		assert.Error(t, err)
	})

	t.Run("list filters by type", func(t *testing.T) {
		income := model.TxIncome
		transactions, meta, err := svc.ListTransactions(&income, nil, nil, 1, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 1, meta.Total)
		for _, tx := range transactions {
			assert.Equal(t, model.TxIncome, tx.Type)
		}
	})

	t.Run("delete", func(t *testing.T) {
		tx, err := svc.CreateTransaction(CreateCashTransactionInput{
			Type: model.TxExpense, Category: "Misc", Amount: 100,
		})
		require.NoError(t, err)

		require.NoError(t, svc.DeleteTransaction(tx.ID))
		assert.ErrorIs(t, svc.DeleteTransaction(tx.ID), ErrTransactionNotFound)
		assert.ErrorIs(t, svc.DeleteTransaction(uuid.New()), ErrTransactionNotFound)
	})
}
