package service

import (
	"testing"

	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newReceivingService(t *testing.T, db *gorm.DB) StockReceivingService {
	t.Helper()
	return NewStockReceivingService(
		repository.NewProductRepo(db),
		repository.NewStockReceivingRepo(db),
		repository.NewFinanceRepo(db),
		db,
	)
}

func TestReceiveStock(t *testing.T) {
	db := newTestDB(t)
	svc := newReceivingService(t, db)

	coffee := seedProduct(t, db, "Coffee", 700, 1000, 10)

	receiving, err := svc.ReceiveStock(ReceiveStockInput{
		ProductID:   coffee.ID,
		Quantity:    20,
		CostPerItem: 650,
		Notes:       "weekly restock",
	})
	require.NoError(t, err)

	assert.Equal(t, 20, receiving.Quantity)
	assert.Equal(t, int64(650), receiving.CostPerItem)
	assert.Equal(t, int64(13000), receiving.TotalCost)
	assert.Equal(t, "weekly restock", receiving.Notes)

	// Stock raised and cost price overwritten with the latest cost
	var fresh model.Product
	require.NoError(t, db.First(&fresh, "id = ?", coffee.ID).Error)
	assert.Equal(t, 30, fresh.Stock)
	assert.Equal(t, int64(650), fresh.CostPrice)
	assert.Equal(t, int64(1000), fresh.SellPrice)

	// The matching expense entry landed in the ledger
	var expense model.CashTransaction
	require.NoError(t, db.First(&expense, "type = ?", model.TxExpense).Error)
	assert.Equal(t, model.CategoryGoodsPurchase, expense.Category)
	assert.Equal(t, int64(13000), expense.Amount)
	assert.Contains(t, expense.Notes, "Coffee")
}

func TestReceiveStockRoundsFractionalCost(t *testing.T) {
	db := newTestDB(t)
	svc := newReceivingService(t, db)
	coffee := seedProduct(t, db, "Coffee", 700, 1000, 0)

	receiving, err := svc.ReceiveStock(ReceiveStockInput{
		ProductID:   coffee.ID,
		Quantity:    3,
		CostPerItem: 10.6,
	})
	require.NoError(t, err)

	// 10.6 rounds to 11 per unit, total derives from the rounded value
	assert.Equal(t, int64(11), receiving.CostPerItem)
	assert.Equal(t, int64(33), receiving.TotalCost)
}

func TestReceiveStockValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newReceivingService(t, db)
	coffee := seedProduct(t, db, "Coffee", 700, 1000, 10)

	_, err := svc.ReceiveStock(ReceiveStockInput{ProductID: coffee.ID, Quantity: 0, CostPerItem: 100})
	assert.ErrorIs(t, err, model.ErrInvalidQuantity)

	_, err = svc.ReceiveStock(ReceiveStockInput{ProductID: coffee.ID, Quantity: 5, CostPerItem: -1})
	assert.ErrorIs(t, err, model.ErrInvalidCost)

	_, err = svc.ReceiveStock(ReceiveStockInput{ProductID: uuid.New(), Quantity: 5, CostPerItem: 100})
	assert.ErrorIs(t, err, model.ErrProductNotFound)

	// No partial writes from any of the rejected inputs
	assert.Equal(t, 10, productStock(t, db, coffee))
	assert.Zero(t, countRows(t, db, &model.StockReceiving{}))
	assert.Zero(t, countRows(t, db, &model.CashTransaction{}))
}

func TestReceiveStockThenSaleUsesNewCost(t *testing.T) {
	db := newTestDB(t)
	receivingSvc := newReceivingService(t, db)
	salesSvc := newSalesService(t, db)
	user := seedUser(t, db)

	coffee := seedProduct(t, db, "Coffee", 700, 1000, 0)

	_, err := receivingSvc.ReceiveStock(ReceiveStockInput{
		ProductID:   coffee.ID,
		Quantity:    10,
		CostPerItem: 800,
	})
	require.NoError(t, err)

	// Margin of the next sale reflects the refreshed cost price
	sale, err := salesSvc.CreateSale([]CartItem{{ProductID: coffee.ID, Quantity: 2}}, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), sale.TotalAmount)
	assert.Equal(t, int64(400), sale.TotalProfit)
	assert.Equal(t, int64(800), sale.Items[0].CostPriceSnapshot)
	assert.Equal(t, 8, productStock(t, db, coffee))
}

func TestListReceivingsFiltersByProduct(t *testing.T) {
	db := newTestDB(t)
	svc := newReceivingService(t, db)

	coffee := seedProduct(t, db, "Coffee", 700, 1000, 0)
	tea := seedProduct(t, db, "Tea", 400, 600, 0)

	for _, p := range []*model.Product{coffee, coffee, tea} {
		_, err := svc.ReceiveStock(ReceiveStockInput{ProductID: p.ID, Quantity: 1, CostPerItem: 100})
		require.NoError(t, err)
	}

	all, meta, err := svc.ListReceivings(nil, 1, 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.EqualValues(t, 3, meta.Total)

	onlyCoffee, meta, err := svc.ListReceivings(&coffee.ID, 1, 10)
	require.NoError(t, err)
	assert.Len(t, onlyCoffee, 2)
	assert.EqualValues(t, 2, meta.Total)
	for _, r := range onlyCoffee {
		assert.Equal(t, coffee.ID, r.ProductID)
	}
}
