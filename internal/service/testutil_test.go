package service

import (
	"testing"

	"go-pos-backend/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database with the full schema.
// One connection only: every :memory: connection is its own database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&model.User{}, &model.OtpToken{},
		&model.Product{}, &model.Sale{}, &model.SaleItem{},
		&model.StockReceiving{}, &model.CashTransaction{},
	)
	require.NoError(t, err)

	return db
}

func seedUser(t *testing.T, db *gorm.DB) *model.User {
	t.Helper()

	user := &model.User{
		Email:      "cashier@example.com",
		Role:       model.RoleCashier,
		IsVerified: true,
	}
	require.NoError(t, user.SetPassword("secret123"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedProduct(t *testing.T, db *gorm.DB, name string, costPrice, sellPrice int64, stock int) *model.Product {
	t.Helper()

	product := &model.Product{
		Name:      name,
		CostPrice: costPrice,
		SellPrice: sellPrice,
		Stock:     stock,
		IsActive:  true,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func productStock(t *testing.T, db *gorm.DB, p *model.Product) int {
	t.Helper()

	var fresh model.Product
	require.NoError(t, db.First(&fresh, "id = ?", p.ID).Error)
	return fresh.Stock
}

func countRows(t *testing.T, db *gorm.DB, m interface{}) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(m).Count(&count).Error)
	return count
}
