package service

import (
	"testing"

	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductService(t *testing.T) {
	db := newTestDB(t)
	svc := NewProductService(repository.NewProductRepo(db))

	t.Run("create", func(t *testing.T) {
		sku := "COF-001"
		product, err := svc.CreateProduct(CreateProductInput{
			Name:      "Coffee",
			SKU:       &sku,
			CostPrice: 700,
			SellPrice: 1000,
			Stock:     10,
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, product.ID)
		assert.True(t, product.IsActive)

		// Same SKU again is rejected
		_, err = svc.CreateProduct(CreateProductInput{Name: "Other", SKU: &sku})
		assert.ErrorIs(t, err, ErrSKUExists)
	})

	t.Run("create requires a name", func(t *testing.T) {
		_, err := svc.CreateProduct(CreateProductInput{SellPrice: 100})
		assert.Error(t, err)
	})

	t.Run("partial update", func(t *testing.T) {
		product, err := svc.CreateProduct(CreateProductInput{Name: "Tea", SellPrice: 600})
		require.NoError(t, err)

		newPrice := int64(750)
		updated, err := svc.UpdateProduct(product.ID, UpdateProductInput{SellPrice: &newPrice})
		require.NoError(t, err)
		assert.Equal(t, int64(750), updated.SellPrice)
		assert.Equal(t, "Tea", updated.Name)
	})

	t.Run("update unknown product", func(t *testing.T) {
		name := "Ghost"
		_, err := svc.UpdateProduct(uuid.New(), UpdateProductInput{Name: &name})
		assert.ErrorIs(t, err, model.ErrProductNotFound)
	})

	t.Run("deactivate", func(t *testing.T) {
		product, err := svc.CreateProduct(CreateProductInput{Name: "Sugar", SellPrice: 300})
		require.NoError(t, err)

		require.NoError(t, svc.DeactivateProduct(product.ID))
		fresh, err := svc.GetProduct(product.ID)
		require.NoError(t, err)
		assert.False(t, fresh.IsActive)

		assert.ErrorIs(t, svc.DeactivateProduct(uuid.New()), model.ErrProductNotFound)
	})

	t.Run("list filters by active", func(t *testing.T) {
		active := true
		products, _, err := svc.ListProducts("", &active, 1, 50)
		require.NoError(t, err)
		for _, p := range products {
			assert.True(t, p.IsActive)
		}
	})
}
