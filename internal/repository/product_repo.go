package repository

import (
	"errors"

	"go-pos-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll(search string, active *bool, page, limit int) ([]model.Product, *Meta, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindBySKU(sku string) (*model.Product, error)
	FindByIDs(ids []uuid.UUID) (map[uuid.UUID]model.Product, error)
	Update(product *model.Product) error
	Deactivate(id uuid.UUID) error

	// Stock mutations run inside the caller's transaction.
	DecrementStock(tx *gorm.DB, id uuid.UUID, quantity int) error
	IncrementStock(tx *gorm.DB, id uuid.UUID, quantity int, newCostPrice int64) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll(search string, active *bool, page, limit int) ([]model.Product, *Meta, error) {
	query := r.db.Model(&model.Product{})
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}
	if active != nil {
		query = query.Where("is_active = ?", *active)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var products []model.Product
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, nil, err
	}

	return products, newMeta(total, page, limit), nil
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindBySKU(sku string) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, "sku = ?", sku).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByIDs loads products in one batch read. Missing ids are simply absent
// from the result map; the caller detects the gaps.
func (r *productRepo) FindByIDs(ids []uuid.UUID) (map[uuid.UUID]model.Product, error) {
	var products []model.Product
	if err := r.db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}

	result := make(map[uuid.UUID]model.Product, len(products))
	for _, p := range products {
		result[p.ID] = p
	}
	return result, nil
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

// Deactivate soft-deletes a product. Sales history keeps its snapshots, so
// nothing is ever hard-deleted.
func (r *productRepo) Deactivate(id uuid.UUID) error {
	res := r.db.Model(&model.Product{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrProductNotFound
	}
	return nil
}

// DecrementStock reduces stock with a conditional single-statement update.
// The `stock >= quantity` predicate is the store-enforced guard: two
// concurrent sales of the last units serialize on the row write, and the
// loser's predicate fails instead of driving stock negative.
func (r *productRepo) DecrementStock(tx *gorm.DB, id uuid.UUID, quantity int) error {
	res := tx.Model(&model.Product{}).
		Where("id = ? AND stock >= ?", id, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Guard failed: product vanished, or a concurrent sale consumed
		// the stock after this sale was validated.
		var product model.Product
		if err := tx.Select("name", "stock").First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return model.ErrProductNotFound
			}
			return err
		}
		return &model.InsufficientStockError{
			ProductName: product.Name,
			Available:   product.Stock,
			Requested:   quantity,
		}
	}
	return nil
}

// IncrementStock raises stock and overwrites the cost price with the latest
// received cost (no weighted-average costing).
func (r *productRepo) IncrementStock(tx *gorm.DB, id uuid.UUID, quantity int, newCostPrice int64) error {
	res := tx.Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"stock":      gorm.Expr("stock + ?", quantity),
			"cost_price": newCostPrice,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrProductNotFound
	}
	return nil
}
